// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"math"
	"os"
	"strconv"

	"github.com/google/safehtml/template"

	"golang.org/x/simstat/simchart"
	"golang.org/x/simstat/simfmt"
)

var indexTmpl = template.Must(template.New("index").ParseFromTrustedTemplate(template.MakeTrustedTemplate(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Dataset}} report</title>
<style>
body { font-family: sans-serif; margin: 2em; max-width: 72em; }
figure { margin: 1em 0; }
figcaption { color: #555; font-size: smaller; }
img { max-width: 100%; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #ccc; padding: .25em .6em; text-align: left; }
th { background: #f4f4f4; }
</style>
</head>
<body>
<h1>{{.Dataset}}</h1>
<h2>Charts</h2>
{{range .Charts}}<figure>
<img src="{{.File}}" alt="{{.ID}}">
<figcaption>{{.ID}} ({{.Kind}})</figcaption>
</figure>
{{end}}{{range .Tables}}<h2>{{.Name}}</h2>
<table>
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
{{end}}</body>
</html>
`)))

type indexChart struct {
	ID, File, Kind string
}

type indexTable struct {
	Name   string
	Header []string
	Rows   [][]string
}

type indexData struct {
	Dataset string
	Charts  []indexChart
	Tables  []indexTable
}

func writeIndex(path, dataset string, specs []simchart.Spec, tables []Table) error {
	data := indexData{Dataset: dataset}
	for _, s := range specs {
		data.Charts = append(data.Charts, indexChart{
			ID:   s.OutputID(),
			File: s.OutputID() + ".png",
			Kind: s.Kind().String(),
		})
	}
	for _, t := range tables {
		it := indexTable{Name: t.Name}
		it.Header = append(it.Header, t.Agg.GroupFields...)
		for mi := range t.Agg.Measures {
			it.Header = append(it.Header, t.Agg.ColumnName(mi))
		}
		it.Header = append(it.Header, "samples")
		for _, rec := range t.Agg.Records {
			row := append([]string{}, rec.Group...)
			for _, v := range rec.Values {
				if math.IsNaN(v) {
					row = append(row, "")
				} else {
					row = append(row, simfmt.CanonNum(v))
				}
			}
			row = append(row, strconv.Itoa(rec.N))
			it.Rows = append(it.Rows, row)
		}
		data.Tables = append(data.Tables, it)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := indexTmpl.Execute(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
