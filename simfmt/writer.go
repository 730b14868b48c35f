// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simfmt

import (
	"encoding/csv"
	"io"
)

// WriteCSV writes records to w as a delimited file with a header row.
// All records must share one Schema; columns appear in schema order.
// Missing numeric cells are written as empty fields, mirroring what
// ReadCSV accepts.
func WriteCSV(w io.Writer, delim rune, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	schema := records[0].Schema()
	cw := csv.NewWriter(w)
	cw.Comma = delim

	hdr := make([]string, len(schema.Fields()))
	for i, f := range schema.Fields() {
		hdr[i] = f.Name
	}
	if err := cw.Write(hdr); err != nil {
		return err
	}

	row := make([]string, len(hdr))
	for _, r := range records {
		for i, f := range schema.Fields() {
			row[i] = r.Str(f.Name)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
