// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simfmt

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// A SyntaxError represents a malformed results file: a bad header or a
// row whose shape does not match it. Schema-level problems with
// well-formed rows are reported as *SchemaViolation instead.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// ReadCSV reads a delimited results file from r, checks it against
// schema, and returns the typed records in file order. delim is the
// field delimiter; the simulators emit both ';' and ',' files. The
// header must name every schema field; extra columns are ignored.
// fileName is used in error messages only.
func ReadCSV(r io.Reader, delim rune, schema *Schema, fileName string) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SyntaxError{fileName, 1, "missing header"}
	}
	if err != nil {
		return nil, err
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, f := range schema.Fields() {
		if _, ok := col[f.Name]; !ok {
			return nil, &SyntaxError{fileName, 1, fmt.Sprintf("header is missing column %q", f.Name)}
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < len(header) {
			return nil, &SyntaxError{fileName, line, fmt.Sprintf("row has %d columns, header has %d", len(rec), len(header))}
		}
		row := make(Row, len(schema.Fields()))
		for _, f := range schema.Fields() {
			row[f.Name] = rec[col[f.Name]]
		}
		rows = append(rows, row)
	}
	return schema.Validate(rows)
}

// ReadFile reads and validates the named results file. See ReadCSV.
func ReadFile(path string, delim rune, schema *Schema) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f, delim, schema, path)
}
