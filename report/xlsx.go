// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"math"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook writes one sheet per table: group columns, one column
// per reduced measure, and a sample-count column. Cells for groups
// with no data stay empty.
func writeWorkbook(path string, tables []Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", t.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return err
		}

		set := func(col, row int, v interface{}) error {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			return f.SetCellValue(t.Name, cell, v)
		}

		col := 1
		for _, gf := range t.Agg.GroupFields {
			if err := set(col, 1, gf); err != nil {
				return err
			}
			col++
		}
		for mi := range t.Agg.Measures {
			if err := set(col, 1, t.Agg.ColumnName(mi)); err != nil {
				return err
			}
			col++
		}
		if err := set(col, 1, "samples"); err != nil {
			return err
		}

		for ri, rec := range t.Agg.Records {
			row, col := ri+2, 1
			for _, gv := range rec.Group {
				if err := set(col, row, gv); err != nil {
					return err
				}
				col++
			}
			for _, v := range rec.Values {
				if !math.IsNaN(v) {
					if err := set(col, row, v); err != nil {
						return err
					}
				}
				col++
			}
			if err := set(col, row, rec.N); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}
