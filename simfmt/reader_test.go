// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	in := strings.Join([]string{
		"n;strategy;cost;comment",
		"10;FIFO;1.5;ignored",
		"20;LRU;2.25;also ignored",
	}, "\n")
	s := NewSchema(
		Field{Name: "strategy", Kind: Categorical},
		Field{Name: "n", Kind: Numeric},
		Field{Name: "cost", Kind: Numeric},
	)

	recs, err := ReadCSV(strings.NewReader(in), ';', s, "test.csv")
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// Column order follows the schema, not the file header, and the
	// extra column is dropped.
	require.Equal(t, "LRU", recs[1].Str("strategy"))
	n, ok := recs[1].Num("n")
	require.True(t, ok)
	require.Equal(t, 20.0, n)
}

func TestReadCSVHeaderErrors(t *testing.T) {
	s := NewSchema(Field{Name: "cost", Kind: Numeric})

	_, err := ReadCSV(strings.NewReader(""), ';', s, "empty.csv")
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "empty.csv", serr.FileName)
	require.Equal(t, 1, serr.Line)

	_, err = ReadCSV(strings.NewReader("n;strategy\n1;FIFO\n"), ';', s, "short.csv")
	require.ErrorAs(t, err, &serr)
	require.Contains(t, serr.Msg, `"cost"`)
}

func TestReadCSVShortRow(t *testing.T) {
	s := NewSchema(Field{Name: "n", Kind: Numeric}, Field{Name: "cost", Kind: Numeric})
	_, err := ReadCSV(strings.NewReader("n;cost\n1\n"), ';', s, "rows.csv")
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, 2, serr.Line)
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := NewSchema(
		Field{Name: "strategy", Kind: Categorical},
		Field{Name: "cost", Kind: Numeric},
	)
	recs, err := s.Validate([]Row{
		{"strategy": "FIFO", "cost": "1.5"},
		{"strategy": "LRU", "cost": ""},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ',', recs))

	back, err := ReadCSV(&buf, ',', s, "roundtrip")
	require.NoError(t, err)
	require.Len(t, back, 2)
	require.Equal(t, recs[0].Values(), back[0].Values())
	require.Equal(t, recs[1].Values(), back[1].Values())
}
