// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"golang.org/x/simstat/simfmt"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInsertAndReadRun(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	schema := simfmt.NewSchema(
		simfmt.Field{Name: "strategy", Kind: simfmt.Categorical},
		simfmt.Field{Name: "cost", Kind: simfmt.Numeric},
	)
	recs, err := schema.Validate([]simfmt.Row{
		{"strategy": "FIFO", "cost": "1.5"},
		{"strategy": "LRU", "cost": ""},
	})
	require.NoError(t, err)

	id, err := db.InsertRun(ctx, "caching", recs)
	require.NoError(t, err)
	require.NotZero(t, id)

	back, err := db.ReadRun(ctx, id, schema)
	require.NoError(t, err)
	require.Len(t, back, 2)
	require.Equal(t, "FIFO", back[0].Str("strategy"))
	v, ok := back[0].Num("cost")
	require.True(t, ok)
	require.Equal(t, 1.5, v)
	// The missing cell survives the round trip.
	_, ok = back[1].Num("cost")
	require.False(t, ok)
}

func TestRuns(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	schema := simfmt.NewSchema(simfmt.Field{Name: "cost", Kind: simfmt.Numeric})
	recs, err := schema.Validate([]simfmt.Row{{"cost": "1"}})
	require.NoError(t, err)

	id1, err := db.InsertRun(ctx, "lists", recs)
	require.NoError(t, err)
	id2, err := db.InsertRun(ctx, "packing", recs)
	require.NoError(t, err)

	all, err := db.Runs(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Newest first.
	require.Equal(t, id2, all[0].ID)
	require.Equal(t, id1, all[1].ID)

	lists, err := db.Runs(ctx, "lists")
	require.NoError(t, err)
	require.Len(t, lists, 1)
	require.Equal(t, "lists", lists[0].Dataset)
}

func TestReadRunNotFound(t *testing.T) {
	db := testDB(t)
	schema := simfmt.NewSchema(simfmt.Field{Name: "cost", Kind: simfmt.Numeric})
	_, err := db.ReadRun(context.Background(), 42, schema)
	require.Error(t, err)
}

func TestInsertRunEmpty(t *testing.T) {
	db := testDB(t)
	_, err := db.InsertRun(context.Background(), "lists", nil)
	require.Error(t, err)
}
