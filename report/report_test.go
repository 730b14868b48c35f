// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"golang.org/x/simstat/simfmt"
)

func TestPreset(t *testing.T) {
	require.Equal(t, []string{"caching", "lists", "mts", "packing", "replication"}, Presets())

	cfg, err := Preset("replication")
	require.NoError(t, err)
	require.Equal(t, "replication", cfg.Dataset)
	require.Equal(t, ',', cfg.Delimiter)

	_, err = Preset("nope")
	require.Error(t, err)
}

func validated(t *testing.T, cfg *Config, rows []simfmt.Row) []simfmt.Record {
	t.Helper()
	recs, err := cfg.Schema.Validate(rows)
	require.NoError(t, err)
	return recs
}

func TestFilterEq(t *testing.T) {
	cfg, err := Preset("lists")
	require.NoError(t, err)
	recs := validated(t, cfg, []simfmt.Row{
		{"n": "10", "list_type": "MTF", "distribution": "zipf", "total_cost": "30"},
		{"n": "10", "list_type": "MTF", "distribution": "uniform", "total_cost": "50"},
	})
	out := FilterEq(recs, "distribution", "zipf")
	require.Len(t, out, 1)
	require.Equal(t, "zipf", out[0].Str("distribution"))
	require.Empty(t, FilterEq(recs, "distribution", "pareto"))
}

func TestFilterExtreme(t *testing.T) {
	cfg, err := Preset("caching")
	require.NoError(t, err)
	recs := validated(t, cfg, []simfmt.Row{
		{"n": "100", "k": "5", "cache_strategy": "LRU", "distribution": "zipf", "avg_cost": "1"},
		{"n": "100", "k": "20", "cache_strategy": "LRU", "distribution": "zipf", "avg_cost": "2"},
		{"n": "100", "k": "10", "cache_strategy": "LRU", "distribution": "zipf", "avg_cost": "3"},
		{"n": "200", "k": "40", "cache_strategy": "LRU", "distribution": "zipf", "avg_cost": "4"},
	})

	lowest, err := FilterExtreme(recs, "k", []string{"n", "cache_strategy"}, false)
	require.NoError(t, err)
	require.Len(t, lowest, 2)
	require.Equal(t, "5", lowest[0].Str("k"))
	require.Equal(t, "40", lowest[1].Str("k"))

	highest, err := FilterExtreme(recs, "k", []string{"n", "cache_strategy"}, true)
	require.NoError(t, err)
	require.Len(t, highest, 2)
	require.Equal(t, "20", highest[0].Str("k"))
}

func TestGenerateReplication(t *testing.T) {
	cfg, err := Preset("replication")
	require.NoError(t, err)
	var rows []simfmt.Row
	for _, d := range []string{"2", "4"} {
		for _, p := range []string{"0.1", "0.2", "0.5"} {
			rows = append(rows, simfmt.Row{
				"D": d, "p": p,
				"avg_cost":       "65536",
				"avg_max_copies": "3",
			})
		}
	}
	recs := validated(t, cfg, rows)

	dir := t.TempDir()
	paths, err := Generate(cfg, recs, dir, nil)
	require.NoError(t, err)

	for _, name := range []string{
		"cost_vs_p.png",
		"max_copies_vs_p.png",
		"cost_heatmap.png",
		"copies_heatmap.png",
		"summary.xlsx",
		"index.html",
	} {
		fi, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		require.NotZero(t, fi.Size(), name)
	}
	require.Len(t, paths, 6)
}

func TestGeneratePacking(t *testing.T) {
	cfg, err := Preset("packing")
	require.NoError(t, err)
	var rows []simfmt.Row
	for i, strat := range []string{"NextFit", "FirstFit", "BestFit"} {
		for j, exp := range []string{"e1", "e2", "e3"} {
			rows = append(rows, simfmt.Row{
				"distribution": "uniform",
				"strategy":     strat,
				"experiment":   exp,
				"bin_count":    simfmt.CanonNum(float64(10 + i + j)),
				"item_sum":     "7.5",
			})
		}
	}
	recs := validated(t, cfg, rows)

	dir := t.TempDir()
	_, err = Generate(cfg, recs, dir, nil)
	require.NoError(t, err)

	for _, name := range []string{
		"competitive_ratio_overall.png",
		"competitive_ratio_uniform.png",
		"mean_competitive_ratio.png",
		"bin_counts.png",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}
}

func TestGenerateFailsBeforeWriting(t *testing.T) {
	cfg, err := Preset("lists")
	require.NoError(t, err)
	// n = 0 makes the avg_cost derivation divide by zero.
	recs := validated(t, cfg, []simfmt.Row{
		{"n": "0", "list_type": "MTF", "distribution": "zipf", "total_cost": "30"},
	})

	dir := filepath.Join(t.TempDir(), "out")
	_, err = Generate(cfg, recs, dir, nil)
	require.Error(t, err)
	// Nothing was created, not even the directory.
	_, statErr := os.Stat(dir)
	require.True(t, os.IsNotExist(statErr))
}

func TestGenerateUnknownStrategyFails(t *testing.T) {
	cfg, err := Preset("packing")
	require.NoError(t, err)
	recs := validated(t, cfg, []simfmt.Row{
		{"distribution": "uniform", "strategy": "MagicFit", "experiment": "e1",
			"bin_count": "10", "item_sum": "7.5"},
	})
	dir := filepath.Join(t.TempDir(), "out")
	_, err = Generate(cfg, recs, dir, nil)
	require.Error(t, err)
	_, statErr := os.Stat(dir)
	require.True(t, os.IsNotExist(statErr))
}
