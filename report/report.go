// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report turns a raw simulation result table into a report
// directory: chart PNGs, an index.html, and a summary workbook.
//
// A report run is all-or-nothing per stage: every chart spec is built
// and validated before any file is written, so a bad column binding
// or an unknown category fails the run without leaving a partial
// report behind.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"golang.org/x/simstat/simchart"
	"golang.org/x/simstat/simfmt"
	"golang.org/x/simstat/simplot"
	"golang.org/x/simstat/simproc"
)

// A Table is one aggregation published in the report: a sheet in the
// summary workbook and a table on the index page.
type Table struct {
	Name string
	Agg  *simproc.Aggregation
}

// A Config describes how to report on one dataset. Presets for the
// known datasets come from Preset; callers with their own data supply
// their own Config.
type Config struct {
	// Dataset names the dataset, and the report directory artifacts.
	Dataset string

	// Schema and Delimiter describe the raw input table.
	Schema    *simfmt.Schema
	Delimiter rune

	// Derivations are applied, in order, before charts or tables are
	// built.
	Derivations []simproc.DeriveRule

	// Charts builds every chart spec of the report from the derived
	// records. All specs are built before any is rendered.
	Charts func(records []simfmt.Record) ([]simchart.Spec, error)

	// Tables builds the published aggregations. Nil means the report
	// has no summary tables.
	Tables func(records []simfmt.Record) ([]Table, error)
}

// ReadInput reads and validates a raw input file against the config's
// schema and delimiter.
func (cfg *Config) ReadInput(path string) ([]simfmt.Record, error) {
	return simfmt.ReadFile(path, cfg.Delimiter, cfg.Schema)
}

// Generate derives, aggregates, and renders one report into outDir,
// creating it if needed. It returns the paths of the written files.
func Generate(cfg *Config, records []simfmt.Record, outDir string, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.With(zap.String("dataset", cfg.Dataset))

	records, err := simproc.Derive(records, cfg.Derivations, nil)
	if err != nil {
		return nil, fmt.Errorf("deriving metrics: %w", err)
	}
	log.Info("derived metrics",
		zap.Int("records", len(records)),
		zap.Int("rules", len(cfg.Derivations)))

	specs, err := cfg.Charts(records)
	if err != nil {
		return nil, fmt.Errorf("building chart specs: %w", err)
	}
	var tables []Table
	if cfg.Tables != nil {
		tables, err = cfg.Tables(records)
		if err != nil {
			return nil, fmt.Errorf("building tables: %w", err)
		}
	}
	log.Info("built specs", zap.Int("charts", len(specs)), zap.Int("tables", len(tables)))

	if err := os.MkdirAll(outDir, 0o777); err != nil {
		return nil, err
	}

	r := &simplot.Renderer{Dir: outDir}
	paths, err := r.RenderAll(specs)
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		log.Info("wrote chart", zap.String("path", p))
	}

	xlsxPath := filepath.Join(outDir, "summary.xlsx")
	if err := writeWorkbook(xlsxPath, tables); err != nil {
		return nil, fmt.Errorf("writing %s: %w", xlsxPath, err)
	}
	paths = append(paths, xlsxPath)

	htmlPath := filepath.Join(outDir, "index.html")
	if err := writeIndex(htmlPath, cfg.Dataset, specs, tables); err != nil {
		return nil, fmt.Errorf("writing %s: %w", htmlPath, err)
	}
	paths = append(paths, htmlPath)

	log.Info("report complete", zap.String("dir", outDir), zap.Int("files", len(paths)))
	return paths, nil
}
