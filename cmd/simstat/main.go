// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Simstat turns raw simulation result tables into report directories
// of charts and summary tables.
//
// Usage:
//
//	simstat datasets
//	simstat report -d <dataset> [-o dir] <input.csv>
//	simstat report -d <dataset> [-o dir] -db <file> -run <id>
//	simstat ingest -d <dataset> -db <file> <input.csv>
//	simstat runs -db <file> [-d <dataset>]
//
// Inputs are delimited text files with a header row; each dataset
// preset fixes the expected schema and delimiter.
package main

import (
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"golang.org/x/simstat/report"
	"golang.org/x/simstat/simfmt"
	"golang.org/x/simstat/storage"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "simstat",
		Short:         "aggregate simulation results and generate charts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log report progress")
	root.AddCommand(datasetsCmd(), reportCmd(&verbose), ingestCmd(), runsCmd())
	return root
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func datasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "list the known dataset presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(report.Presets(), "\n"))
			return nil
		},
	}
}

func reportCmd(verbose *bool) *cobra.Command {
	var (
		dataset string
		outDir  string
		dbFile  string
		runID   int64
	)
	cmd := &cobra.Command{
		Use:   "report [input.csv]",
		Short: "generate a report directory from an input file or a stored run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := report.Preset(dataset)
			if err != nil {
				return err
			}
			logger, err := newLogger(*verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			var records []simfmt.Record
			switch {
			case runID != 0:
				if dbFile == "" {
					return fmt.Errorf("-run requires -db")
				}
				db, err := storage.Open("sqlite3", dbFile)
				if err != nil {
					return err
				}
				defer db.Close()
				records, err = db.ReadRun(cmd.Context(), runID, cfg.Schema)
				if err != nil {
					return err
				}
			case len(args) == 1:
				records, err = cfg.ReadInput(args[0])
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("need an input file or -run")
			}

			if outDir == "" {
				outDir = dataset
			}
			paths, err := report.Generate(cfg, records, outDir, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d files to %s\n", len(paths), outDir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "dataset preset (see simstat datasets)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: the dataset name)")
	cmd.Flags().StringVar(&dbFile, "db", "", "result database file")
	cmd.Flags().Int64Var(&runID, "run", 0, "report on a stored run instead of an input file")
	cmd.MarkFlagRequired("dataset")
	return cmd
}

func ingestCmd() *cobra.Command {
	var (
		dataset string
		dbFile  string
	)
	cmd := &cobra.Command{
		Use:   "ingest input.csv",
		Short: "validate an input file and store it as a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := report.Preset(dataset)
			if err != nil {
				return err
			}
			records, err := cfg.ReadInput(args[0])
			if err != nil {
				return err
			}
			db, err := storage.Open("sqlite3", dbFile)
			if err != nil {
				return err
			}
			defer db.Close()
			id, err := db.InsertRun(cmd.Context(), dataset, records)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %d: %d records\n", id, len(records))
			return nil
		},
	}
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "dataset preset (see simstat datasets)")
	cmd.Flags().StringVar(&dbFile, "db", "", "result database file")
	cmd.MarkFlagRequired("dataset")
	cmd.MarkFlagRequired("db")
	return cmd
}

func runsCmd() *cobra.Command {
	var (
		dataset string
		dbFile  string
	)
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := storage.Open("sqlite3", dbFile)
			if err != nil {
				return err
			}
			defer db.Close()
			runs, err := db.Runs(cmd.Context(), dataset)
			if err != nil {
				return err
			}
			for _, r := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n",
					r.ID, r.Dataset, r.Uploaded.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "only this dataset's runs")
	cmd.Flags().StringVar(&dbFile, "db", "", "result database file")
	cmd.MarkFlagRequired("db")
	return cmd
}
