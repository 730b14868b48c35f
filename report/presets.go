// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/simstat/simchart"
	"golang.org/x/simstat/simfmt"
	"golang.org/x/simstat/simproc"
)

// presets holds the report configurations of the known simulation
// datasets.
var presets = map[string]func() *Config{
	"lists":       listsConfig,
	"caching":     cachingConfig,
	"packing":     packingConfig,
	"mts":         mtsConfig,
	"replication": replicationConfig,
}

// Preset returns the configuration of a named dataset.
func Preset(name string) (*Config, error) {
	mk, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown dataset %q (have %s)", name, strings.Join(Presets(), ", "))
	}
	return mk(), nil
}

// Presets lists the known dataset names, sorted.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// idPart makes a category value safe for use in an output file name.
func idPart(s string) string {
	return strings.NewReplacer(" ", "_", "/", "_").Replace(s)
}

func observedOrdering(records []simfmt.Record, field string) *simchart.Ordering {
	ord, err := simchart.NewOrdering(simchart.Observed(records, field), nil)
	if err != nil {
		// Unreachable without an explicit order.
		panic(err)
	}
	return ord
}

func observedPalette(records []simfmt.Record, field, scheme string) (*simchart.Palette, error) {
	return simchart.Qualitative(observedOrdering(records, field), scheme)
}

// lists reports on self-organizing list simulations: per-operation
// access cost of move-to-front style list disciplines over request
// distributions, as a function of list length.
func listsConfig() *Config {
	return &Config{
		Dataset: "lists",
		Schema: simfmt.NewSchema(
			simfmt.Field{Name: "n", Kind: simfmt.Numeric},
			simfmt.Field{Name: "list_type", Kind: simfmt.Categorical},
			simfmt.Field{Name: "distribution", Kind: simfmt.Categorical},
			simfmt.Field{Name: "total_cost", Kind: simfmt.Numeric},
		),
		Delimiter: ';',
		Derivations: []simproc.DeriveRule{
			simproc.Ratio("avg_cost", "total_cost", "n"),
		},
		Charts: listsCharts,
		Tables: func(records []simfmt.Record) ([]Table, error) {
			agg, err := simproc.Aggregate(records,
				[]string{"distribution", "list_type", "n"},
				[]string{"avg_cost"}, simproc.Mean, nil)
			if err != nil {
				return nil, err
			}
			return []Table{{"mean_costs", agg}}, nil
		},
	}
}

func listsCharts(records []simfmt.Record) ([]simchart.Spec, error) {
	var specs []simchart.Spec
	for _, dist := range simchart.Observed(records, "distribution") {
		recs := FilterEq(records, "distribution", dist)
		pal, err := observedPalette(recs, "list_type", "Set1")
		if err != nil {
			return nil, err
		}
		agg, err := simproc.Aggregate(recs,
			[]string{"list_type", "n"}, []string{"avg_cost"}, simproc.Mean, nil)
		if err != nil {
			return nil, err
		}
		line, err := simchart.NewLine(agg, simchart.LineConfig{
			Title:  "Average access cost, " + dist + " distribution",
			XLabel: "n", YLabel: "average cost",
			ID: "distribution_" + idPart(dist),
			X:  "n", Y: "avg_cost",
			Hue: "list_type", Palette: pal,
		})
		if err != nil {
			return nil, err
		}
		specs = append(specs, line)
	}
	return specs, nil
}

// caching reports on paging simulations: cache strategies over request
// distributions, varying both the cache size k and the universe
// size n.
func cachingConfig() *Config {
	return &Config{
		Dataset: "caching",
		Schema: simfmt.NewSchema(
			simfmt.Field{Name: "n", Kind: simfmt.Numeric},
			simfmt.Field{Name: "k", Kind: simfmt.Numeric},
			simfmt.Field{Name: "cache_strategy", Kind: simfmt.Categorical},
			simfmt.Field{Name: "distribution", Kind: simfmt.Categorical},
			simfmt.Field{Name: "avg_cost", Kind: simfmt.Numeric},
		),
		Delimiter: ';',
		Charts:    cachingCharts,
		Tables: func(records []simfmt.Record) ([]Table, error) {
			agg, err := simproc.Aggregate(records,
				[]string{"distribution", "cache_strategy", "n", "k"},
				[]string{"avg_cost"}, simproc.Mean, nil)
			if err != nil {
				return nil, err
			}
			return []Table{{"mean_costs", agg}}, nil
		},
	}
}

func cachingCharts(records []simfmt.Record) ([]simchart.Spec, error) {
	var specs []simchart.Spec

	for _, dist := range simchart.Observed(records, "distribution") {
		recs := FilterEq(records, "distribution", dist)

		lowest, err := FilterExtreme(recs, "k", []string{"n", "cache_strategy"}, false)
		if err != nil {
			return nil, err
		}
		highest, err := FilterExtreme(recs, "k", []string{"n", "cache_strategy"}, true)
		if err != nil {
			return nil, err
		}
		variants := []struct {
			id   string
			recs []simfmt.Record
		}{
			{"costs_" + idPart(dist), recs},
			{"costs_lowest_k_" + idPart(dist), lowest},
			{"costs_highest_k_" + idPart(dist), highest},
		}
		for _, v := range variants {
			spec, err := cachingFacet(v.id, dist, v.recs)
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		}
	}

	// Cost as a function of cache size at fixed universe sizes.
	for _, n := range []string{"100", "20"} {
		recs := FilterEq(records, "n", n)
		if len(recs) == 0 {
			continue
		}
		pal, err := observedPalette(recs, "cache_strategy", "Set1")
		if err != nil {
			return nil, err
		}
		var panels []simchart.FacetPanel
		for _, dist := range simchart.Observed(recs, "distribution") {
			agg, err := simproc.Aggregate(FilterEq(recs, "distribution", dist),
				[]string{"cache_strategy", "k"}, []string{"avg_cost"}, simproc.Mean, nil)
			if err != nil {
				return nil, err
			}
			line, err := simchart.NewLine(agg, simchart.LineConfig{
				XLabel: "k", YLabel: "average cost",
				ID: "cost_vs_k_n" + n + "_" + idPart(dist),
				X:  "k", Y: "avg_cost",
				Hue: "cache_strategy", Palette: pal,
			})
			if err != nil {
				return nil, err
			}
			panels = append(panels, simchart.FacetPanel{Value: dist, Plot: line})
		}
		spec, err := simchart.NewFacetWrap(
			"Average cost vs cache size, n = "+n, "cost_vs_k_n"+n,
			"distribution", observedOrdering(recs, "distribution"), 2, panels)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// cachingFacet builds one per-distribution chart: a panel per cache
// strategy, each plotting mean cost against n with one line per k.
func cachingFacet(id, dist string, recs []simfmt.Record) (simchart.Spec, error) {
	kPal, err := observedPalette(recs, "k", "Set2")
	if err != nil {
		return nil, err
	}
	var panels []simchart.FacetPanel
	for _, strat := range simchart.Observed(recs, "cache_strategy") {
		agg, err := simproc.Aggregate(FilterEq(recs, "cache_strategy", strat),
			[]string{"k", "n"}, []string{"avg_cost"}, simproc.Mean, nil)
		if err != nil {
			return nil, err
		}
		line, err := simchart.NewLine(agg, simchart.LineConfig{
			XLabel: "n", YLabel: "average cost",
			ID: id + "_" + idPart(strat),
			X:  "n", Y: "avg_cost",
			Hue: "k", Palette: kPal,
		})
		if err != nil {
			return nil, err
		}
		panels = append(panels, simchart.FacetPanel{Value: strat, Plot: line})
	}
	return simchart.NewFacetWrap(
		"Average cost, "+dist+" distribution", id,
		"cache_strategy", observedOrdering(recs, "cache_strategy"), 2, panels)
}

// packingStrategies is the fixed display order of the bin packing
// strategies.
var packingStrategies = []string{"NextFit", "RandomFit", "FirstFit", "BestFit", "WorstFit"}

// packing reports on online bin packing simulations, judged by the
// competitive ratio against the fractional optimum.
func packingConfig() *Config {
	return &Config{
		Dataset: "packing",
		Schema: simfmt.NewSchema(
			simfmt.Field{Name: "distribution", Kind: simfmt.Categorical},
			simfmt.Field{Name: "strategy", Kind: simfmt.Categorical},
			simfmt.Field{Name: "experiment", Kind: simfmt.Categorical},
			simfmt.Field{Name: "bin_count", Kind: simfmt.Numeric},
			simfmt.Field{Name: "item_sum", Kind: simfmt.Numeric},
		),
		Delimiter: ';',
		Derivations: []simproc.DeriveRule{
			simproc.Ceil("optimum", "item_sum"),
			simproc.Ratio("competitive_ratio", "bin_count", "optimum"),
		},
		Charts: packingCharts,
		Tables: func(records []simfmt.Record) ([]Table, error) {
			var tables []Table
			for _, r := range []simproc.Reducer{simproc.Mean, simproc.Median} {
				agg, err := simproc.Aggregate(records,
					[]string{"distribution", "strategy"},
					[]string{"competitive_ratio"}, r, nil)
				if err != nil {
					return nil, err
				}
				tables = append(tables, Table{r.String() + "_ratio", agg})
			}
			return tables, nil
		},
	}
}

func packingCharts(records []simfmt.Record) ([]simchart.Spec, error) {
	ord, err := simchart.NewOrdering(simchart.Observed(records, "strategy"), packingStrategies)
	if err != nil {
		return nil, err
	}
	pal, err := simchart.Qualitative(ord, "Set2")
	if err != nil {
		return nil, err
	}

	var specs []simchart.Spec

	box, err := simchart.NewBox(records, simchart.BoxConfig{
		Title:  "Competitive ratio by strategy",
		XLabel: "strategy", YLabel: "competitive ratio",
		ID: "competitive_ratio_overall",
		X:  "strategy", Y: "competitive_ratio",
		Palette: pal,
	})
	if err != nil {
		return nil, err
	}
	specs = append(specs, box)

	for _, dist := range simchart.Observed(records, "distribution") {
		box, err := simchart.NewBox(FilterEq(records, "distribution", dist), simchart.BoxConfig{
			Title:  "Competitive ratio, " + dist + " distribution",
			XLabel: "strategy", YLabel: "competitive ratio",
			ID: "competitive_ratio_" + idPart(dist),
			X:  "strategy", Y: "competitive_ratio",
			Palette: pal,
		})
		if err != nil {
			return nil, err
		}
		specs = append(specs, box)
	}

	mean, err := simproc.Aggregate(records,
		[]string{"strategy"}, []string{"competitive_ratio"}, simproc.Mean, nil)
	if err != nil {
		return nil, err
	}
	bar, err := simchart.NewBar(mean, simchart.BarConfig{
		Title:  "Mean competitive ratio",
		XLabel: "strategy", YLabel: "mean competitive ratio",
		ID: "mean_competitive_ratio",
		X:  "strategy", Y: "competitive_ratio", XOrder: ord,
		Palette: pal,
	})
	if err != nil {
		return nil, err
	}
	specs = append(specs, bar)

	// Raw bin counts, one boxplot panel per distribution.
	var panels []simchart.FacetPanel
	for _, dist := range simchart.Observed(records, "distribution") {
		box, err := simchart.NewBox(FilterEq(records, "distribution", dist), simchart.BoxConfig{
			XLabel: "strategy", YLabel: "bins used",
			ID: "bin_counts_" + idPart(dist),
			X:  "strategy", Y: "bin_count",
			Palette: pal,
		})
		if err != nil {
			return nil, err
		}
		panels = append(panels, simchart.FacetPanel{Value: dist, Plot: box})
	}
	facet, err := simchart.NewFacetWrap("Bins used", "bin_counts",
		"distribution", observedOrdering(records, "distribution"), 2, panels)
	if err != nil {
		return nil, err
	}
	specs = append(specs, facet)

	return specs, nil
}

// mts reports on metrical task system simulations: algorithm cost on
// task graphs over request distributions and locality parameter D.
func mtsConfig() *Config {
	return &Config{
		Dataset: "mts",
		Schema: simfmt.NewSchema(
			simfmt.Field{Name: "Graph", Kind: simfmt.Categorical},
			simfmt.Field{Name: "Distribution", Kind: simfmt.Categorical},
			simfmt.Field{Name: "D", Kind: simfmt.Numeric},
			simfmt.Field{Name: "Algorithm", Kind: simfmt.Categorical},
			simfmt.Field{Name: "Cost", Kind: simfmt.Numeric},
		),
		Delimiter: ',',
		Charts:    mtsCharts,
		Tables: func(records []simfmt.Record) ([]Table, error) {
			var tables []Table
			for _, r := range []simproc.Reducer{simproc.Mean, simproc.Std} {
				agg, err := simproc.Aggregate(records,
					[]string{"Algorithm", "Distribution", "D"},
					[]string{"Cost"}, r, nil)
				if err != nil {
					return nil, err
				}
				tables = append(tables, Table{r.String() + "_cost", agg})
			}
			return tables, nil
		},
	}
}

func mtsCharts(records []simfmt.Record) ([]simchart.Spec, error) {
	var specs []simchart.Spec

	// Mean cost bars under every rotation of the three categorical
	// dimensions: facet panel, x position, and hue.
	rotations := []struct{ facet, x, hue string }{
		{"Graph", "Distribution", "Algorithm"},
		{"Distribution", "Graph", "Algorithm"},
		{"Algorithm", "Distribution", "Graph"},
	}
	for _, rot := range rotations {
		pal, err := observedPalette(records, rot.hue, "Set1")
		if err != nil {
			return nil, err
		}
		xOrd := observedOrdering(records, rot.x)
		id := "bars_by_" + strings.ToLower(rot.facet)

		var panels []simchart.FacetPanel
		for _, fv := range simchart.Observed(records, rot.facet) {
			recs := FilterEq(records, rot.facet, fv)
			mean, err := simproc.Aggregate(recs,
				[]string{rot.x, rot.hue}, []string{"Cost"}, simproc.Mean, nil)
			if err != nil {
				return nil, err
			}
			std, err := simproc.Aggregate(recs,
				[]string{rot.x, rot.hue}, []string{"Cost"}, simproc.Std, nil)
			if err != nil {
				return nil, err
			}
			bar, err := simchart.NewBar(mean, simchart.BarConfig{
				XLabel: rot.x, YLabel: "mean cost",
				ID: id + "_" + idPart(fv),
				X:  rot.x, Y: "Cost", XOrder: xOrd,
				Hue: rot.hue, Palette: pal,
				Spread: std,
			})
			if err != nil {
				return nil, err
			}
			panels = append(panels, simchart.FacetPanel{Value: fv, Plot: bar})
		}
		facet, err := simchart.NewFacetWrap("Mean cost by "+rot.facet, id,
			rot.facet, observedOrdering(records, rot.facet), 2, panels)
		if err != nil {
			return nil, err
		}
		specs = append(specs, facet)
	}

	// Cost as a function of D: a facet grid over (Algorithm,
	// Distribution), and each panel also published standalone.
	algOrd := observedOrdering(records, "Algorithm")
	distOrd := observedOrdering(records, "Distribution")
	var panels []simchart.GridPanel
	for _, alg := range algOrd.Values() {
		for _, dist := range distOrd.Values() {
			recs := FilterEq(FilterEq(records, "Algorithm", alg), "Distribution", dist)
			if len(recs) == 0 {
				continue
			}
			mean, err := simproc.Aggregate(recs, []string{"D"}, []string{"Cost"}, simproc.Mean, nil)
			if err != nil {
				return nil, err
			}
			std, err := simproc.Aggregate(recs, []string{"D"}, []string{"Cost"}, simproc.Std, nil)
			if err != nil {
				return nil, err
			}
			line, err := simchart.NewLine(mean, simchart.LineConfig{
				Title:  alg + ", " + dist,
				XLabel: "D", YLabel: "mean cost",
				ID: "cost_vs_D_" + idPart(alg) + "_" + idPart(dist),
				X:  "D", Y: "Cost",
				Spread: std,
			})
			if err != nil {
				return nil, err
			}
			specs = append(specs, line)
			panels = append(panels, simchart.GridPanel{Row: alg, Col: dist, Plot: line})
		}
	}
	grid, err := simchart.NewFacetGrid("Cost vs D", "cost_vs_D",
		"Algorithm", "Distribution", algOrd, distOrd, panels)
	if err != nil {
		return nil, err
	}
	specs = append(specs, grid)

	return specs, nil
}

// replicationRequests is the fixed request count of one replication
// simulation run, used to normalize total cost to cost per request.
const replicationRequests = 65536

// replication reports on data replication simulations over the
// replication factor D and the request probability p.
func replicationConfig() *Config {
	return &Config{
		Dataset: "replication",
		Schema: simfmt.NewSchema(
			simfmt.Field{Name: "D", Kind: simfmt.Numeric},
			simfmt.Field{Name: "p", Kind: simfmt.Numeric},
			simfmt.Field{Name: "avg_cost", Kind: simfmt.Numeric},
			simfmt.Field{Name: "avg_max_copies", Kind: simfmt.Numeric},
		),
		Delimiter: ',',
		Derivations: []simproc.DeriveRule{
			simproc.Scale("avg_cost_per_request", "avg_cost", replicationRequests),
		},
		Charts: replicationCharts,
		Tables: func(records []simfmt.Record) ([]Table, error) {
			agg, err := simproc.Aggregate(records,
				[]string{"D", "p"},
				[]string{"avg_cost_per_request", "avg_max_copies"}, simproc.Mean, nil)
			if err != nil {
				return nil, err
			}
			return []Table{{"mean_by_D_p", agg}}, nil
		},
	}
}

func replicationCharts(records []simfmt.Record) ([]simchart.Spec, error) {
	pal, err := observedPalette(records, "D", "Set1")
	if err != nil {
		return nil, err
	}
	agg, err := simproc.Aggregate(records,
		[]string{"D", "p"},
		[]string{"avg_cost_per_request", "avg_max_copies"}, simproc.Mean, nil)
	if err != nil {
		return nil, err
	}

	var specs []simchart.Spec
	lines := []struct {
		id, title, y string
	}{
		{"cost_vs_p", "Cost per request vs p", "avg_cost_per_request"},
		{"max_copies_vs_p", "Maximum copies vs p", "avg_max_copies"},
	}
	for _, l := range lines {
		line, err := simchart.NewLine(agg, simchart.LineConfig{
			Title:  l.title,
			XLabel: "p", YLabel: l.y,
			ID: l.id,
			X:  "p", Y: l.y,
			Hue: "D", Palette: pal,
		})
		if err != nil {
			return nil, err
		}
		specs = append(specs, line)
	}

	heatmaps := []struct {
		id, title, value, scheme, format string
	}{
		{"cost_heatmap", "Cost per request", "avg_cost_per_request", "Blues", "%.6f"},
		{"copies_heatmap", "Maximum copies", "avg_max_copies", "Greens", "%.1f"},
	}
	for _, h := range heatmaps {
		m, err := simproc.Pivot(agg, "D", "p", h.value)
		if err != nil {
			return nil, err
		}
		hm, err := simchart.NewHeatmap(m, simchart.HeatmapConfig{
			Title:  h.title,
			XLabel: "p", YLabel: "D",
			ID:       h.id,
			Scheme:   h.scheme,
			AnnotFmt: h.format,
		})
		if err != nil {
			return nil, err
		}
		specs = append(specs, hm)
	}
	return specs, nil
}
