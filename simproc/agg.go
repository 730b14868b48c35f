// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simproc

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
	"golang.org/x/simstat/simfmt"
)

// A Reducer is a statistical function collapsing the values of one
// measure within one group into a single number.
type Reducer int

const (
	Mean Reducer = iota
	Std
	Median
	Min
	Max
)

func (r Reducer) String() string {
	switch r {
	case Mean:
		return "mean"
	case Std:
		return "std"
	case Median:
		return "median"
	case Min:
		return "min"
	case Max:
		return "max"
	}
	return fmt.Sprintf("Reducer(%d)", int(r))
}

// Reduce applies the reducer to xs. It panics on an empty slice;
// aggregation never produces empty groups.
func (r Reducer) Reduce(xs []float64) float64 {
	if len(xs) == 0 {
		panic("reducing an empty sample")
	}
	switch r {
	case Mean:
		return stats.Mean(xs)
	case Std:
		return stats.Sample{Xs: xs}.StdDev()
	case Median:
		return stats.Sample{Xs: xs}.Quantile(0.5)
	case Min:
		lo, _ := stats.Bounds(xs)
		return lo
	case Max:
		_, hi := stats.Bounds(xs)
		return hi
	}
	panic("unknown reducer " + r.String())
}

// A MissingMeasureError reports a group in which a requested measure
// field is absent and the caller did not opt into skipping.
type MissingMeasureError struct {
	Field string
	Key   []string // group key values; empty for the global group
}

func (e *MissingMeasureError) Error() string {
	if len(e.Key) == 0 {
		return fmt.Sprintf("measure %q missing from input records", e.Field)
	}
	return fmt.Sprintf("group %s: measure %q missing from some records", keyString(e.Key), e.Field)
}

// A Group is one partition of the input records, identified by the
// tuple of canonical dimension values at the group fields.
type Group struct {
	// Key holds the canonical value of each group field, aligned
	// with the Grouping's GroupFields. It is empty for the single
	// global group of an ungrouped partition.
	Key []string

	rows []simfmt.Record
}

// Len returns the number of records in the group.
func (g *Group) Len() int { return len(g.rows) }

// Records returns the group's records in input order.
// The caller must not modify the returned slice.
func (g *Group) Records() []simfmt.Record { return g.rows }

// Values extracts the values of the named numeric measure from the
// group's records. If skipMissing is set, records without the measure
// are excluded; otherwise any absent value fails with a
// *MissingMeasureError.
func (g *Group) Values(measure string, skipMissing bool) ([]float64, error) {
	xs := make([]float64, 0, len(g.rows))
	for _, r := range g.rows {
		v, ok := r.Num(measure)
		if !ok {
			if skipMissing {
				continue
			}
			return nil, &MissingMeasureError{measure, g.Key}
		}
		xs = append(xs, v)
	}
	return xs, nil
}

// A Grouping is the result of partitioning records by a tuple of
// dimension fields. Groups appear in first-occurrence order of their
// key, not sorted; callers that want a different order sort afterward.
type Grouping struct {
	GroupFields []string
	groups      []*Group
}

// Groups returns the partitions in first-occurrence order.
func (g *Grouping) Groups() []*Group { return g.groups }

// Partition splits records into groups keyed by the canonical values
// of groupFields. With no group fields, all records form one global
// group. Empty input yields an empty Grouping. Group keys are unique
// within the result by construction.
func Partition(records []simfmt.Record, groupFields []string) (*Grouping, error) {
	out := &Grouping{GroupFields: groupFields}
	if len(records) == 0 {
		return out, nil
	}
	schema := records[0].Schema()
	for _, f := range groupFields {
		if _, _, ok := schema.Lookup(f); !ok {
			return nil, fmt.Errorf("unknown group field %q", f)
		}
	}

	index := make(map[string]*Group)
	for _, r := range records {
		key := make([]string, len(groupFields))
		for i, f := range groupFields {
			key[i] = r.Str(f)
		}
		// Join with NUL, which cannot appear in a delimited field.
		ik := ""
		for _, k := range key {
			ik += k + "\x00"
		}
		grp, ok := index[ik]
		if !ok {
			grp = &Group{Key: key}
			index[ik] = grp
			out.groups = append(out.groups, grp)
		}
		grp.rows = append(grp.rows, r)
	}
	return out, nil
}

// An AggregatedRecord is one group key plus its reduced measures.
// It is computed fresh per Aggregate call and never mutated.
type AggregatedRecord struct {
	// Group holds the canonical group-field values, aligned with
	// the Aggregation's GroupFields.
	Group []string

	// Values holds one reduced value per requested measure, aligned
	// with the Aggregation's Measures.
	Values []float64

	// N is the number of records in the group.
	N int
}

// An Aggregation is the complete result of one Aggregate call.
type Aggregation struct {
	GroupFields []string
	Measures    []string
	Reducer     Reducer
	Records     []AggregatedRecord
}

// ColumnName returns the output column name for measure i, in the
// "reducer measure" form used in summary tables.
func (a *Aggregation) ColumnName(i int) string {
	return a.Reducer.String() + " " + a.Measures[i]
}

// Dim returns the value of the named group field in rec.
func (a *Aggregation) Dim(rec AggregatedRecord, field string) (string, bool) {
	for i, f := range a.GroupFields {
		if f == field {
			return rec.Group[i], true
		}
	}
	return "", false
}

// Measure returns the reduced value of the named measure in rec.
func (a *Aggregation) Measure(rec AggregatedRecord, measure string) (float64, bool) {
	for i, m := range a.Measures {
		if m == measure {
			return rec.Values[i], true
		}
	}
	return 0, false
}

// AggOptions configures an Aggregate call.
type AggOptions struct {
	// SkipMissing excludes records without a requested measure from
	// that group's reduction instead of failing.
	SkipMissing bool
}

// Aggregate partitions records by groupFields and reduces each
// requested measure independently within each partition. Partitions
// appear in first-occurrence order. An empty input returns an empty
// Aggregation, not an error. With no group fields the result is a
// single global reduction.
func Aggregate(records []simfmt.Record, groupFields, measures []string, reducer Reducer, opts *AggOptions) (*Aggregation, error) {
	if opts == nil {
		opts = &AggOptions{}
	}
	grouping, err := Partition(records, groupFields)
	if err != nil {
		return nil, err
	}
	out := &Aggregation{
		GroupFields: groupFields,
		Measures:    measures,
		Reducer:     reducer,
	}
	for _, g := range grouping.Groups() {
		rec := AggregatedRecord{
			Group:  g.Key,
			Values: make([]float64, len(measures)),
			N:      g.Len(),
		}
		for i, m := range measures {
			xs, err := g.Values(m, opts.SkipMissing)
			if err != nil {
				return nil, err
			}
			if len(xs) == 0 {
				return nil, &MissingMeasureError{m, g.Key}
			}
			rec.Values[i] = reducer.Reduce(xs)
		}
		out.Records = append(out.Records, rec)
	}
	return out, nil
}
