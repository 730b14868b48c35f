// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simchart turns aggregated simulation data into declarative
// chart specifications.
//
// A spec describes one chart completely (kind, data, axis and hue
// bindings, category ordering and colors, output identifier) without
// touching a rendering backend; package simplot consumes specs and
// emits image files. The Ordering and Palette types are built once per
// report-generation run and shared read-only across every spec built
// in that run, so a category keeps the same color and relative
// position on every chart.
package simchart

import (
	"fmt"

	"golang.org/x/simstat/simfmt"
)

// An UnknownCategoryError reports a category value observed in the
// data but absent from a caller-supplied explicit order.
type UnknownCategoryError struct {
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("category %q is not in the explicit order", e.Value)
}

// An UnboundHueError reports a data value whose category is not bound
// by the ordering supplied to a spec builder.
type UnboundHueError struct {
	Field, Value string
}

func (e *UnboundHueError) Error() string {
	return fmt.Sprintf("field %q: category %q is not bound by the supplied ordering", e.Field, e.Value)
}

// An Ordering is a fixed, explicit ordered list of category values for
// one dimension. It is immutable after construction and safe to share
// across spec builds.
type Ordering struct {
	values []string
	index  map[string]int
}

// NewOrdering builds an Ordering for the observed category values.
// With a nil explicit order, categories keep their first-appearance
// order in values. With an explicit order, every observed value must
// appear in it exactly once (otherwise *UnknownCategoryError) and the
// result follows the explicit order, dropping entries that were never
// observed.
func NewOrdering(values []string, explicit []string) (*Ordering, error) {
	observed := make(map[string]bool)
	var uniq []string
	for _, v := range values {
		if !observed[v] {
			observed[v] = true
			uniq = append(uniq, v)
		}
	}

	o := &Ordering{index: make(map[string]int)}
	if explicit == nil {
		o.values = uniq
	} else {
		seen := make(map[string]bool)
		for _, v := range explicit {
			if seen[v] {
				return nil, fmt.Errorf("duplicate category %q in explicit order", v)
			}
			seen[v] = true
			if observed[v] {
				o.values = append(o.values, v)
			}
		}
		for _, v := range uniq {
			if !seen[v] {
				return nil, &UnknownCategoryError{v}
			}
		}
	}
	for i, v := range o.values {
		o.index[v] = i
	}
	return o, nil
}

// Values returns the categories in order.
// The caller must not modify the returned slice.
func (o *Ordering) Values() []string { return o.values }

// Len returns the number of categories.
func (o *Ordering) Len() int { return len(o.values) }

// Index returns the position of category v.
func (o *Ordering) Index(v string) (int, bool) {
	i, ok := o.index[v]
	return i, ok
}

// Observed returns the distinct canonical values of the named field in
// first-appearance order, the default input to NewOrdering.
func Observed(records []simfmt.Record, field string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		v := r.Str(field)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
