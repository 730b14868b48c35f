// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"strings"

	"golang.org/x/simstat/simfmt"
	"golang.org/x/simstat/simproc"
)

// FilterEq keeps the records whose field has the given canonical
// string value.
func FilterEq(records []simfmt.Record, field, value string) []simfmt.Record {
	var out []simfmt.Record
	for _, r := range records {
		if r.Str(field) == value {
			out = append(out, r)
		}
	}
	return out
}

// FilterExtreme keeps, within each group spanned by the per fields,
// the records holding the group's minimum (or, if max, maximum) value
// of the numeric field. Records with a missing field value never
// match.
func FilterExtreme(records []simfmt.Record, field string, per []string, max bool) ([]simfmt.Record, error) {
	grouping, err := simproc.Partition(records, per)
	if err != nil {
		return nil, err
	}
	extreme := make(map[string]float64)
	for _, g := range grouping.Groups() {
		xs, err := g.Values(field, true)
		if err != nil {
			return nil, err
		}
		if len(xs) == 0 {
			continue
		}
		best := xs[0]
		for _, x := range xs[1:] {
			if (max && x > best) || (!max && x < best) {
				best = x
			}
		}
		extreme[strings.Join(g.Key, "\x00")] = best
	}

	var out []simfmt.Record
	key := make([]string, len(per))
	for _, r := range records {
		v, ok := r.Num(field)
		if !ok {
			continue
		}
		for i, f := range per {
			key[i] = r.Str(f)
		}
		if best, ok := extreme[strings.Join(key, "\x00")]; ok && v == best {
			out = append(out, r)
		}
	}
	return out, nil
}
