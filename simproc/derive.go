// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simproc implements the processing stages between validated
// records and chart construction: metric derivation, group-by
// aggregation with statistical reducers, and pivoting aggregated data
// into matrix form.
//
// All stages are pure transformations over in-memory data. They fail
// fast: the first record or group that violates a contract aborts the
// stage with a typed error carrying enough context (record index,
// group key, field name) to fix the input or the configuration.
package simproc

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/simstat/simfmt"
)

// A DeriveRule computes one new numeric field from existing numeric
// fields. Rules are applied in order, so a later rule may consume the
// output of an earlier one.
type DeriveRule struct {
	// Output is the name of the field the rule appends. It must not
	// collide with a declared or previously derived field.
	Output string

	// Inputs are the numeric fields the rule reads, in the order
	// they are passed to Func.
	Inputs []string

	// Func computes the derived value. It must be pure. Returning
	// an error fails the record (and, by default, the whole pass).
	Func func(args []float64) (float64, error)
}

// ErrDivideByZero is returned by ratio rules when the denominator
// field is zero. Derivation never produces an infinity silently.
var ErrDivideByZero = errors.New("division by zero")

// Ratio returns a rule computing num / den. A zero denominator fails
// with ErrDivideByZero wrapped in a *DomainError.
func Ratio(output, num, den string) DeriveRule {
	return DeriveRule{
		Output: output,
		Inputs: []string{num, den},
		Func: func(args []float64) (float64, error) {
			if args[1] == 0 {
				return 0, ErrDivideByZero
			}
			return args[0] / args[1], nil
		},
	}
}

// Ceil returns a rule computing the ceiling of in.
func Ceil(output, in string) DeriveRule {
	return DeriveRule{
		Output: output,
		Inputs: []string{in},
		Func: func(args []float64) (float64, error) {
			return math.Ceil(args[0]), nil
		},
	}
}

// Scale returns a rule computing in / divisor for a constant divisor.
// It panics if divisor is zero, since that is a configuration bug
// rather than a data error.
func Scale(output, in string, divisor float64) DeriveRule {
	if divisor == 0 {
		panic("zero divisor in Scale rule")
	}
	return DeriveRule{
		Output: output,
		Inputs: []string{in},
		Func: func(args []float64) (float64, error) {
			return args[0] / divisor, nil
		},
	}
}

// A NameConflictError reports a derivation rule whose output field is
// already declared.
type NameConflictError struct {
	Output string
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf("derived field %q conflicts with an existing field", e.Output)
}

// An InputMissingError reports a derivation rule that reads a field
// not present (or not numeric) in the schema.
type InputMissingError struct {
	Rule  string // output name of the rule
	Input string
}

func (e *InputMissingError) Error() string {
	return fmt.Sprintf("derivation %q: input field %q is not a declared numeric field", e.Rule, e.Input)
}

// A DomainError reports a record on which a derivation rule is
// undefined, such as a division by zero or a missing input value.
type DomainError struct {
	Rule  string
	Index int // record index
	Err   error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("derivation %q: record %d: %v", e.Rule, e.Index, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

var errMissingInput = errors.New("input value missing")

// DeriveOptions configures a derivation pass.
type DeriveOptions struct {
	// SkipFailed drops records on which a rule is undefined instead
	// of aborting the pass. The default (false) aborts: derived data
	// must be complete or the run must stop.
	SkipFailed bool
}

// Derive applies rules in order to records, appending each rule's
// output field to every record, and returns the extended records in
// input order. The input records are not modified. All records must
// share one Schema. An empty input yields an empty output.
func Derive(records []simfmt.Record, rules []DeriveRule, opts *DeriveOptions) ([]simfmt.Record, error) {
	if opts == nil {
		opts = &DeriveOptions{}
	}
	if len(records) == 0 {
		return nil, nil
	}
	schema := records[0].Schema()
	out := append([]simfmt.Record(nil), records...)

	for _, rule := range rules {
		ext, ok := schema.Extend(simfmt.Field{Name: rule.Output, Kind: simfmt.Numeric})
		if !ok {
			return nil, &NameConflictError{rule.Output}
		}
		for _, in := range rule.Inputs {
			f, _, ok := schema.Lookup(in)
			if !ok || f.Kind != simfmt.Numeric {
				return nil, &InputMissingError{rule.Output, in}
			}
		}

		next := out[:0:0]
		args := make([]float64, len(rule.Inputs))
		for idx, r := range out {
			bad := false
			for i, in := range rule.Inputs {
				v, ok := r.Num(in)
				if !ok {
					if opts.SkipFailed {
						bad = true
						break
					}
					return nil, &DomainError{rule.Output, idx, errMissingInput}
				}
				args[i] = v
			}
			if bad {
				continue
			}
			v, err := rule.Func(args)
			if err != nil {
				if opts.SkipFailed {
					continue
				}
				return nil, &DomainError{rule.Output, idx, err}
			}
			next = append(next, simfmt.NewRecord(ext, append(r.Values(), simfmt.Value{Num: v})))
		}
		out = next
		schema = ext
	}
	return out, nil
}

// keyString joins a group key tuple for error messages.
func keyString(key []string) string {
	return strings.Join(key, "/")
}
