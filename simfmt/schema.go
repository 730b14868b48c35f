// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simfmt provides the record model for tabular simulation
// results and a reader and writer for the delimited files the
// simulators emit.
//
// A result table is described by a Schema: an ordered set of named
// fields, each either categorical or numeric. Categorical fields hold
// dimension values (strategy names, distribution names, sweep
// parameters) and numeric fields hold measures. Raw rows are checked
// against the schema once, up front; everything downstream (package
// simproc, package simchart) operates on typed Records and never
// re-parses values.
package simfmt

import (
	"fmt"
	"strconv"
)

// A Kind classifies a schema field.
type Kind int

const (
	// Categorical fields hold dimension values. They are compared
	// for exact equality and never aggregated.
	Categorical Kind = iota

	// Numeric fields hold measures or numeric sweep parameters.
	// Their values must parse as floats or be explicitly empty.
	Numeric
)

func (k Kind) String() string {
	switch k {
	case Categorical:
		return "categorical"
	case Numeric:
		return "numeric"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Field is a single named column of a schema.
type Field struct {
	Name string
	Kind Kind
}

// A Schema is an ordered set of declared fields. Schemas are immutable
// once constructed; Extend returns a new Schema rather than modifying
// the receiver, so Records built against an old Schema stay valid.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema constructs a Schema from the given fields.
// It panics if two fields share a name.
func NewSchema(fields ...Field) *Schema {
	s := &Schema{
		fields: append([]Field(nil), fields...),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if _, ok := s.index[f.Name]; ok {
			panic(fmt.Sprintf("duplicate schema field %q", f.Name))
		}
		s.index[f.Name] = i
	}
	return s
}

// Fields returns the declared fields in declaration order.
// The caller must not modify the returned slice.
func (s *Schema) Fields() []Field { return s.fields }

// Lookup returns the field with the given name and its index.
func (s *Schema) Lookup(name string) (Field, int, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, 0, false
	}
	return s.fields[i], i, true
}

// Extend returns a new Schema with f appended. It reports false if a
// field named f.Name is already declared.
func (s *Schema) Extend(f Field) (*Schema, bool) {
	if _, ok := s.index[f.Name]; ok {
		return nil, false
	}
	return NewSchema(append(append([]Field(nil), s.fields...), f)...), true
}

// A Value is one typed cell of a Record.
type Value struct {
	// Str is the categorical value. It is unset for numeric fields.
	Str string

	// Num is the numeric value. It is unset for categorical fields.
	Num float64

	// Missing marks a numeric cell that was explicitly empty in the
	// input. Dimension cells are never missing in a valid Record.
	Missing bool
}

// A Record is an immutable row of typed values bound to a Schema.
type Record struct {
	schema *Schema
	vals   []Value
}

// NewRecord binds vals to schema. It panics if the lengths disagree;
// it performs no validation beyond that, so it is intended for callers
// that construct values already known to be well typed (the validator
// and the derivation pass).
func NewRecord(schema *Schema, vals []Value) Record {
	if len(vals) != len(schema.fields) {
		panic(fmt.Sprintf("record has %d values for %d schema fields", len(vals), len(schema.fields)))
	}
	return Record{schema, vals}
}

// Schema returns the Schema this Record is bound to.
func (r Record) Schema() *Schema { return r.schema }

// Values returns a copy of the record's values in field order.
func (r Record) Values() []Value {
	return append([]Value(nil), r.vals...)
}

// Value returns the value of the named field.
func (r Record) Value(name string) (Value, bool) {
	i, ok := r.schema.index[name]
	if !ok {
		return Value{}, false
	}
	return r.vals[i], true
}

// Num returns the numeric value of the named field. It reports false
// if the field is not declared, not numeric, or missing in this record.
func (r Record) Num(name string) (float64, bool) {
	i, ok := r.schema.index[name]
	if !ok || r.schema.fields[i].Kind != Numeric {
		return 0, false
	}
	v := r.vals[i]
	if v.Missing {
		return 0, false
	}
	return v.Num, true
}

// Str returns the canonical string form of the named field's value,
// used for grouping and axis labels. Numeric values use the shortest
// float form so that "10" and "10.0" group together.
func (r Record) Str(name string) string {
	i, ok := r.schema.index[name]
	if !ok {
		return ""
	}
	f, v := r.schema.fields[i], r.vals[i]
	if f.Kind == Categorical {
		return v.Str
	}
	if v.Missing {
		return ""
	}
	return CanonNum(v.Num)
}

// CanonNum formats a float in its canonical grouping form.
func CanonNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// A SchemaViolation reports a raw row that does not conform to the
// declared schema.
type SchemaViolation struct {
	Index int    // row index in input order, starting at 0
	Field string // offending field
	Msg   string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("record %d: field %q: %s", e.Index, e.Field, e.Msg)
}

// A Row is a raw, untyped input row as handed over by a file reader:
// a mapping from field name to the raw cell text.
type Row map[string]string

// Validate checks every row against the schema and returns the typed
// records in input order. A row missing a declared field, with an
// empty categorical value, or with unparsable text in a numeric field
// fails with a *SchemaViolation identifying the row and field. An
// empty numeric cell becomes an explicitly missing Value.
func (s *Schema) Validate(rows []Row) ([]Record, error) {
	recs := make([]Record, 0, len(rows))
	for idx, row := range rows {
		vals := make([]Value, len(s.fields))
		for i, f := range s.fields {
			raw, ok := row[f.Name]
			if !ok {
				return nil, &SchemaViolation{idx, f.Name, "missing field"}
			}
			switch f.Kind {
			case Categorical:
				if raw == "" {
					return nil, &SchemaViolation{idx, f.Name, "empty dimension value"}
				}
				vals[i] = Value{Str: raw}
			case Numeric:
				if raw == "" {
					vals[i] = Value{Missing: true}
					continue
				}
				num, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, &SchemaViolation{idx, f.Name, fmt.Sprintf("non-numeric value %q", raw)}
				}
				vals[i] = Value{Num: num}
			}
		}
		recs = append(recs, Record{s, vals})
	}
	return recs, nil
}
