// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package guard implements range checks on inputs and outputs of pedotransfer functions,
// the error taxonomy shared by all packages and a collector of warnings
package guard

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// UnknownOptionError is returned when a PTF, model or policy key is not recognised.
// Nothing can be computed in this case.
type UnknownOptionError struct {
	Option string // name of option; e.g. "ptf", "rawmode"
	Value  string // rejected value
}

func (o *UnknownOptionError) Error() string {
	return io.Sf("%s option %q is not recognised", o.Option, o.Value)
}

// MissingFieldError is returned before any record is processed when the input source lacks
// a field required by the selected option
type MissingFieldError struct {
	Field  string // name of missing field; e.g. "Clay"
	Option string // option requiring the field
}

func (o *MissingFieldError) Error() string {
	if o.Option == "" {
		return io.Sf("field %q not found in the input", o.Field)
	}
	return io.Sf("field %q required by %q not found in the input", o.Field, o.Option)
}

// DomainError signals that a per-record value falls outside the mathematical domain of a
// formula; e.g. log of a non-positive number or negative base with fractional exponent
type DomainError struct {
	Record   string  // record identifier; may be empty when raised below the record loop
	Quantity string  // name of quantity; e.g. "Clay"
	Value    float64 // offending value
	Reason   string  // short description; e.g. "log of non-positive value"
}

func (o *DomainError) Error() string {
	if o.Record == "" {
		return io.Sf("%s = %g: %s", o.Quantity, o.Value, o.Reason)
	}
	return io.Sf("record %q: %s = %g: %s", o.Record, o.Quantity, o.Value, o.Reason)
}

// Domain returns a DomainError without record information
func Domain(quantity string, value float64, reason string) error {
	return &DomainError{Quantity: quantity, Value: value, Reason: reason}
}

// Log returns ln(x) or a DomainError if x ≤ 0
func Log(name string, x float64) (float64, error) {
	if x <= 0 || math.IsNaN(x) {
		return 0, Domain(name, x, "log of non-positive value")
	}
	return math.Log(x), nil
}

// Log10 returns log10(x) or a DomainError if x ≤ 0
func Log10(name string, x float64) (float64, error) {
	if x <= 0 || math.IsNaN(x) {
		return 0, Domain(name, x, "log10 of non-positive value")
	}
	return math.Log10(x), nil
}

// Pow returns x^p or a DomainError when the result would be complex or infinite
//  x < 0 with non-integer p  => complex
//  x = 0 with p < 0          => infinite
func Pow(name string, x, p float64) (float64, error) {
	if math.IsNaN(x) {
		return 0, Domain(name, x, "not a number")
	}
	if x < 0 && p != math.Trunc(p) {
		return 0, Domain(name, x, io.Sf("negative base with non-integer exponent %g", p))
	}
	if x == 0 && p < 0 {
		return 0, Domain(name, x, io.Sf("zero base with negative exponent %g", p))
	}
	return math.Pow(x, p), nil
}

// Finite returns a DomainError if x is NaN or ±Inf
func Finite(name string, x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Domain(name, x, "non-finite result")
	}
	return nil
}
