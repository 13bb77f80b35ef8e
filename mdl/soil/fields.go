// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package soil

import (
	"github.com/lucitools/LUCI-PTFs/guard"
)

// CheckFields returns a MissingFieldError for the first required field not in available
func CheckFields(available, required []string, option string) error {
	have := make(map[string]bool, len(available))
	for _, f := range available {
		have[f] = true
	}
	for _, f := range required {
		if !have[f] {
			return &guard.MissingFieldError{Field: f, Option: option}
		}
	}
	return nil
}

// Resolve replaces FieldCarbon by the carbon field of the given basis
func Resolve(fields []string, basis Basis) []string {
	res := make([]string, len(fields))
	for i, f := range fields {
		if f == FieldCarbon {
			f = basis.Field()
		}
		res[i] = f
	}
	return res
}

// CheckInputs adds range warnings for the given fields of a record
func CheckInputs(s *guard.Scope, rec Record, fields []string) {
	texture := 0
	for _, f := range fields {
		v, err := rec.Get(f)
		if err != nil {
			continue
		}
		switch f {
		case FieldSand, FieldSilt, FieldClay:
			texture++
		}
		guard.CheckInput(s, f, v)
	}
	if texture == 3 {
		guard.CheckTexture(s, rec.Sand, rec.Silt, rec.Clay)
	}
}

// Values holds the raw attributes of one sample as supplied by an input provider
type Values struct {
	Id string             // identifier; may be empty
	V  map[string]float64 // attributes keyed by field name
}

// Record converts the values into a record. The carbon content is read from the field of
// the given basis; factor converts it into the other basis (0 means default).
func (o Values) Record(basis Basis, factor float64) (rec Record) {
	rec.Id = o.Id
	rec.Sand = o.V[FieldSand]
	rec.Silt = o.V[FieldSilt]
	rec.Clay = o.V[FieldClay]
	rec.BD = o.V[FieldBD]
	rec.WcSat = o.V[FieldWcSat]
	rec.WcFc = o.V[FieldWcFc]
	rec.WcCrit = o.V[FieldWcCrit]
	rec.WcPwp = o.V[FieldWcPwp]
	rec.Carbon, rec.Basis = o.V[basis.Field()], basis
	rec.ConvFactor = factor
	return
}

// Missing returns the fields without a value in this sample; e.g. NULL in a database row or
// a key absent from one record of a file
func (o Values) Missing(fields []string) (missing []string) {
	for _, f := range fields {
		if _, ok := o.V[f]; !ok {
			missing = append(missing, f)
		}
	}
	return
}
