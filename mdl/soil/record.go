// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package soil implements the per-sample soil record consumed by pedotransfer functions
package soil

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// field names as supplied by input providers
const (
	FieldId     = "LUCIname" // identifier
	FieldSand   = "Sand"     // sand [%]
	FieldSilt   = "Silt"     // silt [%]
	FieldClay   = "Clay"     // clay [%]
	FieldBD     = "BD"       // bulk density [g/cm³]
	FieldOC     = "OC"       // organic carbon [%]
	FieldOM     = "OM"       // organic matter [%]
	FieldWcSat  = "WC_sat"   // measured water content at saturation [-]
	FieldWcFc   = "WC_fc"    // measured water content at field capacity [-]
	FieldWcCrit = "WC_crit"  // measured water content at the critical point [-]
	FieldWcPwp  = "WC_pwp"   // measured water content at the permanent wilting point [-]

	// FieldCarbon stands for FieldOC or FieldOM depending on the carbon basis of a run
	FieldCarbon = "Carbon"
)

// Rhos is the particle density used to compute porosity [g/cm³]
const Rhos = 2.65

// Basis defines how the carbon content is supplied
type Basis string

const (
	OC Basis = "OC" // organic carbon
	OM Basis = "OM" // organic matter
)

// default factors converting the supplied basis into the other one
const (
	OcToOm = 1.724 // van Bemmelen factor: OM = 1.724·OC
	OmToOc = 0.58  // OC = 0.58·OM
)

// ParseBasis parses "OC", "OM", "Organic carbon" or "Organic matter"
func ParseBasis(s string) (Basis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "oc", "organic carbon":
		return OC, nil
	case "om", "organic matter":
		return OM, nil
	}
	return "", chk.Err("carbon basis %q is incorrect; options are \"OC\" and \"OM\"", s)
}

// Field returns the input field name holding the carbon content
func (b Basis) Field() string {
	if b == OM {
		return FieldOM
	}
	return FieldOC
}

// DefaultFactor returns the default conversion factor from this basis to the other one
func (b Basis) DefaultFactor() float64 {
	if b == OM {
		return OmToOc
	}
	return OcToOm
}

// Record holds the input attributes of one soil sample
type Record struct {
	Id         string  // identifier
	Sand       float64 // sand [%]
	Silt       float64 // silt [%]
	Clay       float64 // clay [%]
	BD         float64 // bulk density [g/cm³]
	Carbon     float64 // organic carbon or matter [%], see Basis
	Basis      Basis   // carbon basis
	ConvFactor float64 // converts Carbon into the other basis; 0 means default
	WcSat      float64 // measured water content at saturation (optional)
	WcFc       float64 // measured water content at field capacity (optional)
	WcCrit     float64 // measured water content at the critical point (optional)
	WcPwp      float64 // measured water content at the permanent wilting point (optional)
}

// factor returns the conversion factor
func (o Record) factor() float64 {
	if o.ConvFactor > 0 {
		return o.ConvFactor
	}
	return o.Basis.DefaultFactor()
}

// OC returns organic carbon [%]
func (o Record) OC() float64 {
	if o.Basis == OM {
		return o.Carbon * o.factor()
	}
	return o.Carbon
}

// OM returns organic matter [%]
func (o Record) OM() float64 {
	if o.Basis == OM {
		return o.Carbon
	}
	return o.Carbon * o.factor()
}

// Porosity returns 1 - BD/ρs
func (o Record) Porosity() float64 {
	return 1.0 - o.BD/Rhos
}

// Get returns the value of a named field
func (o Record) Get(field string) (float64, error) {
	switch field {
	case FieldSand:
		return o.Sand, nil
	case FieldSilt:
		return o.Silt, nil
	case FieldClay:
		return o.Clay, nil
	case FieldBD:
		return o.BD, nil
	case FieldOC:
		return o.OC(), nil
	case FieldOM:
		return o.OM(), nil
	case FieldWcSat:
		return o.WcSat, nil
	case FieldWcFc:
		return o.WcFc, nil
	case FieldWcCrit:
		return o.WcCrit, nil
	case FieldWcPwp:
		return o.WcPwp, nil
	}
	return 0, chk.Err("field %q is not a soil attribute", field)
}

// Set sets the value of a named field. Carbon fields set the carbon basis as well.
func (o *Record) Set(field string, v float64) error {
	switch field {
	case FieldSand:
		o.Sand = v
	case FieldSilt:
		o.Silt = v
	case FieldClay:
		o.Clay = v
	case FieldBD:
		o.BD = v
	case FieldOC:
		o.Carbon, o.Basis = v, OC
	case FieldOM:
		o.Carbon, o.Basis = v, OM
	case FieldWcSat:
		o.WcSat = v
	case FieldWcFc:
		o.WcFc = v
	case FieldWcCrit:
		o.WcCrit = v
	case FieldWcPwp:
		o.WcPwp = v
	default:
		return chk.Err("field %q is not a soil attribute", field)
	}
	return nil
}

// String returns a short representation
func (o Record) String() string {
	return io.Sf("%s: sand=%g silt=%g clay=%g BD=%g %s=%g", o.Id, o.Sand, o.Silt, o.Clay, o.BD, o.Basis, o.Carbon)
}
