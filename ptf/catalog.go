// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ptf implements published pedotransfer functions estimating soil hydraulic
// parameters from texture, bulk density and organic carbon
//  Texture fractions are in %, bulk density in g/cm³ and carbon in %.
//  Suctions are in kPa, α in 1/kPa and conductivities in mm/h.
package ptf

import (
	"math"
	"sort"

	"github.com/lucitools/LUCI-PTFs/guard"
	"github.com/lucitools/LUCI-PTFs/mdl/retention"
	"github.com/lucitools/LUCI-PTFs/mdl/soil"
)

// CmPerKPa converts suctions in cm of water into kPa (h[kPa] = h[cm]/CmPerKPa)
const CmPerKPa = 10.0

// MmhPerCmd converts conductivities in cm/day into mm/h
const MmhPerCmd = 10.0 / 24.0

// Key identifies a pedotransfer function
type Key string

// Brooks-Corey PTFs
const (
	Cosby1984SCBC          Key = "Cosby_1984_SC_BC"
	Cosby1984SSCBC         Key = "Cosby_1984_SSC_BC"
	RawlsBrakensiek1985BC  Key = "RawlsBrakensiek_1985_BC"
	CampbellShiozawa1992BC Key = "CampbellShiozawa_1992_BC"
	Saxton1986BC           Key = "Saxton_1986_BC"
	SaxtonRawls2006BC      Key = "SaxtonRawls_2006_BC"
)

// van Genuchten PTFs
const (
	Wosten1999Top         Key = "Wosten_1999_top"
	Wosten1999Sub         Key = "Wosten_1999_sub"
	Vereecken1989         Key = "Vereecken_1989"
	ZachariasWessolek2007 Key = "ZachariasWessolek_2007"
	Weynants2009          Key = "Weynants_2009"
)

// saturated conductivity PTFs
const (
	Cosby1984            Key = "Cosby_1984"
	Puckett1985          Key = "Puckett_1985"
	Jabro1992            Key = "Jabro_1992"
	CampbellShiozawa1994 Key = "CampbellShiozawa_1994"
	FerrerJulia2004a     Key = "FerrerJulia_2004_1"
	FerrerJulia2004b     Key = "FerrerJulia_2004_2"
	Ahuja1989            Key = "Ahuja_1989"
	MinasnyMcBratney2000 Key = "MinasnyMcBratney_2000"
	Brakensiek1984       Key = "Brakensiek_1984"
)

// point PTFs
const (
	Saxton1986      Key = "Saxton_1986"
	SaxtonRawls2006 Key = "SaxtonRawls_2006"
	Rawls1982       Key = "Rawls_1982"
)

// Measured takes the water contents at the thresholds from the record itself
const Measured Key = "Measured"

// Target indicates what a PTF estimates
type Target int

const (
	TargetBC    Target = iota // Brooks-Corey parameters
	TargetVG                  // van Genuchten parameters
	TargetKsat                // saturated hydraulic conductivity
	TargetPoint               // water contents at fixed suctions
	TargetContents            // measured water contents at the thresholds
)

func (t Target) String() string {
	switch t {
	case TargetBC:
		return "Brooks-Corey"
	case TargetVG:
		return "van Genuchten"
	case TargetKsat:
		return "Ksat"
	case TargetPoint:
		return "point"
	case TargetContents:
		return "measured"
	}
	return "unknown"
}

// Func evaluates a PTF for one record
type Func func(rec soil.Record) (*Result, error)

// Entry holds one PTF of the catalog
type Entry struct {
	Key    Key      // identifier
	Label  string   // literature reference
	Target Target   // what is estimated
	Fields []string // required input fields; soil.FieldCarbon depends on the carbon basis
	Mualem bool     // provides l and Ksat for the Mualem-van Genuchten model
	Fn     Func     // evaluation function

	Suctions []float64 // suctions [kPa] of the estimated water contents (point PTFs)
}

// Estimates returns whether the PTF gives the water content at suction h
func (o *Entry) Estimates(h float64) bool {
	switch o.Target {
	case TargetBC, TargetVG:
		return true
	case TargetPoint:
		for _, x := range o.Suctions {
			if x == h {
				return true
			}
		}
	}
	return false
}

// Eval evaluates the PTF and checks that all outputs are finite
func (o *Entry) Eval(rec soil.Record) (res *Result, err error) {
	res, err = o.Fn(rec)
	if err != nil {
		return nil, err
	}
	res.Key = o.Key
	return res, res.check()
}

// catalog holds all PTFs
var catalog = map[Key]*Entry{}

// register adds entries to the catalog
func register(entries ...*Entry) {
	for _, e := range entries {
		catalog[e.Key] = e
	}
}

// Lookup returns the catalog entry of a PTF
func Lookup(key string) (*Entry, error) {
	e, ok := catalog[Key(key)]
	if !ok {
		return nil, &guard.UnknownOptionError{Option: "ptf", Value: key}
	}
	return e, nil
}

// Keys returns the sorted keys of all PTFs estimating target
func Keys(target Target) (keys []Key) {
	for k, e := range catalog {
		if e.Target == target {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return
}

// Point holds the water content at a fixed suction
type Point struct {
	H     float64 // suction [kPa]
	Theta float64 // water content [-]
}

// Result holds the outputs of a PTF for one record
type Result struct {
	Key    Key                    // PTF
	BC     *retention.BrooksCorey // Brooks-Corey parameters (BC PTFs)
	VG     *retention.VanGen      // van Genuchten parameters (VG PTFs)
	Ksat   float64                // saturated conductivity [mm/h] if HasKsat
	Points []Point                // water contents at fixed suctions (point PTFs)
	Aux    map[string]float64     // auxiliary quantities; e.g. dg, Sg or measured contents

	HasKsat bool
}

// Curve returns the retention curve or nil if the PTF does not estimate one
func (o *Result) Curve() retention.Model {
	switch {
	case o.BC != nil:
		return o.BC
	case o.VG != nil:
		return o.VG
	}
	return nil
}

// Theta returns the water content at suction h, from the curve or from the points
func (o *Result) Theta(h float64) (θ float64, ok bool) {
	if mdl := o.Curve(); mdl != nil {
		return mdl.Theta(h), true
	}
	for _, p := range o.Points {
		if p.H == h {
			return p.Theta, true
		}
	}
	return 0, false
}

// setKsat sets the saturated conductivity [mm/h]
func (o *Result) setKsat(k float64) {
	o.Ksat, o.HasKsat = k, true
	if o.VG != nil {
		o.VG.Ksat = k
	}
}

// check checks that all outputs are finite and within the domain of the models
func (o *Result) check() error {
	var vals []float64
	var names []string
	if o.BC != nil {
		names = append(names, "theta_r", "theta_s", "hb", "lambda")
		vals = append(vals, o.BC.ThR, o.BC.ThS, o.BC.Hb, o.BC.Lam)
		if o.BC.Hb <= 0 {
			return guard.Domain("hb", o.BC.Hb, "air-entry pressure must be positive")
		}
		if o.BC.Lam <= 0 {
			return guard.Domain("lambda", o.BC.Lam, "pore-size distribution index must be positive")
		}
	}
	if o.VG != nil {
		names = append(names, "theta_r", "theta_s", "alpha", "n", "m", "l", "Ksat")
		vals = append(vals, o.VG.ThR, o.VG.ThS, o.VG.Alp, o.VG.N, o.VG.M, o.VG.L, o.VG.Ksat)
		if o.VG.Alp <= 0 {
			return guard.Domain("alpha", o.VG.Alp, "α must be positive")
		}
		if o.VG.N <= 0 || o.VG.M <= 0 {
			return guard.Domain("n", o.VG.N, "shape parameters must be positive")
		}
	}
	if o.HasKsat {
		names = append(names, "Ksat")
		vals = append(vals, o.Ksat)
	}
	for _, p := range o.Points {
		names = append(names, "theta")
		vals = append(vals, p.Theta)
	}
	for k, v := range o.Aux {
		names = append(names, k)
		vals = append(vals, v)
	}
	for i, v := range vals {
		if err := guard.Finite(names[i], v); err != nil {
			return err
		}
	}
	return nil
}

// exp10 returns 10^x
func exp10(x float64) float64 { return math.Pow(10, x) }
