// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package water computes plant-available, drainable, readily-available and total water
// from water contents at saturation, field capacity, critical point and wilting point
package water

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/lucitools/LUCI-PTFs/guard"
	"github.com/lucitools/LUCI-PTFs/mdl/retention"
)

// RawMode defines how readily-available water is computed
type RawMode int

const (
	// Fraction: RAW = f·PAW
	Fraction RawMode = iota

	// CriticalPoint: RAW = θ(fc) - θ(crit)
	CriticalPoint
)

func (m RawMode) String() string {
	if m == CriticalPoint {
		return "CriticalPoint"
	}
	return "Fraction"
}

// ParseRawMode parses "Fraction" or "CriticalPoint"
func ParseRawMode(s string) (RawMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fraction", "":
		return Fraction, nil
	case "criticalpoint", "critical":
		return CriticalPoint, nil
	}
	return 0, &guard.UnknownOptionError{Option: "rawmode", Value: s}
}

// plausible range of RAW/PAW in CriticalPoint mode
const (
	RawFracMin = 0.2
	RawFracMax = 0.8
)

// DefaultRawFrac is the RAW/PAW fraction used when none is given
const DefaultRawFrac = 0.5

// Thresholds holds the suctions [kPa] of one record
type Thresholds struct {
	Sat  float64 // saturation; usually 0
	Fc   float64 // field capacity; usually 10 or 33
	Crit float64 // critical point (CriticalPoint mode)
	Pwp  float64 // permanent wilting point; usually 1500
}

// DefaultThresholds returns sat = 0, fc = 33 and pwp = 1500 kPa; crit is unset
func DefaultThresholds() Thresholds {
	return Thresholds{Sat: 0, Fc: 33, Pwp: 1500}
}

// Check checks the ordering of suctions
func (o Thresholds) Check(mode RawMode) error {
	if o.Sat < 0 {
		return chk.Err("suction at saturation must be non-negative. sat = %g", o.Sat)
	}
	if o.Fc <= o.Sat || o.Pwp <= o.Fc {
		return chk.Err("suctions must satisfy sat < fc < pwp. sat = %g, fc = %g, pwp = %g", o.Sat, o.Fc, o.Pwp)
	}
	if mode == CriticalPoint && (o.Crit < o.Fc || o.Crit > o.Pwp) {
		return chk.Err("critical point must be within [fc, pwp]. crit = %g, fc = %g, pwp = %g", o.Crit, o.Fc, o.Pwp)
	}
	return nil
}

// Policy holds the options of the calculator
type Policy struct {
	Mode  RawMode // how RAW is computed
	Frac  float64 // RAW/PAW in Fraction mode; in (0, 1)
	Depth float64 // rooting depth [mm]; 0 means no depth scaling
}

// Check checks the policy
func (o Policy) Check() error {
	if o.Mode == Fraction && (o.Frac <= 0 || o.Frac >= 1) {
		return chk.Err("RAW fraction must be in (0, 1). frac = %g", o.Frac)
	}
	if o.Depth < 0 || math.IsNaN(o.Depth) {
		return chk.Err("rooting depth must be non-negative. depth = %g", o.Depth)
	}
	return nil
}

// Quantities holds the derived quantities of one record (volumetric)
type Quantities struct {
	WcSat, WcFc, WcCrit, WcPwp float64 // water contents at thresholds

	PAW     float64 // plant-available water θ(fc) - θ(pwp)
	DW      float64 // drainable water θ(sat) - θ(fc)
	TWC     float64 // total water θ(sat) - θ(pwp)
	RAW     float64 // readily-available water
	NRAW    float64 // not readily-available water θ(crit) - θ(pwp) (CriticalPoint mode)
	RawFrac float64 // RAW/PAW

	HasCrit  bool // WcCrit and NRAW are set
	HasDepth bool // Mm* are set

	MmPAW, MmDW, MmTWC, MmRAW float64 // depth-equivalent quantities [mm]
}

// Calc evaluates the retention curve at the thresholds and computes the derived quantities.
// Water contents outside [0, 1] are flagged. θ(0) = θs holds for all retention models, so
// saturation is checked against porosity by callers that know the bulk density.
func Calc(s *guard.Scope, mdl retention.Model, thr Thresholds, pol Policy) (q Quantities, err error) {
	wsat := mdl.Theta(thr.Sat)
	wfc := mdl.Theta(thr.Fc)
	wpwp := mdl.Theta(thr.Pwp)
	wcrit := math.NaN()
	if pol.Mode == CriticalPoint {
		wcrit = mdl.Theta(thr.Crit)
	}
	return FromContents(s, wsat, wfc, wcrit, wpwp, pol)
}

// FromContents computes the derived quantities from water contents already known at the
// thresholds; e.g. measured values. wcCrit is only used in CriticalPoint mode.
func FromContents(s *guard.Scope, wcSat, wcFc, wcCrit, wcPwp float64, pol Policy) (q Quantities, err error) {
	if err = pol.Check(); err != nil {
		return
	}
	q.WcSat, q.WcFc, q.WcPwp = wcSat, wcFc, wcPwp
	guard.CheckTheta(s, "WC_sat", wcSat)
	guard.CheckTheta(s, "WC_fc", wcFc)
	guard.CheckTheta(s, "WC_pwp", wcPwp)

	q.PAW = wcFc - wcPwp
	q.DW = wcSat - wcFc
	q.TWC = wcSat - wcPwp
	guard.CheckNonNeg(s, "PAW", q.PAW)
	guard.CheckNonNeg(s, "DW", q.DW)
	guard.CheckNonNeg(s, "TWC", q.TWC)

	switch pol.Mode {
	case Fraction:
		q.RawFrac = pol.Frac
		q.RAW = pol.Frac * q.PAW
	case CriticalPoint:
		if math.IsNaN(wcCrit) {
			return q, chk.Err("water content at critical point is required in CriticalPoint mode")
		}
		guard.CheckTheta(s, "WC_crit", wcCrit)
		q.WcCrit, q.HasCrit = wcCrit, true
		q.RAW = wcFc - wcCrit
		q.NRAW = wcCrit - wcPwp
		guard.CheckNonNeg(s, "NRAW", q.NRAW)
		if q.PAW != 0 {
			q.RawFrac = q.RAW / q.PAW
		}
		if q.PAW == 0 || q.RawFrac < RawFracMin || q.RawFrac > RawFracMax {
			s.Add(guard.ConsistencyWarning, "RAW/PAW", q.RawFrac, "fraction of RAW to PAW outside [%g, %g]", RawFracMin, RawFracMax)
		}
	default:
		return q, chk.Err("RAW mode %d is invalid", pol.Mode)
	}
	guard.CheckNonNeg(s, "RAW", q.RAW)

	if pol.Depth > 0 {
		q.HasDepth = true
		q.MmPAW = q.PAW * pol.Depth
		q.MmDW = q.DW * pol.Depth
		q.MmTWC = q.TWC * pol.Depth
		q.MmRAW = q.RAW * pol.Depth
	}
	return
}
