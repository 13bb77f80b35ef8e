// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package guard

import "math"

// Limits holds the plausible range of an attribute
type Limits struct {
	Min, Max float64
}

// Contains returns whether v is within [Min, Max]
func (o Limits) Contains(v float64) bool {
	return v >= o.Min && v <= o.Max
}

// InputLimits holds the literature-informed plausible ranges of input attributes
//  texture fractions in %, bulk density in g/cm³, carbon in %
var InputLimits = map[string]Limits{
	"Sand": {0, 100},
	"Silt": {0, 100},
	"Clay": {0, 100},
	"BD":   {0.5, 2.0},
	"OC":   {0, 12},
	"OM":   {0, 20},
}

// TextureTol is the tolerance on |sand + silt + clay - 100|
const TextureTol = 5.0

// SatFactor is the maximum ratio between an estimated water content at saturation and the
// total porosity of the sample
const SatFactor = 1.1

// CheckInput adds a RangeWarning if val is outside the plausible range of attr.
// Attributes without limits are accepted. Returns true if the value is plausible.
func CheckInput(s *Scope, attr string, val float64) bool {
	lim, ok := InputLimits[attr]
	if !ok {
		return true
	}
	if lim.Contains(val) {
		return true
	}
	s.Add(RangeWarning, attr, val, "outside plausible range [%g, %g]", lim.Min, lim.Max)
	return false
}

// CheckTexture adds a RangeWarning if sand + silt + clay differs from 100% by more than TextureTol
func CheckTexture(s *Scope, sand, silt, clay float64) bool {
	sum := sand + silt + clay
	if math.Abs(sum-100) <= TextureTol {
		return true
	}
	s.Add(RangeWarning, "Sand+Silt+Clay", sum, "texture fractions do not add up to 100%%")
	return false
}

// CheckTheta adds a RangeWarning if a volumetric water content is outside [0, 1]
func CheckTheta(s *Scope, attr string, θ float64) bool {
	if θ >= 0 && θ <= 1 {
		return true
	}
	s.Add(RangeWarning, attr, θ, "water content outside [0, 1]")
	return false
}

// CheckSaturation adds a ConsistencyWarning if the water content estimated at zero suction
// exceeds SatFactor·φ; where φ = 1 - BD/ρs is computed independently of the PTF
func CheckSaturation(s *Scope, θ0, φ float64) bool {
	if θ0 <= SatFactor*φ {
		return true
	}
	s.Add(ConsistencyWarning, "WC_0kPa", θ0, "water content at saturation exceeds %g×porosity (porosity = %g)", SatFactor, φ)
	return false
}

// CheckNonNeg adds a ConsistencyWarning if a derived quantity is negative
func CheckNonNeg(s *Scope, attr string, val float64) bool {
	if val >= 0 {
		return true
	}
	s.Add(ConsistencyWarning, attr, val, "negative value")
	return false
}
