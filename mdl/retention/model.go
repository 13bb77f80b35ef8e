// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package retention implements models for soil water retention curves θ(h)
//  Suction h is always given in kPa (positive magnitude).
//  References:
//   [1] Brooks RH and Corey AT (1964) Hydraulic properties of porous media. Hydrology
//       Papers 3, Colorado State University, Fort Collins
//   [2] van Genuchten MTh (1980) A closed-form equation for predicting the hydraulic
//       conductivity of unsaturated soils. Soil Science Society of America Journal,
//       44(5), 892-898
package retention

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
)

// StdPressures holds the standard set of suctions [kPa]
var StdPressures = []float64{1, 3, 10, 33, 100, 200, 1000, 1500}

// Model implements a soil water retention model
type Model interface {
	Init(prms dbf.Params) error     // initialises retention model
	GetPrms(example bool) dbf.Params // gets (an example) of parameters
	Check() error                   // checks parameters
	ThetaR() float64                // returns θr
	ThetaS() float64                // returns θs
	Theta(h float64) float64        // computes θ(h)
	Cc(h float64) float64           // computes Cc = dθ/dh
}

// Thetas computes θ for all suctions in H
func Thetas(mdl Model, H []float64) (Θ []float64) {
	Θ = make([]float64, len(H))
	for i, h := range H {
		Θ[i] = mdl.Theta(h)
	}
	return
}

// Series returns a dense suction vector in [hmin, hmax] and the matching water contents.
// If logScale is true, the suctions are equally spaced in log10; hmin must then be positive.
func Series(mdl Model, hmin, hmax float64, npts int, logScale bool) (H, Θ []float64, err error) {
	H, err = Space(hmin, hmax, npts, logScale)
	if err != nil {
		return
	}
	Θ = Thetas(mdl, H)
	return
}

// Space returns npts suctions in [hmin, hmax], optionally log-spaced
func Space(hmin, hmax float64, npts int, logScale bool) (H []float64, err error) {
	if npts < 2 {
		return nil, chk.Err("number of points must be at least 2. npts = %d is invalid", npts)
	}
	if hmax <= hmin {
		return nil, chk.Err("hmax must be greater than hmin. hmin = %g, hmax = %g", hmin, hmax)
	}
	if !logScale {
		return utl.LinSpace(hmin, hmax, npts), nil
	}
	if hmin <= 0 {
		return nil, chk.Err("hmin must be positive for log scale. hmin = %g is invalid", hmin)
	}
	H = utl.LinSpace(math.Log10(hmin), math.Log10(hmax), npts)
	for i, x := range H {
		H[i] = math.Pow(10, x)
	}
	H[0], H[npts-1] = hmin, hmax
	return
}

// New returns new retention model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'retention' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models
var allocators = map[string]func() Model{}

// checkContents checks θr and θs
func checkContents(name string, θr, θs float64) error {
	if θr < 0 || θr >= θs {
		return chk.Err("%s: residual water content must satisfy 0 ≤ θr < θs. θr = %g, θs = %g", name, θr, θs)
	}
	if θs > 1 {
		return chk.Err("%s: saturated water content must not exceed 1. θs = %g", name, θs)
	}
	return nil
}
