// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package conduct implements models for the unsaturated hydraulic conductivity of soils
//  References:
//   [1] Mualem Y (1976) A new model for predicting the hydraulic conductivity of
//       unsaturated porous media. Water Resources Research, 12(3), 513-522
//   [2] van Genuchten MTh (1980) A closed-form equation for predicting the hydraulic
//       conductivity of unsaturated soils. Soil Science Society of America Journal,
//       44(5), 892-898
package conduct

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/lucitools/LUCI-PTFs/guard"
)

// Model defines relative conductivity models
type Model interface {
	Init(prms dbf.Params) error      // Init initialises this structure
	GetPrms(example bool) dbf.Params // gets (an example) of parameters
	Klr(se float64) (float64, error) // Klr returns the relative conductivity kr(Se)
}

// Klr computes the Mualem-van Genuchten relative conductivity
//  kr = Se^l · [1 - (1 - Se^(1/m))^m]²
//  Se must be in (0, 1]; kr(1) = 1
func Klr(se, l, m float64) (float64, error) {
	if math.IsNaN(se) || se <= 0 || se > 1 {
		return 0, guard.Domain("Se", se, "effective saturation must be in (0, 1]")
	}
	if m <= 0 {
		return 0, guard.Domain("m", m, "shape parameter must be positive")
	}
	if se == 1 {
		return 1, nil
	}
	c := 1.0 - math.Pow(1.0-math.Pow(se, 1.0/m), m)
	return math.Pow(se, l) * c * c, nil
}

// New conductivity model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'conduct' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models
var allocators = map[string]func() Model{}
