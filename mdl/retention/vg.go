// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package retention

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// VanGen implements van Genuchten's model
//  Se(h) = 1 / (1 + (α·h)ⁿ)ᵐ
//  θ(h)  = θr + (θs - θr)·Se(h)
//  L and Ksat are only used by the Mualem extension (see package conduct)
type VanGen struct {
	ThR  float64 // residual water content θr
	ThS  float64 // saturated water content θs
	Alp  float64 // α [1/kPa]
	N    float64 // n
	M    float64 // m; fitted independently by some PTFs
	L    float64 // pore-connectivity exponent (Mualem)
	Ksat float64 // saturated hydraulic conductivity (Mualem)

	HasMualem bool // L and Ksat are available
}

// add model to factory
func init() {
	allocators["vg"] = func() Model { return new(VanGen) }
}

// Init initialises model
//  if m is not given, m = 1 - 1/n
func (o *VanGen) Init(prms dbf.Params) (err error) {
	o.M, o.L, o.Ksat, o.HasMualem = 0, 0.5, 0, false
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "thr":
			o.ThR = p.V
		case "ths":
			o.ThS = p.V
		case "alp":
			o.Alp = p.V
		case "n":
			o.N = p.V
		case "m":
			o.M = p.V
		case "l":
			o.L = p.V
			o.HasMualem = true
		case "ksat":
			o.Ksat = p.V
			o.HasMualem = true
		default:
			return chk.Err("vg: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.M == 0 && o.N > 0 {
		o.M = 1.0 - 1.0/o.N
	}
	return o.Check()
}

// GetPrms gets (an example) of parameters
func (o VanGen) GetPrms(example bool) dbf.Params {
	if example {
		return dbf.Params{
			&dbf.P{N: "thr", V: 0.05},
			&dbf.P{N: "ths", V: 0.45},
			&dbf.P{N: "alp", V: 0.2},
			&dbf.P{N: "n", V: 1.5},
			&dbf.P{N: "m", V: 1.0 - 1.0/1.5},
			&dbf.P{N: "l", V: 0.5},
			&dbf.P{N: "ksat", V: 10.0},
		}
	}
	prms := dbf.Params{
		&dbf.P{N: "thr", V: o.ThR},
		&dbf.P{N: "ths", V: o.ThS},
		&dbf.P{N: "alp", V: o.Alp},
		&dbf.P{N: "n", V: o.N},
		&dbf.P{N: "m", V: o.M},
	}
	if o.HasMualem {
		prms = append(prms, &dbf.P{N: "l", V: o.L}, &dbf.P{N: "ksat", V: o.Ksat})
	}
	return prms
}

// Check checks parameters
func (o VanGen) Check() error {
	if err := checkContents("vg", o.ThR, o.ThS); err != nil {
		return err
	}
	if o.Alp <= 0 {
		return chk.Err("vg: α must be positive. α = %g", o.Alp)
	}
	if o.N <= 0 {
		return chk.Err("vg: n must be positive. n = %g", o.N)
	}
	if o.M <= 0 {
		return chk.Err("vg: m must be positive (n > 1 if m = 1 - 1/n). m = %g", o.M)
	}
	return nil
}

// ThetaR returns θr
func (o VanGen) ThetaR() float64 { return o.ThR }

// ThetaS returns θs
func (o VanGen) ThetaS() float64 { return o.ThS }

// Se computes the effective saturation Se(h)
func (o VanGen) Se(h float64) float64 {
	if h <= 0 {
		return 1
	}
	return 1.0 / math.Pow(1.0+math.Pow(o.Alp*h, o.N), o.M)
}

// Theta computes θ(h)
func (o VanGen) Theta(h float64) float64 {
	if h <= 0 {
		return o.ThS
	}
	return o.ThR + (o.ThS-o.ThR)/math.Pow(1.0+math.Pow(o.Alp*h, o.N), o.M)
}

// Cc computes Cc(h) := dθ/dh
func (o VanGen) Cc(h float64) float64 {
	if h <= 0 {
		return 0
	}
	c := math.Pow(o.Alp*h, o.N)
	fac := o.ThS - o.ThR
	return -fac * c * math.Pow(c+1.0, -o.M-1.0) * o.M * o.N / h
}
