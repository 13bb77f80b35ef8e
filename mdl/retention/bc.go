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

// BrooksCorey implements Brooks and Corey's model
//  θ(h) = θs                          if h < hb
//  θ(h) = θr + (θs - θr)·(hb/h)^λ     otherwise
type BrooksCorey struct {
	ThR float64 // residual water content θr
	ThS float64 // saturated water content θs
	Hb  float64 // air-entry (bubbling) pressure [kPa]
	Lam float64 // pore-size distribution index λ
}

// add model to factory
func init() {
	allocators["bc"] = func() Model { return new(BrooksCorey) }
}

// Init initialises model
func (o *BrooksCorey) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "thr":
			o.ThR = p.V
		case "ths":
			o.ThS = p.V
		case "hb":
			o.Hb = p.V
		case "lam":
			o.Lam = p.V
		default:
			return chk.Err("bc: parameter named %q is incorrect\n", p.N)
		}
	}
	return o.Check()
}

// GetPrms gets (an example) of parameters
func (o BrooksCorey) GetPrms(example bool) dbf.Params {
	if example {
		return dbf.Params{
			&dbf.P{N: "thr", V: 0.05},
			&dbf.P{N: "ths", V: 0.45},
			&dbf.P{N: "hb", V: 2.0},
			&dbf.P{N: "lam", V: 0.3},
		}
	}
	return dbf.Params{
		&dbf.P{N: "thr", V: o.ThR},
		&dbf.P{N: "ths", V: o.ThS},
		&dbf.P{N: "hb", V: o.Hb},
		&dbf.P{N: "lam", V: o.Lam},
	}
}

// Check checks parameters
func (o BrooksCorey) Check() error {
	if err := checkContents("bc", o.ThR, o.ThS); err != nil {
		return err
	}
	if o.Hb <= 0 {
		return chk.Err("bc: air-entry pressure must be positive. hb = %g", o.Hb)
	}
	if o.Lam <= 0 {
		return chk.Err("bc: pore-size distribution index must be positive. λ = %g", o.Lam)
	}
	return nil
}

// ThetaR returns θr
func (o BrooksCorey) ThetaR() float64 { return o.ThR }

// ThetaS returns θs
func (o BrooksCorey) ThetaS() float64 { return o.ThS }

// Theta computes θ(h)
func (o BrooksCorey) Theta(h float64) float64 {
	if h < o.Hb {
		return o.ThS
	}
	se := math.Pow(o.Hb/h, o.Lam)
	if se >= 1 {
		return o.ThS
	}
	return o.ThR + (o.ThS-o.ThR)*se
}

// Cc computes Cc(h) := dθ/dh
func (o BrooksCorey) Cc(h float64) float64 {
	if h <= o.Hb {
		return 0
	}
	return -(o.ThS - o.ThR) * o.Lam * math.Pow(o.Hb/h, o.Lam) / h
}
