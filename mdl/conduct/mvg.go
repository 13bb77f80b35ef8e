// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conduct

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/lucitools/LUCI-PTFs/mdl/retention"
)

// MvG computes the unsaturated conductivity of a Mualem-van Genuchten soil
//  K(h) = Ks·((1+xⁿ)ᵐ - x^(n·m))² / (1+xⁿ)^(m·(l+2))   with x = α·h
//  which equals Ks·kr(Se(h)) for any m
type MvG struct {
	Vg *retention.VanGen
}

// NewMvG returns a new MvG model. The van Genuchten parameters must include l and Ksat.
func NewMvG(vg *retention.VanGen) (o *MvG, err error) {
	if vg == nil {
		return nil, chk.Err("mvg: van Genuchten parameters are missing")
	}
	if !vg.HasMualem {
		return nil, chk.Err("mvg: van Genuchten parameters lack l and Ksat")
	}
	if vg.Ksat <= 0 {
		return nil, chk.Err("mvg: saturated conductivity must be positive. Ksat = %g", vg.Ksat)
	}
	return &MvG{Vg: vg}, nil
}

// K computes the hydraulic conductivity at suction h [kPa]
func (o MvG) K(h float64) float64 {
	if h <= 0 {
		return o.Vg.Ksat
	}
	x := o.Vg.Alp * h
	a := 1.0 + math.Pow(x, o.Vg.N)
	num := math.Pow(a, o.Vg.M) - math.Pow(x, o.Vg.N*o.Vg.M)
	return o.Vg.Ksat * num * num / math.Pow(a, o.Vg.M*(o.Vg.L+2.0))
}

// Klr computes the relative conductivity through the effective saturation
func (o MvG) Klr(h float64) (float64, error) {
	return Klr(o.Vg.Se(h), o.Vg.L, o.Vg.M)
}

// ThetaK returns θ(h) and K(h); used to plot K against θ
func (o MvG) ThetaK(h float64) (θ, k float64) {
	return o.Vg.Theta(h), o.K(h)
}

// Series returns a dense suction vector and the matching water contents and conductivities
func Series(o *MvG, hmin, hmax float64, npts int, logScale bool) (H, Θ, K []float64, err error) {
	H, err = retention.Space(hmin, hmax, npts, logScale)
	if err != nil {
		return
	}
	Θ = make([]float64, npts)
	K = make([]float64, npts)
	for i, h := range H {
		Θ[i], K[i] = o.ThetaK(h)
	}
	return
}
