// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ptf

import (
	"math"

	"github.com/lucitools/LUCI-PTFs/mdl/retention"
	"github.com/lucitools/LUCI-PTFs/mdl/soil"
)

// add van Genuchten PTFs to catalog
func init() {
	register(
		&Entry{
			Key:    Wosten1999Top,
			Label:  "Wösten et al. (1999), topsoil",
			Target: TargetVG,
			Fields: []string{soil.FieldSilt, soil.FieldClay, soil.FieldBD, soil.FieldCarbon},
			Mualem: true,
			Fn:     wosten(true),
		},
		&Entry{
			Key:    Wosten1999Sub,
			Label:  "Wösten et al. (1999), subsoil",
			Target: TargetVG,
			Fields: []string{soil.FieldSilt, soil.FieldClay, soil.FieldBD, soil.FieldCarbon},
			Mualem: true,
			Fn:     wosten(false),
		},
		&Entry{
			Key:    Vereecken1989,
			Label:  "Vereecken et al. (1989)",
			Target: TargetVG,
			Fields: []string{soil.FieldSand, soil.FieldClay, soil.FieldBD, soil.FieldCarbon},
			Fn:     vereecken,
		},
		&Entry{
			Key:    ZachariasWessolek2007,
			Label:  "Zacharias and Wessolek (2007)",
			Target: TargetVG,
			Fields: []string{soil.FieldSand, soil.FieldClay, soil.FieldBD},
			Fn:     zachariasWessolek,
		},
		&Entry{
			Key:    Weynants2009,
			Label:  "Weynants et al. (2009)",
			Target: TargetVG,
			Fields: []string{soil.FieldSand, soil.FieldClay, soil.FieldBD, soil.FieldCarbon},
			Mualem: true,
			Fn:     weynants,
		},
	)
}

// WostenThetaR is the residual water content assigned by Wösten et al. (1999)
const WostenThetaR = 0.01

// regressions of Wösten et al. (1999); D is the bulk density
var (
	wsThs = Regression{
		T(0.7919),
		T(0.001691, X(Clay)),
		T(-0.29619, X(BD)),
		T(-0.000001491, Sq(Silt)),
		T(0.0000821, Sq(OM)),
		T(0.02427, Inv(Clay)),
		T(0.01113, Inv(Silt)),
		T(0.01472, Ln(Silt)),
		T(-0.0000733, X(OM), X(Clay)),
		T(-0.000619, X(BD), X(Clay)),
		T(-0.001183, X(BD), X(OM)),
		T(-0.0001664, X(Top), X(Silt)),
	}
	wsAlp = Regression{
		T(-14.96),
		T(0.03135, X(Clay)),
		T(0.0351, X(Silt)),
		T(0.646, X(OM)),
		T(15.29, X(BD)),
		T(-0.192, X(Top)),
		T(-4.671, Sq(BD)),
		T(-0.000781, Sq(Clay)),
		T(-0.00687, Sq(OM)),
		T(0.0449, Inv(OM)),
		T(0.0663, Ln(Silt)),
		T(0.1482, Ln(OM)),
		T(-0.04546, X(BD), X(Silt)),
		T(-0.4852, X(BD), X(OM)),
		T(0.00673, X(Top), X(Clay)),
	}
	wsN = Regression{
		T(-25.23),
		T(-0.02195, X(Clay)),
		T(0.0074, X(Silt)),
		T(-0.1940, X(OM)),
		T(45.5, X(BD)),
		T(-7.24, Sq(BD)),
		T(0.0003658, Sq(Clay)),
		T(0.002885, Sq(OM)),
		T(-12.81, Inv(BD)),
		T(-0.1524, Inv(Silt)),
		T(-0.01958, Inv(OM)),
		T(-0.2876, Ln(Silt)),
		T(-0.0709, Ln(OM)),
		T(-44.6, Ln(BD)),
		T(-0.02264, X(BD), X(Clay)),
		T(0.0896, X(BD), X(OM)),
		T(0.00718, X(Top), X(Clay)),
	}
	wsL = Regression{
		T(0.0202),
		T(0.0006193, Sq(Clay)),
		T(-0.001136, Sq(OM)),
		T(-0.2316, Ln(OM)),
		T(-0.03544, X(BD), X(Clay)),
		T(0.00283, X(BD), X(Silt)),
		T(0.0488, X(BD), X(OM)),
	}
	wsKs = Regression{
		T(7.755),
		T(0.0352, X(Silt)),
		T(0.93, X(Top)),
		T(-0.967, Sq(BD)),
		T(-0.000484, Sq(Clay)),
		T(-0.000322, Sq(Silt)),
		T(0.001, Inv(Silt)),
		T(-0.0748, Inv(OM)),
		T(-0.643, Ln(Silt)),
		T(-0.01398, X(BD), X(Clay)),
		T(-0.1673, X(BD), X(OM)),
		T(0.02986, X(Top), X(Clay)),
		T(-0.03305, X(Top), X(Silt)),
	}
)

// wosten returns the PTF of Wösten et al. (1999) for topsoils or subsoils
//  α = exp(α*) [1/cm], n = exp(n*) + 1, l = 10·(exp(l*) - 1)/(1 + exp(l*)),
//  Ks = exp(Ks*) [cm/day]
func wosten(topsoil bool) Func {
	return func(rec soil.Record) (*Result, error) {
		x := NewVars(rec)
		if topsoil {
			x[Top] = 1
		}
		v, err := evalAll(&x, wsThs, wsAlp, wsN, wsL, wsKs)
		if err != nil {
			return nil, err
		}
		el := math.Exp(v[3])
		n := math.Exp(v[2]) + 1.0
		res := &Result{VG: &retention.VanGen{
			ThR:       WostenThetaR,
			ThS:       v[0],
			Alp:       math.Exp(v[1]) * CmPerKPa,
			N:         n,
			M:         1.0 - 1.0/n,
			L:         10.0 * (el - 1.0) / (1.0 + el),
			HasMualem: true,
		}}
		res.setKsat(math.Exp(v[4]) * MmhPerCmd)
		return res, nil
	}
}

// regressions of Vereecken et al. (1989); m = 1
var (
	vkThs   = Regression{T(0.81), T(-0.283, X(BD)), T(0.001, X(Clay))}
	vkThr   = Regression{T(0.015), T(0.005, X(Clay)), T(0.014, X(OC))}
	vkLnAlp = Regression{T(-2.486), T(0.025, X(Sand)), T(-0.351, X(OC)), T(-2.617, X(BD)), T(-0.023, X(Clay))}
	vkLnN   = Regression{T(0.053), T(-0.009, X(Sand)), T(-0.013, X(Clay)), T(0.00015, Sq(Sand))}
)

// vereecken implements Vereecken et al. (1989)
func vereecken(rec soil.Record) (*Result, error) {
	x := NewVars(rec)
	v, err := evalAll(&x, vkThs, vkThr, vkLnAlp, vkLnN)
	if err != nil {
		return nil, err
	}
	return &Result{VG: &retention.VanGen{
		ThR: v[1],
		ThS: v[0],
		Alp: math.Exp(v[2]) * CmPerKPa,
		N:   math.Exp(v[3]),
		M:   1,
		L:   0.5,
	}}, nil
}

// ZwSandLimit is the sand content [%] separating the two sets of regressions of
// Zacharias and Wessolek (2007)
const ZwSandLimit = 66.5

// regressions of Zacharias and Wessolek (2007)
var (
	zwFine   = [3]Regression{
		{T(0.788), T(0.001, X(Clay)), T(-0.263, X(BD))},
		{T(-0.648), T(0.023, X(Sand)), T(0.044, X(Clay)), T(-3.168, X(BD))},
		{T(1.392), T(-0.418, Pw(Sand, -0.024)), T(1.212, Pw(Clay, -0.704))},
	}
	zwCoarse = [3]Regression{
		{T(0.890), T(-0.001, X(Clay)), T(-0.322, X(BD))},
		{T(-4.197), T(0.013, X(Sand)), T(0.076, X(Clay)), T(-0.276, X(BD))},
		{T(-2.562), T(7e-9, Pw(Sand, 4.004)), T(3.750, Pw(Clay, -0.016))},
	}
)

// zachariasWessolek implements Zacharias and Wessolek (2007) with θr = 0
func zachariasWessolek(rec soil.Record) (*Result, error) {
	x := NewVars(rec)
	regs := zwFine
	if rec.Sand >= ZwSandLimit {
		regs = zwCoarse
	}
	v, err := evalAll(&x, regs[0], regs[1], regs[2])
	if err != nil {
		return nil, err
	}
	return &Result{VG: &retention.VanGen{
		ThR: 0,
		ThS: v[0],
		Alp: math.Exp(v[1]) * CmPerKPa,
		N:   v[2],
		M:   1.0 - 1.0/v[2],
		L:   0.5,
	}}, nil
}

// regressions of Weynants et al. (2009); organic carbon in g/kg
var (
	wyThs   = Regression{T(0.6355), T(0.0013, X(Clay)), T(-0.1631, X(BD))}
	wyLnAlp = Regression{T(-4.3003), T(-0.0097, X(Clay)), T(0.0138, X(Sand)), T(-0.0992, X(OCgkg))}
	wyLnNm1 = Regression{T(-1.0846), T(-0.0236, X(Clay)), T(-0.0085, X(Sand)), T(0.0001, Sq(Sand))}
	wyLnKs  = Regression{T(1.9582), T(0.0308, X(Sand)), T(-0.6142, X(BD)), T(-0.1566, X(OCgkg))}
	wyL     = Regression{T(-1.8642), T(-0.1317, X(Clay)), T(0.0067, X(Sand))}
)

// weynants implements Weynants et al. (2009) with θr = 0; Ks is estimated in cm/day
func weynants(rec soil.Record) (*Result, error) {
	x := NewVars(rec)
	v, err := evalAll(&x, wyThs, wyLnAlp, wyLnNm1, wyLnKs, wyL)
	if err != nil {
		return nil, err
	}
	n := math.Exp(v[2]) + 1.0
	res := &Result{VG: &retention.VanGen{
		ThR:       0,
		ThS:       v[0],
		Alp:       math.Exp(v[1]) * CmPerKPa,
		N:         n,
		M:         1.0 - 1.0/n,
		L:         v[4],
		HasMualem: true,
	}}
	res.setKsat(math.Exp(v[3]) * MmhPerCmd)
	return res, nil
}
