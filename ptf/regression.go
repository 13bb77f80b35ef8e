// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ptf

import (
	"github.com/lucitools/LUCI-PTFs/guard"
	"github.com/lucitools/LUCI-PTFs/mdl/soil"
)

// Var indicates a regression variable
type Var int

// regression variables
const (
	Sand  Var = iota // sand [%]
	Silt             // silt [%]
	Clay             // clay [%]
	OC               // organic carbon [%]
	OCgkg            // organic carbon [g/kg]
	OM               // organic matter [%]
	BD               // bulk density [g/cm³]
	Por              // porosity 1 - BD/ρs [-]
	Top              // 1 for topsoil, 0 for subsoil
	WcSat            // measured water content at saturation [-]
	WcFc             // measured water content at field capacity [-]
	nvars
)

var varNames = [nvars]string{"Sand", "Silt", "Clay", "OC", "OC", "OM", "BD", "Porosity", "Topsoil", "WC_sat", "WC_fc"}

func (v Var) String() string {
	if v < 0 || v >= nvars {
		return "?"
	}
	return varNames[v]
}

// Vars holds the values of all regression variables for one record
type Vars [nvars]float64

// NewVars fills the regression variables from a soil record
func NewVars(rec soil.Record) (x Vars) {
	x[Sand] = rec.Sand
	x[Silt] = rec.Silt
	x[Clay] = rec.Clay
	x[OC] = rec.OC()
	x[OCgkg] = 10.0 * rec.OC()
	x[OM] = rec.OM()
	x[BD] = rec.BD
	x[Por] = rec.Porosity()
	x[WcSat] = rec.WcSat
	x[WcFc] = rec.WcFc
	return
}

// Factor is one factor of a regression term: x^P or ln(x)
type Factor struct {
	V  Var
	P  float64
	Ln bool
}

// Eval evaluates the factor
func (o Factor) Eval(x *Vars) (float64, error) {
	v := x[o.V]
	if o.Ln {
		return guard.Log(o.V.String(), v)
	}
	switch o.P {
	case 1:
		return v, nil
	case 2:
		return v * v, nil
	}
	return guard.Pow(o.V.String(), v, o.P)
}

// X returns the factor x
func X(v Var) Factor { return Factor{V: v, P: 1} }

// Sq returns the factor x²
func Sq(v Var) Factor { return Factor{V: v, P: 2} }

// Pw returns the factor x^p
func Pw(v Var, p float64) Factor { return Factor{V: v, P: p} }

// Inv returns the factor 1/x
func Inv(v Var) Factor { return Factor{V: v, P: -1} }

// Ln returns the factor ln(x)
func Ln(v Var) Factor { return Factor{V: v, Ln: true} }

// Term is c·Πfᵢ
type Term struct {
	C float64
	F []Factor
}

// T returns a new term. Without factors, the term is a constant.
func T(c float64, factors ...Factor) Term { return Term{C: c, F: factors} }

// Regression is a sum of terms
type Regression []Term

// Eval evaluates the regression. A DomainError is returned if any factor is undefined.
func (o Regression) Eval(x *Vars) (res float64, err error) {
	for _, t := range o {
		v := t.C
		for _, f := range t.F {
			var fv float64
			fv, err = f.Eval(x)
			if err != nil {
				return
			}
			v *= fv
		}
		res += v
	}
	return
}

// evalAll evaluates a set of regressions, stopping at the first error
func evalAll(x *Vars, regs ...Regression) (res []float64, err error) {
	res = make([]float64, len(regs))
	for i, r := range regs {
		res[i], err = r.Eval(x)
		if err != nil {
			return
		}
	}
	return
}
