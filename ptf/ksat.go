// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ptf

import (
	"math"

	"github.com/lucitools/LUCI-PTFs/guard"
	"github.com/lucitools/LUCI-PTFs/mdl/soil"
)

// add saturated conductivity PTFs to catalog
func init() {
	ident := func(x float64) float64 { return x }
	register(
		&Entry{
			Key:    Cosby1984,
			Label:  "Cosby et al. (1984)",
			Target: TargetKsat,
			Fields: []string{soil.FieldSand, soil.FieldClay},
			Fn:     ksatPTF(25.4, exp10, Regression{T(-0.6), T(0.0126, X(Sand)), T(-0.0064, X(Clay))}),
		},
		&Entry{
			Key:    Puckett1985,
			Label:  "Puckett et al. (1985)",
			Target: TargetKsat,
			Fields: []string{soil.FieldClay},
			Fn:     ksatPTF(156.96, math.Exp, Regression{T(-0.1975, X(Clay))}),
		},
		&Entry{
			Key:    Jabro1992,
			Label:  "Jabro (1992)",
			Target: TargetKsat,
			Fields: []string{soil.FieldSilt, soil.FieldClay, soil.FieldBD},
			Fn: ksatPTF(MmhPerCmd, exp10, Regression{
				T(9.56),
				T(-0.81/math.Ln10, Ln(Silt)),
				T(-1.09/math.Ln10, Ln(Clay)),
				T(-4.64, X(BD)),
			}),
		},
		&Entry{
			Key:    CampbellShiozawa1994,
			Label:  "Campbell and Shiozawa (1994)",
			Target: TargetKsat,
			Fields: []string{soil.FieldSilt, soil.FieldClay},
			Fn:     ksatPTF(54, math.Exp, Regression{T(-0.07, X(Silt)), T(-0.167, X(Clay))}),
		},
		&Entry{
			Key:    FerrerJulia2004a,
			Label:  "Ferrer Julià et al. (2004), sand",
			Target: TargetKsat,
			Fields: []string{soil.FieldSand},
			Fn:     ksatPTF(0.920, math.Exp, Regression{T(0.0491, X(Sand))}),
		},
		&Entry{
			Key:    FerrerJulia2004b,
			Label:  "Ferrer Julià et al. (2004), sand, clay and organic matter",
			Target: TargetKsat,
			Fields: []string{soil.FieldSand, soil.FieldClay, soil.FieldCarbon, soil.FieldBD},
			Fn:     ksatPTF(1, ident, Regression{T(-4.994), T(0.56728, X(Sand)), T(-0.131, X(Clay)), T(-0.0127, X(OM))}),
		},
		&Entry{
			Key:    Ahuja1989,
			Label:  "Ahuja et al. (1989)",
			Target: TargetKsat,
			Fields: []string{soil.FieldWcSat, soil.FieldWcFc},
			Fn:     effPorosityPTF(7645.0, 3.288),
		},
		&Entry{
			Key:    MinasnyMcBratney2000,
			Label:  "Minasny and McBratney (2000)",
			Target: TargetKsat,
			Fields: []string{soil.FieldWcSat, soil.FieldWcFc},
			Fn:     effPorosityPTF(23190.55, 3.66),
		},
		&Entry{
			Key:    Brakensiek1984,
			Label:  "Brakensiek et al. (1984)",
			Target: TargetKsat,
			Fields: []string{soil.FieldSand, soil.FieldClay, soil.FieldWcSat},
			Fn: ksatPTF(10, math.Exp, Regression{
				T(19.52348, X(WcSat)),
				T(-8.96847),
				T(-0.028212, X(Clay)),
				T(0.00018107, Sq(Sand)),
				T(-0.0094125, Sq(Clay)),
				T(-8.395215, Sq(WcSat)),
				T(0.077718, X(Sand), X(WcSat)),
				T(-0.00298, Sq(Sand), Sq(WcSat)),
				T(-0.019492, Sq(Clay), Sq(WcSat)),
				T(0.0000173, Sq(Sand), X(Clay)),
				T(0.02733, Sq(Clay), X(WcSat)),
				T(0.001434, Sq(Sand), X(WcSat)),
				T(-0.0000035, Sq(Clay), X(Sand)),
			}),
		},
	)
}

// ksatPTF returns a PTF computing Ks = scale·f(r) [mm/h]
func ksatPTF(scale float64, f func(float64) float64, r Regression) Func {
	return func(rec soil.Record) (*Result, error) {
		x := NewVars(rec)
		v, err := r.Eval(&x)
		if err != nil {
			return nil, err
		}
		res := new(Result)
		res.setKsat(scale * f(v))
		return res, nil
	}
}

// effPorosityPTF returns a PTF computing Ks = c·(θsat - θfc)^p [mm/h]
func effPorosityPTF(c, p float64) Func {
	return func(rec soil.Record) (*Result, error) {
		v, err := guard.Pow("WC_sat-WC_fc", rec.WcSat-rec.WcFc, p)
		if err != nil {
			return nil, err
		}
		res := new(Result)
		res.setKsat(c * v)
		return res, nil
	}
}
