// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ptf

import (
	"math"

	"github.com/lucitools/LUCI-PTFs/guard"
	"github.com/lucitools/LUCI-PTFs/mdl/retention"
	"github.com/lucitools/LUCI-PTFs/mdl/soil"
)

// add Brooks-Corey PTFs to catalog
func init() {
	register(
		&Entry{
			Key:    Cosby1984SCBC,
			Label:  "Cosby et al. (1984), univariate regressions on sand and clay",
			Target: TargetBC,
			Fields: []string{soil.FieldSand, soil.FieldClay},
			Fn: cosby(
				Regression{T(2.91), T(0.159, X(Clay))},
				Regression{T(1.88), T(-0.0131, X(Sand))},
				Regression{T(0.489), T(-0.00126, X(Sand))},
			),
		},
		&Entry{
			Key:    Cosby1984SSCBC,
			Label:  "Cosby et al. (1984), multivariate regressions on sand, silt and clay",
			Target: TargetBC,
			Fields: []string{soil.FieldSand, soil.FieldSilt, soil.FieldClay},
			Fn: cosby(
				Regression{T(3.10), T(0.157, X(Clay)), T(-0.003, X(Sand))},
				Regression{T(1.54), T(-0.0095, X(Sand)), T(0.0063, X(Silt))},
				Regression{T(0.505), T(-0.00142, X(Sand)), T(-0.00037, X(Clay))},
			),
		},
		&Entry{
			Key:    RawlsBrakensiek1985BC,
			Label:  "Rawls and Brakensiek (1985)",
			Target: TargetBC,
			Fields: []string{soil.FieldSand, soil.FieldClay, soil.FieldBD},
			Fn:     rawlsBrakensiek,
		},
		&Entry{
			Key:    CampbellShiozawa1992BC,
			Label:  "Campbell and Shiozawa (1992)",
			Target: TargetBC,
			Fields: []string{soil.FieldSand, soil.FieldSilt, soil.FieldClay, soil.FieldBD},
			Fn:     campbellShiozawa,
		},
		&Entry{
			Key:    Saxton1986BC,
			Label:  "Saxton et al. (1986)",
			Target: TargetBC,
			Fields: []string{soil.FieldSand, soil.FieldClay},
			Fn: func(rec soil.Record) (*Result, error) {
				c, err := newSaxton86(rec)
				if err != nil {
					return nil, err
				}
				return &Result{
					BC:  &retention.BrooksCorey{ThR: 0, ThS: c.ths, Hb: c.a * math.Pow(c.ths, c.b), Lam: -1.0 / c.b},
					Aux: map[string]float64{"A": c.a, "B": c.b},
				}, nil
			},
		},
		&Entry{
			Key:    SaxtonRawls2006BC,
			Label:  "Saxton and Rawls (2006)",
			Target: TargetBC,
			Fields: []string{soil.FieldSand, soil.FieldClay, soil.FieldCarbon},
			Fn: func(rec soil.Record) (*Result, error) {
				c, err := newSaxtonRawls(rec)
				if err != nil {
					return nil, err
				}
				res := &Result{
					BC:  &retention.BrooksCorey{ThR: 0, ThS: c.ths, Hb: c.hb(), Lam: 1.0 / c.b},
					Aux: map[string]float64{"psi_e": c.psie, "B": c.b},
				}
				res.setKsat(c.ks)
				return res, nil
			},
		},
	)
}

// cosby returns a Cosby-type PTF
//  b = 1/λ, log10 ψs[cm] and θs are linear in the texture fractions
func cosby(b, log10psi, ths Regression) Func {
	return func(rec soil.Record) (*Result, error) {
		x := NewVars(rec)
		v, err := evalAll(&x, b, log10psi, ths)
		if err != nil {
			return nil, err
		}
		if v[0] == 0 {
			return nil, guard.Domain("b", v[0], "pore-size parameter is zero")
		}
		return &Result{BC: &retention.BrooksCorey{
			ThR: 0,
			ThS: v[2],
			Hb:  exp10(v[1]) / CmPerKPa,
			Lam: 1.0 / v[0],
		}}, nil
	}
}

// regressions of Rawls and Brakensiek (1985); φ is the porosity
var (
	rbLnHb = Regression{
		T(5.3396738),
		T(0.1845038, X(Clay)),
		T(-2.48394546, X(Por)),
		T(-0.00213853, Sq(Clay)),
		T(-0.04356349, X(Sand), X(Por)),
		T(-0.61745089, X(Clay), X(Por)),
		T(0.00143598, Sq(Sand), Sq(Por)),
		T(-0.00855375, Sq(Clay), Sq(Por)),
		T(-0.00001282, Sq(Sand), X(Clay)),
		T(0.00895359, Sq(Clay), X(Por)),
		T(-0.00072472, Sq(Sand), X(Por)),
		T(0.0000054, Sq(Clay), X(Sand)),
		T(0.50028060, Sq(Por), X(Clay)),
	}
	rbLnLam = Regression{
		T(-0.7842831),
		T(0.0177544, X(Sand)),
		T(-1.062498, X(Por)),
		T(-0.00005304, Sq(Sand)),
		T(-0.00273493, Sq(Clay)),
		T(1.11134946, Sq(Por)),
		T(-0.03088295, X(Sand), X(Por)),
		T(0.00026587, Sq(Sand), Sq(Por)),
		T(-0.00610522, Sq(Clay), Sq(Por)),
		T(-0.00000235, Sq(Sand), X(Clay)),
		T(0.00798746, Sq(Clay), X(Por)),
		T(-0.00674491, Sq(Por), X(Clay)),
	}
	rbThr = Regression{
		T(-0.0182482),
		T(0.00087269, X(Sand)),
		T(0.00513488, X(Clay)),
		T(0.02939286, X(Por)),
		T(-0.00015395, Sq(Clay)),
		T(-0.0010827, X(Sand), X(Por)),
		T(-0.00018233, Sq(Clay), Sq(Por)),
		T(0.00030703, Sq(Clay), X(Por)),
		T(-0.0023584, Sq(Por), X(Clay)),
	}
)

// rawlsBrakensiek implements Rawls and Brakensiek (1985) with θs = φ
func rawlsBrakensiek(rec soil.Record) (*Result, error) {
	x := NewVars(rec)
	v, err := evalAll(&x, rbLnHb, rbLnLam, rbThr)
	if err != nil {
		return nil, err
	}
	return &Result{BC: &retention.BrooksCorey{
		ThR: v[2],
		ThS: x[Por],
		Hb:  math.Exp(v[0]) / CmPerKPa,
		Lam: math.Exp(v[1]),
	}}, nil
}

// representative particle diameters of clay, silt and sand [mm]
var csDiameters = [3]float64{0.001, 0.026, 1.025}

// campbellShiozawa implements Campbell and Shiozawa (1992) using the geometric mean
// particle diameter dg [mm] and its geometric standard deviation σg
//  hes = 0.5·dg^(-1/2)          [kPa]
//  b   = 2·hes + 0.2·σg
//  hb  = hes·(BD/1.3)^(0.67·b)
func campbellShiozawa(rec soil.Record) (*Result, error) {
	mass := [3]float64{rec.Clay / 100.0, rec.Silt / 100.0, rec.Sand / 100.0}
	var a, b float64
	for i, m := range mass {
		ld := math.Log(csDiameters[i])
		a += m * ld
		b += m * ld * ld
	}
	dg := math.Exp(a)
	sg := math.Exp(math.Sqrt(math.Max(0, b-a*a)))
	hes, err := guard.Pow("dg", dg, -0.5)
	if err != nil {
		return nil, err
	}
	hes *= 0.5
	bb := 2.0*hes + 0.2*sg
	fac, err := guard.Pow("BD", rec.BD/1.3, 0.67*bb)
	if err != nil {
		return nil, err
	}
	return &Result{
		BC: &retention.BrooksCorey{
			ThR: 0,
			ThS: rec.Porosity(),
			Hb:  hes * fac,
			Lam: 1.0 / bb,
		},
		Aux: map[string]float64{"dg": dg, "Sg": sg},
	}, nil
}

// saxton86 holds the water characteristic of Saxton et al. (1986)
//  ψ = A·θ^B  [kPa]
type saxton86 struct {
	a, b, ths float64
}

var (
	sxLnA = Regression{T(-4.396), T(-0.0715, X(Clay)), T(-4.880e-4, Sq(Sand)), T(-4.285e-5, Sq(Sand), X(Clay))}
	sxB   = Regression{T(-3.140), T(-0.00222, Sq(Clay)), T(-3.484e-5, Sq(Sand), X(Clay))}
	sxThs = Regression{T(0.332), T(-7.251e-4, X(Sand)), T(0.1276 / math.Ln10, Ln(Clay))}
)

func newSaxton86(rec soil.Record) (o saxton86, err error) {
	x := NewVars(rec)
	v, err := evalAll(&x, sxLnA, sxB, sxThs)
	if err != nil {
		return
	}
	o.a, o.b, o.ths = 100.0*math.Exp(v[0]), v[1], v[2]
	if o.ths <= 0 {
		err = guard.Domain("theta_s", o.ths, "non-positive saturated water content")
	}
	return
}

// theta returns the water content at ψ ≥ 0 kPa along the power curve
func (o saxton86) theta(ψ float64) float64 {
	if ψ <= 0 {
		return o.ths
	}
	return math.Min(o.ths, math.Pow(ψ/o.a, 1.0/o.b))
}

// saxtonRawls holds the estimates of Saxton and Rawls (2006)
type saxtonRawls struct {
	th1500, th33, ths float64 // water contents at 1500 kPa, 33 kPa and saturation
	psie              float64 // air-entry tension [kPa]
	b                 float64 // ψ = A·θ^(-B) between 33 and 1500 kPa
	ks                float64 // saturated conductivity [mm/h]
}

// newSaxtonRawls evaluates Saxton and Rawls (2006)
//  S and C are used as decimal fractions, OM in %
func newSaxtonRawls(rec soil.Record) (o saxtonRawls, err error) {
	S, C, OM := rec.Sand/100.0, rec.Clay/100.0, rec.OM()

	t1500 := -0.024*S + 0.487*C + 0.006*OM + 0.005*S*OM - 0.013*C*OM + 0.068*S*C + 0.031
	o.th1500 = t1500 + (0.14*t1500 - 0.02)

	t33 := -0.251*S + 0.195*C + 0.011*OM + 0.006*S*OM - 0.027*C*OM + 0.452*S*C + 0.299
	o.th33 = t33 + (1.283*t33*t33 - 0.374*t33 - 0.015)

	ts33 := 0.278*S + 0.034*C + 0.022*OM - 0.018*S*OM - 0.027*C*OM - 0.584*S*C + 0.078
	s33 := ts33 + (0.636*ts33 - 0.107)

	pet := -21.67*S - 27.93*C - 81.97*s33 + 71.12*S*s33 + 8.29*C*s33 + 14.05*S*C + 27.16
	o.psie = pet + (0.02*pet*pet - 0.113*pet - 0.70)

	o.ths = o.th33 + s33 - 0.097*S + 0.043

	l33, err := guard.Log("theta_33", o.th33)
	if err != nil {
		return
	}
	l1500, err := guard.Log("theta_1500", o.th1500)
	if err != nil {
		return
	}
	if l33 == l1500 {
		err = guard.Domain("theta_33", o.th33, "equal water contents at 33 and 1500 kPa")
		return
	}
	o.b = (math.Log(1500) - math.Log(33)) / (l33 - l1500)
	o.ks, err = guard.Pow("theta_s-theta_33", o.ths-o.th33, 3.0-1.0/o.b)
	o.ks *= 1930.0
	return
}

// hb returns the suction at which the 33-1500 kPa power curve reaches θs; the
// Brooks-Corey curve then honours θ(33) and θ(1500)
func (o saxtonRawls) hb() float64 {
	return 33.0 * math.Pow(o.th33/o.ths, o.b)
}
