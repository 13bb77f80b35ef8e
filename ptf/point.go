// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ptf

import (
	"github.com/lucitools/LUCI-PTFs/mdl/soil"
)

// suctions [kPa] of saturation, field capacity and wilting point
var satFcPwp = []float64{0, 33, 1500}

// regressions of Rawls et al. (1982); OM in %
var (
	rawls33   = Regression{T(0.2576), T(-0.0020, X(Sand)), T(0.0036, X(Clay)), T(0.0299, X(OM))}
	rawls1500 = Regression{T(0.0260), T(0.0050, X(Clay)), T(0.0158, X(OM))}
)

// add point PTFs to catalog
func init() {
	register(
		&Entry{
			Key:      Saxton1986,
			Label:    "Saxton et al. (1986)",
			Target:   TargetPoint,
			Fields:   []string{soil.FieldSand, soil.FieldClay},
			Suctions: satFcPwp,
			Fn: func(rec soil.Record) (*Result, error) {
				c, err := newSaxton86(rec)
				if err != nil {
					return nil, err
				}
				res := &Result{Aux: map[string]float64{"A": c.a, "B": c.b}}
				for _, h := range satFcPwp {
					res.Points = append(res.Points, Point{h, c.theta(h)})
				}
				return res, nil
			},
		},
		&Entry{
			Key:      SaxtonRawls2006,
			Label:    "Saxton and Rawls (2006)",
			Target:   TargetPoint,
			Fields:   []string{soil.FieldSand, soil.FieldClay, soil.FieldCarbon},
			Suctions: satFcPwp,
			Fn: func(rec soil.Record) (*Result, error) {
				c, err := newSaxtonRawls(rec)
				if err != nil {
					return nil, err
				}
				res := &Result{
					Points: []Point{{0, c.ths}, {33, c.th33}, {1500, c.th1500}},
					Aux:    map[string]float64{"psi_e": c.psie, "B": c.b},
				}
				res.setKsat(c.ks)
				return res, nil
			},
		},
		&Entry{
			Key:      Rawls1982,
			Label:    "Rawls et al. (1982)",
			Target:   TargetPoint,
			Fields:   []string{soil.FieldSand, soil.FieldClay, soil.FieldCarbon},
			Suctions: []float64{33, 1500},
			Fn: func(rec soil.Record) (*Result, error) {
				x := NewVars(rec)
				th33, err := rawls33.Eval(&x)
				if err != nil {
					return nil, err
				}
				th1500, err := rawls1500.Eval(&x)
				if err != nil {
					return nil, err
				}
				return &Result{Points: []Point{{33, th33}, {1500, th1500}}}, nil
			},
		},
		&Entry{
			Key:    Measured,
			Label:  "measured water contents",
			Target: TargetContents,
			Fields: []string{soil.FieldWcSat, soil.FieldWcFc, soil.FieldWcPwp},
			Fn: func(rec soil.Record) (*Result, error) {
				return &Result{Aux: map[string]float64{
					soil.FieldWcSat:  rec.WcSat,
					soil.FieldWcFc:   rec.WcFc,
					soil.FieldWcCrit: rec.WcCrit,
					soil.FieldWcPwp:  rec.WcPwp,
				}}, nil
			},
		},
	)
}
