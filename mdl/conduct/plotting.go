// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conduct

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

// Plot plots kr(Se) for Se in [semin, 1]
func Plot(o Model, semin float64, np int, withText bool, args *plt.A) (err error) {
	X := utl.LinSpace(semin, 1, np)
	Y := make([]float64, np)
	for i := 0; i < np; i++ {
		Y[i], err = o.Klr(X[i])
		if err != nil {
			return
		}
	}
	plt.Plot(X, Y, args)
	if withText {
		l := np - 1
		plt.Text(X[0], Y[0], io.Sf("(%g, %g)", X[0], Y[0]), &plt.A{Ha: "left", C: "r", Fsz: 8})
		plt.Text(X[l], Y[l], io.Sf("(%g, %g)", X[l], Y[l]), &plt.A{Ha: "right", C: "r", Fsz: 8})
	}
	plt.Gll("$S_e$", "$k_r$", nil)
	return
}

// PlotK plots K against suction (log-log) or against θ if vsTheta is true
//  hscale -- scale factor applied to suctions for display only; e.g. 10 for cm
func PlotK(o *MvG, H []float64, hscale float64, vsTheta bool, args *plt.A) {
	X := make([]float64, len(H))
	K := make([]float64, len(H))
	for i, h := range H {
		θ, k := o.ThetaK(h)
		X[i], K[i] = h*hscale, k
		if vsTheta {
			X[i] = θ
		}
	}
	plt.Plot(X, K, args)
	if !vsTheta {
		plt.SetXlog()
	}
	plt.SetYlog()
}

// PlotEnd sets labels and saves figure if fnkey != ""
func PlotEnd(dirout, fnkey, xlabel string) {
	plt.Gll(xlabel, "$K$", nil)
	if fnkey != "" {
		plt.Save(dirout, fnkey)
	}
}
