// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package retention

import (
	"github.com/cpmech/gosl/plt"
)

// Plot plots θ(h) with suction on the vertical axis (log scale), as usual for soil water
// characteristic curves
//  hscale -- scale factor applied to suctions for display only; e.g. 10 for cm
func Plot(mdl Model, H []float64, hscale float64, args *plt.A) {
	Θ := Thetas(mdl, H)
	Y := make([]float64, len(H))
	for i, h := range H {
		Y[i] = h * hscale
	}
	plt.Plot(Θ, Y, args)
}

// PlotEnd sets axes and labels and saves figure if fnkey != ""
//  thresholds -- suctions to be marked with horizontal lines; e.g. FC and PWP
func PlotEnd(dirout, fnkey, unit string, hscale float64, thresholds ...float64) {
	for _, h := range thresholds {
		plt.AxHline(h*hscale, &plt.A{C: "r", Ls: "-", Lw: 0.8})
	}
	plt.SetYlog()
	plt.Gll("$\\theta$", "$h$ ["+unit+"]", nil)
	if fnkey != "" {
		plt.Save(dirout, fnkey)
	}
}
