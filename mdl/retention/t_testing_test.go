// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package retention

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// checkNonIncreasing checks that θ does not increase with suction
func checkNonIncreasing(tst *testing.T, H, Θ []float64) {
	for i := 1; i < len(H); i++ {
		if Θ[i] > Θ[i-1] {
			tst.Errorf("θ increases from h=%g to h=%g: %g > %g\n", H[i-1], H[i], Θ[i], Θ[i-1])
			return
		}
	}
}

// checkCc compares Cc with a central difference of θ(h)
func checkCc(tst *testing.T, mdl Model, H []float64, tol float64) {
	for _, h := range H {
		δ := 1e-6 * math.Max(h, 1)
		num := (mdl.Theta(h+δ) - mdl.Theta(h-δ)) / (2 * δ)
		ana := mdl.Cc(h)
		if math.Abs(ana-num) > tol {
			tst.Errorf("Cc(%g): analytical %g and numerical %g differ by more than %g\n", h, ana, num, tol)
			return
		}
		io.Pforan("Cc(%g) = %v (numerical = %v)\n", h, ana, num)
	}
}

// dbf2 converts a map into parameters
func dbf2(m map[string]float64) (prms dbf.Params) {
	for n, v := range m {
		prms = append(prms, &dbf.P{N: n, V: v})
	}
	return
}
