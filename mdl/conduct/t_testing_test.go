// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conduct

import "github.com/cpmech/gosl/fun/dbf"

// dbfPrms returns van Genuchten parameters; m = 0 means m = 1 - 1/n
func dbfPrms(thr, ths, alp, n, m, l, ksat float64) dbf.Params {
	prms := dbf.Params{
		&dbf.P{N: "thr", V: thr},
		&dbf.P{N: "ths", V: ths},
		&dbf.P{N: "alp", V: alp},
		&dbf.P{N: "n", V: n},
		&dbf.P{N: "m", V: m},
		&dbf.P{N: "l", V: l},
		&dbf.P{N: "ksat", V: ksat},
	}
	return prms
}
