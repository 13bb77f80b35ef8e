// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conduct

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Mualem implements Mualem's relative conductivity with van Genuchten's retention curve
type Mualem struct {
	L float64 // pore-connectivity exponent
	M float64 // van Genuchten m
}

// add model to factory
func init() {
	allocators["mualem"] = func() Model { return new(Mualem) }
}

// Init initialises this structure
func (o *Mualem) Init(prms dbf.Params) (err error) {
	o.L = 0.5
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "l":
			o.L = p.V
		case "m":
			o.M = p.V
		default:
			return chk.Err("mualem: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.M <= 0 {
		return chk.Err("mualem: m must be positive. m = %g", o.M)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Mualem) GetPrms(example bool) dbf.Params {
	if example {
		return dbf.Params{
			&dbf.P{N: "l", V: 0.5},
			&dbf.P{N: "m", V: 0.5},
		}
	}
	return dbf.Params{
		&dbf.P{N: "l", V: o.L},
		&dbf.P{N: "m", V: o.M},
	}
}

// Klr returns kr(Se)
func (o Mualem) Klr(se float64) (float64, error) {
	return Klr(se, o.L, o.M)
}
