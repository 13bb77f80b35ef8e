// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"strings"

	"github.com/cpmech/gosl/chk"
)

// Unit defines how pressures are displayed. Computations are always performed in kPa.
type Unit struct {
	Name  string  // e.g. "kPa"
	Scale float64 // value in this unit = Scale · value in kPa
}

// pressure units
var (
	KPa = Unit{"kPa", 1}
	Cm  = Unit{"cm", 10}
	M   = Unit{"m", 0.1}
)

// ParseUnit parses "kPa", "cm" or "m"
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kpa", "":
		return KPa, nil
	case "cm":
		return Cm, nil
	case "m":
		return M, nil
	}
	return Unit{}, chk.Err("pressure unit %q is incorrect; options are \"kPa\", \"cm\" and \"m\"", s)
}

// FromKPa converts a pressure in kPa into this unit
func (o Unit) FromKPa(h float64) float64 { return h * o.Scale }

// ToKPa converts a pressure in this unit into kPa
func (o Unit) ToKPa(p float64) float64 { return p / o.Scale }

func (o Unit) String() string { return o.Name }
