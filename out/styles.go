// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/gosl/plt"
)

// Colors holds the colours cycled through when plotting many records
var Colors = []string{"b", "r", "g", "m", "c", "k", "#ff7f0e", "#8c564b", "#7f7f7f", "#bcbd22"}

// Styles holds one style per curve
type Styles []plt.A

// GetDefaultStyles returns styles cycling through Colors, labelled with the record identifiers
func GetDefaultStyles(ids []string) Styles {
	sty := make([]plt.A, len(ids))
	for i, id := range ids {
		sty[i].C = Colors[i%len(Colors)]
		sty[i].L = id
		sty[i].Lw = 1.5
	}
	return sty
}

// GetTexLabel returns the label of a quantity for plot axes
func GetTexLabel(key, unit string) string {
	l := "$"
	switch key {
	case "h":
		l += "h"
	case "theta", "wc":
		l += "\\theta"
	case "K", "k":
		l += "K"
	case "kr", "klr":
		l += "k_r"
	case "Se", "se":
		l += "S_e"
	case "PAW":
		l += "\\theta_{fc} - \\theta_{pwp}"
	default:
		l += key
	}
	if unit != "" {
		l += "\\;[" + unit + "]"
	}
	l += "$"
	return l
}
