// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/plt"
	"github.com/lucitools/LUCI-PTFs/batch"
	"github.com/lucitools/LUCI-PTFs/mdl/conduct"
	"github.com/lucitools/LUCI-PTFs/mdl/retention"
)

// PlotData holds the options of diagnostic plots
type PlotData struct {
	DirOut string  // output directory
	FnKey  string  // prefix of file names; no file is saved if empty
	Unit   Unit    // pressure unit for display
	Hmin   float64 // minimum suction [kPa]; > 0 because of the log scale
	Hmax   float64 // maximum suction [kPa]
	Np     int     // number of points
}

// SetDefault sets default values
func (o *PlotData) SetDefault() {
	if o.Unit.Scale == 0 {
		o.Unit = KPa
	}
	if o.Hmin <= 0 {
		o.Hmin = 0.1
	}
	if o.Hmax <= o.Hmin {
		o.Hmax = 15000
	}
	if o.Np < 2 {
		o.Np = 101
	}
}

// PlotRetention plots the retention curves of all valid records marking field capacity and
// wilting point. PTFs estimating water contents at fixed suctions are plotted as points.
func PlotRetention(res *batch.Output, pd PlotData) (err error) {
	pd.SetDefault()
	H, err := retention.Space(pd.Hmin, pd.Hmax, pd.Np, true)
	if err != nil {
		return
	}
	sty := GetDefaultStyles(ids(res))
	plt.Reset(false, nil)
	for i, row := range res.Rows {
		if !row.Valid || row.Result == nil {
			continue
		}
		if mdl := row.Result.Curve(); mdl != nil {
			retention.Plot(mdl, H, pd.Unit.Scale, &sty[i])
			continue
		}
		var X, Y []float64
		for _, p := range row.Result.Points {
			if p.H <= 0 {
				continue
			}
			X = append(X, p.Theta)
			Y = append(Y, pd.Unit.FromKPa(p.H))
		}
		sty[i].M, sty[i].Ls = "o", "none"
		plt.Plot(X, Y, &sty[i])
	}
	fnkey := ""
	if pd.FnKey != "" {
		fnkey = pd.FnKey + "_reten"
	}
	thr := res.Opts.Thresholds
	retention.PlotEnd(pd.DirOut, fnkey, pd.Unit.Name, pd.Unit.Scale, thr.Fc, thr.Pwp)
	return
}

// PlotConductivity plots the Mualem-van Genuchten conductivity of all valid records
//  vsTheta -- plot K against θ instead of suction
func PlotConductivity(res *batch.Output, pd PlotData, vsTheta bool) (err error) {
	pd.SetDefault()
	if !res.Entry.Mualem {
		return chk.Err("PTF %q does not estimate the Mualem-van Genuchten parameters", res.Entry.Key)
	}
	H, err := retention.Space(pd.Hmin, pd.Hmax, pd.Np, true)
	if err != nil {
		return
	}
	sty := GetDefaultStyles(ids(res))
	plt.Reset(false, nil)
	for i, row := range res.Rows {
		if !row.Valid || row.Result == nil {
			continue
		}
		mvg, e := conduct.NewMvG(row.Result.VG)
		if e != nil {
			continue
		}
		conduct.PlotK(mvg, H, pd.Unit.Scale, vsTheta, &sty[i])
	}
	fnkey, xlabel := "", GetTexLabel("h", pd.Unit.Name)
	if vsTheta {
		xlabel = GetTexLabel("theta", "")
	}
	if pd.FnKey != "" {
		fnkey = pd.FnKey + "_cond"
	}
	conduct.PlotEnd(pd.DirOut, fnkey, xlabel)
	return
}

// ids returns the identifiers of all records
func ids(res *batch.Output) []string {
	l := make([]string, len(res.Rows))
	for i, row := range res.Rows {
		l[i] = row.Id
	}
	return l
}
