// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package batch

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/lucitools/LUCI-PTFs/mdl/soil"
	"github.com/lucitools/LUCI-PTFs/ptf"
	"github.com/lucitools/LUCI-PTFs/water"
)

// missing is written in place of the outputs of invalid records
const missing = ""

// WaterContentRows returns the table of water contents at the exported pressures
//  header: [IdCol, p1, ..., pn]
//  rows:   [id, WC(p1), ..., WC(pn)]
func WaterContentRows(out *Output) (header []string, rows [][]string, err error) {
	if len(out.Opts.Pressures) == 0 {
		return nil, nil, chk.Err("no pressures were requested")
	}
	header = append(header, out.Opts.IdCol)
	for _, p := range out.Opts.Pressures {
		header = append(header, io.Sf("%g", p))
	}
	for _, r := range out.Rows {
		rows = append(rows, line(r.Id, r.Valid, pad(r.WC, len(out.Opts.Pressures))))
	}
	return
}

// ConductivityRows returns the table of Mualem-van Genuchten conductivities [mm/h] at the
// exported pressures; with the same layout as WaterContentRows
func ConductivityRows(out *Output) (header []string, rows [][]string, err error) {
	if !out.Opts.Mualem {
		return nil, nil, chk.Err("conductivities were not requested")
	}
	header, _, err = WaterContentRows(out)
	if err != nil {
		return
	}
	for _, r := range out.Rows {
		rows = append(rows, line(r.Id, r.Valid, pad(r.K, len(out.Opts.Pressures))))
	}
	return
}

// QuantityRows returns the table of derived quantities
//  header: [IdCol, WC_sat, WC_fc, (WC_crit), WC_pwp, PAW, DW, TWC, RAW, (NRAW), (mmPAW, mmDW, mmTWC, mmRAW)]
func QuantityRows(out *Output) (header []string, rows [][]string, err error) {
	if !out.HasWater {
		return nil, nil, chk.Err("PTF %q does not give the water contents at the thresholds", out.Entry.Key)
	}
	header = quantityHeader(out.Opts.IdCol, out.Opts.Policy)
	for _, r := range out.Rows {
		if r.Valid {
			rows = append(rows, line(r.Id, true, quantityValues(r.Water, out.Opts.Policy)))
		} else {
			rows = append(rows, line(r.Id, false, make([]float64, len(header)-1)))
		}
	}
	return
}

// QuantityTable returns the table of derived quantities computed elsewhere; e.g. for models
// with known parameters. Same layout as QuantityRows.
func QuantityTable(idcol string, ids []string, qs []water.Quantities, pol water.Policy) (header []string, rows [][]string) {
	header = quantityHeader(idcol, pol)
	for i, id := range ids {
		rows = append(rows, line(id, true, quantityValues(&qs[i], pol)))
	}
	return
}

func quantityHeader(idcol string, pol water.Policy) (header []string) {
	crit, depth := pol.Mode == water.CriticalPoint, pol.Depth > 0
	header = []string{idcol, "WC_sat", "WC_fc"}
	if crit {
		header = append(header, "WC_crit")
	}
	header = append(header, "WC_pwp", "PAW", "DW", "TWC", "RAW")
	if crit {
		header = append(header, "NRAW")
	}
	if depth {
		header = append(header, "mmPAW", "mmDW", "mmTWC", "mmRAW")
	}
	return
}

func quantityValues(q *water.Quantities, pol water.Policy) (v []float64) {
	crit, depth := pol.Mode == water.CriticalPoint, pol.Depth > 0
	v = []float64{q.WcSat, q.WcFc}
	if crit {
		v = append(v, q.WcCrit)
	}
	v = append(v, q.WcPwp, q.PAW, q.DW, q.TWC, q.RAW)
	if crit {
		v = append(v, q.NRAW)
	}
	if depth {
		v = append(v, q.MmPAW, q.MmDW, q.MmTWC, q.MmRAW)
	}
	return
}

// ParamRows returns the table of estimated parameters
//  Brooks-Corey:  [IdCol, theta_r, theta_s, hb, lambda, (Ksat)]
//  van Genuchten: [IdCol, theta_r, theta_s, alpha, n, m, l, (Ksat)]
//  Ksat:          [IdCol, Ksat]
//  point:         [IdCol, WC_p1, ..., (Ksat)]
//  measured:      [IdCol, WC_sat, WC_fc, (WC_crit), WC_pwp]
func ParamRows(out *Output) (header []string, rows [][]string) {
	header = []string{out.Opts.IdCol}
	var aux []string
	switch out.Entry.Target {
	case ptf.TargetBC:
		header = append(header, "theta_r", "theta_s", "hb", "lambda")
	case ptf.TargetVG:
		header = append(header, "theta_r", "theta_s", "alpha", "n", "m", "l")
	case ptf.TargetPoint:
		for _, h := range out.Entry.Suctions {
			header = append(header, io.Sf("WC_%g", h))
		}
	case ptf.TargetContents:
		aux = []string{soil.FieldWcSat, soil.FieldWcFc}
		if out.Opts.Policy.Mode == water.CriticalPoint {
			aux = append(aux, soil.FieldWcCrit)
		}
		aux = append(aux, soil.FieldWcPwp)
		header = append(header, aux...)
	}
	withKsat := false
	for _, r := range out.Rows {
		if r.Valid && r.Result.HasKsat {
			withKsat = true
			break
		}
	}
	if withKsat || out.Entry.Target == ptf.TargetKsat {
		header = append(header, "Ksat")
	}
	for _, r := range out.Rows {
		v := make([]float64, 0, len(header)-1)
		if r.Valid {
			res := r.Result
			switch {
			case res.BC != nil:
				v = append(v, res.BC.ThR, res.BC.ThS, res.BC.Hb, res.BC.Lam)
			case res.VG != nil:
				v = append(v, res.VG.ThR, res.VG.ThS, res.VG.Alp, res.VG.N, res.VG.M, res.VG.L)
			}
			for _, p := range res.Points {
				v = append(v, p.Theta)
			}
			for _, k := range aux {
				v = append(v, res.Aux[k])
			}
			if len(v) < len(header)-1 {
				v = append(v, res.Ksat)
			}
		} else {
			v = v[:len(header)-1]
		}
		rows = append(rows, line(r.Id, r.Valid, v))
	}
	return
}

// line formats one row; values of invalid records are missing
func line(id string, valid bool, v []float64) []string {
	res := make([]string, 1+len(v))
	res[0] = id
	for i, x := range v {
		if valid {
			res[1+i] = io.Sf("%g", x)
		} else {
			res[1+i] = missing
		}
	}
	return res
}

// pad returns v or n zeros if v is missing
func pad(v []float64, n int) []float64 {
	if len(v) == n {
		return v
	}
	return make([]float64, n)
}
