// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/lucitools/LUCI-PTFs/batch"
)

// WriteCSV writes a table to dirout/fn creating dirout if needed
func WriteCSV(dirout, fn string, header []string, rows [][]string) (err error) {
	err = os.MkdirAll(dirout, 0777)
	if err != nil {
		return chk.Err("cannot create directory for output results (%s): %v", dirout, err)
	}
	f, err := os.Create(filepath.Join(dirout, fn))
	if err != nil {
		return
	}
	defer func() {
		if e := f.Close(); err == nil {
			err = e
		}
	}()
	w := csv.NewWriter(f)
	if err = w.Write(header); err != nil {
		return
	}
	if err = w.WriteAll(rows); err != nil {
		return
	}
	if io.Verbose {
		io.Pfblue2("file <%s> written\n", filepath.Join(dirout, fn))
	}
	return
}

// CSVSink writes the tables of a run into a directory
//  fnkey_params.csv     estimated parameters
//  fnkey_water.csv      derived quantities, if computed
//  fnkey_wc.csv         water contents at the exported pressures, if any
//  fnkey_k.csv          Mualem-van Genuchten conductivities, if requested
type CSVSink struct {
	DirOut string // output directory
	FnKey  string // prefix of file names
	Unit   Unit   // unit of pressures in headers of pressure tables
}

// Write writes all tables
func (o CSVSink) Write(_ context.Context, res *batch.Output) (err error) {
	header, rows := batch.ParamRows(res)
	if err = WriteCSV(o.DirOut, o.FnKey+"_params.csv", header, rows); err != nil {
		return
	}
	if res.HasWater {
		if header, rows, err = batch.QuantityRows(res); err != nil {
			return
		}
		if err = WriteCSV(o.DirOut, o.FnKey+"_water.csv", header, rows); err != nil {
			return
		}
	}
	if len(res.Opts.Pressures) > 0 {
		if header, rows, err = batch.WaterContentRows(res); err != nil {
			return
		}
		if err = WriteCSV(o.DirOut, o.FnKey+"_wc.csv", o.relabel(header, res.Opts.Pressures), rows); err != nil {
			return
		}
	}
	if res.Opts.Mualem {
		if header, rows, err = batch.ConductivityRows(res); err != nil {
			return
		}
		err = WriteCSV(o.DirOut, o.FnKey+"_k.csv", o.relabel(header, res.Opts.Pressures), rows)
	}
	return
}

// relabel converts the pressures in a header into the display unit
func (o CSVSink) relabel(header []string, P []float64) []string {
	if o.Unit.Scale == 0 || o.Unit == KPa {
		return header
	}
	res := append([]string{}, header...)
	for i, p := range P {
		res[1+i] = io.Sf("%g", o.Unit.FromKPa(p))
	}
	return res
}
