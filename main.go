// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/lucitools/LUCI-PTFs/batch"
	"github.com/lucitools/LUCI-PTFs/guard"
	"github.com/lucitools/LUCI-PTFs/inp"
	"github.com/lucitools/LUCI-PTFs/out"
	"github.com/lucitools/LUCI-PTFs/ptf"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".run", true)
	verbose := io.ArgToBool(1, true)

	// message
	if verbose {
		io.Pf("\nLUCI-PTFs -- soil hydraulic pedotransfer functions\n")
		io.Pf("Copyright 2016 The LUCI-PTFs Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"run file path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
		))
	}

	// cancel on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// run
	io.Verbose = verbose
	if err := run(ctx, fnamepath); err != nil {
		io.Pfred("\nERROR: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run reads the run file, evaluates the pedotransfer function and writes all outputs
func run(ctx context.Context, fnamepath string) (err error) {

	// run data
	r, err := inp.ReadRun(fnamepath)
	if err != nil {
		return
	}
	if io.Verbose {
		io.Pf("%s\n", r.GetInfo())
	}

	// source
	var src batch.Source
	switch {
	case r.Data.SoilFile != "":
		src, err = inp.ReadSoils(r.Path(r.Data.SoilFile), r.Data.IdCol)
		if err != nil {
			return
		}
	case r.Data.PgDsn != "":
		pg, e := inp.OpenPg(ctx, r.Data.PgDsn, r.Data.PgTable, r.Data.IdCol)
		if e != nil {
			return e
		}
		defer pg.Close()
		src = pg
	default:
		return chk.Err("run %q: either soilfile or pgdsn must be given", r.Key)
	}

	// metrics
	reg := prometheus.NewRegistry()
	opts := r.Options()
	opts.Metrics = batch.NewMetrics("luci_ptf", reg)

	// evaluate
	res, err := batch.Run(ctx, src, opts)
	if err != nil {
		return
	}
	if io.Verbose {
		io.Pforan("%d records, %d invalid, %d warnings\n", len(res.Rows), res.Invalid, len(res.Warnings))
	}

	// sinks
	sinks := []batch.Sink{out.CSVSink{DirOut: r.Data.DirOut, FnKey: r.Key, Unit: r.Unit}}
	if r.Data.InfluxURL != "" {
		sink, closeFcn, e := out.NewInfluxSink(r.Data.InfluxURL, r.InfluxTk, r.Data.InfluxOrg, r.Data.InfluxBucket)
		if e != nil {
			return e
		}
		defer closeFcn()
		sinks = append(sinks, sink)
	}
	if err = batch.Export(ctx, res, sinks...); err != nil {
		return
	}
	if err = writeWarnings(r, res.Warnings); err != nil {
		return
	}

	// models with known parameters
	if r.Data.ModelFile != "" {
		if err = runModels(r, opts); err != nil {
			return
		}
	}

	// plots
	if r.Data.Plot && res.Entry.Target != ptf.TargetKsat && res.Entry.Target != ptf.TargetContents {
		pd := out.PlotData{DirOut: r.Data.DirOut, FnKey: r.Key, Unit: r.Unit, Np: r.Data.NumPts}
		if err = out.PlotRetention(res, pd); err != nil {
			return
		}
		if res.Entry.Mualem {
			if err = out.PlotConductivity(res, pd, false); err != nil {
				return
			}
		}
	}

	// metrics in node_exporter textfile format
	return prometheus.WriteToTextfile(filepath.Join(r.Data.DirOut, r.Key+".prom"), reg)
}

// writeWarnings writes all warnings to dirout/key_warnings.csv
func writeWarnings(r *inp.Run, list []guard.Warning) error {
	header := []string{"index", r.Data.IdCol, "kind", "attribute", "value", "message"}
	rows := make([][]string, len(list))
	for i, w := range list {
		rows[i] = []string{io.Sf("%d", w.Index), w.Record, w.Kind.String(), w.Attribute, io.Sf("%g", w.Value), w.Msg}
	}
	return out.WriteCSV(r.Data.DirOut, r.Key+"_warnings.csv", header, rows)
}

// runModels computes the derived quantities of models with known parameters
func runModels(r *inp.Run, opts batch.Options) (err error) {
	mdb, err := inp.ReadModels(r.Path(r.Data.ModelFile))
	if err != nil {
		return
	}
	opts.SetDefault()
	diag := &guard.Diagnostics{Verbose: opts.Verbose}
	names, qs, err := mdb.Quantities(diag, opts.Thresholds, opts.Policy)
	if err != nil {
		return
	}
	header, rows := batch.QuantityTable("model", names, qs, opts.Policy)
	return out.WriteCSV(r.Data.DirOut, r.Key+"_models.csv", header, rows)
}
