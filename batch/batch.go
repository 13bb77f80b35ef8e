// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package batch runs one pedotransfer function over a set of soil records and computes the
// derived water quantities of each record
package batch

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/lucitools/LUCI-PTFs/guard"
	"github.com/lucitools/LUCI-PTFs/mdl/conduct"
	"github.com/lucitools/LUCI-PTFs/mdl/soil"
	"github.com/lucitools/LUCI-PTFs/ptf"
	"github.com/lucitools/LUCI-PTFs/water"
)

// Source supplies soil records
type Source interface {
	Fields() []string                                   // names of available fields
	Records(ctx context.Context) ([]soil.Values, error) // all records in input order
}

// Sink consumes the results of a run
type Sink interface {
	Write(ctx context.Context, out *Output) error
}

// SliceSource is a Source holding records in memory
type SliceSource struct {
	Names []string
	Data  []soil.Values
}

// Fields returns the field names
func (o SliceSource) Fields() []string { return o.Names }

// Records returns the records
func (o SliceSource) Records(ctx context.Context) ([]soil.Values, error) { return o.Data, nil }

// Options holds the options of a run
type Options struct {
	PTF        string           // key of pedotransfer function
	Basis      soil.Basis       // carbon basis of input
	ConvFactor float64          // carbon conversion factor; 0 means default
	Thresholds water.Thresholds // suctions of saturation, field capacity, critical and wilting points
	Policy     water.Policy     // RAW mode, fraction and rooting depth
	Pressures  []float64        // suctions [kPa] at which water contents are exported
	Mualem     bool             // compute Mualem-van Genuchten conductivities at Pressures
	NumWorkers int              // number of goroutines; 0 means number of CPUs
	IdCol      string           // name of identifier column in exported tables
	Verbose    bool             // print warnings as they arrive
	Metrics    *Metrics         // optional collector

	// ThresholdFields names the record attributes holding site-specific thresholds [kPa].
	// They replace the corresponding values of Thresholds record by record.
	ThresholdFields ThresholdFields

	// ThresholdsOf returns the thresholds of one record; e.g. a site-specific field
	// capacity. nil means Thresholds for all records.
	ThresholdsOf func(rec soil.Record) water.Thresholds
}

// ThresholdFields holds the names of fields with per-record suctions; empty means not used
type ThresholdFields struct {
	Fc   string // field capacity
	Crit string // critical point
	Pwp  string // permanent wilting point
}

// names returns the non-empty field names
func (o ThresholdFields) names() (res []string) {
	for _, f := range []string{o.Fc, o.Crit, o.Pwp} {
		if f != "" {
			res = append(res, f)
		}
	}
	return
}

// apply replaces the thresholds given by fields of one record
func (o ThresholdFields) apply(thr *water.Thresholds, v soil.Values) {
	if o.Fc != "" {
		thr.Fc = v.V[o.Fc]
	}
	if o.Crit != "" {
		thr.Crit = v.V[o.Crit]
	}
	if o.Pwp != "" {
		thr.Pwp = v.V[o.Pwp]
	}
}

// SetDefault sets default values
func (o *Options) SetDefault() {
	if o.Basis == "" {
		o.Basis = soil.OC
	}
	if o.Thresholds.Fc == 0 && o.Thresholds.Pwp == 0 {
		crit := o.Thresholds.Crit
		o.Thresholds = water.DefaultThresholds()
		o.Thresholds.Crit = crit
	}
	if o.Policy.Mode == water.Fraction && o.Policy.Frac == 0 {
		o.Policy.Frac = water.DefaultRawFrac
	}
	if o.NumWorkers <= 0 {
		o.NumWorkers = runtime.NumCPU()
	}
	if o.IdCol == "" {
		o.IdCol = soil.FieldId
	}
}

// perRecord returns whether thresholds may change from record to record
func (o *Options) perRecord() bool {
	return o.ThresholdsOf != nil || len(o.ThresholdFields.names()) > 0
}

// check checks the options against the selected PTF
func (o *Options) check(e *ptf.Entry) error {
	if o.Basis != soil.OC && o.Basis != soil.OM {
		return &guard.UnknownOptionError{Option: "carbon", Value: string(o.Basis)}
	}
	if o.ConvFactor < 0 {
		return chk.Err("carbon conversion factor must be non-negative. factor = %g", o.ConvFactor)
	}
	for _, p := range o.Pressures {
		if p < 0 || math.IsNaN(p) {
			return chk.Err("pressures must be non-negative. p = %g", p)
		}
	}
	if o.Mualem && !e.Mualem {
		return chk.Err("PTF %q does not estimate the Mualem-van Genuchten parameters", e.Key)
	}
	switch e.Target {
	case ptf.TargetKsat:
		if len(o.Pressures) > 0 {
			return chk.Err("PTF %q only estimates Ksat; water contents at pressures are not available", e.Key)
		}
		return nil
	case ptf.TargetContents:
		if len(o.Pressures) > 0 {
			return chk.Err("measured water contents are only known at the thresholds; pressures are not available")
		}
		if o.perRecord() {
			return chk.Err("measured water contents do not depend on threshold suctions")
		}
		return o.Policy.Check()
	}
	if err := o.Thresholds.Check(o.Policy.Mode); err != nil {
		return err
	}
	if err := o.Policy.Check(); err != nil {
		return err
	}
	if e.Target == ptf.TargetPoint {
		for _, h := range o.Pressures {
			if !e.Estimates(h) {
				return chk.Err("PTF %q estimates water contents at %v kPa only. %g kPa is not available", e.Key, e.Suctions, h)
			}
		}
		if !hasWater(e) {
			return nil
		}
		if o.Policy.Mode == water.CriticalPoint {
			return chk.Err("PTF %q estimates water contents at fixed suctions; CriticalPoint mode is not available", e.Key)
		}
		if o.perRecord() {
			return nil
		}
		for _, h := range []float64{o.Thresholds.Sat, o.Thresholds.Fc, o.Thresholds.Pwp} {
			if !e.Estimates(h) {
				return chk.Err("PTF %q estimates water contents at %v kPa only. %g kPa is not available", e.Key, e.Suctions, h)
			}
		}
	}
	return nil
}

// hasWater returns whether the derived quantities can be computed. Point PTFs without an
// estimate at saturation only give their point values.
func hasWater(e *ptf.Entry) bool {
	switch e.Target {
	case ptf.TargetKsat:
		return false
	case ptf.TargetPoint:
		return e.Estimates(0)
	}
	return true
}

// Row holds the results of one record
type Row struct {
	Index  int               // position in input
	Id     string            // record identifier
	Valid  bool              // outputs are available
	Err    error             // DomainError that invalidated the record
	Result *ptf.Result       // PTF outputs
	Water  *water.Quantities // derived quantities; nil without Output.HasWater
	WC     []float64         // water contents at Options.Pressures
	K      []float64         // conductivities [mm/h] at Options.Pressures (Mualem)
}

// Output holds the results of a run
type Output struct {
	Entry    *ptf.Entry      // selected PTF
	Opts     Options         // options with defaults
	Rows     []Row           // one row per record in input order
	Warnings []guard.Warning // warnings sorted by record index
	Invalid  int             // number of invalid records
	HasWater bool            // derived quantities were computed
}

// Run evaluates the PTF selected in opts over all records of src.
//  Unknown keys, missing fields and inconsistent options are reported before any record is
//  processed. DomainErrors invalidate single records only.
func Run(ctx context.Context, src Source, opts Options) (out *Output, err error) {
	start := time.Now()
	opts.SetDefault()
	entry, err := ptf.Lookup(opts.PTF)
	if err != nil {
		return
	}
	if err = opts.check(entry); err != nil {
		return
	}
	fields := soil.Resolve(entry.Fields, opts.Basis)
	if entry.Target == ptf.TargetContents && opts.Policy.Mode == water.CriticalPoint {
		fields = append(fields, soil.FieldWcCrit)
	}
	if err = soil.CheckFields(src.Fields(), fields, opts.PTF); err != nil {
		return
	}
	if err = soil.CheckFields(src.Fields(), opts.ThresholdFields.names(), "thresholds"); err != nil {
		return
	}
	fields = append(fields, opts.ThresholdFields.names()...)
	vals, err := src.Records(ctx)
	if err != nil {
		return
	}

	r := &runner{
		opts:   opts,
		entry:  entry,
		fields: fields,
		water:  hasWater(entry),
		diag:   &guard.Diagnostics{Verbose: opts.Verbose},
	}
	out = &Output{Entry: entry, Opts: opts, Rows: make([]Row, len(vals)), HasWater: r.water}

	jobs := make(chan int)
	var wg sync.WaitGroup
	nw := min(opts.NumWorkers, len(vals))
	wg.Add(nw)
	for w := 0; w < nw; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				out.Rows[i] = r.eval(i, vals[i])
			}
		}()
	}
feed:
	for i := range vals {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	out.Warnings = r.diag.List()
	for _, row := range out.Rows {
		if !row.Valid {
			out.Invalid++
		}
	}
	opts.Metrics.observe(out, time.Since(start))
	if opts.Verbose {
		io.Pf("%s: %d records, %d invalid, %d warnings\n", entry.Key, len(out.Rows), out.Invalid, len(out.Warnings))
	}
	return
}

// Export writes the output to all sinks
func Export(ctx context.Context, out *Output, sinks ...Sink) error {
	for _, s := range sinks {
		if err := s.Write(ctx, out); err != nil {
			return err
		}
	}
	return nil
}

// runner holds the read-only state shared by workers
type runner struct {
	opts   Options
	entry  *ptf.Entry
	fields []string // required fields
	water  bool     // compute derived quantities
	diag   *guard.Diagnostics
}

// eval evaluates one record
func (o *runner) eval(i int, v soil.Values) (row Row) {
	rec := v.Record(o.opts.Basis, o.opts.ConvFactor)
	if rec.Id == "" {
		rec.Id = io.Sf("%d", i)
	}
	row = Row{Index: i, Id: rec.Id}
	s := o.diag.Scoped(i, rec.Id)
	if miss := v.Missing(o.fields); len(miss) > 0 {
		invalidate(s, &row, guard.Domain(miss[0], math.NaN(), "value is missing"))
		for _, f := range miss[1:] {
			s.Add(guard.DomainWarning, f, math.NaN(), "value is missing")
		}
		return
	}
	soil.CheckInputs(s, rec, o.fields)

	res, err := o.entry.Eval(rec)
	if err != nil {
		invalidate(s, &row, err)
		return
	}
	row.Result = res
	if res.HasKsat {
		guard.CheckNonNeg(s, "Ksat", res.Ksat)
	}
	if θ0, ok := res.Theta(0); ok && rec.BD > 0 {
		guard.CheckSaturation(s, θ0, rec.Porosity())
	}
	if !o.water {
		o.pressures(&row, res)
		row.Valid = true
		return
	}

	var q water.Quantities
	switch {
	case o.entry.Target == ptf.TargetContents:
		crit := math.NaN()
		if o.opts.Policy.Mode == water.CriticalPoint {
			crit = rec.WcCrit
		}
		q, err = water.FromContents(s, rec.WcSat, rec.WcFc, crit, rec.WcPwp, o.opts.Policy)
	case res.Curve() != nil:
		var thr water.Thresholds
		if thr, err = o.thresholds(rec, v); err != nil {
			break
		}
		curve := res.Curve()
		guard.CheckTheta(s, "theta_r", curve.ThetaR())
		guard.CheckTheta(s, "theta_s", curve.ThetaS())
		if curve.ThetaR() >= curve.ThetaS() {
			s.Add(guard.ConsistencyWarning, "theta_r", curve.ThetaR(), "residual water content is not below θs = %g", curve.ThetaS())
		}
		q, err = water.Calc(s, curve, thr, o.opts.Policy)
	default:
		var thr water.Thresholds
		if thr, err = o.thresholds(rec, v); err != nil {
			break
		}
		var w [3]float64
		for j, h := range []float64{thr.Sat, thr.Fc, thr.Pwp} {
			var ok bool
			if w[j], ok = res.Theta(h); !ok {
				err = guard.Domain("suction", h, io.Sf("PTF %s estimates water contents at %v kPa only", o.entry.Key, o.entry.Suctions))
				break
			}
		}
		if err == nil {
			q, err = water.FromContents(s, w[0], w[1], math.NaN(), w[2], o.opts.Policy)
		}
	}
	if err != nil {
		invalidate(s, &row, err)
		return
	}
	row.Water = &q

	o.pressures(&row, res)
	if o.opts.Mualem {
		mvg, err := conduct.NewMvG(res.VG)
		if err != nil {
			invalidate(s, &row, guard.Domain("Ksat", res.Ksat, err.Error()))
			return
		}
		row.K = make([]float64, len(o.opts.Pressures))
		for j, p := range o.opts.Pressures {
			row.K[j] = mvg.K(p)
		}
	}
	row.Valid = true
	return
}

// thresholds returns the thresholds of one record
func (o *runner) thresholds(rec soil.Record, v soil.Values) (thr water.Thresholds, err error) {
	thr = o.opts.Thresholds
	if !o.opts.perRecord() {
		return
	}
	if o.opts.ThresholdsOf != nil {
		thr = o.opts.ThresholdsOf(rec)
	}
	o.opts.ThresholdFields.apply(&thr, v)
	err = thr.Check(o.opts.Policy.Mode)
	return
}

// pressures sets the water contents at the exported pressures
func (o *runner) pressures(row *Row, res *ptf.Result) {
	if n := len(o.opts.Pressures); n > 0 {
		row.WC = make([]float64, n)
		for j, p := range o.opts.Pressures {
			row.WC[j], _ = res.Theta(p)
		}
	}
}

// invalidate marks a record as invalid and records a domain warning
func invalidate(s *guard.Scope, row *Row, err error) {
	var de *guard.DomainError
	if errors.As(err, &de) {
		de.Record = row.Id
		s.Add(guard.DomainWarning, de.Quantity, de.Value, "%s", de.Reason)
	} else {
		s.Add(guard.DomainWarning, "", math.NaN(), "%v", err)
	}
	row.Valid, row.Err = false, err
	row.Result, row.Water, row.WC, row.K = nil, nil, nil, nil
}
