// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/lucitools/LUCI-PTFs/guard"
	"github.com/lucitools/LUCI-PTFs/mdl/soil"
	"github.com/lucitools/LUCI-PTFs/ptf"
	"github.com/lucitools/LUCI-PTFs/water"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

var allFields = []string{"LUCIname", "Sand", "Silt", "Clay", "BD", "OC"}

func values(id string, sand, silt, clay, bd, oc float64) soil.Values {
	return soil.Values{Id: id, V: map[string]float64{"Sand": sand, "Silt": silt, "Clay": clay, "BD": bd, "OC": oc}}
}

// three records; the second one has no clay
func source3() SliceSource {
	return SliceSource{
		Names: allFields,
		Data: []soil.Values{
			values("r1", 30, 40, 30, 1.3, 2),
			values("r2", 90, 10, 0, 1.6, 0.4),
			values("r3", 60, 25, 15, 1.45, 1),
		},
	}
}

// run runs a batch and stops the test on failure
func run(tst *testing.T, src Source, opts Options) *Output {
	out, err := Run(context.Background(), src, opts)
	if err != nil {
		tst.Fatalf("Run failed: %v\n", err)
	}
	return out
}

func Test_batch01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("batch01. record with domain error")

	src := source3()
	out := run(tst, src, Options{PTF: "Saxton_1986_BC", NumWorkers: 3, Verbose: chk.Verbose})
	chk.Int(tst, "number of rows", len(out.Rows), 3)
	chk.Int(tst, "number of invalid", out.Invalid, 1)

	e, _ := ptf.Lookup("Saxton_1986_BC")
	for i, row := range out.Rows {
		chk.Int(tst, "index", row.Index, i)
		chk.String(tst, row.Id, src.Data[i].Id)
		if i == 1 {
			continue
		}
		if !row.Valid {
			tst.Errorf("record %q should be valid: %v\n", row.Id, row.Err)
			return
		}
		res, err := e.Eval(src.Data[i].Record(soil.OC, 0))
		if err != nil {
			tst.Errorf("Eval failed: %v\n", err)
			return
		}
		chk.Float64(tst, "θs", 1e-15, row.Result.BC.ThS, res.BC.ThS)
		chk.Float64(tst, "hb", 1e-15, row.Result.BC.Hb, res.BC.Hb)
		chk.Float64(tst, "λ", 1e-15, row.Result.BC.Lam, res.BC.Lam)
		chk.Float64(tst, "TWC = PAW + DW", 1e-15, row.Water.TWC, row.Water.PAW+row.Water.DW)
		chk.Float64(tst, "RAW", 1e-15, row.Water.RAW, water.DefaultRawFrac*row.Water.PAW)
	}

	bad := out.Rows[1]
	if bad.Valid || bad.Result != nil || bad.Water != nil {
		tst.Errorf("second record should be invalid without outputs\n")
		return
	}
	var de *guard.DomainError
	if !errors.As(bad.Err, &de) {
		tst.Errorf("DomainError expected. got %v\n", bad.Err)
		return
	}
	chk.String(tst, de.Record, "r2")

	var domain []guard.Warning
	for _, w := range out.Warnings {
		if w.Kind == guard.DomainWarning {
			domain = append(domain, w)
		}
	}
	chk.Int(tst, "number of domain warnings", len(domain), 1)
	chk.Int(tst, "index of warning", domain[0].Index, 1)
	chk.String(tst, domain[0].Record, "r2")
	chk.String(tst, domain[0].Attribute, de.Quantity)
}

func Test_batch02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("batch02. errors before processing")

	src := source3()
	ctx := context.Background()

	_, err := Run(ctx, src, Options{PTF: "Smith_2020"})
	var ue *guard.UnknownOptionError
	if !errors.As(err, &ue) {
		tst.Errorf("UnknownOptionError expected. got %v\n", err)
		return
	}
	chk.String(tst, ue.Option, "ptf")

	_, err = Run(ctx, src, Options{PTF: "Cosby_1984", Basis: "carbon"})
	if !errors.As(err, &ue) {
		tst.Errorf("UnknownOptionError expected. got %v\n", err)
		return
	}
	chk.String(tst, ue.Option, "carbon")

	nobd := SliceSource{Names: []string{"Sand", "Silt", "Clay", "OC"}, Data: src.Data}
	_, err = Run(ctx, nobd, Options{PTF: "Jabro_1992"})
	var me *guard.MissingFieldError
	if !errors.As(err, &me) {
		tst.Errorf("MissingFieldError expected. got %v\n", err)
		return
	}
	chk.String(tst, me.Field, "BD")

	_, err = Run(ctx, src, Options{PTF: "Wosten_1999_top", Basis: soil.OM})
	if !errors.As(err, &me) {
		tst.Errorf("MissingFieldError expected for OM basis. got %v\n", err)
		return
	}
	chk.String(tst, me.Field, "OM")

	for _, opts := range []Options{
		{PTF: "Vereecken_1989", Mualem: true},
		{PTF: "Cosby_1984", Pressures: []float64{33}},
		{PTF: "Saxton_1986", Thresholds: water.Thresholds{Fc: 10, Pwp: 1500}},
		{PTF: "Saxton_1986", Pressures: []float64{100}},
		{PTF: "Saxton_1986", Policy: water.Policy{Mode: water.CriticalPoint}, Thresholds: water.Thresholds{Fc: 33, Crit: 33, Pwp: 1500}},
		{PTF: "Weynants_2009", Thresholds: water.Thresholds{Fc: 1500, Pwp: 33}},
		{PTF: "Weynants_2009", Policy: water.Policy{Frac: 1.5}},
		{PTF: "Weynants_2009", Pressures: []float64{-1}},
		{PTF: "Rawls_1982", Pressures: []float64{0}},
		{PTF: "Measured", Pressures: []float64{33}},
		{PTF: "Measured", ThresholdFields: ThresholdFields{Fc: "FC_kPa"}},
	} {
		_, err = Run(ctx, src, opts)
		if err == nil {
			tst.Errorf("%s: error expected with options %+v\n", opts.PTF, opts)
			return
		}
		io.Pforan("%v\n", err)
	}

	_, err = Run(ctx, src, Options{PTF: "Wosten_1999_top", ThresholdFields: ThresholdFields{Fc: "FC_kPa"}})
	if !errors.As(err, &me) {
		tst.Errorf("MissingFieldError expected for threshold field. got %v\n", err)
		return
	}
	chk.String(tst, me.Field, "FC_kPa")
	chk.String(tst, me.Option, "thresholds")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Run(cancelled, src, Options{PTF: "Cosby_1984"})
	if !errors.Is(err, context.Canceled) {
		tst.Errorf("context.Canceled expected. got %v\n", err)
	}
}

func Test_batch03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("batch03. water content and conductivity tables")

	src := SliceSource{
		Names: allFields,
		Data: []soil.Values{
			values("loam", 30, 40, 30, 1.3, 2),
			values("sandy-loam", 60, 25, 15, 1.45, 1),
			values("silty-clay-loam", 15, 55, 30, 1.2, 3),
			values("loamy-sand", 80, 12, 8, 1.55, 0.5),
			values("sand", 95, 5, 0, 1.6, 0.4),
		},
	}
	P := []float64{0, 10, 33, 1500}
	opts := Options{PTF: "Wosten_1999_top", Pressures: P, Mualem: true, NumWorkers: 1}
	serial := run(tst, src, opts)
	opts.NumWorkers = 4
	out := run(tst, src, opts)
	chk.Int(tst, "number of invalid", out.Invalid, 1)

	header, rows, err := WaterContentRows(out)
	if err != nil {
		tst.Errorf("WaterContentRows failed: %v\n", err)
		return
	}
	chk.Strings(tst, "header", header, []string{"LUCIname", "0", "10", "33", "1500"})
	chk.Int(tst, "number of rows", len(rows), len(src.Data))
	_, srows, _ := WaterContentRows(serial)
	for i, row := range out.Rows {
		chk.Strings(tst, "same rows in serial and concurrent runs", rows[i], srows[i])
		if !row.Valid {
			chk.Strings(tst, "missing values", rows[i], []string{"sand", "", "", "", ""})
			continue
		}
		vg := row.Result.VG
		chk.Float64(tst, "θ(0) = θs", 1e-15, row.WC[0], vg.ThS)
		for j, p := range P {
			chk.String(tst, rows[i][1+j], io.Sf("%g", vg.Theta(p)))
		}
		chk.Float64(tst, "K(0) = Ksat", 1e-15, row.K[0], vg.Ksat)
		for j := 1; j < len(P); j++ {
			if row.K[j] > row.K[j-1] {
				tst.Errorf("K must decrease with suction: K(%g) = %g > K(%g) = %g\n", P[j], row.K[j], P[j-1], row.K[j-1])
				return
			}
		}
	}

	header, rows, err = ConductivityRows(out)
	if err != nil {
		tst.Errorf("ConductivityRows failed: %v\n", err)
		return
	}
	chk.Int(tst, "number of columns", len(header), 5)
	chk.String(tst, rows[0][1], io.Sf("%g", out.Rows[0].Result.Ksat))

	header, rows, err = QuantityRows(out)
	if err != nil {
		tst.Errorf("QuantityRows failed: %v\n", err)
		return
	}
	chk.Strings(tst, "header", header, []string{"LUCIname", "WC_sat", "WC_fc", "WC_pwp", "PAW", "DW", "TWC", "RAW"})
	chk.Int(tst, "columns of invalid row", len(rows[4]), len(header))

	header, rows = ParamRows(out)
	chk.Strings(tst, "header", header, []string{"LUCIname", "theta_r", "theta_s", "alpha", "n", "m", "l", "Ksat"})
	chk.String(tst, rows[1][1], io.Sf("%g", ptf.WostenThetaR))
	chk.Int(tst, "columns of invalid row", len(rows[4]), len(header))
}

func Test_batch04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("batch04. point and Ksat PTFs")

	src := source3()
	src.Data = []soil.Values{src.Data[0], src.Data[2]}

	out := run(tst, src, Options{PTF: "Saxton_1986", Pressures: []float64{33, 1500}, Policy: water.Policy{Frac: 0.4, Depth: 300}})
	for _, row := range out.Rows {
		w33, _ := row.Result.Theta(33)
		w1500, _ := row.Result.Theta(1500)
		chk.Float64(tst, "PAW", 1e-15, row.Water.PAW, w33-w1500)
		chk.Float64(tst, "RAW", 1e-15, row.Water.RAW, 0.4*(w33-w1500))
		chk.Float64(tst, "mm PAW", 1e-12, row.Water.MmPAW, 300*(w33-w1500))
		chk.Array(tst, "WC", 1e-15, row.WC, []float64{w33, w1500})
	}
	header, _, err := QuantityRows(out)
	if err != nil {
		tst.Errorf("QuantityRows failed: %v\n", err)
		return
	}
	chk.Int(tst, "columns with depth", len(header), 12)

	out = run(tst, src, Options{PTF: "Cosby_1984"})
	header, rows := ParamRows(out)
	chk.Strings(tst, "header", header, []string{"LUCIname", "Ksat"})
	for i, row := range out.Rows {
		if row.Water != nil || row.WC != nil {
			tst.Errorf("Ksat PTFs do not compute water contents\n")
			return
		}
		chk.String(tst, rows[i][1], io.Sf("%g", row.Result.Ksat))
	}
	if _, _, err = QuantityRows(out); err == nil {
		tst.Errorf("QuantityRows should fail for Ksat PTFs\n")
	}
	if _, _, err = WaterContentRows(out); err == nil {
		tst.Errorf("WaterContentRows should fail without pressures\n")
	}
}

func Test_batch05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("batch05. site-specific thresholds and critical point")

	src := source3()
	src.Data = []soil.Values{src.Data[0], src.Data[2]}
	opts := Options{
		PTF:        "Weynants_2009",
		Policy:     water.Policy{Mode: water.CriticalPoint},
		Thresholds: water.Thresholds{Fc: 33, Crit: 100, Pwp: 1500},
		ThresholdsOf: func(rec soil.Record) water.Thresholds {
			if rec.Id == "r3" {
				return water.Thresholds{Fc: 10, Crit: 100, Pwp: 1500}
			}
			return water.Thresholds{Fc: 33, Crit: 100, Pwp: 1500}
		},
	}
	out := run(tst, src, opts)
	for i, fc := range []float64{33, 10} {
		row := out.Rows[i]
		vg := row.Result.VG
		chk.Float64(tst, "θ(fc)", 1e-15, row.Water.WcFc, vg.Theta(fc))
		chk.Float64(tst, "RAW", 1e-15, row.Water.RAW, vg.Theta(fc)-vg.Theta(100))
		chk.Float64(tst, "NRAW", 1e-15, row.Water.NRAW, vg.Theta(100)-vg.Theta(1500))
		if row.Water.RawFrac < 0 || row.Water.RawFrac > 1 {
			tst.Errorf("RAW/PAW must be within [0, 1]. got %g\n", row.Water.RawFrac)
			return
		}
	}
	header, _, err := QuantityRows(out)
	if err != nil {
		tst.Errorf("QuantityRows failed: %v\n", err)
		return
	}
	chk.Strings(tst, "header", header, []string{"LUCIname", "WC_sat", "WC_fc", "WC_crit", "WC_pwp", "PAW", "DW", "TWC", "RAW", "NRAW"})
}

func Test_batch06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("batch06. missing values")

	noclay := values("r4", 40, 40, 20, 1.4, 1)
	delete(noclay.V, "Clay")
	nobd := values("r5", 40, 40, 20, 1.4, 1)
	delete(nobd.V, "BD")
	delete(nobd.V, "OC")
	src := SliceSource{Names: allFields, Data: []soil.Values{values("r1", 30, 40, 30, 1.3, 2), noclay, nobd}}

	out := run(tst, src, Options{PTF: "Wosten_1999_top"})
	chk.Int(tst, "number of invalid", out.Invalid, 2)
	if !out.Rows[0].Valid {
		tst.Errorf("first record should be valid: %v\n", out.Rows[0].Err)
		return
	}
	for i, field := range []string{"Clay", "BD"} {
		row := out.Rows[1+i]
		if row.Valid || row.Result != nil || row.Water != nil {
			tst.Errorf("record %q should be invalid without outputs\n", row.Id)
			return
		}
		var de *guard.DomainError
		if !errors.As(row.Err, &de) {
			tst.Errorf("DomainError expected. got %v\n", row.Err)
			return
		}
		chk.String(tst, de.Quantity, field)
		chk.String(tst, de.Record, row.Id)
	}

	var attrs []string
	var index []int
	for _, w := range out.Warnings {
		if w.Kind == guard.DomainWarning {
			attrs = append(attrs, w.Attribute)
			index = append(index, w.Index)
		}
	}
	chk.Strings(tst, "missing fields", attrs, []string{"Clay", "BD", "OC"})
	chk.Ints(tst, "indices", index, []int{1, 2, 2})
}

func Test_batch07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("batch07. thresholds from record fields")

	src := source3()
	src.Names = append(src.Names, "FC_kPa", "CRIT_kPa")
	src.Data = []soil.Values{src.Data[0], src.Data[2]}
	fc := []float64{10, 33}
	for i := range src.Data {
		src.Data[i].V["FC_kPa"] = fc[i]
		src.Data[i].V["CRIT_kPa"] = 100
	}
	opts := Options{
		PTF:             "Weynants_2009",
		Policy:          water.Policy{Mode: water.CriticalPoint},
		Thresholds:      water.Thresholds{Fc: 33, Crit: 200, Pwp: 1500},
		ThresholdFields: ThresholdFields{Fc: "FC_kPa", Crit: "CRIT_kPa"},
	}
	out := run(tst, src, opts)
	for i, row := range out.Rows {
		if !row.Valid {
			tst.Errorf("record %q should be valid: %v\n", row.Id, row.Err)
			return
		}
		vg := row.Result.VG
		chk.Float64(tst, "θ(fc)", 1e-15, row.Water.WcFc, vg.Theta(fc[i]))
		chk.Float64(tst, "θ(crit)", 1e-15, row.Water.WcCrit, vg.Theta(100))
	}

	// point PTFs only know their own suctions
	out = run(tst, src, Options{PTF: "Saxton_1986", ThresholdFields: ThresholdFields{Fc: "FC_kPa"}})
	if out.Rows[0].Valid || !out.Rows[1].Valid {
		tst.Errorf("only the record with fc = 33 kPa should be valid\n")
		return
	}
	var de *guard.DomainError
	if !errors.As(out.Rows[0].Err, &de) {
		tst.Errorf("DomainError expected. got %v\n", out.Rows[0].Err)
		return
	}
	chk.Float64(tst, "unavailable suction", 1e-17, de.Value, 10)
	w33, _ := out.Rows[1].Result.Theta(33)
	chk.Float64(tst, "θ(fc)", 1e-15, out.Rows[1].Water.WcFc, w33)

	// invalid ordering in one record
	src.Data[1].V["FC_kPa"] = 2000
	out = run(tst, src, Options{PTF: "Wosten_1999_top", ThresholdFields: ThresholdFields{Fc: "FC_kPa"}})
	if !out.Rows[0].Valid || out.Rows[1].Valid {
		tst.Errorf("record with fc > pwp should be invalid\n")
	}
}

func Test_batch08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("batch08. point PTF without saturation and porosity check")

	src := source3()
	src.Data = []soil.Values{src.Data[0], src.Data[2]}
	out := run(tst, src, Options{PTF: "Rawls_1982", Pressures: []float64{33, 1500}})
	if out.HasWater {
		tst.Errorf("Rawls_1982 gives no water content at saturation\n")
		return
	}
	for _, row := range out.Rows {
		if !row.Valid || row.Water != nil {
			tst.Errorf("record %q should be valid without derived quantities\n", row.Id)
			return
		}
		chk.Array(tst, "WC", 1e-17, row.WC, []float64{row.Result.Points[0].Theta, row.Result.Points[1].Theta})
	}
	header, _ := ParamRows(out)
	chk.Strings(tst, "header", header, []string{"LUCIname", "WC_33", "WC_1500"})
	if _, _, err := QuantityRows(out); err == nil {
		tst.Errorf("QuantityRows should fail without derived quantities\n")
	}

	// θs = 0.489 - 0.00126·30 against porosity 1 - BD/2.65
	dense := SliceSource{Names: allFields, Data: []soil.Values{
		values("loose", 30, 40, 30, 1.3, 2),
		values("dense", 30, 40, 30, 2.0, 2),
	}}
	out = run(tst, dense, Options{PTF: "Cosby_1984_SC_BC"})
	var sat []guard.Warning
	for _, w := range out.Warnings {
		if w.Attribute == "WC_0kPa" {
			sat = append(sat, w)
		}
	}
	chk.Int(tst, "saturation warnings", len(sat), 1)
	chk.String(tst, sat[0].Record, "dense")
	chk.Float64(tst, "θs", 1e-15, sat[0].Value, 0.489-0.00126*30)
	if sat[0].Kind != guard.ConsistencyWarning {
		tst.Errorf("consistency warning expected\n")
	}
}

func Test_metrics01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("metrics01. prometheus counters")

	reg := prometheus.NewRegistry()
	m := NewMetrics("luci", reg)
	out := run(tst, source3(), Options{PTF: "Saxton_1986_BC", Metrics: m})

	chk.Float64(tst, "valid", 1e-15, testutil.ToFloat64(m.Records.WithLabelValues("Saxton_1986_BC", "valid")), 2)
	chk.Float64(tst, "invalid", 1e-15, testutil.ToFloat64(m.Records.WithLabelValues("Saxton_1986_BC", "invalid")), 1)
	chk.Float64(tst, "domain warnings", 1e-15, testutil.ToFloat64(m.Warnings.WithLabelValues("domain")), 1)

	total := 0.0
	for _, k := range []guard.Kind{guard.RangeWarning, guard.ConsistencyWarning, guard.DomainWarning} {
		total += testutil.ToFloat64(m.Warnings.WithLabelValues(k.String()))
	}
	chk.Float64(tst, "all warnings", 1e-15, total, float64(len(out.Warnings)))
	chk.Int(tst, "histograms", testutil.CollectAndCount(m.Duration), 1)
}
