// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/lucitools/LUCI-PTFs/batch"
	"github.com/lucitools/LUCI-PTFs/mdl/soil"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// runBatch runs a PTF over three records; the last one has no clay
func runBatch(tst *testing.T, opts batch.Options) *batch.Output {
	src := batch.SliceSource{
		Names: []string{"LUCIname", "Sand", "Silt", "Clay", "BD", "OC"},
		Data: []soil.Values{
			{Id: "loam", V: map[string]float64{"Sand": 30, "Silt": 40, "Clay": 30, "BD": 1.3, "OC": 2}},
			{Id: "sandy-loam", V: map[string]float64{"Sand": 60, "Silt": 25, "Clay": 15, "BD": 1.45, "OC": 1}},
			{Id: "sand", V: map[string]float64{"Sand": 95, "Silt": 5, "Clay": 0, "BD": 1.6, "OC": 0.4}},
		},
	}
	res, err := batch.Run(context.Background(), src, opts)
	if err != nil {
		tst.Fatalf("Run failed: %v\n", err)
	}
	return res
}

// readCSV reads a table
func readCSV(tst *testing.T, dir, fn string) [][]string {
	f, err := os.Open(filepath.Join(dir, fn))
	if err != nil {
		tst.Fatalf("cannot open %q: %v\n", fn, err)
	}
	defer f.Close()
	table, err := csv.NewReader(f).ReadAll()
	if err != nil {
		tst.Fatalf("cannot read %q: %v\n", fn, err)
	}
	return table
}

func Test_units01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("units01. pressure units")

	for _, s := range []string{"kPa", "KPA", ""} {
		u, err := ParseUnit(s)
		if err != nil {
			tst.Errorf("ParseUnit failed: %v\n", err)
			return
		}
		chk.String(tst, u.Name, "kPa")
	}
	cm, _ := ParseUnit("cm")
	m, _ := ParseUnit(" m ")
	chk.Float64(tst, "33 kPa in cm", 1e-15, cm.FromKPa(33), 330)
	chk.Float64(tst, "1500 kPa in m", 1e-12, m.FromKPa(1500), 150)
	chk.Float64(tst, "100 cm in kPa", 1e-15, cm.ToKPa(100), 10)
	chk.String(tst, GetTexLabel("h", cm.String()), "$h\\;[cm]$")
	if _, err := ParseUnit("bar"); err == nil {
		tst.Errorf("ParseUnit should fail with bar\n")
	}
}

func Test_csv01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("csv01. tables")

	res := runBatch(tst, batch.Options{PTF: "Weynants_2009", Pressures: []float64{10, 33, 1500}, Mualem: true})
	dir := tst.TempDir()
	sink := CSVSink{DirOut: dir, FnKey: "wy", Unit: Cm}
	if err := batch.Export(context.Background(), res, sink); err != nil {
		tst.Errorf("Export failed: %v\n", err)
		return
	}

	wc := readCSV(tst, dir, "wy_wc.csv")
	chk.Int(tst, "number of lines", len(wc), 4)
	chk.Strings(tst, "header in cm", wc[0], []string{"LUCIname", "100", "330", "15000"})
	chk.String(tst, wc[1][0], "loam")
	chk.String(tst, wc[2][2], io.Sf("%g", res.Rows[1].WC[1]))

	k := readCSV(tst, dir, "wy_k.csv")
	chk.Int(tst, "number of lines", len(k), 4)
	chk.String(tst, k[1][3], io.Sf("%g", res.Rows[0].K[2]))

	prms := readCSV(tst, dir, "wy_params.csv")
	chk.Strings(tst, "params header", prms[0], []string{"LUCIname", "theta_r", "theta_s", "alpha", "n", "m", "l", "Ksat"})

	water := readCSV(tst, dir, "wy_water.csv")
	chk.Int(tst, "number of columns", len(water[0]), 8)
	chk.String(tst, water[1][4], io.Sf("%g", res.Rows[0].Water.PAW))

	res = runBatch(tst, batch.Options{PTF: "Puckett_1985"})
	sink.FnKey = "pk"
	if err := sink.Write(context.Background(), res); err != nil {
		tst.Errorf("Write failed: %v\n", err)
		return
	}
	prms = readCSV(tst, dir, "pk_params.csv")
	chk.Strings(tst, "Ksat header", prms[0], []string{"LUCIname", "Ksat"})
	if _, err := os.Stat(filepath.Join(dir, "pk_water.csv")); err == nil {
		tst.Errorf("Ksat PTFs must not write derived quantities\n")
	}
}

// fakeWriter fails nfail times before accepting points
type fakeWriter struct {
	nfail    int
	attempts int
	points   []*write.Point
}

func (o *fakeWriter) WritePoint(ctx context.Context, point ...*write.Point) error {
	o.attempts++
	if o.attempts <= o.nfail {
		return chk.Err("server unavailable")
	}
	o.points = append(o.points, point...)
	return nil
}

func Test_influx01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("influx01. points and retries")

	res := runBatch(tst, batch.Options{PTF: "Wosten_1999_sub"})
	chk.Int(tst, "invalid records", res.Invalid, 1)

	w := &fakeWriter{nfail: 2}
	sink := &InfluxSink{
		Writer:      w,
		Measurement: "soil",
		RunId:       "run-1",
		Time:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		MaxRetries:  3,
		BackOff:     func() backoff.BackOff { return backoff.NewConstantBackOff(time.Millisecond) },
	}
	if err := sink.Write(context.Background(), res); err != nil {
		tst.Errorf("Write failed: %v\n", err)
		return
	}
	chk.Int(tst, "attempts", w.attempts, 3)
	chk.Int(tst, "points", len(w.points), 3)

	for i, p := range w.points {
		chk.String(tst, p.Name(), "soil")
		tags := make(map[string]string)
		for _, t := range p.TagList() {
			tags[t.Key] = t.Value
		}
		chk.String(tst, tags["run"], "run-1")
		chk.String(tst, tags["record"], res.Rows[i].Id)
		chk.String(tst, tags["ptf"], "Wosten_1999_sub")
		fields := make(map[string]interface{})
		for _, f := range p.FieldList() {
			fields[f.Key] = f.Value
		}
		if fields["valid"] != res.Rows[i].Valid {
			tst.Errorf("valid field of %q is incorrect\n", res.Rows[i].Id)
			return
		}
		if !res.Rows[i].Valid {
			chk.Int(tst, "fields of invalid record", len(fields), 1)
			continue
		}
		chk.Float64(tst, "Ksat", 1e-15, fields["Ksat"].(float64), res.Rows[i].Result.Ksat)
		chk.Float64(tst, "PAW", 1e-15, fields["PAW"].(float64), res.Rows[i].Water.PAW)
	}

	w = &fakeWriter{nfail: 10}
	sink.Writer = w
	if err := sink.Write(context.Background(), res); err == nil {
		tst.Errorf("Write should fail after %d retries\n", sink.MaxRetries)
		return
	}
	chk.Int(tst, "attempts", w.attempts, 4)

	if _, _, err := NewInfluxSink("http://localhost:8086", "", "org", "bucket"); err == nil {
		tst.Errorf("NewInfluxSink should fail without token\n")
	}
}

func Test_plot01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plot01. retention and conductivity curves")

	res := runBatch(tst, batch.Options{PTF: "Wosten_1999_top"})
	if err := PlotConductivity(runBatch(tst, batch.Options{PTF: "Vereecken_1989"}), PlotData{}, false); err == nil {
		tst.Errorf("PlotConductivity should fail for PTFs without Mualem parameters\n")
		return
	}

	if chk.Verbose {
		pd := PlotData{DirOut: "/tmp/luci", FnKey: "plot01", Unit: Cm}
		if err := PlotRetention(res, pd); err != nil {
			tst.Errorf("PlotRetention failed: %v\n", err)
			return
		}
		if err := PlotConductivity(res, pd, true); err != nil {
			tst.Errorf("PlotConductivity failed: %v\n", err)
		}
	}
}
