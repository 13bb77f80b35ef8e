// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from (.run) JSON files, JSON soil files,
// JSON model databases and PostgreSQL tables
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/lucitools/LUCI-PTFs/batch"
	"github.com/lucitools/LUCI-PTFs/mdl/soil"
	"github.com/lucitools/LUCI-PTFs/out"
	"github.com/lucitools/LUCI-PTFs/water"
)

// Data holds the options of one run
type Data struct {

	// global information
	Desc   string `json:"desc"`   // description of run
	DirOut string `json:"dirout"` // directory for output; e.g. /tmp/luci
	IdCol  string `json:"idcol"`  // name of identifier field; e.g. LUCIname

	// pedotransfer function and inputs
	PTF        string  `json:"ptf"`        // key of pedotransfer function; e.g. Wosten_1999_top
	Carbon     string  `json:"carbon"`     // carbon basis: "OC" or "OM"
	ConvFactor float64 `json:"convfactor"` // carbon conversion factor; 0 means default
	Mualem     bool    `json:"mualem"`     // compute Mualem-van Genuchten conductivities

	// thresholds [kPa]
	Sat  float64 `json:"sat"`  // suction at saturation
	Fc   float64 `json:"fc"`   // suction at field capacity
	Crit float64 `json:"crit"` // suction at critical point
	Pwp  float64 `json:"pwp"`  // suction at permanent wilting point

	// per-record thresholds: names of soil fields with suctions [kPa]; empty means global
	FcField   string `json:"fcfield"`   // field capacity
	CritField string `json:"critfield"` // critical point
	PwpField  string `json:"pwpfield"`  // permanent wilting point

	// derived quantities
	RawMode string  `json:"rawmode"` // "Fraction" or "CriticalPoint"
	RawFrac float64 `json:"rawfrac"` // RAW/PAW in Fraction mode
	Depth   float64 `json:"depth"`   // rooting depth [mm]; 0 means no depth scaling

	// output
	Pressures []float64 `json:"pressures"` // pressures for water content table, in units
	Units     string    `json:"units"`     // pressure units: "kPa", "cm" or "m"
	Plot      bool      `json:"plot"`      // plot retention and conductivity curves
	NumPts    int       `json:"numpts"`    // number of points of plotted curves

	// execution
	NumWorkers int  `json:"nworkers"` // number of goroutines; 0 means number of CPUs
	Verbose    bool `json:"verbose"`  // print warnings as they arrive

	// sources
	SoilFile  string `json:"soilfile"`  // JSON soil file; relative to run file
	ModelFile string `json:"modelfile"` // JSON model database; relative to run file
	PgDsn     string `json:"pgdsn"`     // PostgreSQL connection string; used if soilfile is empty
	PgTable   string `json:"pgtable"`   // PostgreSQL table with soil records

	// sinks
	InfluxURL    string `json:"influxurl"`    // InfluxDB server; empty means no InfluxDB output
	InfluxOrg    string `json:"influxorg"`    // InfluxDB organisation
	InfluxBucket string `json:"influxbucket"` // InfluxDB bucket
}

// Run holds all data of one run
type Run struct {
	Data Data // options

	// derived
	Key      string        // key of run file; e.g. loam.run => loam
	Dir      string        // directory of run file
	Unit     out.Unit      // pressure unit
	Basis    soil.Basis    // carbon basis
	Mode     water.RawMode // RAW mode
	KPa      []float64     // pressures converted into kPa
	InfluxTk string        // InfluxDB token from environment variable LUCI_INFLUX_TOKEN
}

// SetDefault sets default values
func (o *Data) SetDefault() {
	o.IdCol = soil.FieldId
	o.Carbon = "OC"
	o.Fc = 33
	o.Pwp = 1500
	o.RawMode = "Fraction"
	o.RawFrac = water.DefaultRawFrac
	o.Units = "kPa"
	o.NumPts = 101
}

// ReadRun reads all data of a run from a .run JSON file
func ReadRun(runfilepath string) (o *Run, err error) {

	// new run
	o = new(Run)
	o.Data.SetDefault()

	// read file
	b, err := io.ReadFile(runfilepath)
	if err != nil {
		return nil, chk.Err("ReadRun: cannot read run file %q:\n%v", runfilepath, err)
	}

	// decode
	err = json.Unmarshal(b, &o.Data)
	if err != nil {
		return nil, chk.Err("ReadRun: cannot unmarshal run file %q:\n%v", runfilepath, err)
	}

	// key and directory
	o.Dir = os.ExpandEnv(filepath.Dir(runfilepath))
	o.Key = io.FnKey(filepath.Base(runfilepath))
	if o.Data.DirOut == "" {
		o.Data.DirOut = "/tmp/luci/" + o.Key
	}

	// derived
	err = o.PostProcess()
	if err != nil {
		return nil, err
	}
	return
}

// PostProcess parses and checks options
func (o *Run) PostProcess() (err error) {
	if o.Data.PTF == "" {
		return chk.Err("run %q: ptf key is missing", o.Key)
	}
	o.Basis, err = soil.ParseBasis(o.Data.Carbon)
	if err != nil {
		return
	}
	o.Mode, err = water.ParseRawMode(o.Data.RawMode)
	if err != nil {
		return
	}
	o.Unit, err = out.ParseUnit(o.Data.Units)
	if err != nil {
		return
	}
	o.KPa = make([]float64, len(o.Data.Pressures))
	for i, p := range o.Data.Pressures {
		o.KPa[i] = o.Unit.ToKPa(p)
	}
	if o.Data.NumPts < 2 {
		return chk.Err("run %q: number of points of curves must be at least 2. numpts = %d", o.Key, o.Data.NumPts)
	}
	o.InfluxTk = os.Getenv("LUCI_INFLUX_TOKEN")
	return
}

// Options returns the options of the batch run
func (o *Run) Options() batch.Options {
	return batch.Options{
		PTF:        o.Data.PTF,
		Basis:      o.Basis,
		ConvFactor: o.Data.ConvFactor,
		Thresholds: water.Thresholds{Sat: o.Data.Sat, Fc: o.Data.Fc, Crit: o.Data.Crit, Pwp: o.Data.Pwp},
		Policy:     water.Policy{Mode: o.Mode, Frac: o.Data.RawFrac, Depth: o.Data.Depth},
		Pressures:  o.KPa,
		Mualem:     o.Data.Mualem,
		NumWorkers: o.Data.NumWorkers,
		IdCol:      o.Data.IdCol,
		Verbose:    o.Data.Verbose,

		ThresholdFields: batch.ThresholdFields{Fc: o.Data.FcField, Crit: o.Data.CritField, Pwp: o.Data.PwpField},
	}
}

// Path returns the path of a file given relative to the run file
func (o *Run) Path(fn string) string {
	if fn == "" || filepath.IsAbs(fn) {
		return fn
	}
	return filepath.Join(o.Dir, fn)
}

// GetInfo returns a short description of the run
func (o *Run) GetInfo() string {
	l := io.Sf("run %q: %s\n", o.Key, o.Data.Desc)
	l += io.Sf("  ptf        = %s\n", o.Data.PTF)
	l += io.Sf("  carbon     = %s (factor = %g)\n", o.Basis, o.Data.ConvFactor)
	l += io.Sf("  thresholds = sat: %g, fc: %g, crit: %g, pwp: %g kPa\n", o.Data.Sat, o.Data.Fc, o.Data.Crit, o.Data.Pwp)
	if o.Data.FcField != "" || o.Data.CritField != "" || o.Data.PwpField != "" {
		l += io.Sf("  per record = fc: %q, crit: %q, pwp: %q\n", o.Data.FcField, o.Data.CritField, o.Data.PwpField)
	}
	l += io.Sf("  rawmode    = %s (frac = %g, depth = %g mm)\n", o.Mode, o.Data.RawFrac, o.Data.Depth)
	l += io.Sf("  pressures  = %v %s\n", o.Data.Pressures, o.Unit)
	return l
}
