// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/lucitools/LUCI-PTFs/guard"
	"github.com/lucitools/LUCI-PTFs/mdl/conduct"
	"github.com/lucitools/LUCI-PTFs/mdl/retention"
	"github.com/lucitools/LUCI-PTFs/water"
)

// HydModel holds the data of one hydraulic model with known parameters; e.g. fitted in the lab
type HydModel struct {

	// input
	Name  string     `json:"name"`  // name of model; e.g. "loam-vg"
	Type  string     `json:"type"`  // type of model: "reten" or "conduct"
	Model string     `json:"model"` // name of model in its package; e.g. "bc", "vg", "mualem"
	Reten string     `json:"reten"` // retention model paired with a conductivity model
	Prms  dbf.Params `json:"prms"`  // parameters

	// derived
	Retention retention.Model // retention model if Type == "reten"
	Conduct   conduct.Model   // conductivity model if Type == "conduct"
}

// ModelDb implements a database of hydraulic models
type ModelDb struct {

	// input
	Models []*HydModel `json:"models"` // all models

	// derived
	Retens   map[string]*HydModel // subset with retention models
	Conducts map[string]*HydModel // subset with conductivity models
}

// ReadModels reads a database of models from a JSON file
func ReadModels(fn string) (o *ModelDb, err error) {
	b, err := io.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("ReadModels: cannot read model file %q:\n%v", fn, err)
	}
	o, err = ParseModels(b)
	if err != nil {
		return nil, chk.Err("ReadModels: model file %q:\n%v", fn, err)
	}
	return
}

// ParseModels decodes a database of models and allocates all of them
func ParseModels(b []byte) (o *ModelDb, err error) {

	// decode
	o = new(ModelDb)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, err
	}

	// subsets
	o.Retens = make(map[string]*HydModel)
	o.Conducts = make(map[string]*HydModel)
	for _, m := range o.Models {
		if m.Name == "" {
			return nil, chk.Err("all models must have a name")
		}
		if _, ok := o.Retens[m.Name]; ok {
			return nil, chk.Err("model named %q is repeated", m.Name)
		}
		if _, ok := o.Conducts[m.Name]; ok {
			return nil, chk.Err("model named %q is repeated", m.Name)
		}
		switch m.Type {
		case "reten":
			o.Retens[m.Name] = m
		case "conduct":
			o.Conducts[m.Name] = m
		default:
			return nil, chk.Err("model type %q is incorrect; options are \"reten\" and \"conduct\"", m.Type)
		}
	}

	// alloc/init: retens
	for _, m := range o.Retens {
		m.Retention, err = retention.New(m.Model)
		if err != nil {
			return nil, err
		}
		err = m.Retention.Init(m.Prms)
		if err != nil {
			return nil, chk.Err("model %q: %v", m.Name, err)
		}
	}

	// alloc/init: conducts
	for _, m := range o.Conducts {
		if _, ok := o.Retens[m.Reten]; !ok {
			return nil, chk.Err("conductivity model %q needs a retention model; %q is not available", m.Name, m.Reten)
		}
		m.Conduct, err = conduct.New(m.Model)
		if err != nil {
			return nil, err
		}
		err = m.Conduct.Init(m.Prms)
		if err != nil {
			return nil, chk.Err("model %q: %v", m.Name, err)
		}
	}
	return
}

// Get returns a model
//  Note: returns nil if not found
func (o ModelDb) Get(name string) *HydModel {
	for _, m := range o.Models {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// RetenNames returns the sorted names of retention models
func (o ModelDb) RetenNames() (names []string) {
	for name := range o.Retens {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Quantities computes the derived water quantities of all retention models.
// Warnings are stamped with the position of the model in RetenNames.
func (o ModelDb) Quantities(diag *guard.Diagnostics, thr water.Thresholds, pol water.Policy) (names []string, res []water.Quantities, err error) {
	names = o.RetenNames()
	res = make([]water.Quantities, len(names))
	for i, name := range names {
		res[i], err = water.Calc(diag.Scoped(i, name), o.Retens[name].Retention, thr, pol)
		if err != nil {
			return nil, nil, chk.Err("model %q: %v", name, err)
		}
	}
	return
}

// Kr computes the relative conductivity of a conductivity model at suctions H [kPa].
// Se is obtained from the paired retention model; kr = NaN where Se is out of range.
func (o ModelDb) Kr(name string, H []float64) (kr []float64, err error) {
	m, ok := o.Conducts[name]
	if !ok {
		return nil, chk.Err("conductivity model %q is not available", name)
	}
	ret := o.Retens[m.Reten].Retention
	θr, θs := ret.ThetaR(), ret.ThetaS()
	kr = make([]float64, len(H))
	for i, h := range H {
		se := (ret.Theta(h) - θr) / (θs - θr)
		kr[i], err = m.Conduct.Klr(se)
		if err != nil {
			kr[i], err = math.NaN(), nil
		}
	}
	return
}
