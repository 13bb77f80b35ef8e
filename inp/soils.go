// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/lucitools/LUCI-PTFs/mdl/soil"
)

// SoilFile holds the records of a JSON soil file; i.e. an array of objects such as
//  [ {"LUCIname": "A1", "Sand": 30, "Silt": 40, "Clay": 30, "BD": 1.3, "OC": 2}, ... ]
// The identifier may be a string or a number; all other values must be numbers. Keys may be
// absent from some records.
type SoilFile struct {
	IdCol string        // name of identifier field
	Names []string      // fields present in any record
	Data  []soil.Values // records
}

// ReadSoils reads a JSON soil file
func ReadSoils(fn, idcol string) (o *SoilFile, err error) {
	b, err := io.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("ReadSoils: cannot read soil file %q:\n%v", fn, err)
	}
	o, err = ParseSoils(b, idcol)
	if err != nil {
		return nil, chk.Err("ReadSoils: soil file %q:\n%v", fn, err)
	}
	return
}

// ParseSoils decodes the contents of a JSON soil file
func ParseSoils(b []byte, idcol string) (o *SoilFile, err error) {
	if idcol == "" {
		idcol = soil.FieldId
	}
	var raw []map[string]json.RawMessage
	err = json.Unmarshal(b, &raw)
	if err != nil {
		return
	}
	o = &SoilFile{IdCol: idcol, Data: make([]soil.Values, len(raw))}
	seen := make(map[string]bool)
	for i, obj := range raw {
		v := soil.Values{V: make(map[string]float64, len(obj))}
		for key, msg := range obj {
			if key == idcol {
				v.Id, err = decodeId(msg)
				if err != nil {
					return nil, chk.Err("record %d: %v", i, err)
				}
				continue
			}
			var x float64
			err = json.Unmarshal(msg, &x)
			if err != nil {
				return nil, chk.Err("record %d: field %q must be a number: %s", i, key, msg)
			}
			v.V[key] = x
			seen[key] = true
		}
		o.Data[i] = v
	}
	for key := range seen {
		o.Names = append(o.Names, key)
	}
	sort.Strings(o.Names)
	return
}

// Fields returns the names of fields present in any record. Records without one of them are
// invalidated when the field is required.
func (o *SoilFile) Fields() []string { return o.Names }

// Records returns all records in file order
func (o *SoilFile) Records(ctx context.Context) ([]soil.Values, error) { return o.Data, nil }

// decodeId decodes a string or numeric identifier
func decodeId(msg json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s, nil
	}
	var x float64
	if err := json.Unmarshal(msg, &x); err != nil {
		return "", chk.Err("identifier must be a string or a number: %s", msg)
	}
	return strconv.FormatFloat(x, 'f', -1, 64), nil
}
