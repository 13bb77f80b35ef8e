// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package guard

import (
	"sort"
	"sync"

	"github.com/cpmech/gosl/io"
)

// Kind defines the kind of warning
type Kind int

const (
	// RangeWarning: value outside the empirically plausible range but mathematically valid
	RangeWarning Kind = iota

	// ConsistencyWarning: derived quantity violates an expected ordering
	ConsistencyWarning

	// DomainWarning: a DomainError was caught at the record level; outputs are missing
	DomainWarning
)

func (k Kind) String() string {
	switch k {
	case RangeWarning:
		return "range"
	case ConsistencyWarning:
		return "consistency"
	case DomainWarning:
		return "domain"
	}
	return "unknown"
}

// Warning holds one advisory message about a record
type Warning struct {
	Kind      Kind    // kind of warning
	Index     int     // position of record in input; -1 if unknown
	Record    string  // record identifier
	Attribute string  // attribute name; e.g. "Clay", "PAW"
	Value     float64 // offending value
	Msg       string  // message
}

func (o Warning) String() string {
	return io.Sf("%s warning: record %q: %s = %g: %s", o.Kind, o.Record, o.Attribute, o.Value, o.Msg)
}

// Diagnostics collects warnings. It is safe for concurrent use.
// A nil *Diagnostics discards all warnings.
type Diagnostics struct {
	Verbose bool // print warnings as they arrive

	mu   sync.Mutex
	list []Warning
}

// Add appends a warning
func (o *Diagnostics) Add(w Warning) {
	if o == nil {
		return
	}
	o.mu.Lock()
	o.list = append(o.list, w)
	o.mu.Unlock()
	if o.Verbose {
		io.Pfyel("%v\n", w)
	}
}

// Len returns the number of warnings
func (o *Diagnostics) Len() int {
	if o == nil {
		return 0
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.list)
}

// List returns a copy of all warnings sorted by record index (stable)
func (o *Diagnostics) List() []Warning {
	if o == nil {
		return nil
	}
	o.mu.Lock()
	res := make([]Warning, len(o.list))
	copy(res, o.list)
	o.mu.Unlock()
	sort.SliceStable(res, func(i, j int) bool { return res[i].Index < res[j].Index })
	return res
}

// Count returns the number of warnings of a given kind
func (o *Diagnostics) Count(k Kind) (n int) {
	for _, w := range o.List() {
		if w.Kind == k {
			n++
		}
	}
	return
}

// Scoped returns a view of o that stamps every warning with record index and identifier
func (o *Diagnostics) Scoped(index int, record string) *Scope {
	return &Scope{parent: o, index: index, record: record}
}

// Scope adds warnings on behalf of one record
type Scope struct {
	parent *Diagnostics
	index  int
	record string
}

// Record returns the record identifier
func (o *Scope) Record() string {
	if o == nil {
		return ""
	}
	return o.record
}

// Add appends a warning filling index and record
func (o *Scope) Add(k Kind, attr string, val float64, format string, args ...interface{}) {
	if o == nil {
		return
	}
	o.parent.Add(Warning{Kind: k, Index: o.index, Record: o.record, Attribute: attr, Value: val, Msg: io.Sf(format, args...)})
}
