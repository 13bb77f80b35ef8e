// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package batch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects run statistics. A nil *Metrics records nothing.
type Metrics struct {
	Records  *prometheus.CounterVec   // records by PTF and status (valid, invalid)
	Warnings *prometheus.CounterVec   // warnings by kind
	Duration *prometheus.HistogramVec // run duration by PTF [s]
}

// NewMetrics registers the collectors with reg; nil reg means the default registerer
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Records: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ptf_records_total",
				Help:      "Total number of soil records evaluated by PTF and status",
			},
			[]string{"ptf", "status"},
		),
		Warnings: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ptf_warnings_total",
				Help:      "Total number of warnings by kind",
			},
			[]string{"kind"},
		),
		Duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ptf_run_duration_seconds",
				Help:      "Duration of batch runs in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0, 60.0},
			},
			[]string{"ptf"},
		),
	}
}

// observe records the statistics of one run
func (o *Metrics) observe(out *Output, dt time.Duration) {
	if o == nil {
		return
	}
	key := string(out.Entry.Key)
	o.Records.WithLabelValues(key, "valid").Add(float64(len(out.Rows) - out.Invalid))
	o.Records.WithLabelValues(key, "invalid").Add(float64(out.Invalid))
	for _, w := range out.Warnings {
		o.Warnings.WithLabelValues(w.Kind.String()).Inc()
	}
	o.Duration.WithLabelValues(key).Observe(dt.Seconds())
}
