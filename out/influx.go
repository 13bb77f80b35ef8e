// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/google/uuid"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/lucitools/LUCI-PTFs/batch"
)

// PointWriter writes points; api.WriteAPIBlocking implements it
type PointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

// InfluxSink writes one point per record into InfluxDB
//  tags:   run, record, ptf
//  fields: valid, estimated parameters, Ksat and derived quantities
type InfluxSink struct {
	Writer      PointWriter            // blocking writer
	Measurement string                 // measurement name
	RunId       string                 // identifier of run; tags all points
	Time        time.Time              // timestamp of points; zero means now
	MaxRetries  uint64                 // number of retries after a failed write
	BackOff     func() backoff.BackOff // retry policy; nil means exponential
}

// NewInfluxSink connects to an InfluxDB server. The returned function closes the client.
func NewInfluxSink(url, token, org, bucket string) (o *InfluxSink, closeFcn func(), err error) {
	if url == "" || token == "" || org == "" || bucket == "" {
		return nil, nil, chk.Err("InfluxDB configuration is incomplete: url, token, org and bucket are required")
	}
	client := influxdb2.NewClient(url, token)
	o = &InfluxSink{
		Writer:      client.WriteAPIBlocking(org, bucket),
		Measurement: "soil_hydraulics",
		RunId:       uuid.New().String(),
		MaxRetries:  4,
	}
	return o, client.Close, nil
}

// Points returns the points of all records
func (o *InfluxSink) Points(res *batch.Output) (pts []*write.Point) {
	t := o.Time
	if t.IsZero() {
		t = time.Now()
	}
	if o.RunId == "" {
		o.RunId = uuid.New().String()
	}
	for _, row := range res.Rows {
		tags := map[string]string{
			"run":    o.RunId,
			"record": row.Id,
			"ptf":    string(res.Entry.Key),
		}
		fields := map[string]interface{}{"valid": row.Valid}
		if row.Valid {
			rowFields(fields, row, res.Opts.Pressures)
		}
		pts = append(pts, influxdb2.NewPoint(o.Measurement, tags, fields, t))
	}
	return
}

// Write writes all points retrying with exponential backoff
func (o *InfluxSink) Write(ctx context.Context, res *batch.Output) error {
	pts := o.Points(res)
	if len(pts) == 0 {
		return nil
	}
	var bo backoff.BackOff
	if o.BackOff != nil {
		bo = o.BackOff()
	} else {
		bo = backoff.NewExponentialBackOff()
	}
	bo = backoff.WithContext(backoff.WithMaxRetries(bo, o.MaxRetries), ctx)
	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := o.Writer.WritePoint(ctx, pts...)
		if err != nil && io.Verbose {
			io.Pfred("influx: attempt %d failed: %v\n", attempt, err)
		}
		return err
	}, bo)
}

// rowFields adds the outputs of a valid record
func rowFields(f map[string]interface{}, row batch.Row, P []float64) {
	res := row.Result
	if res.BC != nil {
		f["theta_r"], f["theta_s"], f["hb"], f["lambda"] = res.BC.ThR, res.BC.ThS, res.BC.Hb, res.BC.Lam
	}
	if res.VG != nil {
		f["theta_r"], f["theta_s"], f["alpha"] = res.VG.ThR, res.VG.ThS, res.VG.Alp
		f["n"], f["m"], f["l"] = res.VG.N, res.VG.M, res.VG.L
	}
	if res.HasKsat {
		f["Ksat"] = res.Ksat
	}
	for _, p := range res.Points {
		f[io.Sf("WC_%g", p.H)] = p.Theta
	}
	if q := row.Water; q != nil {
		f["WC_sat"], f["WC_fc"], f["WC_pwp"] = q.WcSat, q.WcFc, q.WcPwp
		f["PAW"], f["DW"], f["TWC"], f["RAW"] = q.PAW, q.DW, q.TWC, q.RAW
		if q.HasCrit {
			f["WC_crit"], f["NRAW"] = q.WcCrit, q.NRAW
		}
		if q.HasDepth {
			f["mmPAW"], f["mmDW"], f["mmTWC"], f["mmRAW"] = q.MmPAW, q.MmDW, q.MmTWC, q.MmRAW
		}
	}
	for j, p := range P {
		if j < len(row.WC) {
			f[io.Sf("WC_%g", p)] = row.WC[j]
		}
		if j < len(row.K) {
			f[io.Sf("K_%g", p)] = row.K[j]
		}
	}
}
