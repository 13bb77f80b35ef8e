// Copyright 2016 The LUCI-PTFs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conduct

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/lucitools/LUCI-PTFs/guard"
	"github.com/lucitools/LUCI-PTFs/mdl/retention"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_klr01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("klr01. Mualem relative conductivity")

	for _, m := range []float64{0.1, 1.0 / 3.0, 0.5, 1} {
		for _, l := range []float64{-2, 0, 0.5, 3} {
			kr, err := Klr(1, l, m)
			if err != nil {
				tst.Errorf("Klr failed: %v\n", err)
				return
			}
			chk.Float64(tst, io.Sf("kr(1) l=%g m=%g", l, m), 1e-17, kr, 1)
		}
	}

	kr, _ := Klr(0.5, 0.5, 0.5)
	chk.Float64(tst, "kr(0.5)", 1e-15, kr, 0.01269199568486913)
	kr, _ = Klr(0.25, 0.5, 0.5)
	chk.Float64(tst, "kr(0.25)", 1e-15, kr, 0.0005041634481457776)

	for _, se := range []float64{0, -0.1, 1.01, math.NaN()} {
		_, err := Klr(se, 0.5, 0.5)
		var de *guard.DomainError
		if !errors.As(err, &de) {
			tst.Errorf("Klr(%g) should have returned a DomainError. err = %v\n", se, err)
			return
		}
	}

	mdl, err := New("mualem")
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	if err = mdl.Init(mdl.GetPrms(true)); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	kr, _ = mdl.Klr(0.5)
	chk.Float64(tst, "model kr(0.5)", 1e-15, kr, 0.01269199568486913)

	if chk.Verbose {
		plt.Reset(false, nil)
		Plot(mdl, 0.01, 101, true, &plt.A{C: "b"})
		plt.Save("/tmp/luci", "klr01")
	}
}

func Test_mvg01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mvg01. closed-form conductivity")

	vg := new(retention.VanGen)
	if err := vg.Init(vg.GetPrms(true)); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	o, err := NewMvG(vg)
	if err != nil {
		tst.Errorf("NewMvG failed: %v\n", err)
		return
	}

	chk.Float64(tst, "K(0)", 1e-17, o.K(0), vg.Ksat)
	chk.Float64(tst, "K(1)", 1e-13, o.K(1), 3.151187689413279)
	chk.Float64(tst, "K(10)", 1e-15, o.K(10), 0.07366329169977397)
	chk.Float64(tst, "K(33)", 1e-15, o.K(33), 0.002212096949016224)

	θ, k := o.ThetaK(10)
	chk.Float64(tst, "θ(10)", 1e-15, θ, vg.Theta(10))
	chk.Float64(tst, "K(10)", 1e-17, k, o.K(10))

	H, Θ, K, err := Series(o, 0.01, 1000, 51, true)
	if err != nil {
		tst.Errorf("Series failed: %v\n", err)
		return
	}
	chk.Int(tst, "len(Θ)", len(Θ), len(H))
	for i := 1; i < len(K); i++ {
		if K[i] > K[i-1] {
			tst.Errorf("K increases from h=%g to h=%g\n", H[i-1], H[i])
			return
		}
	}

	if chk.Verbose {
		plt.Reset(false, nil)
		PlotK(o, H, 10, false, &plt.A{C: "b", L: "MvG"})
		PlotEnd("/tmp/luci", "mvg01", "$h$ [cm]")
	}
}

func Test_mvg02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mvg02. closed form equals Ks·kr(Se) for any m")

	for _, m := range []float64{0, 0.2, 1} {
		vg := new(retention.VanGen)
		err := vg.Init(dbfPrms(0.02, 0.4, 0.1, 1.4, m, 0.5, 25))
		if err != nil {
			tst.Errorf("Init failed: %v\n", err)
			return
		}
		o, err := NewMvG(vg)
		if err != nil {
			tst.Errorf("NewMvG failed: %v\n", err)
			return
		}
		for _, h := range []float64{0.1, 1, 10, 33, 100} {
			kr, err := o.Klr(h)
			if err != nil {
				tst.Errorf("Klr failed: %v\n", err)
				return
			}
			k := o.K(h)
			if math.Abs(k-vg.Ksat*kr) > 1e-9*k {
				tst.Errorf("m=%g h=%g: K = %g differs from Ks·kr = %g\n", vg.M, h, k, vg.Ksat*kr)
				return
			}
		}
	}

	vg := new(retention.VanGen)
	vg.Init(dbfPrms(0.02, 0.4, 0.1, 1.4, 0, -1, -1)[:5])
	if _, err := NewMvG(vg); err == nil {
		tst.Errorf("NewMvG should have failed without l and Ksat\n")
	}
}
