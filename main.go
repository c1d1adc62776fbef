// Copyright 2018 The Gomor Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Gomor applies a precomputed reduced-order basis to a finite element
// model and evaluates hyper-reduced internal forces over a reduced
// integration domain. The host time integrator is emulated here by a
// simple ramp on the first reduced coordinate
package main

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"gomor/basis"
	"gomor/fem"
	"gomor/inp"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
		}
	}()

	// read input parameters
	simfn, _ := io.ArgToFilename(0, "examples/rodtruss/truss", ".sim", true)
	nsteps := io.ArgToInt(1, 10)
	amp := io.ArgToFloat(2, 0.1)
	verbose := io.ArgToBool(3, true)

	// message
	if verbose {
		io.PfWhite("\nGomor -- reduced-order FEM force evaluation\n\n")
		io.Pf("%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"simulation filename path", "simfn", simfn,
			"number of pseudo steps", "nsteps", nsteps,
			"ramp amplitude on first mode", "amp", amp,
			"show messages", "verbose", verbose,
		))
	}

	// load simulation data
	sim, err := inp.ReadSim(simfn)
	if err != nil {
		chk.Panic("cannot read simulation input:\n%v", err)
	}

	// reduction mapping
	mp, err := basis.NewMapping(sim.Basis, nil)
	if err != nil {
		chk.Panic("cannot build reduction mapping:\n%v", err)
	}

	// force field
	ff := fem.NewForceField(&fem.Config{
		Model:    sim.Data.Mat.Model,
		Pars:     sim.Data.Mat.Prms,
		Hyper:    sim.Data.Hyper.Enabled,
		Nworkers: sim.Data.Hyper.Nworkers,
		MassR:    sim.MassR,
	})
	err = ff.Bind(sim.Msh, mp, sim.Rid)
	if err != nil {
		chk.Panic("cannot bind force field:\n%v", err)
	}
	if verbose {
		io.Pf("n=%d r=%d |RID|=%d hyper=%v\n\n", ff.N(), ff.R(), ff.RidSize(), sim.Data.Hyper.Enabled)
	}

	// pseudo time loop: ramp the first reduced coordinate and report the
	// reduced force at each step
	q := la.NewVector(ff.R())
	fr := la.NewVector(ff.R())
	kr := la.NewMatrix(ff.R(), ff.R())
	for step := 1; step <= nsteps; step++ {
		q[0] = amp * float64(step) / float64(nsteps)
		err = ff.ReducedForceAndStiffness(q, fr, kr)
		if err != nil {
			chk.Panic("evaluation failed at step %d:\n%v", step, err)
		}
		if verbose {
			io.Pf("step %3d: q[0]=%10.6f  |fr|=%12.8f  |Kr|=%12.8f\n", step, q[0], norm(fr), normMat(kr))
		}
	}
}

func norm(v la.Vector) (res float64) {
	for _, x := range v {
		res += x * x
	}
	return math.Sqrt(res)
}

func normMat(m *la.Matrix) (res float64) {
	for _, x := range m.Data {
		res += x * x
	}
	return math.Sqrt(res)
}
