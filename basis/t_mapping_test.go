// Copyright 2018 The Gomor Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// testStore returns a 6x2 store with orthonormal columns and a given mean
func testStore(tst *testing.T, mean la.Vector) *Store {
	s := 1.0 / math.Sqrt2
	m := la.NewMatrixDeep2([][]float64{
		{s, 0},
		{s, 0},
		{0, 1},
		{0, 0},
		{0, 0},
		{0, 0},
	})
	sto, err := NewStore(m, mean)
	if err != nil {
		tst.Fatalf("cannot build store: %v\n", err)
	}
	return sto
}

func Test_map01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("map01. round-trip law")

	mean := la.Vector{0.5, -0.5, 1, 2, 3, 4}
	sto := testStore(tst, mean)
	mp, err := NewMapping(sto, nil)
	if err != nil {
		tst.Errorf("NewMapping failed: %v\n", err)
		return
	}

	q := la.Vector{0.1, -0.05}
	full := la.NewVector(6)
	err = mp.Lift(q, full)
	if err != nil {
		tst.Errorf("Lift failed: %v\n", err)
		return
	}
	s := 1.0 / math.Sqrt2
	chk.Array(tst, "lift(q)", 1e-15, full, []float64{0.1*s + 0.5, 0.1*s - 0.5, 0.95, 2, 3, 4})

	qback := la.NewVector(2)
	err = mp.Project(full, qback)
	if err != nil {
		tst.Errorf("Project failed: %v\n", err)
		return
	}
	chk.Array(tst, "project(lift(q))", 1e-14, qback, q)
}

func Test_map02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("map02. linearity of lift")

	sto := testStore(tst, nil)
	mp, _ := NewMapping(sto, nil)

	x := la.Vector{0.3, -1.2}
	y := la.Vector{-0.7, 0.25}
	a, b := 2.5, -0.75

	// lift(a·x + b·y)
	z := la.NewVector(2)
	for i := 0; i < 2; i++ {
		z[i] = a*x[i] + b*y[i]
	}
	lz := la.NewVector(6)
	mp.Lift(z, lz)

	// a·lift(x) + b·lift(y)
	lx := la.NewVector(6)
	ly := la.NewVector(6)
	mp.Lift(x, lx)
	mp.Lift(y, ly)
	sum := la.NewVector(6)
	for i := 0; i < 6; i++ {
		sum[i] = a*lx[i] + b*ly[i]
	}

	chk.Array(tst, "lift is linear", 1e-14, lz, sum)
}

func Test_map03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("map03. dimension guards")

	sto := testStore(tst, nil)
	mp, _ := NewMapping(sto, nil)

	var dme *DimensionMismatchError
	err := mp.Project(la.NewVector(5), la.NewVector(2))
	if err == nil || !errors.As(err, &dme) {
		tst.Errorf("Project must fail with DimensionMismatchError (got %v)\n", err)
		return
	}
	chk.Int(tst, "want", dme.Want, 6)
	chk.Int(tst, "got", dme.Got, 5)

	err = mp.Lift(la.NewVector(3), la.NewVector(6))
	if err == nil || !errors.As(err, &dme) {
		tst.Errorf("Lift must fail with DimensionMismatchError (got %v)\n", err)
		return
	}

	err = mp.ReduceForce(la.NewVector(6), la.NewVector(4))
	if err == nil || !errors.As(err, &dme) {
		tst.Errorf("ReduceForce must fail with DimensionMismatchError (got %v)\n", err)
		return
	}
}

func Test_map04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("map04. configurable orthonormality check")

	// orthonormal basis passes
	sto := testStore(tst, nil)
	_, err := NewMapping(sto, &Options{CheckBasis: true})
	if err != nil {
		tst.Errorf("orthonormal basis must pass the check: %v\n", err)
		return
	}

	// scaled basis fails
	m := la.NewMatrixDeep2([][]float64{
		{2, 0},
		{0, 2},
		{0, 0},
	})
	bad, _ := NewStore(m, nil)
	_, err = NewMapping(bad, &Options{CheckBasis: true})
	var mbe *MalformedBasisError
	if err == nil || !errors.As(err, &mbe) {
		tst.Errorf("non-orthonormal basis must fail with MalformedBasisError (got %v)\n", err)
		return
	}

	// without the check the same basis is accepted (documented default)
	_, err = NewMapping(bad, nil)
	if err != nil {
		tst.Errorf("check must be off by default: %v\n", err)
		return
	}
}

func Test_map05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("map05. force transport and stiffness lift")

	// basis with unit-vector columns e1 and e4
	m := la.NewMatrixDeep2([][]float64{
		{1, 0},
		{0, 0},
		{0, 0},
		{0, 1},
		{0, 0},
		{0, 0},
	})
	sto, _ := NewStore(m, nil)
	mp, _ := NewMapping(sto, nil)

	// fr = Basisᵀ·f picks DOFs 0 and 3
	f := la.Vector{1, 2, 3, 4, 5, 6}
	fr := la.NewVector(2)
	mp.ReduceForce(f, fr)
	chk.Array(tst, "fr", 1e-15, fr, []float64{1, 4})

	// K = Basis·Kr·Basisᵀ scatters Kr into rows/cols {0,3}
	kr := la.NewMatrixDeep2([][]float64{
		{10, 2},
		{2, 20},
	})
	kfull := la.NewMatrix(6, 6)
	err := mp.LiftStiffness(kr, kfull)
	if err != nil {
		tst.Errorf("LiftStiffness failed: %v\n", err)
		return
	}
	chk.Float64(tst, "K[0][0]", 1e-15, kfull.Get(0, 0), 10)
	chk.Float64(tst, "K[0][3]", 1e-15, kfull.Get(0, 3), 2)
	chk.Float64(tst, "K[3][0]", 1e-15, kfull.Get(3, 0), 2)
	chk.Float64(tst, "K[3][3]", 1e-15, kfull.Get(3, 3), 20)
	chk.Float64(tst, "K[1][1]", 1e-15, kfull.Get(1, 1), 0)

	// triplet variant assembles the same matrix
	T := la.NewTriplet(6, 6, 36)
	err = mp.LiftStiffnessToTriplet(1, kr, T)
	if err != nil {
		tst.Errorf("LiftStiffnessToTriplet failed: %v\n", err)
		return
	}
	chk.Deep2(tst, "triplet", 1e-15, T.ToDense().GetDeep2(), kfull.GetDeep2())
}
