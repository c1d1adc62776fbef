// Copyright 2018 The Gomor Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"gomor/inp"
	"gomor/msolid"
)

func verbose() {
	chk.Verbose = true
}

// trussMesh returns a 2D 3-node / 3-rod mesh:
//  v0=(0,0)  v1=(1,0)  v2=(0,1)
//  cells: rod(0,1), rod(1,2), rod(0,2)
func trussMesh() *inp.Mesh {
	return &inp.Mesh{
		Ndim: 2,
		Verts: []*inp.Vert{
			{Id: 0, C: []float64{0, 0}},
			{Id: 1, C: []float64{1, 0}},
			{Id: 2, C: []float64{0, 1}},
		},
		Cells: []*inp.Cell{
			{Id: 0, Type: "rod", Verts: []int{0, 1}},
			{Id: 1, Type: "rod", Verts: []int{1, 2}},
			{Id: 2, Type: "rod", Verts: []int{0, 2}},
		},
	}
}

// unitTetMesh returns a single unit tetrahedron with volume 1/6
func unitTetMesh() *inp.Mesh {
	return &inp.Mesh{
		Ndim: 3,
		Verts: []*inp.Vert{
			{Id: 0, C: []float64{0, 0, 0}},
			{Id: 1, C: []float64{1, 0, 0}},
			{Id: 2, C: []float64{0, 1, 0}},
			{Id: 3, C: []float64{0, 0, 1}},
		},
		Cells: []*inp.Cell{
			{Id: 0, Type: "tet4", Verts: []int{0, 1, 2, 3}},
		},
	}
}

func Test_rod01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rod01. axial stretch along x")

	msh := trussMesh()
	mdl, _ := msolid.NewLinElast(1.0, 0.3)
	kern, err := New(msh.Cells[0], msh, mdl, msolid.Pars{A: 1})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	chk.Int(tst, "nu", kern.Nu(), 4)
	chk.Ints(tst, "dofs", kern.Dofs(), []int{0, 1, 2, 3})

	// stretch: node 1 moves +0.1 in x; EA/L = 1
	ue := la.Vector{0, 0, 0.1, 0}
	fi := la.NewVector(4)
	err = kern.AddToFi(fi, ue)
	if err != nil {
		tst.Errorf("AddToFi failed: %v\n", err)
		return
	}
	chk.Array(tst, "fi", 1e-15, fi, []float64{-0.1, 0, 0.1, 0})

	// tangent matches the rod formula with c=1, s=0
	K := la.NewMatrix(4, 4)
	err = kern.AddToK(K, ue)
	if err != nil {
		tst.Errorf("AddToK failed: %v\n", err)
		return
	}
	chk.Deep2(tst, "K", 1e-15, K.GetDeep2(), [][]float64{
		{+1, 0, -1, 0},
		{0, 0, 0, 0},
		{-1, 0, +1, 0},
		{0, 0, 0, 0},
	})

	// linear kernel: fi == K·ue
	kue := la.NewVector(4)
	la.MatVecMul(kue, 1, K, ue)
	chk.Array(tst, "fi = K·ue", 1e-15, fi, kue)
}

func Test_rod02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rod02. inclined rod stiffness")

	// rod(1,2): from (1,0) to (0,1); L = √2, c = -1/√2, s = 1/√2
	msh := trussMesh()
	mdl, _ := msolid.NewLinElast(2.0, 0.3)
	kern, err := New(msh.Cells[1], msh, mdl, msolid.Pars{A: 3})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	// α = EA/L = 6/√2; entries α·c·c etc. with c·c = s·s = 1/2, c·s = -1/2
	α := 6.0 / 1.4142135623730951
	K := la.NewMatrix(4, 4)
	err = kern.AddToK(K, la.NewVector(4))
	if err != nil {
		tst.Errorf("AddToK failed: %v\n", err)
		return
	}
	cc, cs := α/2.0, -α/2.0
	chk.Deep2(tst, "K", 1e-14, K.GetDeep2(), [][]float64{
		{+cc, +cs, -cc, -cs},
		{+cs, +cc, -cs, -cc},
		{-cc, -cs, +cc, +cs},
		{-cs, -cc, +cs, +cc},
	})
}

func Test_tri01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tri01. constant-strain triangle")

	msh := &inp.Mesh{
		Ndim: 2,
		Verts: []*inp.Vert{
			{Id: 0, C: []float64{0, 0}},
			{Id: 1, C: []float64{1, 0}},
			{Id: 2, C: []float64{0, 1}},
		},
		Cells: []*inp.Cell{
			{Id: 0, Type: "tri3", Verts: []int{0, 1, 2}},
		},
	}
	mdl, _ := msolid.NewLinElast(1.0, 0.25)
	kern, err := New(msh.Cells[0], msh, mdl, msolid.Pars{})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	// rigid translation gives zero internal force
	fi := la.NewVector(6)
	err = kern.AddToFi(fi, la.Vector{0.3, -0.2, 0.3, -0.2, 0.3, -0.2})
	if err != nil {
		tst.Errorf("AddToFi failed: %v\n", err)
		return
	}
	chk.Array(tst, "fi (rigid)", 1e-14, fi, []float64{0, 0, 0, 0, 0, 0})

	// uniform strain εxx=0.1: nodal forces balance and are symmetric in y
	ue := la.Vector{0, 0, 0.1, 0, 0, 0}
	fi.Fill(0)
	err = kern.AddToFi(fi, ue)
	if err != nil {
		tst.Errorf("AddToFi failed: %v\n", err)
		return
	}
	chk.Float64(tst, "Σfx", 1e-14, fi[0]+fi[2]+fi[4], 0)
	chk.Float64(tst, "Σfy", 1e-14, fi[1]+fi[3]+fi[5], 0)

	// σxx = 1.2·0.1 = 0.12, σyy = 0.4·0.1 = 0.04 (plane strain, c=1.6);
	// f1x = A·σxx·b1x with b1x = 1: 0.5·0.12·... = 0.06
	chk.Float64(tst, "f1x", 1e-14, fi[2], 0.06)

	// tangent is symmetric and fi = K·ue for the linear kernel
	K := la.NewMatrix(6, 6)
	kern.AddToK(K, ue)
	for i := 0; i < 6; i++ {
		for j := i; j < 6; j++ {
			chk.Float64(tst, "K symmetry", 1e-14, K.Get(i, j), K.Get(j, i))
		}
	}
	kue := la.NewVector(6)
	la.MatVecMul(kue, 1, K, ue)
	chk.Array(tst, "fi = K·ue", 1e-14, fi, kue)
}

func Test_tri02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tri02. degenerate geometry")

	// collinear vertices: zero Jacobian determinant
	msh := &inp.Mesh{
		Ndim: 2,
		Verts: []*inp.Vert{
			{Id: 0, C: []float64{0, 0}},
			{Id: 1, C: []float64{1, 1}},
			{Id: 2, C: []float64{2, 2}},
		},
		Cells: []*inp.Cell{
			{Id: 0, Type: "tri3", Verts: []int{0, 1, 2}},
		},
	}
	mdl, _ := msolid.NewLinElast(1.0, 0.25)
	kern, err := New(msh.Cells[0], msh, mdl, msolid.Pars{})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	fi := la.NewVector(6)
	err = kern.AddToFi(fi, la.NewVector(6))
	var eee *ElementEvaluationError
	if err == nil || !errors.As(err, &eee) {
		tst.Errorf("AddToFi must fail with ElementEvaluationError (got %v)\n", err)
		return
	}
	chk.Int(tst, "eid", eee.Eid, 0)
}

func Test_tet01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tet01. linear tetrahedron")

	msh := unitTetMesh()
	mdl, _ := msolid.NewLinElast(1.0, 0.25)
	kern, err := New(msh.Cells[0], msh, mdl, msolid.Pars{})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	chk.Int(tst, "nu", kern.Nu(), 12)

	// rigid translation gives zero internal force
	fi := la.NewVector(12)
	ue := la.NewVector(12)
	for m := 0; m < 4; m++ {
		ue[3*m+0] = 0.1
		ue[3*m+1] = -0.2
		ue[3*m+2] = 0.05
	}
	err = kern.AddToFi(fi, ue)
	if err != nil {
		tst.Errorf("AddToFi failed: %v\n", err)
		return
	}
	chk.Array(tst, "fi (rigid)", 1e-14, fi, make([]float64, 12))

	// uniform strain: forces balance; tangent symmetric
	ue.Fill(0)
	ue[3] = 0.1 // node 1 moves in x
	fi.Fill(0)
	kern.AddToFi(fi, ue)
	for i := 0; i < 3; i++ {
		sum := fi[0+i] + fi[3+i] + fi[6+i] + fi[9+i]
		chk.Float64(tst, "Σf", 1e-14, sum, 0)
	}
	K := la.NewMatrix(12, 12)
	kern.AddToK(K, ue)
	for i := 0; i < 12; i++ {
		for j := i; j < 12; j++ {
			chk.Float64(tst, "K symmetry", 1e-14, K.Get(i, j), K.Get(j, i))
		}
	}
	kue := la.NewVector(12)
	la.MatVecMul(kue, 1, K, ue)
	chk.Array(tst, "fi = K·ue", 1e-14, fi, kue)
}

func Test_tet02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tet02. finite-strain tangent at identity equals linear elasticity")

	// μ=1, λ=1.5  ⇔  E = μ(3λ+2μ)/(λ+μ) = 2.6, ν = λ/(2(λ+μ)) = 0.3
	msh := unitTetMesh()
	neo, _ := msolid.NewNeoHookean(1.0, 1.5)
	lin, _ := msolid.NewLinElast(2.6, 0.3)

	kfs, err := New(msh.Cells[0], msh, neo, msolid.Pars{})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	kss, _ := New(msh.Cells[0], msh, lin, msolid.Pars{})

	zero := la.NewVector(12)
	Kfs := la.NewMatrix(12, 12)
	Kss := la.NewMatrix(12, 12)
	err = kfs.AddToK(Kfs, zero)
	if err != nil {
		tst.Errorf("AddToK failed: %v\n", err)
		return
	}
	kss.AddToK(Kss, zero)
	chk.Deep2(tst, "K (fs at identity) == K (small strain)", 1e-13, Kfs.GetDeep2(), Kss.GetDeep2())

	// stress-free at identity
	fi := la.NewVector(12)
	kfs.AddToFi(fi, zero)
	chk.Array(tst, "fi at identity", 1e-14, fi, make([]float64, 12))
}

func Test_tet03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tet03. inverted deformation")

	msh := unitTetMesh()
	neo, _ := msolid.NewNeoHookean(1.0, 1.5)
	kern, _ := New(msh.Cells[0], msh, neo, msolid.Pars{})

	// push node 3 through the opposite face: detF ≤ 0
	ue := la.NewVector(12)
	ue[11] = -2.0
	fi := la.NewVector(12)
	err := kern.AddToFi(fi, ue)
	var eee *ElementEvaluationError
	if err == nil || !errors.As(err, &eee) {
		tst.Errorf("AddToFi must fail with ElementEvaluationError (got %v)\n", err)
		return
	}
}
