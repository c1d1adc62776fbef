// Copyright 2018 The Gomor Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"gomor/inp"
	"gomor/msolid"
)

// Tri3 implements a 3-node constant-strain triangle kernel (plane strain,
// unit thickness) with linear elastic response
type Tri3 struct {
	cell *inp.Cell
	x    [][]float64 // [3][2] nodal coordinates
	dofs []int
	mdl  *msolid.LinElast
	d    *la.Matrix // [3][3] consistent modulus

	// scratchpad
	b   *la.Matrix // [3][6] B matrix
	eps la.Vector  // [3] strains
	sig la.Vector  // [3] stresses
	db  *la.Matrix // [3][6] D·B
	kk  *la.Matrix // [6][6] Bᵀ·D·B
}

func newTri3(cell *inp.Cell, msh *inp.Mesh, mdl *msolid.LinElast) (o *Tri3, err error) {
	if msh.Ndim != 2 {
		return nil, chk.Err("tri3 %d: requires a 2D mesh (ndim=%d)", cell.Id, msh.Ndim)
	}
	o = &Tri3{
		cell: cell,
		x:    msh.CellCoords(cell),
		dofs: buildDofs(cell, 2),
		mdl:  mdl,
		d:    la.NewMatrix(3, 3),
		b:    la.NewMatrix(3, 6),
		eps:  la.NewVector(3),
		sig:  la.NewVector(3),
		db:   la.NewMatrix(3, 6),
		kk:   la.NewMatrix(6, 6),
	}
	err = mdl.CalcD(o.d, 2)
	return
}

// Id returns the cell id
func (o *Tri3) Id() int { return o.cell.Id }

// Nu returns the number of local unknowns
func (o *Tri3) Nu() int { return 6 }

// Dofs returns the global DOF numbers
func (o *Tri3) Dofs() []int { return o.dofs }

// bmat fills the B matrix and returns the (signed) area
func (o *Tri3) bmat() (area float64, err error) {
	x0, y0 := o.x[0][0], o.x[0][1]
	x1, y1 := o.x[1][0], o.x[1][1]
	x2, y2 := o.x[2][0], o.x[2][1]
	det := (x1-x0)*(y2-y0) - (x2-x0)*(y1-y0) // 2·area == Jacobian determinant
	if det <= 0 {
		return 0, &ElementEvaluationError{o.cell.Id, "zero or negative Jacobian determinant", det}
	}
	area = det / 2.0
	gx := []float64{(y1 - y2) / det, (y2 - y0) / det, (y0 - y1) / det}
	gy := []float64{(x2 - x1) / det, (x0 - x2) / det, (x1 - x0) / det}
	for m := 0; m < 3; m++ {
		o.b.Set(0, 2*m+0, gx[m])
		o.b.Set(0, 2*m+1, 0)
		o.b.Set(1, 2*m+0, 0)
		o.b.Set(1, 2*m+1, gy[m])
		o.b.Set(2, 2*m+0, gy[m])
		o.b.Set(2, 2*m+1, gx[m])
	}
	return
}

// AddToFi adds the internal force:  fi += A·Bᵀ·σ  with  σ = D·B·ue
func (o *Tri3) AddToFi(fi la.Vector, ue la.Vector) (err error) {
	area, err := o.bmat()
	if err != nil {
		return
	}
	la.MatVecMul(o.eps, 1, o.b, ue)
	la.MatVecMul(o.sig, 1, o.d, o.eps)
	la.MatTrVecMulAdd(fi, area, o.b, o.sig)
	return
}

// AddToK adds the tangent:  K += A·Bᵀ·D·B
func (o *Tri3) AddToK(K *la.Matrix, ue la.Vector) (err error) {
	area, err := o.bmat()
	if err != nil {
		return
	}
	la.MatMatMul(o.db, 1, o.d, o.b)
	la.MatTrMatMul(o.kk, area, o.b, o.db)
	for k := range o.kk.Data {
		K.Data[k] += o.kk.Data[k]
	}
	return
}

// AddToM adds lumped nodal masses:  ρ·A/3 per node, on both DOFs
func (o *Tri3) AddToM(ml la.Vector, rho float64) (err error) {
	area, err := o.bmat()
	if err != nil {
		return
	}
	β := rho * area / 3.0
	for r := 0; r < 6; r++ {
		ml[r] += β
	}
	return
}
