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

// Tet4 implements a 4-node constant-strain tetrahedron kernel with linear
// elastic response. Voigt ordering {xx, yy, zz, xy, yz, zx}
type Tet4 struct {
	cell *inp.Cell
	x    [][]float64 // [4][3] nodal coordinates
	dofs []int
	mdl  *msolid.LinElast
	d    *la.Matrix // [6][6] consistent modulus

	// scratchpad
	g   [4][3]float64 // shape function gradients
	b   *la.Matrix    // [6][12] B matrix
	eps la.Vector     // [6]
	sig la.Vector     // [6]
	db  *la.Matrix    // [6][12] D·B
	kk  *la.Matrix    // [12][12] Bᵀ·D·B
}

func newTet4(cell *inp.Cell, msh *inp.Mesh, mdl *msolid.LinElast) (o *Tet4, err error) {
	if msh.Ndim != 3 {
		return nil, chk.Err("tet4 %d: requires a 3D mesh (ndim=%d)", cell.Id, msh.Ndim)
	}
	o = &Tet4{
		cell: cell,
		x:    msh.CellCoords(cell),
		dofs: buildDofs(cell, 3),
		mdl:  mdl,
		d:    la.NewMatrix(6, 6),
		b:    la.NewMatrix(6, 12),
		eps:  la.NewVector(6),
		sig:  la.NewVector(6),
		db:   la.NewMatrix(6, 12),
		kk:   la.NewMatrix(12, 12),
	}
	err = mdl.CalcD(o.d, 3)
	return
}

// Id returns the cell id
func (o *Tet4) Id() int { return o.cell.Id }

// Nu returns the number of local unknowns
func (o *Tet4) Nu() int { return 12 }

// Dofs returns the global DOF numbers
func (o *Tet4) Dofs() []int { return o.dofs }

// tetGradients computes shape function gradients g[4][3] and the volume of
// a linear tetrahedron; det ≤ 0 yields an ElementEvaluationError
func tetGradients(eid int, x [][]float64, g *[4][3]float64) (vol float64, err error) {
	var j [3][3]float64 // Jacobian: j[i] = x[i+1] − x[0]
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			j[i][k] = x[i+1][k] - x[0][k]
		}
	}
	var jit [3][3]float64
	det := inv3x3tr(&j, &jit)
	if det <= 0 {
		return 0, &ElementEvaluationError{eid, "zero or negative Jacobian determinant", det}
	}
	vol = det / 6.0
	// grad Nm[k] = Σ_i dNm/dξ_i · dξ_i/dx_k with dN0/dξ = {−1,−1,−1} and
	// dN(i+1)/dξ = e_i; dξ/dx is the inverse-transpose computed above
	for k := 0; k < 3; k++ {
		g[0][k] = 0
		for i := 0; i < 3; i++ {
			g[i+1][k] = jit[i][k]
			g[0][k] -= jit[i][k]
		}
	}
	return
}

// bmat fills the B matrix and returns the volume
func (o *Tet4) bmat() (vol float64, err error) {
	vol, err = tetGradients(o.cell.Id, o.x, &o.g)
	if err != nil {
		return
	}
	for m := 0; m < 4; m++ {
		gx, gy, gz := o.g[m][0], o.g[m][1], o.g[m][2]
		c := 3 * m
		for r := 0; r < 6; r++ {
			o.b.Set(r, c+0, 0)
			o.b.Set(r, c+1, 0)
			o.b.Set(r, c+2, 0)
		}
		o.b.Set(0, c+0, gx)
		o.b.Set(1, c+1, gy)
		o.b.Set(2, c+2, gz)
		o.b.Set(3, c+0, gy)
		o.b.Set(3, c+1, gx)
		o.b.Set(4, c+1, gz)
		o.b.Set(4, c+2, gy)
		o.b.Set(5, c+0, gz)
		o.b.Set(5, c+2, gx)
	}
	return
}

// AddToFi adds the internal force:  fi += V·Bᵀ·σ  with  σ = D·B·ue
func (o *Tet4) AddToFi(fi la.Vector, ue la.Vector) (err error) {
	vol, err := o.bmat()
	if err != nil {
		return
	}
	la.MatVecMul(o.eps, 1, o.b, ue)
	la.MatVecMul(o.sig, 1, o.d, o.eps)
	la.MatTrVecMulAdd(fi, vol, o.b, o.sig)
	return
}

// AddToK adds the tangent:  K += V·Bᵀ·D·B
func (o *Tet4) AddToK(K *la.Matrix, ue la.Vector) (err error) {
	vol, err := o.bmat()
	if err != nil {
		return
	}
	la.MatMatMul(o.db, 1, o.d, o.b)
	la.MatTrMatMul(o.kk, vol, o.b, o.db)
	for k := range o.kk.Data {
		K.Data[k] += o.kk.Data[k]
	}
	return
}

// AddToM adds lumped nodal masses:  ρ·V/4 per node, on all three DOFs
func (o *Tet4) AddToM(ml la.Vector, rho float64) (err error) {
	vol, err := o.bmat()
	if err != nil {
		return
	}
	β := rho * vol / 4.0
	for r := 0; r < 12; r++ {
		ml[r] += β
	}
	return
}

// inv3x3tr computes the inverse-transpose of a 3x3 matrix and returns the
// determinant; ait is left untouched when det ≤ 0
func inv3x3tr(a *[3][3]float64, ait *[3][3]float64) (det float64) {
	c00 := a[1][1]*a[2][2] - a[1][2]*a[2][1]
	c01 := a[1][2]*a[2][0] - a[1][0]*a[2][2]
	c02 := a[1][0]*a[2][1] - a[1][1]*a[2][0]
	det = a[0][0]*c00 + a[0][1]*c01 + a[0][2]*c02
	if det <= 0 {
		return
	}
	ait[0][0] = c00 / det
	ait[0][1] = c01 / det
	ait[0][2] = c02 / det
	ait[1][0] = (a[0][2]*a[2][1] - a[0][1]*a[2][2]) / det
	ait[1][1] = (a[0][0]*a[2][2] - a[0][2]*a[2][0]) / det
	ait[1][2] = (a[0][1]*a[2][0] - a[0][0]*a[2][1]) / det
	ait[2][0] = (a[0][1]*a[1][2] - a[0][2]*a[1][1]) / det
	ait[2][1] = (a[0][2]*a[1][0] - a[0][0]*a[1][2]) / det
	ait[2][2] = (a[0][0]*a[1][1] - a[0][1]*a[1][0]) / det
	return
}
