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

// Tet4FS implements a 4-node tetrahedron kernel under finite strains with a
// neo-Hookean constitutive law. Gradients are constant over the element, so
// the deformation gradient F = I + Σ_m u_m ⊗ ∇N_m is evaluated once per
// call; det F ≤ 0 under the current displacements is reported as an
// ElementEvaluationError
type Tet4FS struct {
	cell *inp.Cell
	x    [][]float64 // [4][3] reference nodal coordinates
	dofs []int
	mdl  *msolid.NeoHookean

	// scratchpad
	g [4][3]float64       // shape function gradients
	f [3][3]float64       // deformation gradient
	p [3][3]float64       // first Piola-Kirchhoff stress
	a [3][3][3][3]float64 // first elasticity tensor
}

func newTet4FS(cell *inp.Cell, msh *inp.Mesh, mdl *msolid.NeoHookean) (o *Tet4FS, err error) {
	if msh.Ndim != 3 {
		return nil, chk.Err("tet4 %d: requires a 3D mesh (ndim=%d)", cell.Id, msh.Ndim)
	}
	o = &Tet4FS{
		cell: cell,
		x:    msh.CellCoords(cell),
		dofs: buildDofs(cell, 3),
		mdl:  mdl,
	}
	return
}

// Id returns the cell id
func (o *Tet4FS) Id() int { return o.cell.Id }

// Nu returns the number of local unknowns
func (o *Tet4FS) Nu() int { return 12 }

// Dofs returns the global DOF numbers
func (o *Tet4FS) Dofs() []int { return o.dofs }

// defgrad computes reference gradients, the reference volume, and the
// deformation gradient for the current local displacements
func (o *Tet4FS) defgrad(ue la.Vector) (vol float64, err error) {
	vol, err = tetGradients(o.cell.Id, o.x, &o.g)
	if err != nil {
		return
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			f := 0.0
			for m := 0; m < 4; m++ {
				f += ue[3*m+i] * o.g[m][j]
			}
			o.f[i][j] = f
		}
		o.f[i][i] += 1.0
	}
	return
}

// AddToFi adds the internal force:  fi[3m+i] += V·Σ_J P[i][J]·∇N_m[J]
func (o *Tet4FS) AddToFi(fi la.Vector, ue la.Vector) (err error) {
	vol, err := o.defgrad(ue)
	if err != nil {
		return
	}
	detF := o.mdl.Piola(&o.p, &o.f)
	if detF <= 0 {
		return &ElementEvaluationError{o.cell.Id, "deformation gradient has non-positive determinant", detF}
	}
	for m := 0; m < 4; m++ {
		for i := 0; i < 3; i++ {
			s := 0.0
			for j := 0; j < 3; j++ {
				s += o.p[i][j] * o.g[m][j]
			}
			fi[3*m+i] += vol * s
		}
	}
	return
}

// AddToK adds the consistent tangent:
//  K[3a+i][3b+k] += V·Σ_{J,L} ∇N_a[J]·A[i][J][k][L]·∇N_b[L]
func (o *Tet4FS) AddToK(K *la.Matrix, ue la.Vector) (err error) {
	vol, err := o.defgrad(ue)
	if err != nil {
		return
	}
	detF := o.mdl.Piola(&o.p, &o.f)
	if detF <= 0 {
		return &ElementEvaluationError{o.cell.Id, "deformation gradient has non-positive determinant", detF}
	}
	o.mdl.Tangent(&o.a, &o.f)
	for ma := 0; ma < 4; ma++ {
		for i := 0; i < 3; i++ {
			r := 3*ma + i
			for mb := 0; mb < 4; mb++ {
				for k := 0; k < 3; k++ {
					c := 3*mb + k
					s := 0.0
					for j := 0; j < 3; j++ {
						for l := 0; l < 3; l++ {
							s += o.g[ma][j] * o.a[i][j][k][l] * o.g[mb][l]
						}
					}
					K.Set(r, c, K.Get(r, c)+vol*s)
				}
			}
		}
	}
	return
}

// AddToM adds lumped nodal masses over the reference volume
func (o *Tet4FS) AddToM(ml la.Vector, rho float64) (err error) {
	vol, err := tetGradients(o.cell.Id, o.x, &o.g)
	if err != nil {
		return
	}
	β := rho * vol / 4.0
	for r := 0; r < 12; r++ {
		ml[r] += β
	}
	return
}
