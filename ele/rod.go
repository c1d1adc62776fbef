// Copyright 2018 The Gomor Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"gomor/inp"
	"gomor/msolid"
)

// Rod implements a 2-node structural rod kernel (axial loads only), 2D or
// 3D, with linear elastic response. The axial stiffness is EA/L
type Rod struct {
	cell *inp.Cell
	x    [][]float64 // [2][ndim] nodal coordinates
	ndim int
	nu   int
	dofs []int
	mdl  *msolid.LinElast
	area float64
}

func newRod(cell *inp.Cell, msh *inp.Mesh, mdl *msolid.LinElast, area float64) (o *Rod, err error) {
	if area <= 0 {
		return nil, chk.Err("rod %d: cross-sectional area must be positive (A=%g)", cell.Id, area)
	}
	o = &Rod{
		cell: cell,
		x:    msh.CellCoords(cell),
		ndim: msh.Ndim,
		nu:   2 * msh.Ndim,
		dofs: buildDofs(cell, msh.Ndim),
		mdl:  mdl,
		area: area,
	}
	return
}

// Id returns the cell id
func (o *Rod) Id() int { return o.cell.Id }

// Nu returns the number of local unknowns
func (o *Rod) Nu() int { return o.nu }

// Dofs returns the global DOF numbers
func (o *Rod) Dofs() []int { return o.dofs }

// geom computes length and direction cosines
func (o *Rod) geom() (l float64, c []float64, err error) {
	c = make([]float64, o.ndim)
	for i := 0; i < o.ndim; i++ {
		c[i] = o.x[1][i] - o.x[0][i]
		l += c[i] * c[i]
	}
	l = math.Sqrt(l)
	if l <= 0 {
		return 0, nil, &ElementEvaluationError{o.cell.Id, "rod has zero length", l}
	}
	for i := 0; i < o.ndim; i++ {
		c[i] /= l
	}
	return
}

// AddToFi adds the internal force:  fi += (EA/L)·(Δu·c)·{−c, +c}
func (o *Rod) AddToFi(fi la.Vector, ue la.Vector) (err error) {
	l, c, err := o.geom()
	if err != nil {
		return
	}
	du := 0.0 // axial elongation
	for i := 0; i < o.ndim; i++ {
		du += (ue[o.ndim+i] - ue[i]) * c[i]
	}
	nf := o.mdl.E * o.area / l * du // axial force
	for i := 0; i < o.ndim; i++ {
		fi[i] -= nf * c[i]
		fi[o.ndim+i] += nf * c[i]
	}
	return
}

// AddToK adds the tangent:  K += (EA/L)·{−c,+c}⊗{−c,+c}
func (o *Rod) AddToK(K *la.Matrix, ue la.Vector) (err error) {
	l, c, err := o.geom()
	if err != nil {
		return
	}
	α := o.mdl.E * o.area / l
	s := make([]float64, o.nu)
	for i := 0; i < o.ndim; i++ {
		s[i] = -c[i]
		s[o.ndim+i] = +c[i]
	}
	for r := 0; r < o.nu; r++ {
		for j := 0; j < o.nu; j++ {
			K.Set(r, j, K.Get(r, j)+α*s[r]*s[j])
		}
	}
	return
}

// AddToM adds lumped nodal masses:  ρ·A·L/2 per node, on every DOF
func (o *Rod) AddToM(ml la.Vector, rho float64) (err error) {
	l, _, err := o.geom()
	if err != nil {
		return
	}
	β := rho * o.area * l / 2.0
	for r := 0; r < o.nu; r++ {
		ml[r] += β
	}
	return
}
