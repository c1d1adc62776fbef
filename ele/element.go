// Copyright 2018 The Gomor Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements element-local kernels: internal force and tangent
// stiffness of single finite elements, evaluated from local displacements
package ele

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"gomor/inp"
	"gomor/msolid"
)

// ElementEvaluationError indicates that an element kernel received
// degenerate geometry; e.g. a zero or negative Jacobian determinant under
// the current deformed state. This is reported to the caller, never
// clamped, since it flags a basis/RID mismatch with the current
// deformation and the host must decide how to proceed
type ElementEvaluationError struct {
	Eid    int     // element id
	Detail string  // what is degenerate
	Jdet   float64 // offending determinant value
}

func (e *ElementEvaluationError) Error() string {
	return fmt.Sprintf("element %d: %s (det=%g)", e.Eid, e.Detail, e.Jdet)
}

// Kernel defines what all element kernels must implement. Displacements and
// forces are local, ordered node-major: {node0·dof0, node0·dof1, ...}
type Kernel interface {

	// information
	Id() int     // cell id
	Nu() int     // number of local unknowns (nverts·ndim)
	Dofs() []int // global DOF numbers, node-major, matching the local ordering

	// evaluation for the current local displacements ue
	AddToFi(fi la.Vector, ue la.Vector) error // fi += internal force
	AddToK(K *la.Matrix, ue la.Vector) error  // K += consistent tangent
	AddToM(ml la.Vector, rho float64) error   // ml += lumped nodal masses
}

// New returns an element kernel for a cell, according to the cell geometry
// type and the constitutive model variant. This is the closed set of
// kernels; the host selects the variant at configuration time
func New(cell *inp.Cell, msh *inp.Mesh, mdl msolid.Model, pars msolid.Pars) (Kernel, error) {
	switch cell.Type {
	case "rod":
		lin, ok := mdl.(*msolid.LinElast)
		if !ok {
			return nil, chk.Err("rod kernel requires the lin-elast model (got %q)", mdl.Name())
		}
		return newRod(cell, msh, lin, pars.A)
	case "tri3":
		lin, ok := mdl.(*msolid.LinElast)
		if !ok {
			return nil, chk.Err("tri3 kernel requires the lin-elast model (got %q)", mdl.Name())
		}
		return newTri3(cell, msh, lin)
	case "tet4":
		switch m := mdl.(type) {
		case *msolid.LinElast:
			return newTet4(cell, msh, m)
		case *msolid.NeoHookean:
			return newTet4FS(cell, msh, m)
		}
		return nil, chk.Err("tet4 kernel cannot use model %q", mdl.Name())
	}
	return nil, chk.Err("no kernel available for cell type %q", cell.Type)
}

// buildDofs returns global DOF numbers of a cell, node-major
func buildDofs(cell *inp.Cell, ndim int) (dofs []int) {
	dofs = make([]int, len(cell.Verts)*ndim)
	for m, vid := range cell.Verts {
		for i := 0; i < ndim; i++ {
			dofs[i+m*ndim] = vid*ndim + i
		}
	}
	return
}
