// Copyright 2018 The Gomor Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// DimensionMismatchError indicates that a vector or matrix handed to the
// mapping does not match the basis dimensions
type DimensionMismatchError struct {
	Op   string // operation; e.g. "Project"
	Want int    // expected length
	Got  int    // supplied length
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: dimension mismatch: expected length %d, got %d", e.Op, e.Want, e.Got)
}

// Options holds optional settings for the construction of a Mapping
type Options struct {
	CheckBasis bool    // verify that the basis columns are orthonormal
	CheckTol   float64 // tolerance for the orthonormality check [default 1e-8]
}

// Mapping implements the bidirectional transform between full-order nodal
// space (size n) and reduced coordinate space (size r) for a given basis
// store. Precondition: the basis columns must be orthonormal for the
// round-trip law Project(Lift(q)) == q to hold; this is NOT verified unless
// the mapping is constructed with CheckBasis set.
type Mapping struct {
	sto *Store
}

// NewMapping returns a new mapping bound to a basis store
//  opts -- optional settings; may be nil [default: no orthonormality check]
func NewMapping(sto *Store, opts *Options) (o *Mapping, err error) {
	if sto == nil {
		return nil, &MalformedBasisError{"basis store is nil"}
	}
	if opts != nil && opts.CheckBasis {
		tol := opts.CheckTol
		if tol <= 0 {
			tol = 1e-8
		}
		err = checkOrthonormal(sto.mat, tol)
		if err != nil {
			return nil, err
		}
	}
	o = &Mapping{sto: sto}
	return
}

// N returns the number of full-order degrees of freedom
func (o *Mapping) N() int { return o.sto.N() }

// R returns the number of reduced coordinates
func (o *Mapping) R() int { return o.sto.R() }

// Store returns the underlying basis store
func (o *Mapping) Store() *Store { return o.sto }

// Project computes the least-squares projection of a full-order vector onto
// the reduced space:  q = Basisᵀ · (full − mean)
func (o *Mapping) Project(full, q la.Vector) (err error) {
	if err = o.check("Project", full, q); err != nil {
		return
	}
	if o.sto.mean == nil {
		la.MatTrVecMul(q, 1, o.sto.mat, full)
		return
	}
	d := la.NewVector(o.N())
	for i := 0; i < o.N(); i++ {
		d[i] = full[i] - o.sto.mean[i]
	}
	la.MatTrVecMul(q, 1, o.sto.mat, d)
	return
}

// Lift reconstructs the full-order vector from reduced coordinates:
//  full = Basis · q + mean
func (o *Mapping) Lift(q, full la.Vector) (err error) {
	if err = o.check("Lift", full, q); err != nil {
		return
	}
	la.MatVecMul(full, 1, o.sto.mat, q)
	if o.sto.mean != nil {
		for i := 0; i < o.N(); i++ {
			full[i] += o.sto.mean[i]
		}
	}
	return
}

// ProjectVelocity projects a full-order velocity (or any increment) without
// applying the mean shift:  qdot = Basisᵀ · vfull
func (o *Mapping) ProjectVelocity(vfull, qdot la.Vector) (err error) {
	if err = o.check("ProjectVelocity", vfull, qdot); err != nil {
		return
	}
	la.MatTrVecMul(qdot, 1, o.sto.mat, vfull)
	return
}

// LiftVelocity lifts a reduced velocity (or any increment) without the mean
// shift:  vfull = Basis · qdot
func (o *Mapping) LiftVelocity(qdot, vfull la.Vector) (err error) {
	if err = o.check("LiftVelocity", vfull, qdot); err != nil {
		return
	}
	la.MatVecMul(vfull, 1, o.sto.mat, qdot)
	return
}

// ReduceForce transports a full-order force vector to reduced space using
// the basis transpose:  fr = Basisᵀ · f
func (o *Mapping) ReduceForce(f, fr la.Vector) (err error) {
	if err = o.check("ReduceForce", f, fr); err != nil {
		return
	}
	la.MatTrVecMul(fr, 1, o.sto.mat, f)
	return
}

// ReduceForceAdd accumulates the reduced image of a full-order force:
//  fr += α · Basisᵀ · f
func (o *Mapping) ReduceForceAdd(fr la.Vector, α float64, f la.Vector) (err error) {
	if err = o.check("ReduceForceAdd", f, fr); err != nil {
		return
	}
	la.MatTrVecMulAdd(fr, α, o.sto.mat, f)
	return
}

// LiftStiffness expands a reduced stiffness into an explicit full-order
// matrix:  K = Basis · Kr · Basisᵀ
// NOTE: this allocates/fills an n-by-n dense matrix and costs O(n²·r);
// avoid on the hot path whenever the host only needs the reduced stiffness
func (o *Mapping) LiftStiffness(Kr, K *la.Matrix) (err error) {
	n, r := o.N(), o.R()
	if Kr.M != r || Kr.N != r {
		return &DimensionMismatchError{"LiftStiffness", r, Kr.M}
	}
	if K.M != n || K.N != n {
		return &DimensionMismatchError{"LiftStiffness", n, K.M}
	}
	w := la.NewMatrix(n, r) // w = Basis · Kr
	la.MatMatMul(w, 1, o.sto.mat, Kr)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s := 0.0
			for k := 0; k < r; k++ {
				s += w.Get(i, k) * o.sto.mat.Get(j, k)
			}
			K.Set(i, j, s)
		}
	}
	return
}

// LiftStiffnessToTriplet accumulates α · Basis · Kr · Basisᵀ into a sparse
// triplet for assembly into the host's global system. The triplet must have
// room for n·n extra entries
func (o *Mapping) LiftStiffnessToTriplet(α float64, Kr *la.Matrix, T *la.Triplet) (err error) {
	n, r := o.N(), o.R()
	if Kr.M != r || Kr.N != r {
		return &DimensionMismatchError{"LiftStiffnessToTriplet", r, Kr.M}
	}
	w := la.NewMatrix(n, r)
	la.MatMatMul(w, 1, o.sto.mat, Kr)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s := 0.0
			for k := 0; k < r; k++ {
				s += w.Get(i, k) * o.sto.mat.Get(j, k)
			}
			T.Put(i, j, α*s)
		}
	}
	return
}

// check verifies full/reduced vector lengths
func (o *Mapping) check(op string, full, q la.Vector) error {
	if len(full) != o.N() {
		return &DimensionMismatchError{op, o.N(), len(full)}
	}
	if len(q) != o.R() {
		return &DimensionMismatchError{op, o.R(), len(q)}
	}
	return nil
}

// checkOrthonormal verifies that all singular values of the basis are equal
// to one within tol. Uses gonum's pure-Go SVD so validation does not depend
// on an external LAPACK
func checkOrthonormal(m *la.Matrix, tol float64) error {
	a := mat.NewDense(m.M, m.N, nil)
	for i := 0; i < m.M; i++ {
		for j := 0; j < m.N; j++ {
			a.Set(i, j, m.Get(i, j))
		}
	}
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDNone) {
		return &MalformedBasisError{"SVD of basis matrix failed"}
	}
	for k, s := range svd.Values(nil) {
		if math.Abs(s-1.0) > tol {
			return &MalformedBasisError{fmt.Sprintf("basis is not orthonormal: singular value %d is %g (tol=%g)", k, s, tol)}
		}
	}
	return nil
}
