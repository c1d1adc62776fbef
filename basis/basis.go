// Copyright 2018 The Gomor Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package basis implements the reduced basis store and the mapping between
// full-order nodal space and reduced coordinate space
package basis

import (
	"fmt"

	"github.com/cpmech/gosl/la"
)

// MalformedBasisError indicates that the supplied basis data cannot form a
// valid n-by-r reduced basis
type MalformedBasisError struct {
	Reason string
}

func (e *MalformedBasisError) Error() string {
	return fmt.Sprintf("malformed basis: %s", e.Reason)
}

// Store holds the reduced basis matrix and the optional mean (shift) vector.
// A Store is immutable after construction; reloading a basis means building
// a new Store, since consumers cache dimension-derived buffers.
type Store struct {
	mat  *la.Matrix // [n][r] basis; columns are the modes
	mean la.Vector  // [n] mean/offset vector; may be nil
}

// NewStore returns a new basis store
//  m    -- [n][r] basis matrix with the modes as columns
//  mean -- [n] mean vector; may be nil for a zero shift
func NewStore(m *la.Matrix, mean la.Vector) (o *Store, err error) {
	if m == nil {
		return nil, &MalformedBasisError{"basis matrix is nil"}
	}
	if m.M < 1 {
		return nil, &MalformedBasisError{"basis has zero rows"}
	}
	if m.N < 1 {
		return nil, &MalformedBasisError{"basis has zero columns"}
	}
	if m.N > m.M {
		return nil, &MalformedBasisError{fmt.Sprintf("more modes (%d) than full-order DOFs (%d)", m.N, m.M)}
	}
	if mean != nil && len(mean) != m.M {
		return nil, &MalformedBasisError{fmt.Sprintf("mean vector has length %d but basis has %d rows", len(mean), m.M)}
	}
	o = &Store{mat: m, mean: mean}
	return
}

// N returns the number of full-order degrees of freedom
func (o *Store) N() int { return o.mat.M }

// R returns the number of reduced coordinates (modes)
func (o *Store) R() int { return o.mat.N }

// Matrix returns the basis matrix. Read-only: callers must not modify it
func (o *Store) Matrix() *la.Matrix { return o.mat }

// Mean returns the mean vector or nil. Read-only
func (o *Store) Mean() la.Vector { return o.mean }
