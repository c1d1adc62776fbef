// Copyright 2018 The Gomor Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rid implements the reduced integration domain: the precomputed
// sparse subset of elements, with reconstruction weights, over which the
// hyper-reduced force field evaluates local physics
package rid

import "fmt"

// InvalidRIDError indicates invalid reduced integration domain data
type InvalidRIDError struct {
	Reason string
}

func (e *InvalidRIDError) Error() string {
	return fmt.Sprintf("invalid reduced integration domain: %s", e.Reason)
}

// Entry is one (element index, reconstruction weight) pair
type Entry struct {
	Eid int     // element index into the host mesh
	W   float64 // nonnegative reconstruction weight
}

// Container holds the ordered sequence of RID entries. Immutable after
// construction; iteration order equals load order and is part of the
// contract, since accumulation must be deterministic
type Container struct {
	entries []Entry
}

// New returns a new container from parallel index and weight slices.
// The sequence must be non-empty: an empty domain is only legal through
// Empty, for the full-integration fallback
func New(eids []int, weights []float64) (o *Container, err error) {
	if len(eids) != len(weights) {
		return nil, &InvalidRIDError{fmt.Sprintf("indices (%d) and weights (%d) have different cardinality", len(eids), len(weights))}
	}
	if len(eids) == 0 {
		return nil, &InvalidRIDError{"empty element set (only valid with hyper-reduction disabled)"}
	}
	o = &Container{entries: make([]Entry, len(eids))}
	for i, eid := range eids {
		if eid < 0 {
			return nil, &InvalidRIDError{fmt.Sprintf("entry %d: negative element index %d", i, eid)}
		}
		if weights[i] < 0 {
			return nil, &InvalidRIDError{fmt.Sprintf("entry %d (element %d): negative weight %g", i, eid, weights[i])}
		}
		o.entries[i] = Entry{eid, weights[i]}
	}
	return
}

// Empty returns an empty container, valid only when hyper-reduction is
// disabled and full integration is requested as a fallback
func Empty() *Container {
	return &Container{}
}

// Len returns the number of entries
func (o *Container) Len() int { return len(o.entries) }

// Entry returns the i-th entry in load order
func (o *Container) Entry(i int) Entry { return o.entries[i] }

// Validate checks all element indices against the number of cells in the
// host mesh; called at bind time
func (o *Container) Validate(ncells int) error {
	for i, e := range o.entries {
		if e.Eid >= ncells {
			return &InvalidRIDError{fmt.Sprintf("entry %d: element index %d exceeds mesh cell count %d", i, e.Eid, ncells)}
		}
	}
	return nil
}
