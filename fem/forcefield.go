// Copyright 2018 The Gomor Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the hyper-reduced force field: evaluation of
// nonlinear element forces and tangents over a reduced integration domain,
// with weighted reconstruction into reduced space
package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"golang.org/x/sync/errgroup"

	"gomor/basis"
	"gomor/ele"
	"gomor/inp"
	"gomor/msolid"
	"gomor/rid"
)

// Config holds the configuration of a force field, set before binding
type Config struct {
	Model    string      // constitutive model name; e.g. "lin-elast", "neo-hook"
	Pars     msolid.Pars // material parameters
	Hyper    bool        // evaluate over the RID; false means full integration over all cells
	Nworkers int         // parallel evaluation workers; ≤ 1 means serial
	MassR    *la.Matrix  // precomputed reduced mass; nil means compute from Pars.Rho at bind
}

// entry is one integration entry: an element kernel, its reconstruction
// weight, the cached local basis block, and per-entry scratch. Each entry
// is owned by exactly one worker during parallel evaluation
type entry struct {
	kern ele.Kernel
	w    float64    // reconstruction weight
	phi  *la.Matrix // [nu][r] rows of the basis matching this element's DOFs
	ue   la.Vector  // [nu] local displacements
	fe   la.Vector  // [nu] local internal force
	ke   *la.Matrix // [nu][nu] local tangent
	t1   *la.Matrix // [nu][r] Ke·Φe
}

// scratch holds one worker's accumulators; merged in worker index order so
// the reduction order is fixed
type scratch struct {
	fr la.Vector  // [r]
	kr *la.Matrix // [r][r]
	t2 *la.Matrix // [r][r]
}

// ForceField evaluates reduced internal forces and stiffnesses by sparse
// sampling over the reduced integration domain plus weighted
// reconstruction. Two states: UNBOUND (configuration only) and BOUND
// (attached to mesh, basis, RID). Binding happens once; rebinding requires
// a fresh instance, since per-entry basis blocks are cached at bind time
type ForceField struct {

	// configuration (UNBOUND state)
	cfg Config

	// attached after Bind (BOUND state)
	bound   bool
	msh     *inp.Mesh
	mp      *basis.Mapping
	dom     *rid.Container
	mdl     msolid.Model
	entries []*entry
	chunks  [][2]int   // fixed [lo,hi) entry ranges, one per worker
	scr     []*scratch // one per chunk
	massR   *la.Matrix
	ufull   la.Vector // [n] lifted full-order displacements
	n, r    int
}

// NewForceField returns a force field in the UNBOUND state
func NewForceField(cfg *Config) *ForceField {
	return &ForceField{cfg: *cfg}
}

// Bound tells whether the force field has been bound
func (o *ForceField) Bound() bool { return o.bound }

// N returns the number of full-order degrees of freedom (BOUND only)
func (o *ForceField) N() int { return o.n }

// R returns the number of reduced coordinates (BOUND only)
func (o *ForceField) R() int { return o.r }

// RidSize returns the number of integration entries (BOUND only)
func (o *ForceField) RidSize() int { return len(o.entries) }

// ReducedMass returns the r-by-r reduced mass matrix, or nil when neither a
// precomputed table nor a density was configured
func (o *ForceField) ReducedMass() *la.Matrix { return o.massR }

// Bind attaches the force field to a mesh, a reduction mapping, and a
// reduced integration domain, moving it to the BOUND state. Bind may be
// called only once
func (o *ForceField) Bind(msh *inp.Mesh, mp *basis.Mapping, dom *rid.Container) (err error) {

	// state and dimension checks
	if o.bound {
		return chk.Err("force field is already bound; rebinding requires a fresh instance")
	}
	if mp.N() != msh.Ndofs() {
		return &basis.DimensionMismatchError{Op: "Bind", Want: msh.Ndofs(), Got: mp.N()}
	}
	if o.cfg.Hyper {
		if dom.Len() == 0 {
			return &rid.InvalidRIDError{Reason: "empty element set with hyper-reduction enabled"}
		}
		if err = dom.Validate(len(msh.Cells)); err != nil {
			return
		}
	}

	// constitutive model
	o.mdl, err = msolid.New(o.cfg.Model, o.cfg.Pars)
	if err != nil {
		return
	}

	// integration entries: RID subset or all cells with unit weights
	o.n, o.r = mp.N(), mp.R()
	if o.cfg.Hyper {
		o.entries = make([]*entry, dom.Len())
		for i := 0; i < dom.Len(); i++ {
			e := dom.Entry(i)
			o.entries[i], err = o.newEntry(msh.Cells[e.Eid], msh, e.W, mp)
			if err != nil {
				return
			}
		}
	} else {
		o.entries = make([]*entry, len(msh.Cells))
		for i, cell := range msh.Cells {
			o.entries[i], err = o.newEntry(cell, msh, 1.0, mp)
			if err != nil {
				return
			}
		}
	}

	// fixed partition for parallel evaluation
	nw := o.cfg.Nworkers
	if nw > len(o.entries) {
		nw = len(o.entries)
	}
	if nw < 1 {
		nw = 1
	}
	o.chunks = make([][2]int, nw)
	o.scr = make([]*scratch, nw)
	csize := (len(o.entries) + nw - 1) / nw
	for c := 0; c < nw; c++ {
		lo := c * csize
		hi := lo + csize
		if hi > len(o.entries) {
			hi = len(o.entries)
		}
		o.chunks[c] = [2]int{lo, hi}
		o.scr[c] = &scratch{
			fr: la.NewVector(o.r),
			kr: la.NewMatrix(o.r, o.r),
			t2: la.NewMatrix(o.r, o.r),
		}
	}

	// reduced mass
	err = o.buildMass(msh, mp)
	if err != nil {
		return
	}

	// bound
	o.msh, o.mp, o.dom = msh, mp, dom
	o.ufull = la.NewVector(o.n)
	o.bound = true
	return
}

// newEntry builds one integration entry, caching the local basis block
func (o *ForceField) newEntry(cell *inp.Cell, msh *inp.Mesh, w float64, mp *basis.Mapping) (e *entry, err error) {
	kern, err := ele.New(cell, msh, o.mdl, o.cfg.Pars)
	if err != nil {
		return
	}
	nu := kern.Nu()
	e = &entry{
		kern: kern,
		w:    w,
		phi:  la.NewMatrix(nu, o.r),
		ue:   la.NewVector(nu),
		fe:   la.NewVector(nu),
		ke:   la.NewMatrix(nu, nu),
		t1:   la.NewMatrix(nu, o.r),
	}
	bmat := mp.Store().Matrix()
	for loc, dof := range kern.Dofs() {
		for k := 0; k < o.r; k++ {
			e.phi.Set(loc, k, bmat.Get(dof, k))
		}
	}
	return
}

// buildMass computes the reduced mass Mr = Basisᵀ·M·Basis from lumped
// element masses over ALL mesh cells (mass is never hyper-reduced), or
// checks and adopts a precomputed table
func (o *ForceField) buildMass(msh *inp.Mesh, mp *basis.Mapping) (err error) {
	if o.cfg.MassR != nil {
		if o.cfg.MassR.M != o.r || o.cfg.MassR.N != o.r {
			return &basis.DimensionMismatchError{Op: "Bind(mass)", Want: o.r, Got: o.cfg.MassR.M}
		}
		o.massR = o.cfg.MassR
		return
	}
	if o.cfg.Pars.Rho <= 0 {
		return
	}
	mdiag := la.NewVector(o.n)
	for _, cell := range msh.Cells {
		kern, err := ele.New(cell, msh, o.mdl, o.cfg.Pars)
		if err != nil {
			return err
		}
		ml := la.NewVector(kern.Nu())
		if err = kern.AddToM(ml, o.cfg.Pars.Rho); err != nil {
			return err
		}
		for loc, dof := range kern.Dofs() {
			mdiag[dof] += ml[loc]
		}
	}
	bmat := mp.Store().Matrix()
	o.massR = la.NewMatrix(o.r, o.r)
	for d := 0; d < o.n; d++ {
		if mdiag[d] == 0 {
			continue
		}
		for i := 0; i < o.r; i++ {
			for j := 0; j < o.r; j++ {
				o.massR.Set(i, j, o.massR.Get(i, j)+mdiag[d]*bmat.Get(d, i)*bmat.Get(d, j))
			}
		}
	}
	return
}

// ReducedForce computes the reduced internal force for the current reduced
// coordinates:
//  fr = Σᵢ wᵢ · Φeᵢᵀ · fᵢ(lift(q))
// Accumulation follows RID iteration order; the parallel path merges fixed
// per-worker partial sums in worker index order and is therefore
// bit-deterministic for a given Nworkers. fr is zeroed when an error is
// returned: no partial force ever escapes a failed step
func (o *ForceField) ReducedForce(q, fr la.Vector) (err error) {
	return o.evaluate(q, fr, nil)
}

// ReducedForceAndStiffness additionally accumulates the reduced tangent:
//  Kr = Σᵢ wᵢ · Φeᵢᵀ · Keᵢ · Φeᵢ
// fr and Kr are zeroed when an error is returned
func (o *ForceField) ReducedForceAndStiffness(q, fr la.Vector, Kr *la.Matrix) (err error) {
	if Kr == nil {
		return chk.Err("ReducedForceAndStiffness requires a non-nil stiffness output")
	}
	return o.evaluate(q, fr, Kr)
}

// evaluate runs one hyper-reduced evaluation; Kr may be nil. On failure the
// outputs are zeroed so no partial accumulation escapes
func (o *ForceField) evaluate(q, fr la.Vector, Kr *la.Matrix) (err error) {
	defer func() {
		if err != nil {
			fr.Fill(0)
			if Kr != nil {
				Kr.Fill(0)
			}
		}
	}()

	// state and dimension checks
	if !o.bound {
		return chk.Err("force field is not bound yet")
	}
	if len(q) != o.r {
		return &basis.DimensionMismatchError{Op: "ReducedForce", Want: o.r, Got: len(q)}
	}
	if len(fr) != o.r {
		return &basis.DimensionMismatchError{Op: "ReducedForce", Want: o.r, Got: len(fr)}
	}
	if Kr != nil && (Kr.M != o.r || Kr.N != o.r) {
		return &basis.DimensionMismatchError{Op: "ReducedForce", Want: o.r, Got: Kr.M}
	}

	// reconstruct full-order displacements
	err = o.mp.Lift(q, o.ufull)
	if err != nil {
		return
	}

	// serial path: accumulate directly in RID iteration order
	fr.Fill(0)
	if Kr != nil {
		Kr.Fill(0)
	}
	if len(o.chunks) == 1 {
		for i := range o.entries {
			if err = o.addEntry(i, fr, Kr, o.scr[0]); err != nil {
				return
			}
		}
		return
	}

	// parallel path: per-worker partial sums over fixed entry ranges
	var eg errgroup.Group
	for c := range o.chunks {
		c := c
		eg.Go(func() error {
			s := o.scr[c]
			s.fr.Fill(0)
			var kacc *la.Matrix
			if Kr != nil {
				kacc = s.kr
				kacc.Fill(0)
			}
			for i := o.chunks[c][0]; i < o.chunks[c][1]; i++ {
				if err := o.addEntry(i, s.fr, kacc, s); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return
	}

	// merge in fixed chunk order
	for c := range o.chunks {
		for k := 0; k < o.r; k++ {
			fr[k] += o.scr[c].fr[k]
		}
		if Kr != nil {
			for k := range Kr.Data {
				Kr.Data[k] += o.scr[c].kr.Data[k]
			}
		}
	}
	return
}

// addEntry evaluates one integration entry and accumulates its weighted
// contribution; facc/kacc are the owning worker's accumulators
func (o *ForceField) addEntry(i int, facc la.Vector, kacc *la.Matrix, s *scratch) (err error) {
	e := o.entries[i]

	// gather local displacements
	for loc, dof := range e.kern.Dofs() {
		e.ue[loc] = o.ufull[dof]
	}

	// local force:  facc += w·Φeᵀ·fe
	e.fe.Fill(0)
	if err = e.kern.AddToFi(e.fe, e.ue); err != nil {
		return
	}
	la.MatTrVecMulAdd(facc, e.w, e.phi, e.fe)

	// local tangent:  kacc += w·Φeᵀ·Ke·Φe
	if kacc != nil {
		e.ke.Fill(0)
		if err = e.kern.AddToK(e.ke, e.ue); err != nil {
			return
		}
		la.MatMatMul(e.t1, 1, e.ke, e.phi)
		la.MatTrMatMul(s.t2, e.w, e.phi, e.t1)
		for k := range kacc.Data {
			kacc.Data[k] += s.t2.Data[k]
		}
	}
	return
}
