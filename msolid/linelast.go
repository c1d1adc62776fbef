// Copyright 2018 The Gomor Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// LinElast implements isotropic linear elasticity (small strains).
// Voigt ordering with engineering shear strains:
//  2D (plane strain): {σxx, σyy, σxy},  {εxx, εyy, γxy}
//  3D:                {σxx, σyy, σzz, σxy, σyz, σzx}
type LinElast struct {
	E  float64 // Young's modulus
	Nu float64 // Poisson's ratio
}

// NewLinElast returns a new linear elastic model
func NewLinElast(e, nu float64) (o *LinElast, err error) {
	if e <= 0 {
		return nil, chk.Err("lin-elast: Young's modulus must be positive (E=%g)", e)
	}
	if nu < 0 || nu >= 0.5 {
		return nil, chk.Err("lin-elast: Poisson's ratio must be in [0, 0.5) (nu=%g)", nu)
	}
	o = &LinElast{E: e, Nu: nu}
	return
}

// Name returns the model name
func (o *LinElast) Name() string { return "lin-elast" }

// Nsig returns the number of stress components for a given space dimension
func Nsig(ndim int) int {
	if ndim == 2 {
		return 3
	}
	return 6
}

// CalcD computes the consistent modulus matrix D such that σ = D·ε
//  D -- [nsig][nsig] output; nsig = 3 (2D, plane strain) or 6 (3D)
func (o *LinElast) CalcD(D *la.Matrix, ndim int) (err error) {
	c := o.E / ((1.0 + o.Nu) * (1.0 - 2.0*o.Nu))
	d := c * (1.0 - o.Nu)
	f := c * o.Nu
	g := c * (1.0 - 2.0*o.Nu) / 2.0 // shear modulus
	switch ndim {
	case 2:
		if D.M != 3 || D.N != 3 {
			return chk.Err("lin-elast: D must be 3x3 in 2D (got %dx%d)", D.M, D.N)
		}
		D.Set(0, 0, d)
		D.Set(0, 1, f)
		D.Set(0, 2, 0)
		D.Set(1, 0, f)
		D.Set(1, 1, d)
		D.Set(1, 2, 0)
		D.Set(2, 0, 0)
		D.Set(2, 1, 0)
		D.Set(2, 2, g)
	case 3:
		if D.M != 6 || D.N != 6 {
			return chk.Err("lin-elast: D must be 6x6 in 3D (got %dx%d)", D.M, D.N)
		}
		for i := 0; i < 6; i++ {
			for j := 0; j < 6; j++ {
				D.Set(i, j, 0)
			}
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if i == j {
					D.Set(i, j, d)
				} else {
					D.Set(i, j, f)
				}
			}
			D.Set(3+i, 3+i, g)
		}
	default:
		return chk.Err("lin-elast: invalid space dimension %d", ndim)
	}
	return
}
