// Copyright 2018 The Gomor Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements constitutive models for solids
package msolid

import "github.com/cpmech/gosl/chk"

// Model defines the common interface of all constitutive models
type Model interface {
	Name() string // model name; e.g. "lin-elast"
}

// Pars holds material parameters for all model variants. Unused fields are
// simply ignored by a given variant
type Pars struct {
	E   float64 `json:"E"`   // Young's modulus
	Nu  float64 `json:"nu"`  // Poisson's ratio
	Mu  float64 `json:"mu"`  // shear modulus (Lamé μ)
	Lam float64 `json:"lam"` // Lamé λ
	A   float64 `json:"A"`   // cross-sectional area (rod elements)
	Rho float64 `json:"rho"` // density
}

// New returns a constitutive model from the closed set of variants.
// Available: "lin-elast" (small strain), "neo-hook" (finite strain)
func New(name string, pars Pars) (Model, error) {
	switch name {
	case "lin-elast":
		return NewLinElast(pars.E, pars.Nu)
	case "neo-hook":
		return NewNeoHookean(pars.Mu, pars.Lam)
	}
	return nil, chk.Err("unknown constitutive model %q", name)
}
