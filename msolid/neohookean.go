// Copyright 2018 The Gomor Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// NeoHookean implements a compressible neo-Hookean hyperelastic model
// (finite strains) with strain energy
//  ψ(F) = μ/2·(tr(FᵀF) − 3) − μ·ln(J) + λ/2·ln(J)²
// giving the first Piola-Kirchhoff stress
//  P = μ·(F − F⁻ᵀ) + λ·ln(J)·F⁻ᵀ
type NeoHookean struct {
	Mu  float64 // Lamé μ (shear modulus)
	Lam float64 // Lamé λ
}

// NewNeoHookean returns a new neo-Hookean model
func NewNeoHookean(mu, lam float64) (o *NeoHookean, err error) {
	if mu <= 0 {
		return nil, chk.Err("neo-hook: shear modulus must be positive (mu=%g)", mu)
	}
	if lam < 0 {
		return nil, chk.Err("neo-hook: lambda must be nonnegative (lam=%g)", lam)
	}
	o = &NeoHookean{Mu: mu, Lam: lam}
	return
}

// Name returns the model name
func (o *NeoHookean) Name() string { return "neo-hook" }

// Piola computes the first Piola-Kirchhoff stress for a given deformation
// gradient. Returns detF so the caller can flag degenerate deformations;
// when detF ≤ 0, P is not computed and detF alone is returned
func (o *NeoHookean) Piola(P *[3][3]float64, F *[3][3]float64) (detF float64) {
	var fit [3][3]float64
	detF = invTr(F, &fit)
	if detF <= 0 {
		return
	}
	lnJ := math.Log(detF)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			P[i][j] = o.Mu*(F[i][j]-fit[i][j]) + o.Lam*lnJ*fit[i][j]
		}
	}
	return
}

// Tangent computes the first elasticity tensor A = ∂P/∂F:
//  A[i][J][k][L] = λ·F⁻ᵀ[i][J]·F⁻ᵀ[k][L] + (μ − λ·lnJ)·F⁻ᵀ[i][L]·F⁻ᵀ[k][J] + μ·δik·δJL
// detF must be positive (checked by the caller through Piola)
func (o *NeoHookean) Tangent(A *[3][3][3][3]float64, F *[3][3]float64) {
	var fit [3][3]float64
	detF := invTr(F, &fit)
	lnJ := math.Log(detF)
	c := o.Mu - o.Lam*lnJ
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					a := o.Lam*fit[i][j]*fit[k][l] + c*fit[i][l]*fit[k][j]
					if i == k && j == l {
						a += o.Mu
					}
					A[i][j][k][l] = a
				}
			}
		}
	}
}

// invTr computes the inverse-transpose of a 3x3 matrix via the adjugate and
// returns the determinant. fit is left untouched when det ≤ 0
func invTr(f *[3][3]float64, fit *[3][3]float64) (det float64) {
	c00 := f[1][1]*f[2][2] - f[1][2]*f[2][1]
	c01 := f[1][2]*f[2][0] - f[1][0]*f[2][2]
	c02 := f[1][0]*f[2][1] - f[1][1]*f[2][0]
	det = f[0][0]*c00 + f[0][1]*c01 + f[0][2]*c02
	if det <= 0 {
		return
	}
	c10 := f[0][2]*f[2][1] - f[0][1]*f[2][2]
	c11 := f[0][0]*f[2][2] - f[0][2]*f[2][0]
	c12 := f[0][1]*f[2][0] - f[0][0]*f[2][1]
	c20 := f[0][1]*f[1][2] - f[0][2]*f[1][1]
	c21 := f[0][2]*f[1][0] - f[0][0]*f[1][2]
	c22 := f[0][0]*f[1][1] - f[0][1]*f[1][0]
	// inverse-transpose = cofactor matrix / det
	fit[0][0] = c00 / det
	fit[0][1] = c01 / det
	fit[0][2] = c02 / det
	fit[1][0] = c10 / det
	fit[1][1] = c11 / det
	fit[1][2] = c12 / det
	fit[2][0] = c20 / det
	fit[2][1] = c21 / det
	fit[2][2] = c22 / det
	return
}
