// Copyright 2018 The Gomor Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the loader boundary: readers for mesh, basis,
// reduced integration domain, and simulation input files
package inp

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadError indicates that an input file could not be read or parsed.
// Loader failures never leave partially populated stores behind
type LoadError struct {
	Path   string // file that failed
	Reason string // what went wrong
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load %q: %s", e.Path, e.Reason)
}

// Vert holds vertex data
type Vert struct {
	Id int       `json:"id"` // id
	C  []float64 `json:"c"`  // coordinates [ndim]
}

// Cell holds element data
type Cell struct {
	Id    int    `json:"id"`    // id
	Type  string `json:"type"`  // geometry type; e.g. "rod", "tri3", "tet4"
	Verts []int  `json:"verts"` // vertex indices
}

// Mesh holds the full-order mesh topology and geometry supplied by the host
type Mesh struct {
	Ndim  int     `json:"ndim"`  // space dimension
	Verts []*Vert `json:"verts"` // vertices
	Cells []*Cell `json:"cells"` // cells/elements
}

// CellNverts returns the number of vertices of a cell type, or -1 for an
// unknown type
func CellNverts(ctype string) int {
	switch ctype {
	case "rod":
		return 2
	case "tri3":
		return 3
	case "tet4":
		return 4
	}
	return -1
}

// ReadMsh reads and validates a mesh from a JSON file
func ReadMsh(path string) (o *Mesh, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{path, err.Error()}
	}
	o = new(Mesh)
	if err = json.Unmarshal(b, o); err != nil {
		return nil, &LoadError{path, err.Error()}
	}
	if err = o.Check(); err != nil {
		return nil, &LoadError{path, err.Error()}
	}
	return
}

// Check validates dimensions, cell types, and vertex references
func (o *Mesh) Check() error {
	if o.Ndim < 1 || o.Ndim > 3 {
		return fmt.Errorf("invalid space dimension %d", o.Ndim)
	}
	if len(o.Verts) < 1 {
		return fmt.Errorf("mesh has no vertices")
	}
	for i, v := range o.Verts {
		if v.Id != i {
			return fmt.Errorf("vertex %d has out-of-order id %d", i, v.Id)
		}
		if len(v.C) != o.Ndim {
			return fmt.Errorf("vertex %d has %d coordinates but ndim=%d", i, len(v.C), o.Ndim)
		}
	}
	for i, c := range o.Cells {
		if c.Id != i {
			return fmt.Errorf("cell %d has out-of-order id %d", i, c.Id)
		}
		nv := CellNverts(c.Type)
		if nv < 0 {
			return fmt.Errorf("cell %d has unknown type %q", i, c.Type)
		}
		if len(c.Verts) != nv {
			return fmt.Errorf("cell %d (%s) has %d vertices but needs %d", i, c.Type, len(c.Verts), nv)
		}
		for _, vid := range c.Verts {
			if vid < 0 || vid >= len(o.Verts) {
				return fmt.Errorf("cell %d references invalid vertex %d", i, vid)
			}
		}
	}
	return nil
}

// Ndofs returns the number of full-order degrees of freedom (nverts·ndim)
func (o *Mesh) Ndofs() int { return len(o.Verts) * o.Ndim }

// CellCoords returns the nodal coordinates of a cell as x[nverts][ndim]
func (o *Mesh) CellCoords(c *Cell) (x [][]float64) {
	x = make([][]float64, len(c.Verts))
	for m, vid := range c.Verts {
		x[m] = o.Verts[vid].C
	}
	return
}
