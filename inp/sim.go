// Copyright 2018 The Gomor Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/la"

	"gomor/basis"
	"gomor/msolid"
	"gomor/rid"
)

// MatData holds the material/constitutive configuration
type MatData struct {
	Model string      `json:"model"` // model name; e.g. "lin-elast", "neo-hook"
	Prms  msolid.Pars `json:"prms"`  // model parameters
}

// HyperData holds hyper-reduction settings
type HyperData struct {
	Enabled  bool `json:"enabled"`  // evaluate over the RID; false means full integration over all cells
	Nworkers int  `json:"nworkers"` // number of parallel evaluation workers; ≤ 1 means serial
}

// Data holds the content of a simulation (.sim) JSON file. All file paths
// are relative to the directory of the .sim file unless absolute
type Data struct {
	Desc    string    `json:"desc"`    // description of simulation
	MshFile string    `json:"mesh"`    // mesh file path
	Modes   string    `json:"modes"`   // reduced basis (modes) file path
	Mean    string    `json:"mean"`    // mean/offset vector file path; "" means zero shift
	Rid     string    `json:"rid"`     // RID element indices file path; "" only valid when hyper-reduction is disabled
	Weights string    `json:"weights"` // RID weights file path, paired by position with the RID file
	Mass    string    `json:"mass"`    // precomputed reduced mass table path; "" means compute from density at bind
	Mat     MatData   `json:"material"`
	Hyper   HyperData `json:"hyper"`
}

// Simulation holds all input data for one reduced-order simulation, fully
// loaded. A Simulation is never partially populated: any reader failure
// aborts the construction before the stores are built
type Simulation struct {
	Data  Data           // raw input data
	Dir   string         // directory of the .sim file
	Msh   *Mesh          // full-order mesh
	Basis *basis.Store   // basis store (modes + mean)
	Rid   *rid.Container // reduced integration domain
	MassR *la.Matrix     // precomputed reduced mass; may be nil
}

// ReadSim reads a simulation input file and all files it references.
// Reader/parse failures are reported as *LoadError; validation failures of
// the basis and RID keep their own construction error types
func ReadSim(simfilepath string) (o *Simulation, err error) {

	// read and decode main file
	o = new(Simulation)
	o.Dir = filepath.Dir(simfilepath)
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		return nil, &LoadError{simfilepath, err.Error()}
	}
	if err = json.Unmarshal(b, &o.Data); err != nil {
		return nil, &LoadError{simfilepath, err.Error()}
	}

	// mesh
	if o.Data.MshFile == "" {
		return nil, &LoadError{simfilepath, "no mesh file given"}
	}
	o.Msh, err = ReadMsh(o.path(o.Data.MshFile))
	if err != nil {
		return nil, err
	}

	// modes and mean
	if o.Data.Modes == "" {
		return nil, &LoadError{simfilepath, "no modes file given"}
	}
	modes, err := ReadModes(o.path(o.Data.Modes))
	if err != nil {
		return nil, err
	}
	var mean la.Vector
	if o.Data.Mean != "" {
		mean, err = ReadVector(o.path(o.Data.Mean))
		if err != nil {
			return nil, err
		}
	}

	// reduced integration domain
	var eids []int
	var weights la.Vector
	if o.Data.Rid != "" {
		eids, err = ReadRID(o.path(o.Data.Rid))
		if err != nil {
			return nil, err
		}
		weights, err = ReadVector(o.path(o.Data.Weights))
		if err != nil {
			return nil, err
		}
	}

	// precomputed reduced mass
	if o.Data.Mass != "" {
		o.MassR, err = ReadSquareTable(o.path(o.Data.Mass))
		if err != nil {
			return nil, err
		}
	}

	// build stores only after every read succeeded
	o.Basis, err = basis.NewStore(modes, mean)
	if err != nil {
		return nil, err
	}
	if o.Data.Rid == "" {
		o.Rid = rid.Empty()
	} else {
		o.Rid, err = rid.New(eids, weights)
		if err != nil {
			return nil, err
		}
	}
	return
}

// path resolves a file path relative to the .sim directory
func (o *Simulation) path(fn string) string {
	if filepath.IsAbs(fn) {
		return fn
	}
	return filepath.Join(o.Dir, fn)
}
