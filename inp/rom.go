// Copyright 2018 The Gomor Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/la"
)

// ReadModes reads a reduced basis matrix from a whitespace-separated text
// file. Format (row-major, as written by the offline reduction tools):
// the first line holds the dimensions "n r"; each of the following n lines
// holds the r mode amplitudes of one full-order degree of freedom
func ReadModes(path string) (m *la.Matrix, err error) {
	lines, err := readRows(path)
	if err != nil {
		return
	}
	if len(lines) < 1 {
		return nil, &LoadError{path, "file is empty"}
	}
	header := lines[0]
	if len(header) != 2 {
		return nil, &LoadError{path, fmt.Sprintf("header must hold two integers \"n r\" (got %d fields)", len(header))}
	}
	n, r := int(header[0]), int(header[1])
	if n < 1 || r < 1 {
		return nil, &LoadError{path, fmt.Sprintf("invalid declared dimensions n=%d r=%d", n, r)}
	}
	if len(lines)-1 != n {
		return nil, &LoadError{path, fmt.Sprintf("declared %d rows but file has %d", n, len(lines)-1)}
	}
	m = la.NewMatrix(n, r)
	for i, row := range lines[1:] {
		if len(row) != r {
			return nil, &LoadError{path, fmt.Sprintf("row %d has %d values but header declares %d modes", i, len(row), r)}
		}
		for j, v := range row {
			m.Set(i, j, v)
		}
	}
	return
}

// ReadVector reads a vector from a text file with one value per line; used
// for the mean/offset vector and for per-entry weight tables
func ReadVector(path string) (v la.Vector, err error) {
	lines, err := readRows(path)
	if err != nil {
		return
	}
	v = la.NewVector(len(lines))
	for i, row := range lines {
		if len(row) != 1 {
			return nil, &LoadError{path, fmt.Sprintf("line %d has %d values but exactly one is expected", i, len(row))}
		}
		v[i] = row[0]
	}
	return
}

// ReadRID reads reduced-integration-domain element indices from a text file
// with one index per line
func ReadRID(path string) (eids []int, err error) {
	lines, err := readRows(path)
	if err != nil {
		return
	}
	eids = make([]int, len(lines))
	for i, row := range lines {
		if len(row) != 1 {
			return nil, &LoadError{path, fmt.Sprintf("line %d has %d values but exactly one is expected", i, len(row))}
		}
		eid := int(row[0])
		if float64(eid) != row[0] {
			return nil, &LoadError{path, fmt.Sprintf("line %d: element index %g is not an integer", i, row[0])}
		}
		eids[i] = eid
	}
	return
}

// ReadSquareTable reads a square matrix from a text file with a "m m"
// header line; used for precomputed reduced mass tables
func ReadSquareTable(path string) (m *la.Matrix, err error) {
	m, err = ReadModes(path)
	if err != nil {
		return
	}
	if m.M != m.N {
		return nil, &LoadError{path, fmt.Sprintf("table is %dx%d but must be square", m.M, m.N)}
	}
	return
}

// readRows reads a text file and splits every non-empty, non-comment line
// into float fields. Lines starting with '#' are skipped
func readRows(path string) (rows [][]float64, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{path, err.Error()}
	}
	for i, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for j, f := range fields {
			row[j], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &LoadError{path, fmt.Sprintf("line %d field %d: %v", i+1, j, err)}
			}
		}
		rows = append(rows, row)
	}
	return
}
