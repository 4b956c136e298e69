package domain

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LocationMatrix is the immutable symmetric distance table between known
// locations. Location ids are row indexes; labels are kept for display only.
type LocationMatrix struct {
	labels []string
	dist   *mat.SymDense
}

// NewLocationMatrix validates a square table and freezes it.
// Asymmetric input is rejected rather than silently mirrored.
func NewLocationMatrix(labels []string, rows [][]float64) (*LocationMatrix, error) {
	n := len(labels)
	if n == 0 {
		return nil, errors.New("location matrix: no locations")
	}
	if len(rows) != n {
		return nil, fmt.Errorf("location matrix: %d labels but %d rows", n, len(rows))
	}

	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		if len(rows[i]) != n {
			return nil, fmt.Errorf("location matrix: row %d has %d cells, want %d", i, len(rows[i]), n)
		}
		for j := 0; j <= i; j++ {
			v := rows[i][j]
			if math.IsNaN(v) || v < 0 {
				return nil, fmt.Errorf("location matrix: invalid distance %v at [%d][%d]", v, i, j)
			}
			if i == j && v != 0 {
				return nil, fmt.Errorf("location matrix: non-zero diagonal %v at [%d][%d]", v, i, j)
			}
			if rows[j][i] != v {
				return nil, fmt.Errorf("location matrix: asymmetric cells [%d][%d]=%v [%d][%d]=%v", i, j, v, j, i, rows[j][i])
			}
			sym.SetSym(i, j, v)
		}
	}

	copied := make([]string, n)
	copy(copied, labels)

	return &LocationMatrix{labels: copied, dist: sym}, nil
}

// Size returns the number of locations.
func (m *LocationMatrix) Size() int { return m.dist.SymmetricDim() }

// Distance between two locations. Callers must stay in range.
func (m *LocationMatrix) Distance(from, to int) float64 { return m.dist.At(from, to) }

// Label returns the display label for a location, or "" when out of range.
func (m *LocationMatrix) Label(loc int) string {
	if loc < 0 || loc >= len(m.labels) {
		return ""
	}
	return m.labels[loc]
}

// Labels returns a copy of all location labels in index order.
func (m *LocationMatrix) Labels() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

// Contains reports whether loc is a valid location id.
func (m *LocationMatrix) Contains(loc int) bool { return loc >= 0 && loc < len(m.labels) }
