package distance

import (
	"context"
	"delivery-sim/internal/domain"
	"fmt"
)

// Pair is one undirected distance between two labelled locations.
type Pair struct {
	From, To string
	Miles    float64
}

// PairsMatrixSource builds a LocationMatrix from a label list and pairwise
// distances. Every off-diagonal pair must be given once, in either direction.
type PairsMatrixSource struct {
	labels []string
	pairs  []Pair
}

func NewPairsMatrixSource(labels []string, pairs []Pair) *PairsMatrixSource {
	return &PairsMatrixSource{labels: labels, pairs: pairs}
}

func (s *PairsMatrixSource) LoadMatrix(ctx context.Context) (*domain.LocationMatrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(s.labels))
	for i, l := range s.labels {
		index[l] = i
	}

	n := len(s.labels)
	rows := make([][]float64, n)
	seen := make([][]bool, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		seen[i] = make([]bool, n)
		seen[i][i] = true
	}

	for _, p := range s.pairs {
		i, ok := index[p.From]
		if !ok {
			return nil, fmt.Errorf("pairs matrix: unknown location %q", p.From)
		}
		j, ok := index[p.To]
		if !ok {
			return nil, fmt.Errorf("pairs matrix: unknown location %q", p.To)
		}
		rows[i][j], rows[j][i] = p.Miles, p.Miles
		seen[i][j], seen[j][i] = true, true
	}

	for i := range seen {
		for j := range seen[i] {
			if !seen[i][j] {
				return nil, fmt.Errorf("pairs matrix: missing pair %q -> %q", s.labels[i], s.labels[j])
			}
		}
	}

	return domain.NewLocationMatrix(s.labels, rows)
}
