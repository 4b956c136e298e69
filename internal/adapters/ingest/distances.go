package ingest

import (
	"delivery-sim/internal/domain"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LoadDistances reads a lower-triangular distance table. The table starts at
// the first row whose second cell is HUB and third cell is zero; labels run
// down column 0 until a blank cell and distances start at column 2. Missing
// or non-numeric cells are read as zero.
func LoadDistances(r io.Reader) (*domain.LocationMatrix, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("load distances: %w", err)
	}

	start := -1
	for i, row := range rows {
		if cell(row, 0) == "" || !strings.EqualFold(cell(row, 1), "HUB") {
			continue
		}
		if v, err := strconv.ParseFloat(cell(row, 2), 64); err == nil && v == 0 {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, errors.New("load distances: could not locate the HUB row")
	}

	var labels []string
	for i := start; i < len(rows) && cell(rows[i], 0) != ""; i++ {
		labels = append(labels, cell(rows[i], 0))
	}

	n := len(labels)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		row := rows[start+i]
		for j := 0; j < i; j++ {
			v, err := strconv.ParseFloat(cell(row, 2+j), 64)
			if err != nil {
				continue
			}
			dist[i][j], dist[j][i] = v, v
		}
	}

	m, err := domain.NewLocationMatrix(labels, dist)
	if err != nil {
		return nil, fmt.Errorf("load distances: %w", err)
	}
	return m, nil
}

func readAll(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
