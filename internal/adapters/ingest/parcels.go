package ingest

import (
	"delivery-sim/internal/domain"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Notes like "Delayed on flight---will not arrive to depot until 9:05 am".
var holdNote = regexp.MustCompile(`(?i)\buntil\s+(\d{1,2}:\d{2}(?::\d{2})?\s*(?:[ap]\.?m\.?)?)`)

const headerID = "package id"

// LoadParcels reads the parcel CSV. Leading rows before the "Package ID"
// header are skipped. Each street is resolved against the matrix labels;
// parcels whose street matches nothing keep a nil location. A note naming a
// later arrival time becomes a hold on the service day.
func LoadParcels(r io.Reader, labels []string, day time.Time) ([]*domain.Parcel, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("load parcels: %w", err)
	}

	hdr := -1
	for i, row := range rows {
		if strings.EqualFold(cell(row, 0), headerID) {
			hdr = i
			break
		}
	}
	if hdr < 0 {
		return nil, errors.New("load parcels: missing \"Package ID\" header")
	}

	cols := make(map[string]int, len(rows[hdr]))
	for i, name := range rows[hdr] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["address"]; !ok {
		return nil, errors.New("load parcels: missing \"Address\" column")
	}
	field := func(row []string, name, fallback string) string {
		i, ok := cols[name]
		if !ok {
			return fallback
		}
		if v := cell(row, i); v != "" {
			return v
		}
		return fallback
	}

	parcels := make([]*domain.Parcel, 0, len(rows)-hdr-1)
	for n, row := range rows[hdr+1:] {
		rawID := cell(row, cols[headerID])
		if rawID == "" {
			continue
		}
		id, err := strconv.Atoi(rawID)
		if err != nil {
			return nil, fmt.Errorf("load parcels: row %d: invalid package id %q: %w", hdr+n+2, rawID, err)
		}

		addr := domain.Address{
			Street: field(row, "address", ""),
			City:   field(row, "city", ""),
			State:  field(row, "state", ""),
			Zip:    field(row, "zip", ""),
		}

		var loc *int
		if idx, ok := MatchAddress(addr.Street, labels); ok {
			loc = &idx
		}

		notes := field(row, "notes", "")
		p := domain.NewParcel(id, addr,
			field(row, "deadline", "EOD"),
			field(row, "weight", "0"),
			notes, loc)

		if until, ok, err := holdFromNotes(notes, day); err != nil {
			return nil, fmt.Errorf("load parcels: package %d: %w", id, err)
		} else if ok {
			p.MarkDelayed(until)
		}

		parcels = append(parcels, p)
	}

	return parcels, nil
}

func holdFromNotes(notes string, day time.Time) (time.Time, bool, error) {
	m := holdNote.FindStringSubmatch(notes)
	if m == nil {
		return time.Time{}, false, nil
	}

	until, err := domain.ParseClock(day, strings.ReplaceAll(m[1], ".", ""))
	if err != nil {
		return time.Time{}, false, err
	}
	return until, true, nil
}
