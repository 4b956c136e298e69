package ingest

import (
	"strings"
)

var abbreviations = [][2]string{
	{" station ", " sta "},
	{" street ", " st "},
	{" avenue ", " ave "},
	{" boulevard ", " blvd "},
}

// NormalizeAddress lowercases an address, turns commas into spaces, collapses
// whitespace and shortens common street suffixes.
func NormalizeAddress(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, ",", " ")
	s = " " + strings.Join(strings.Fields(s), " ") + " "
	for _, a := range abbreviations {
		s = strings.ReplaceAll(s, a[0], a[1])
	}
	return strings.TrimSpace(s)
}

// MatchAddress returns the index of the first label that contains the
// normalized street, or is contained by it.
func MatchAddress(street string, labels []string) (int, bool) {
	want := NormalizeAddress(street)
	if want == "" {
		return 0, false
	}

	for i, label := range labels {
		have := NormalizeAddress(label)
		if have == "" {
			continue
		}
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return i, true
		}
	}
	return 0, false
}
