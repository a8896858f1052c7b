// Package sizeutil parses human-readable byte sizes like "10GB" or "512KB".
package sizeutil

import (
	"fmt"
	"strconv"
	"strings"
)

var units = []struct {
	suffix string
	factor int
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// ParseSize parses a size string of the form "<number><unit>", where unit
// is one of GB, MB, KB, or B, case-insensitive.
func ParseSize(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("sizeutil: empty size string")
	}

	upper := strings.ToUpper(s)
	for _, u := range units {
		if !strings.HasSuffix(upper, u.suffix) {
			continue
		}

		numPart := s[:len(s)-len(u.suffix)]
		if numPart == "" {
			return 0, fmt.Errorf("sizeutil: no numeric value in %q", s)
		}

		n, err := strconv.Atoi(numPart)
		if err != nil {
			return 0, fmt.Errorf("sizeutil: invalid numeric value in %q: %w", s, err)
		}

		return n * u.factor, nil
	}

	return 0, fmt.Errorf("sizeutil: unrecognized size unit in %q", s)
}
