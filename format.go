package qhack

import (
	"math"
	"strconv"
	"strings"
)

/*
FormatFloat writes the shortest decimal that reads back as f. Magnitudes
in [1e-4, 1e16) use positional notation and always carry a fraction
("1.0", "-0.5"). Anything else uses an exponent ("1e-05", "2.5e+16").
*/
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if f != 0 {
		sci := strconv.FormatFloat(f, 'e', -1, 64)
		exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
		if err == nil && (exp < -4 || exp >= 16) {
			return sci
		}
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// FormatEnergies joins energies with commas.
func FormatEnergies(energies []float64) string {
	parts := make([]string, len(energies))
	for i, e := range energies {
		parts[i] = FormatFloat(e)
	}
	return strings.Join(parts, ",")
}
