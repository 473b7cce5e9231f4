package emit

import (
	"bytes"
	"math"
	"strconv"
)

// AppendHexFloat appends f in the form printed by C's "%a" (or "%A" when
// upper is set): "0x1.8p+1" rather than Go's "0x1.8p+01". A negative prec
// selects the shortest exact representation.
func AppendHexFloat(dst []byte, f float64, prec int, upper bool) []byte {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return appendNonFinite(dst, f, upper)
	}

	start := len(dst)
	dst = strconv.AppendFloat(dst, f, 'x', prec, 64)

	// Go pads the exponent to two digits; C does not pad it at all.
	p := bytes.LastIndexByte(dst[start:], 'p') + start
	digits := p + 2
	end := digits
	for end < len(dst)-1 && dst[end] == '0' {
		end++
	}
	dst = append(dst[:digits], dst[end:]...)

	if upper {
		for i := start; i < len(dst); i++ {
			if 'a' <= dst[i] && dst[i] <= 'z' {
				dst[i] -= 'a' - 'A'
			}
		}
	}
	return dst
}

func appendNonFinite(dst []byte, f float64, upper bool) []byte {
	var s string
	switch {
	case math.IsNaN(f):
		s = "nan"
	case f < 0:
		s = "-inf"
	default:
		s = "inf"
	}
	if upper {
		return append(dst, bytes.ToUpper([]byte(s))...)
	}
	return append(dst, s...)
}
