package domain

import (
	"math"
	"strconv"
)

// FormatNaira renders an amount the way the storefront always has: the naira
// sign, the value rounded to the nearest whole unit, thousands separated by
// commas. No locale-aware formatting beyond that.
func FormatNaira(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		var b []byte
		for i, c := range []byte(s) {
			if i > 0 && (len(s)-i)%3 == 0 {
				b = append(b, ',')
			}
			b = append(b, c)
		}
		s = string(b)
	}
	if neg {
		s = "-" + s
	}
	return "₦" + s
}
