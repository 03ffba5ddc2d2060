package catalog

import (
	"strconv"
	"strings"
)

const currencySuffix = "원"

// ParsePrice extracts the won amount from a formatted price such as "89,000원".
// Every non-digit rune is dropped; a string without digits parses to 0.
// Won has no minor unit, so there is nothing to round.
func ParsePrice(s string) int64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatPrice renders n with ko-KR thousands grouping and the won suffix.
func FormatPrice(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	b.WriteString(sign)
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	b.WriteString(currencySuffix)
	return b.String()
}
