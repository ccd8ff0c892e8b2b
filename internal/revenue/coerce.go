package revenue

import (
	"math"
	"strconv"
	"strings"
)

// CoerceAmount turns a raw persisted total into integer rupiah.
//
// Legacy rows carry totals as formatted strings ("Rp 45.000",
// "38,500"); currency symbols, separators, and any other non-digit
// characters are stripped before parsing. Unparseable values coerce to
// zero rather than failing, matching how unknown selection ids are
// treated in pricing.
func CoerceAmount(v interface{}) int64 {
	switch t := v.(type) {
	case nil:
		return 0
	case int64:
		return t
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case float64:
		return int64(math.Round(t))
	case float32:
		return int64(math.Round(float64(t)))
	case string:
		return coerceString(t)
	default:
		return 0
	}
}

func coerceString(s string) int64 {
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
