package planilla

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseMonto reads Argentine-formatted amounts ("$ 1.234,56", "-588,74")
// and plain ERP decimals ("1500.25"). Without a comma, a dot followed by
// exactly three digits is a thousands separator.
func parseMonto(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), "$", "")
	clean = strings.Join(strings.Fields(clean), "")

	switch {
	case strings.Contains(clean, ","):
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case strings.Count(clean, ".") > 1 || thousandsOnly(clean):
		clean = strings.ReplaceAll(clean, ".", "")
	}

	return decimal.NewFromString(clean)
}

func thousandsOnly(s string) bool {
	i := strings.LastIndex(s, ".")
	return i > 0 && len(s)-i-1 == 3
}
