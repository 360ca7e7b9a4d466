// Package present renders record fields for display: es-AR money and
// dates, state badges, soft references.
package present

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
)

// Empty stands in for missing values.
const Empty = "—"

const dateLayout = "02/01/2006"

var locale = language.MustParse("es-AR")

// Money formats an amount as pesos with two decimals: "$ 1.250.000,50".
// The digits come from the decimal itself, so large amounts keep their
// cents.
func Money(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}

	whole, cents, _ := strings.Cut(d.Abs().StringFixed(2), ".")

	return sign + "$ " + groupThousands(whole) + "," + cents
}

// groupThousands puts the es-AR thousands separator into a run of digits.
func groupThousands(digits string) string {
	var b strings.Builder

	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}

		b.WriteRune(r)
	}

	return b.String()
}

// Count formats an integer with thousands separators.
func Count(n int) string {
	return message.NewPrinter(locale).Sprint(number.Decimal(n))
}

// Percent formats a 0..100 value with at most one decimal: "42,5%".
func Percent(d decimal.Decimal) string {
	f, _ := d.Round(1).Float64()
	return message.NewPrinter(locale).Sprint(number.Decimal(f, number.MaxFractionDigits(1))) + "%"
}

// Date formats a calendar day as dd/mm/yyyy.
func Date(d civil.Date) string {
	if d.IsZero() {
		return Empty
	}

	return d.Format(dateLayout)
}

func Timestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return Empty
	}

	return t.Local().Format(dateLayout + " 15:04")
}

// Text returns s, or Empty when s is blank.
func Text(s string) string {
	if s == "" {
		return Empty
	}

	return s
}

// Ref renders a soft foreign key: the known name, "#id" when the record
// is missing from the catalog, or Empty when unset.
func Ref(names map[int64]string, id *int64) string {
	if id == nil {
		return Empty
	}

	if n, ok := names[*id]; ok && n != "" {
		return n
	}

	return "#" + strconv.FormatInt(*id, 10)
}
