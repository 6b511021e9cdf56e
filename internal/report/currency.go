package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount in the Brazilian convention: dot for
// thousands, comma for decimals, always two decimal places.
// 1234.5 renders as "R$ 1.234,50". This format is a contract with the
// message recipients, not cosmetics.
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.StringFixed(2)

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString("R$ ")
	if negative {
		b.WriteByte('-')
	}
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(intPart[i])
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}
