package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders a monetary amount in Brazilian real notation:
// "R$ 1.234,56". Negative amounts keep the sign before the currency digits.
func FormatBRL(v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString("R$ ")
	if v.IsNegative() {
		b.WriteByte('-')
	}

	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteByte('.')
		}
	}

	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}
