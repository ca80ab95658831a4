package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type CouponKind int

const (
	CouponNone CouponKind = iota
	// CouponPercent takes a percentage off the subtotal, e.g. "10OFF".
	CouponPercent
	// CouponFlat takes a fixed amount off, capped at the subtotal,
	// e.g. "VALE50".
	CouponFlat
)

// A CouponRule is the discount policy parsed from a textual code.
type CouponRule struct {
	Kind  CouponKind
	Value decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// ParseCoupon resolves a code into a discount rule. Codes are
// case-insensitive and surrounding whitespace is ignored. Unknown codes
// report ok=false: the storefront treats them as "no such coupon", not as
// a validation error.
func ParseCoupon(code string) (rule CouponRule, ok bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return CouponRule{}, false
	}

	if digits, found := strings.CutSuffix(code, "OFF"); found {
		// ParseUint rejects sign prefixes: "+10OFF" is not a coupon.
		pct, err := strconv.ParseUint(digits, 10, 32)
		if err != nil || pct == 0 || pct >= 100 {
			return CouponRule{}, false
		}
		return CouponRule{Kind: CouponPercent, Value: decimal.NewFromInt(int64(pct))}, true
	}

	if digits, found := strings.CutPrefix(code, "VALE"); found {
		amount, err := strconv.ParseUint(digits, 10, 32)
		if err != nil || amount == 0 {
			return CouponRule{}, false
		}
		return CouponRule{Kind: CouponFlat, Value: decimal.NewFromInt(int64(amount))}, true
	}

	return CouponRule{}, false
}

// Discount applies the rule to a subtotal, clamped to [0, subtotal].
func (r CouponRule) Discount(subtotal decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() {
		return decimal.Zero
	}

	var d decimal.Decimal
	switch r.Kind {
	case CouponPercent:
		d = subtotal.Mul(r.Value).Div(oneHundred)
	case CouponFlat:
		d = r.Value
	default:
		return decimal.Zero
	}

	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(subtotal) {
		return subtotal
	}
	return d
}

// ResolveCoupon is the parse-and-apply shorthand used by cart totals.
func ResolveCoupon(code string, subtotal decimal.Decimal) decimal.Decimal {
	rule, ok := ParseCoupon(code)
	if !ok {
		return decimal.Zero
	}
	return rule.Discount(subtotal)
}
