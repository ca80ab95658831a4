package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Canonical shipping constants. The storefront historically mixed a
// 199.90 and a 300.00 free-shipping threshold and several base fees;
// 199.90 and 15.00 are the single values used here.
var (
	FreeShippingThreshold = decimal.RequireFromString("199.90")

	baseShippingFee = decimal.RequireFromString("15.00")

	// Regional surcharge by the first CEP digit:
	// 0-2 south/southeast capitals, 3-5 interior, 6-9 no surcharge.
	surchargeNear = decimal.RequireFromString("5.00")
	surchargeMid  = decimal.RequireFromString("3.00")
)

// EstimateShipping maps a CEP and subtotal to a fee. A subtotal at or
// above the free threshold ships free. An empty or malformed CEP yields
// zero: unknown destination, don't charge.
func EstimateShipping(postalCode string, subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}

	digits, ok := normalizeCEP(postalCode)
	if !ok {
		return decimal.Zero
	}

	fee := baseShippingFee
	switch digits[0] {
	case '0', '1', '2':
		fee = fee.Add(surchargeNear)
	case '3', '4', '5':
		fee = fee.Add(surchargeMid)
	}
	return fee
}

// normalizeCEP strips the conventional hyphen and spaces and requires
// exactly eight digits.
func normalizeCEP(cep string) (string, bool) {
	cep = strings.ReplaceAll(strings.TrimSpace(cep), "-", "")
	if len(cep) != 8 {
		return "", false
	}
	for _, r := range cep {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return cep, true
}
