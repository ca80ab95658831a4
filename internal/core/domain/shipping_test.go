package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finaestampa/storefront/internal/core/domain"
)

func TestEstimateShipping(t *testing.T) {
	low := decimal.RequireFromString("100.00")

	t.Run("FreeAtThreshold", func(t *testing.T) {
		fee := domain.EstimateShipping("01310-100", domain.FreeShippingThreshold)
		assert.True(t, fee.IsZero())
	})

	t.Run("FreeAboveThreshold", func(t *testing.T) {
		fee := domain.EstimateShipping("99999-999", decimal.RequireFromString("300.00"))
		assert.True(t, fee.IsZero())
	})

	t.Run("NearBandSurcharge", func(t *testing.T) {
		for _, cep := range []string{"01310-100", "13015000", "29055-420"} {
			fee := domain.EstimateShipping(cep, low)
			assert.True(t, fee.Equal(decimal.RequireFromString("20.00")),
				"cep %q: got %s", cep, fee)
		}
	})

	t.Run("MidBandSurcharge", func(t *testing.T) {
		for _, cep := range []string{"30140-071", "40020000", "58000-000"} {
			fee := domain.EstimateShipping(cep, low)
			assert.True(t, fee.Equal(decimal.RequireFromString("18.00")),
				"cep %q: got %s", cep, fee)
		}
	})

	t.Run("FarBandBaseOnly", func(t *testing.T) {
		for _, cep := range []string{"60000-000", "77777777", "90010-150"} {
			fee := domain.EstimateShipping(cep, low)
			assert.True(t, fee.Equal(decimal.RequireFromString("15.00")),
				"cep %q: got %s", cep, fee)
		}
	})

	t.Run("UnknownCEPDoesNotCharge", func(t *testing.T) {
		for _, cep := range []string{"", "   ", "abc", "1234", "12345-67a8"} {
			fee := domain.EstimateShipping(cep, low)
			assert.True(t, fee.IsZero(), "cep %q: got %s", cep, fee)
		}
	})

	t.Run("JustBelowThresholdCharges", func(t *testing.T) {
		fee := domain.EstimateShipping("60000-000", decimal.RequireFromString("199.89"))
		assert.True(t, fee.Equal(decimal.RequireFromString("15.00")))
	})
}
