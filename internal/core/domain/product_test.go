package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finaestampa/storefront/internal/core/domain"
)

func TestEffectivePrice(t *testing.T) {
	t.Run("SalePriceWins", func(t *testing.T) {
		p := domain.Product{
			Price:     decimal.RequireFromString("99.90"),
			SalePrice: decimal.RequireFromString("79.90"),
		}
		assert.True(t, p.EffectivePrice().Equal(decimal.RequireFromString("79.90")))
	})

	t.Run("ListPriceWhenNoSale", func(t *testing.T) {
		p := domain.Product{Price: decimal.RequireFromString("99.90")}
		assert.True(t, p.EffectivePrice().Equal(decimal.RequireFromString("99.90")))
	})

	t.Run("NoPriceOrderingInvariant", func(t *testing.T) {
		// The catalog never validates SalePrice <= Price; a "sale" above
		// the list price is representable and simply wins. Pinned here so
		// nobody adds enforcement by accident.
		p := domain.Product{
			Price:     decimal.RequireFromString("50.00"),
			SalePrice: decimal.RequireFromString("80.00"),
		}
		assert.True(t, p.EffectivePrice().Equal(decimal.RequireFromString("80.00")))
	})
}
