package domain

import "github.com/shopspring/decimal"

type (
	Product struct {
		ProductID   string
		Name        string
		Category    string
		Gender      string
		Subcategory string
		Brand       string
		Material    string
		Price       decimal.Decimal
		SalePrice   decimal.Decimal
		Rating      float64
		ReviewCount int
		Sizes       []string
		Colors      []string
		Image       string
		IsNew       bool
		IsPromo     bool
		InStock     bool
		FreeShip    bool
	}
)

// EffectivePrice returns the sale price when one is set, otherwise the
// list price. A product counts as discounted when SalePrice is positive;
// the catalog does not require SalePrice <= Price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice.IsPositive() {
		return p.SalePrice
	}
	return p.Price
}

// A PromoFlag marks a product as on sale, streamed from the admin dashboard.
type PromoFlag struct {
	ProductID string
	OnSale    bool
}
