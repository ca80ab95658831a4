package httphandler

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finaestampa/storefront/internal/core/domain"
)

type (
	Product struct {
		ProductID   string          `json:"product_id"`
		Name        string          `json:"name"`
		Category    string          `json:"category"`
		Gender      string          `json:"gender"`
		Subcategory string          `json:"subcategory"`
		Brand       string          `json:"brand"`
		Material    string          `json:"material"`
		Price       decimal.Decimal `json:"price"`
		SalePrice   decimal.Decimal `json:"sale_price"`
		Rating      float64         `json:"rating"`
		ReviewCount int             `json:"review_count"`
		Sizes       []string        `json:"sizes"`
		Colors      []string        `json:"colors"`
		Image       string          `json:"image"`
		IsNew       bool            `json:"is_new"`
		IsPromo     bool            `json:"is_promo"`
		InStock     bool            `json:"in_stock"`
		FreeShip    bool            `json:"free_ship"`
	}

	CartItem struct {
		ProductID string          `json:"product_id"`
		Name      string          `json:"name"`
		Size      string          `json:"size"`
		Color     string          `json:"color"`
		Image     string          `json:"image"`
		UnitPrice decimal.Decimal `json:"unit_price"`
		Quantity  int             `json:"quantity"`
	}

	LineKey struct {
		ProductID string `json:"product_id"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}

	QuantityChange struct {
		LineKey
		Quantity int `json:"quantity"`
	}

	CouponRequest struct {
		Code string `json:"code"`
	}

	ShippingRequest struct {
		PostalCode string `json:"postal_code"`
	}

	ShippingQuote struct {
		PostalCode string          `json:"postal_code"`
		Fee        decimal.Decimal `json:"fee"`
	}

	CartView struct {
		CartID     string         `json:"cart_id"`
		Items      []CartItem     `json:"items"`
		CouponCode string         `json:"coupon_code,omitempty"`
		Shipping   *ShippingQuote `json:"shipping,omitempty"`
		Totals     CartTotals     `json:"totals"`
	}

	CartTotals struct {
		ItemCount int             `json:"item_count"`
		Subtotal  decimal.Decimal `json:"subtotal"`
		Discount  decimal.Decimal `json:"discount"`
		Shipping  decimal.Decimal `json:"shipping"`
		Total     decimal.Decimal `json:"total"`
	}

	CheckoutRequest struct {
		CartID   string   `json:"cart_id"`
		Customer Customer `json:"customer"`
		Address  Address  `json:"address"`
		Payment  Payment  `json:"payment"`
	}

	Customer struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}

	Address struct {
		Street     string `json:"street"`
		Number     string `json:"number"`
		Complement string `json:"complement"`
		District   string `json:"district"`
		City       string `json:"city"`
		State      string `json:"state"`
		PostalCode string `json:"postal_code"`
	}

	Payment struct {
		Method       string `json:"method"`
		Installments int    `json:"installments"`
	}

	OrderView struct {
		OrderID      string     `json:"order_id"`
		Totals       CartTotals `json:"totals"`
		Message      string     `json:"message"`
		WhatsAppLink string     `json:"whatsapp_link"`
	}
)

func productToDomain(p Product) domain.Product {
	return domain.Product{
		ProductID:   p.ProductID,
		Name:        p.Name,
		Category:    p.Category,
		Gender:      p.Gender,
		Subcategory: p.Subcategory,
		Brand:       p.Brand,
		Material:    p.Material,
		Price:       p.Price,
		SalePrice:   p.SalePrice,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Sizes:       p.Sizes,
		Colors:      p.Colors,
		Image:       p.Image,
		IsNew:       p.IsNew,
		IsPromo:     p.IsPromo,
		InStock:     p.InStock,
		FreeShip:    p.FreeShip,
	}
}

func productFromDomain(p domain.Product) Product {
	return Product{
		ProductID:   p.ProductID,
		Name:        p.Name,
		Category:    p.Category,
		Gender:      p.Gender,
		Subcategory: p.Subcategory,
		Brand:       p.Brand,
		Material:    p.Material,
		Price:       p.Price,
		SalePrice:   p.SalePrice,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Sizes:       p.Sizes,
		Colors:      p.Colors,
		Image:       p.Image,
		IsNew:       p.IsNew,
		IsPromo:     p.IsPromo,
		InStock:     p.InStock,
		FreeShip:    p.FreeShip,
	}
}

func cartItemToDomain(i CartItem) domain.CartItem {
	return domain.CartItem{
		ProductID: i.ProductID,
		Name:      i.Name,
		Size:      i.Size,
		Color:     i.Color,
		Image:     i.Image,
		UnitPrice: i.UnitPrice,
		Quantity:  i.Quantity,
	}
}

func lineKeyToDomain(k LineKey) domain.LineKey {
	return domain.LineKey{ProductID: k.ProductID, Size: k.Size, Color: k.Color}
}

func cartView(c domain.Cart, t domain.CartTotals) CartView {
	v := CartView{
		CartID:     c.CartID,
		Items:      []CartItem{},
		CouponCode: c.CouponCode,
		Totals:     totalsView(t),
	}
	for _, item := range c.Items {
		v.Items = append(v.Items, CartItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Size:      item.Size,
			Color:     item.Color,
			Image:     item.Image,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	if c.Shipping != nil {
		v.Shipping = &ShippingQuote{
			PostalCode: c.Shipping.PostalCode,
			Fee:        c.Shipping.Fee,
		}
	}
	return v
}

func totalsView(t domain.CartTotals) CartTotals {
	return CartTotals{
		ItemCount: t.ItemCount,
		Subtotal:  t.Subtotal,
		Discount:  t.Discount,
		Shipping:  t.Shipping,
		Total:     t.Total,
	}
}

// filterSpecFromQuery maps listing query parameters onto the filter
// pipeline. Malformed numeric values are ignored, the storefront never
// fails a listing over a bad parameter.
func filterSpecFromQuery(q url.Values) domain.FilterSpec {
	spec := domain.FilterSpec{
		Category:    domain.Selection(q["category"]),
		Gender:      domain.Selection(q["gender"]),
		Subcategory: domain.Selection(q["subcategory"]),
		Brand:       domain.Selection(q["brand"]),
		Material:    domain.Selection(q["material"]),
		Color:       domain.Selection(q["color"]),
		Sizes:       domain.Selection(q["size"]),
		OnSale:      q.Get("on_sale") == "true",
		InStock:     q.Get("in_stock") == "true",
		FreeShip:    q.Get("free_ship") == "true",
		IsNew:       q.Get("is_new") == "true",
		Sort:        domain.SortKey(q.Get("sort")),
	}

	spec.Preset = presetRange(q.Get("price_range"))
	spec.Custom.Min = parsePrice(q.Get("price_min"))
	spec.Custom.Max = parsePrice(q.Get("price_max"))

	if v := q.Get("min_rating"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			spec.MinRating = f
		}
	}
	return spec
}

// presetRange reads a sidebar price range, "min-max" or the open-ended
// "min+". Custom price_min/price_max bounds take precedence downstream.
func presetRange(v string) domain.PriceRange {
	var r domain.PriceRange
	if lo, found := strings.CutSuffix(v, "+"); found {
		r.Min = parsePrice(lo)
		return r
	}
	if lo, hi, found := strings.Cut(v, "-"); found {
		r.Min = parsePrice(lo)
		r.Max = parsePrice(hi)
	}
	return r
}

func parsePrice(v string) *decimal.Decimal {
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil
	}
	return &d
}
