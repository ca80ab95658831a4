package domain

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortName      SortKey = "name"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
)

// A Selection is the value set chosen for one filter dimension. An empty
// selection (or one holding only "all") leaves the dimension unfiltered.
// Single-select screens pass one value, multi-select screens pass several:
// cardinality belongs to the caller, not to the pipeline.
type Selection []string

func (s Selection) Active() bool {
	for _, v := range s {
		if v != "" && !strings.EqualFold(v, "all") {
			return true
		}
	}
	return false
}

func (s Selection) matches(value string) bool {
	for _, v := range s {
		if v == "" || strings.EqualFold(v, "all") {
			continue
		}
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

func (s Selection) matchesAny(values []string) bool {
	for _, v := range values {
		if s.matches(v) {
			return true
		}
	}
	return false
}

// A PriceRange bounds the effective price inclusively. A nil bound means
// unbounded on that side (0 for Min, +inf for Max).
type PriceRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

func (r PriceRange) set() bool {
	return r.Min != nil || r.Max != nil
}

func (r PriceRange) contains(p decimal.Decimal) bool {
	if r.Min != nil && p.LessThan(*r.Min) {
		return false
	}
	if r.Max != nil && p.GreaterThan(*r.Max) {
		return false
	}
	return true
}

// A FilterSpec is the full set of criteria a storefront screen applies to
// the catalog. The zero value filters nothing and sorts by relevance.
type FilterSpec struct {
	Category    Selection
	Gender      Selection
	Subcategory Selection
	Brand       Selection
	Material    Selection
	Color       Selection
	Sizes       Selection

	// Preset is the named range picked from the sidebar; Custom holds
	// user-typed bounds and takes precedence when either bound is set.
	Preset PriceRange
	Custom PriceRange

	OnSale    bool
	InStock   bool
	FreeShip  bool
	IsNew     bool
	MinRating float64

	Sort SortKey
}

func (s FilterSpec) priceRange() PriceRange {
	if s.Custom.set() {
		return s.Custom
	}
	return s.Preset
}

// Matches AND-combines every active predicate; inactive dimensions pass.
func (s FilterSpec) Matches(p Product) bool {
	if s.Category.Active() && !s.Category.matches(p.Category) {
		return false
	}
	if s.Gender.Active() && !s.Gender.matches(p.Gender) {
		return false
	}
	if s.Subcategory.Active() && !s.Subcategory.matches(p.Subcategory) {
		return false
	}
	if s.Brand.Active() && !s.Brand.matches(p.Brand) {
		return false
	}
	if s.Material.Active() && !s.Material.matches(p.Material) {
		return false
	}
	if s.Color.Active() && !s.Color.matchesAny(p.Colors) {
		return false
	}
	if s.Sizes.Active() && !s.Sizes.matchesAny(p.Sizes) {
		return false
	}
	if r := s.priceRange(); r.set() && !r.contains(p.EffectivePrice()) {
		return false
	}
	if s.OnSale && !p.IsPromo {
		return false
	}
	if s.InStock && !p.InStock {
		return false
	}
	if s.FreeShip && !p.FreeShip {
		return false
	}
	if s.IsNew && !p.IsNew {
		return false
	}
	if s.MinRating > 0 && p.Rating < s.MinRating {
		return false
	}
	return true
}

// Apply filters then sorts the catalog, never mutating the input. A spec
// with every dimension at its default returns the products unchanged, in
// the original order.
func Apply(products []Product, spec FilterSpec) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if spec.Matches(p) {
			out = append(out, p)
		}
	}
	sortProducts(out, spec.Sort)
	return out
}

// sortProducts orders in place with a stable sort, so ties keep the
// filtered order. Relevance is the filtered order itself.
func sortProducts(ps []Product, key SortKey) {
	var less func(a, b Product) bool
	switch key {
	case SortPriceLow:
		less = func(a, b Product) bool {
			return a.EffectivePrice().LessThan(b.EffectivePrice())
		}
	case SortPriceHigh:
		less = func(a, b Product) bool {
			return a.EffectivePrice().GreaterThan(b.EffectivePrice())
		}
	case SortName:
		c := collate.New(language.BrazilianPortuguese)
		less = func(a, b Product) bool {
			return c.CompareString(a.Name, b.Name) < 0
		}
	case SortRating:
		less = func(a, b Product) bool { return a.Rating > b.Rating }
	case SortNewest:
		// Product ID stands in for recency: the catalog has no
		// creation timestamp.
		less = func(a, b Product) bool {
			return compareIDs(a.ProductID, b.ProductID) > 0
		}
	default:
		return
	}
	sort.SliceStable(ps, func(i, j int) bool { return less(ps[i], ps[j]) })
}

func compareIDs(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// Search keeps products whose name, category, brand, material or any
// color contains the query, case-insensitive. Name hits rank before
// secondary-field hits; within each group the input order is preserved.
// An empty query returns the input unchanged.
func Search(products []Product, query string) []Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return products
	}

	var byName, bySecondary []Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) {
			byName = append(byName, p)
			continue
		}
		if matchesSecondary(p, query) {
			bySecondary = append(bySecondary, p)
		}
	}
	return append(byName, bySecondary...)
}

func matchesSecondary(p Product, query string) bool {
	for _, field := range []string{p.Category, p.Brand, p.Material} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	for _, color := range p.Colors {
		if strings.Contains(strings.ToLower(color), query) {
			return true
		}
	}
	return false
}
