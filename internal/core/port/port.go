package port

import (
	"context"
	"sync"

	"github.com/finaestampa/storefront/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// Inbound ports, implemented by the core services.

type CartOperator interface {
	Cart(ctx context.Context, cartID string) (domain.Cart, domain.CartTotals, error)
	AddItem(ctx context.Context, cartID string, item domain.CartItem) (domain.Cart, error)
	RemoveItem(ctx context.Context, cartID string, key domain.LineKey) (domain.Cart, error)
	SetQuantity(ctx context.Context, cartID string, key domain.LineKey, qty int) (domain.Cart, error)
	ApplyCoupon(ctx context.Context, cartID, code string) (domain.Cart, error)
	ClearCoupon(ctx context.Context, cartID string) (domain.Cart, error)
	QuoteShipping(ctx context.Context, cartID, postalCode string) (domain.ShippingQuote, error)
	ClearCart(ctx context.Context, cartID string) error
}

type CatalogBrowser interface {
	Browse(ctx context.Context, query string, spec domain.FilterSpec) ([]domain.Product, error)
}

type CatalogEditor interface {
	SaveProducts(ctx context.Context, ps []domain.Product) error
	RemoveProduct(ctx context.Context, productID string) error
}

type CheckoutProcessor interface {
	Checkout(
		ctx context.Context,
		cartID string,
		customer domain.Customer,
		address domain.Address,
		payment domain.Payment,
	) (domain.Order, error)
}

// Outbound ports, implemented by the adapters.

type CartStore interface {
	Load(ctx context.Context, cartID string) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
}

type CatalogRepository interface {
	UpsertProducts(ctx context.Context, ps []domain.Product) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type OrderProducer interface {
	ProduceOrder(ctx context.Context, order domain.Order) error
}

type OrderArchiver interface {
	ArchiveOrder(ctx context.Context, order domain.Order) error
}

type CatalogConsumer interface {
	Run(context.Context)
	Close()
}

type PromoFlagProcessor interface {
	runnerContextWg
	closer
}
