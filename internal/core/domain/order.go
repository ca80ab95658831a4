package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type (
	Customer struct {
		Name  string
		Email string
		Phone string
	}

	Address struct {
		Street     string
		Number     string
		Complement string
		District   string
		City       string
		State      string
		PostalCode string
	}

	Payment struct {
		Method       string
		Installments int
	}

	// An Order freezes the cart and checkout form data at submission time.
	Order struct {
		OrderID  string
		Cart     Cart
		Totals   CartTotals
		Customer Customer
		Address  Address
		Payment  Payment
		PlacedAt time.Time
	}
)

func NewOrder(
	orderID string,
	cart Cart,
	customer Customer,
	address Address,
	payment Payment,
	placedAt time.Time,
) Order {
	return Order{
		OrderID:  orderID,
		Cart:     cart,
		Totals:   cart.Totals(),
		Customer: customer,
		Address:  address,
		Payment:  payment,
		PlacedAt: placedAt,
	}
}

// Message renders the order as the plain-text block handed to WhatsApp.
// Pure formatting: the output is for a human, never parsed back.
func (o Order) Message() string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Pedido Fina Estampa* #%s\n\n", o.OrderID)

	b.WriteString("*Cliente*\n")
	fmt.Fprintf(&b, "Nome: %s\n", o.Customer.Name)
	fmt.Fprintf(&b, "Email: %s\n", o.Customer.Email)
	fmt.Fprintf(&b, "Telefone: %s\n\n", o.Customer.Phone)

	b.WriteString("*Endereço*\n")
	fmt.Fprintf(&b, "%s, %s", o.Address.Street, o.Address.Number)
	if o.Address.Complement != "" {
		fmt.Fprintf(&b, " - %s", o.Address.Complement)
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%s - %s/%s\n", o.Address.District, o.Address.City, o.Address.State)
	fmt.Fprintf(&b, "CEP: %s\n\n", o.Address.PostalCode)

	b.WriteString("*Itens*\n")
	for _, item := range o.Cart.Items {
		fmt.Fprintf(&b, "- %s (%s / %s) x%d — %s\n",
			item.Name, item.Size, item.Color, item.Quantity,
			FormatBRL(item.LineTotal()),
		)
	}
	b.WriteByte('\n')

	b.WriteString("*Resumo*\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", FormatBRL(o.Totals.Subtotal))
	fmt.Fprintf(&b, "Frete: %s\n", o.shippingLabel())
	if o.Totals.Discount.IsPositive() {
		fmt.Fprintf(&b, "Desconto: %s\n", FormatBRL(o.Totals.Discount))
	}
	fmt.Fprintf(&b, "Total: %s\n\n", FormatBRL(o.Totals.Total))

	fmt.Fprintf(&b, "Pagamento: %s\n", o.paymentLabel())
	fmt.Fprintf(&b, "Data: %s\n", o.PlacedAt.Format("02/01/2006 15:04"))

	return b.String()
}

func (o Order) shippingLabel() string {
	if o.Totals.Shipping.IsZero() {
		return "Grátis"
	}
	return FormatBRL(o.Totals.Shipping)
}

func (o Order) paymentLabel() string {
	if o.Payment.Installments > 1 {
		n := decimal.NewFromInt(int64(o.Payment.Installments))
		per := o.Totals.Total.DivRound(n, 2)
		return fmt.Sprintf("%s (%dx de %s)",
			o.Payment.Method, o.Payment.Installments, FormatBRL(per))
	}
	return o.Payment.Method
}

// WhatsAppLink builds the pre-filled deep link for the store number.
func (o Order) WhatsAppLink(storePhone string) string {
	return "https://wa.me/" + storePhone + "?text=" + url.QueryEscape(o.Message())
}

// CustomerOrderStats is the per-customer aggregate produced by the
// archived-orders analyzer.
type CustomerOrderStats struct {
	Phone  string
	Orders int
}
