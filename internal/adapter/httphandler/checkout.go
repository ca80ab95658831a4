package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/finaestampa/storefront/internal/core/domain"
	"github.com/finaestampa/storefront/internal/core/port"
	"github.com/finaestampa/storefront/internal/core/service"
)

type CheckoutHandler struct {
	checkout   port.CheckoutProcessor
	storePhone string
}

func RegisterCheckout(
	mux *http.ServeMux, checkout port.CheckoutProcessor, storePhone string,
) {
	h := CheckoutHandler{checkout, storePhone}
	mux.HandleFunc("POST /v1/checkout", h.PostCheckout)
}

func (h CheckoutHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PostCheckout"
	log := slog.With("op", op)

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	order, err := h.checkout.Checkout(
		r.Context(),
		req.CartID,
		domain.Customer{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
		domain.Address{
			Street:     req.Address.Street,
			Number:     req.Address.Number,
			Complement: req.Address.Complement,
			District:   req.Address.District,
			City:       req.Address.City,
			State:      req.Address.State,
			PostalCode: req.Address.PostalCode,
		},
		domain.Payment{
			Method:       req.Payment.Method,
			Installments: req.Payment.Installments,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCheckout):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrEmptyCart):
			http.Error(w, "cart is empty", http.StatusConflict)
		default:
			http.Error(w, "failed to place order", http.StatusServiceUnavailable)
			log.Error("failed to place order", "err", err)
		}
		return
	}

	log.Info("order placed", "orderID", order.OrderID)
	writeJSON(w, http.StatusCreated, OrderView{
		OrderID:      order.OrderID,
		Totals:       totalsView(order.Totals),
		Message:      order.Message(),
		WhatsAppLink: order.WhatsAppLink(h.storePhone),
	})
}
