package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/finaestampa/storefront/internal/core/port"
)

type CartHandler struct {
	cart port.CartOperator
}

func RegisterCart(mux *http.ServeMux, cart port.CartOperator) {
	h := CartHandler{cart}
	mux.HandleFunc("GET /v1/carts/{cartID}", h.GetCart)
	mux.HandleFunc("DELETE /v1/carts/{cartID}", h.DeleteCart)
	mux.HandleFunc("POST /v1/carts/{cartID}/items", h.PostItem)
	mux.HandleFunc("PUT /v1/carts/{cartID}/items", h.PutQuantity)
	mux.HandleFunc("DELETE /v1/carts/{cartID}/items", h.DeleteItem)
	mux.HandleFunc("POST /v1/carts/{cartID}/coupon", h.PostCoupon)
	mux.HandleFunc("DELETE /v1/carts/{cartID}/coupon", h.DeleteCoupon)
	mux.HandleFunc("POST /v1/carts/{cartID}/shipping", h.PostShipping)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	cart, totals, err := h.cart.Cart(r.Context(), r.PathValue("cartID"))
	if err != nil {
		http.Error(w, "failed to read cart", http.StatusServiceUnavailable)
		log.Error("failed to read cart", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, cartView(cart, totals))
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteCart"
	log := slog.With("op", op)

	if err := h.cart.ClearCart(r.Context(), r.PathValue("cartID")); err != nil {
		http.Error(w, "failed to clear cart", http.StatusServiceUnavailable)
		log.Error("failed to clear cart", "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var item CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if item.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	cart, err := h.cart.AddItem(
		r.Context(), r.PathValue("cartID"), cartItemToDomain(item),
	)
	if err != nil {
		http.Error(w, "failed to add item", http.StatusServiceUnavailable)
		log.Error("failed to add item", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, cartView(cart, cart.Totals()))
}

func (h CartHandler) PutQuantity(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PutQuantity"
	log := slog.With("op", op)

	var change QuantityChange
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	cart, err := h.cart.SetQuantity(
		r.Context(), r.PathValue("cartID"),
		lineKeyToDomain(change.LineKey), change.Quantity,
	)
	if err != nil {
		http.Error(w, "failed to set quantity", http.StatusServiceUnavailable)
		log.Error("failed to set quantity", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, cartView(cart, cart.Totals()))
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	log := slog.With("op", op)

	var key LineKey
	if err := json.NewDecoder(r.Body).Decode(&key); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	cart, err := h.cart.RemoveItem(
		r.Context(), r.PathValue("cartID"), lineKeyToDomain(key),
	)
	if err != nil {
		http.Error(w, "failed to remove item", http.StatusServiceUnavailable)
		log.Error("failed to remove item", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, cartView(cart, cart.Totals()))
}

func (h CartHandler) PostCoupon(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostCoupon"
	log := slog.With("op", op)

	var req CouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	cart, err := h.cart.ApplyCoupon(r.Context(), r.PathValue("cartID"), req.Code)
	if err != nil {
		http.Error(w, "failed to apply coupon", http.StatusServiceUnavailable)
		log.Error("failed to apply coupon", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, cartView(cart, cart.Totals()))
}

func (h CartHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteCoupon"
	log := slog.With("op", op)

	cart, err := h.cart.ClearCoupon(r.Context(), r.PathValue("cartID"))
	if err != nil {
		http.Error(w, "failed to clear coupon", http.StatusServiceUnavailable)
		log.Error("failed to clear coupon", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, cartView(cart, cart.Totals()))
}

func (h CartHandler) PostShipping(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostShipping"
	log := slog.With("op", op)

	var req ShippingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	quote, err := h.cart.QuoteShipping(
		r.Context(), r.PathValue("cartID"), req.PostalCode,
	)
	if err != nil {
		http.Error(w, "failed to quote shipping", http.StatusServiceUnavailable)
		log.Error("failed to quote shipping", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, ShippingQuote{
		PostalCode: quote.PostalCode,
		Fee:        quote.Fee,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.With("op", op).Error("failed to write response body", "err", err)
	}
}
