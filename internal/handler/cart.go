package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"queueless/internal/cart"
	"queueless/internal/checkout"
	"queueless/internal/model"
	"queueless/internal/store"
)

const cartCookieName = "queueless_cart"

// CartHandler manages the per-browser session cart. Carts are keyed by an
// opaque cookie token and live in memory; they never outlast checkout or the
// registry TTL.
type CartHandler struct {
	carts     *cart.Registry
	menuStore *store.MenuStore
	processor *checkout.Processor
	logger    *slog.Logger
}

func NewCartHandler(carts *cart.Registry, ms *store.MenuStore, processor *checkout.Processor, logger *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, menuStore: ms, processor: processor, logger: logger}
}

// cartFor finds the request's cart, minting a token cookie when absent.
func (h *CartHandler) cartFor(w http.ResponseWriter, r *http.Request) (*cart.Cart, error) {
	cookie, err := r.Cookie(cartCookieName)
	if err == nil && cookie.Value != "" {
		return h.carts.Get(cookie.Value), nil
	}

	token, err := cart.NewToken()
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return h.carts.Get(token), nil
}

type cartResponse struct {
	Items     []model.CartItem `json:"items"`
	ItemCount int              `json:"itemCount"`
	Total     float64          `json:"total"`
}

func newCartResponse(c *cart.Cart) cartResponse {
	items := c.Items()
	if items == nil {
		items = []model.CartItem{}
	}
	totals := c.Totals()
	return cartResponse{Items: items, ItemCount: totals.ItemCount, Total: totals.Amount}
}

// Get handles GET /api/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.cartFor(w, r)
	if err != nil {
		h.logger.Error("cart token", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(c))
}

type addItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
}

// AddItem handles POST /api/cart/items. The menu item is snapshotted into the
// cart; one call adds one unit.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.MenuItemID == "" {
		writeError(w, http.StatusBadRequest, "menu_item_id is required")
		return
	}

	item, err := h.menuStore.GetByID(req.MenuItemID)
	if err != nil {
		h.logger.Error("get menu item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add item")
		return
	}
	if item == nil || !item.Available {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}

	c, err := h.cartFor(w, r)
	if err != nil {
		h.logger.Error("cart token", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add item")
		return
	}
	c.Add(*item)
	writeJSON(w, http.StatusOK, newCartResponse(c))
}

// RemoveItem handles DELETE /api/cart/items/{id}: one call removes one unit,
// dropping the line when its quantity reaches zero.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.cartFor(w, r)
	if err != nil {
		h.logger.Error("cart token", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to remove item")
		return
	}
	c.Remove(r.PathValue("id"))
	writeJSON(w, http.StatusOK, newCartResponse(c))
}

// Checkout handles POST /api/checkout. On success the cart is cleared and the
// pending order returned.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkout.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	c, err := h.cartFor(w, r)
	if err != nil {
		h.logger.Error("cart token", "error", err)
		writeError(w, http.StatusInternalServerError, "checkout failed")
		return
	}

	order, err := h.processor.Submit(r.Context(), c, req)
	var ve checkout.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Message, "field": ve.Field})
		return
	case errors.Is(err, checkout.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, "cart is empty")
		return
	case err != nil:
		h.logger.Error("checkout", "error", err)
		writeError(w, http.StatusInternalServerError, "checkout failed")
		return
	}

	writeJSON(w, http.StatusCreated, order)
}
