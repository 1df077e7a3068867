package handler

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"queueless/internal/model"
	"queueless/internal/store"
	"queueless/internal/websocket"
)

type MenuHandler struct {
	menuStore *store.MenuStore
	hub       *websocket.Hub
	logger    *slog.Logger
}

func NewMenuHandler(ms *store.MenuStore, hub *websocket.Hub, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{menuStore: ms, hub: hub, logger: logger}
}

// Customer handles GET /api/menu: the customer-facing catalog. Only available
// items are returned, optionally filtered by category and a case-insensitive
// name/description search.
func (h *MenuHandler) Customer(w http.ResponseWriter, r *http.Request) {
	items, err := h.menuStore.ListAvailable()
	if err != nil {
		h.logger.Error("list available menu items", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Menu is currently unavailable")
		return
	}

	allUnavailable := len(items) == 0

	if category := r.URL.Query().Get("category"); category != "" && category != "All" {
		filtered := items[:0]
		for _, item := range items {
			if item.Category == category {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}
	if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q"))); q != "" {
		filtered := items[:0]
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Name), q) || strings.Contains(strings.ToLower(item.Description), q) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	categories, err := h.menuStore.Categories()
	if err != nil {
		h.logger.Error("list categories", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Menu is currently unavailable")
		return
	}

	if items == nil {
		items = []model.MenuItem{}
	}
	resp := map[string]any{
		"items":      items,
		"categories": categories,
	}
	if allUnavailable {
		resp["message"] = "All menu items are currently unavailable"
	}
	writeJSON(w, http.StatusOK, resp)
}

// List handles GET /api/menu-items: every item, for the staff editor.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.menuStore.ListAll()
	if err != nil {
		h.logger.Error("list menu items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list menu items")
		return
	}
	if items == nil {
		items = []model.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

type menuItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
}

func (req *menuItemRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if req.Name == "" {
		return "name is required"
	}
	if req.Price < 0 {
		return "price cannot be negative"
	}
	if req.Category == "" {
		return "category is required"
	}
	return ""
}

// Create handles POST /api/menu-items
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	item, err := h.menuStore.Create(req.Name, req.Description, req.Price, req.Category, req.ImageURL)
	if err != nil {
		h.logger.Error("create menu item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create menu item")
		return
	}

	h.hub.Broadcast(websocket.NewMessage(websocket.EntityMenuItem, "created", item.ID, nil))
	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/menu-items/{id}
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.menuStore.GetByID(id)
	if err != nil {
		h.logger.Error("get menu item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get menu item")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}

	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	item, err := h.menuStore.Update(id, req.Name, req.Description, req.Price, req.Category, req.ImageURL)
	if err != nil {
		h.logger.Error("update menu item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update menu item")
		return
	}

	h.hub.Broadcast(websocket.NewMessage(websocket.EntityMenuItem, "updated", item.ID, nil))
	writeJSON(w, http.StatusOK, item)
}

// Toggle handles POST /api/menu-items/{id}/toggle
func (h *MenuHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	item, err := h.menuStore.ToggleAvailability(id)
	if err != nil {
		h.logger.Error("toggle menu item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to toggle availability")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}

	h.hub.Broadcast(websocket.NewMessage(websocket.EntityMenuItem, "updated", item.ID, map[string]any{"available": item.Available}))
	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/menu-items/{id}
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.menuStore.GetByID(id)
	if err != nil {
		h.logger.Error("get menu item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get menu item")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}

	if err := h.menuStore.Delete(id); err != nil {
		h.logger.Error("delete menu item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete menu item")
		return
	}

	h.hub.Broadcast(websocket.NewMessage(websocket.EntityMenuItem, "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

// Import handles POST /api/menu-items/import: a CSV upload with header
// id,name,description,price,category,image_url. Rows with an id matching an
// existing item replace it; rows without an id create new items.
func (h *MenuHandler) Import(w http.ResponseWriter, r *http.Request) {
	reader := csv.NewReader(r.Body)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid CSV")
		return
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"name", "price", "category"} {
		if _, ok := col[required]; !ok {
			writeError(w, http.StatusBadRequest, "CSV must have name, price, and category columns")
			return
		}
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	imported := 0
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid CSV row at line "+strconv.Itoa(line))
			return
		}

		price, err := strconv.ParseFloat(field(record, "price"), 64)
		if err != nil || price < 0 {
			writeError(w, http.StatusBadRequest, "invalid price at line "+strconv.Itoa(line))
			return
		}
		name := field(record, "name")
		category := field(record, "category")
		if name == "" || category == "" {
			writeError(w, http.StatusBadRequest, "missing name or category at line "+strconv.Itoa(line))
			return
		}

		_, err = h.menuStore.Upsert(model.MenuItem{
			ID:          field(record, "id"),
			Name:        name,
			Description: field(record, "description"),
			Price:       price,
			Category:    category,
			Available:   true,
			ImageURL:    field(record, "image_url"),
		})
		if err != nil {
			h.logger.Error("import menu item", "line", line, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to import menu items")
			return
		}
		imported++
	}

	h.hub.Broadcast(websocket.NewMessage(websocket.EntityMenuItem, "imported", "", map[string]any{"count": imported}))
	writeJSON(w, http.StatusOK, map[string]int{"imported": imported})
}
