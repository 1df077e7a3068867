package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"queueless/internal/model"
	"queueless/internal/store"
)

type QRHandler struct {
	qrStore *store.QRStore
	baseURL string
	logger  *slog.Logger
}

func NewQRHandler(qs *store.QRStore, baseURL string, logger *slog.Logger) *QRHandler {
	return &QRHandler{qrStore: qs, baseURL: strings.TrimRight(baseURL, "/"), logger: logger}
}

// List handles GET /api/qr-codes
func (h *QRHandler) List(w http.ResponseWriter, r *http.Request) {
	codes, err := h.qrStore.List()
	if err != nil {
		h.logger.Error("list qr codes", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list QR codes")
		return
	}
	if codes == nil {
		codes = []model.QRCode{}
	}
	writeJSON(w, http.StatusOK, codes)
}

type qrCodeRequest struct {
	TableName   string `json:"tableName"`
	TableNumber int    `json:"tableNumber"`
}

// Create handles POST /api/qr-codes. The stored URL is the deep link a
// scanned code opens: the customer menu preselected for that table.
func (h *QRHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req qrCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.TableName = strings.TrimSpace(req.TableName)
	if req.TableName == "" {
		writeError(w, http.StatusBadRequest, "tableName is required")
		return
	}
	if req.TableNumber <= 0 {
		writeError(w, http.StatusBadRequest, "tableNumber must be positive")
		return
	}

	qrURL := fmt.Sprintf("/#/menu/%d", req.TableNumber)
	code, err := h.qrStore.Create(req.TableName, req.TableNumber, qrURL)
	if err != nil {
		h.logger.Error("create qr code", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create QR code")
		return
	}
	writeJSON(w, http.StatusCreated, code)
}

// Delete handles DELETE /api/qr-codes/{id}
func (h *QRHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.qrStore.GetByID(id)
	if err != nil {
		h.logger.Error("get qr code", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get QR code")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "QR code not found")
		return
	}

	if err := h.qrStore.Delete(id); err != nil {
		h.logger.Error("delete qr code", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete QR code")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Image handles GET /api/qr-codes/{id}/image: the scannable PNG. Relative
// stored URLs are resolved against the configured base URL so the code works
// from a phone camera.
func (h *QRHandler) Image(w http.ResponseWriter, r *http.Request) {
	code, err := h.qrStore.GetByID(r.PathValue("id"))
	if err != nil {
		h.logger.Error("get qr code", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get QR code")
		return
	}
	if code == nil {
		writeError(w, http.StatusNotFound, "QR code not found")
		return
	}

	target := code.QRURL
	if strings.HasPrefix(target, "/") {
		target = h.baseURL + target
	}

	png, err := qrcode.Encode(target, qrcode.Medium, 256)
	if err != nil {
		h.logger.Error("encode qr code", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}
