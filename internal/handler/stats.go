package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"queueless/internal/store"
)

type StatsHandler struct {
	statsStore *store.StatsStore
	logger     *slog.Logger
}

func NewStatsHandler(ss *store.StatsStore, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{statsStore: ss, logger: logger}
}

// Overview handles GET /api/stats/overview: the dashboard headline numbers.
func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.statsStore.Overview()
	if err != nil {
		h.logger.Error("stats overview", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load statistics")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// Orders handles GET /api/stats/orders[?days=N]: chart data for the
// statistics page.
func (h *StatsHandler) Orders(w http.ResponseWriter, r *http.Request) {
	days := 7
	if d := r.URL.Query().Get("days"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n < 1 || n > 90 {
			writeError(w, http.StatusBadRequest, "days must be between 1 and 90")
			return
		}
		days = n
	}

	mostOrdered, err := h.statsStore.MostOrdered(5)
	if err != nil {
		h.logger.Error("stats most ordered", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load statistics")
		return
	}
	categories, err := h.statsStore.CategoryDistribution()
	if err != nil {
		h.logger.Error("stats categories", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load statistics")
		return
	}
	trends, err := h.statsStore.DailyTrends(days)
	if err != nil {
		h.logger.Error("stats trends", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load statistics")
		return
	}

	if mostOrdered == nil {
		mostOrdered = []store.ItemStat{}
	}
	if categories == nil {
		categories = []store.CategoryStat{}
	}
	if trends == nil {
		trends = []store.DayStat{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"mostOrdered":          mostOrdered,
		"categoryDistribution": categories,
		"dailyTrends":          trends,
	})
}
