package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/erazemk/inventar/internal/inventory"
	"github.com/erazemk/inventar/internal/model"
	"github.com/erazemk/inventar/internal/store"
)

// ReportsHandler serves inventory reports.
type ReportsHandler struct {
	DB *sql.DB
}

type agingResponse struct {
	Summary []inventory.AgeBucket `json:"summary"`
	Items   []model.Item          `json:"items"`
}

// Aging handles GET /api/reports/aging. The summary lists every bucket in
// display order, including empty ones; the item list carries the computed
// ages for detail display.
func (h *ReportsHandler) Aging(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB, store.ItemFilter{})
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}

	now := time.Now()
	inventory.ApplyAges(items, now)

	jsonResponse(w, http.StatusOK, agingResponse{
		Summary: inventory.SummarizeAges(items, now),
		Items:   items,
	})
}
