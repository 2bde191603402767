package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/inventar/internal/inventory"
	"github.com/erazemk/inventar/internal/model"
	"github.com/erazemk/inventar/internal/store"
)

// AgingPage handles GET /reports/aging.
func (s *Server) AgingPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	items, err := store.ListItems(r.Context(), s.DB, store.ItemFilter{})
	if err != nil {
		slog.Error("failed to list items", "error", err)
	}

	now := time.Now()
	inventory.ApplyAges(items, now)

	s.Templates.Render(w, "aging.html", &struct {
		PageData
		Summary []inventory.AgeBucket
		Items   []model.Item
	}{
		PageData: PageData{Title: "Poročilo o staranju", User: claims},
		Summary:  inventory.SummarizeAges(items, now),
		Items:    items,
	})
}
