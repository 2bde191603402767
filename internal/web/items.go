package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/erazemk/inventar/internal/imaging"
	"github.com/erazemk/inventar/internal/inventory"
	"github.com/erazemk/inventar/internal/model"
	"github.com/erazemk/inventar/internal/store"
)

type itemFormData struct {
	PageData
	Input  inventory.ItemInput
	EditID int64
}

// formInput collects the raw item fields from a submitted form.
func formInput(r *http.Request) inventory.ItemInput {
	return inventory.ItemInput{
		ItemCode:          r.FormValue("item_code"),
		Name:              r.FormValue("name"),
		Category:          r.FormValue("category"),
		Quantity:          r.FormValue("quantity"),
		Location:          r.FormValue("location"),
		DateOfProcurement: r.FormValue("date_of_procurement"),
		DisposalStatus:    r.FormValue("disposal_status"),
		Notes:             r.FormValue("notes"),
	}
}

// formError maps core errors to the Slovenian messages shown above the form.
func formError(err error) string {
	var verr *inventory.ValidationError
	if errors.As(err, &verr) {
		return "Neveljaven vnos: " + verr.Error()
	}
	if errors.Is(err, store.ErrCodeConflict) {
		return "Šifra sredstva že obstaja."
	}
	return "Napaka pri shranjevanju."
}

// ItemsPage handles GET /items.
func (s *Server) ItemsPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	params := r.URL.Query()
	filter := store.ItemFilter{
		Query:    params.Get("q"),
		Category: params.Get("category"),
		Location: params.Get("location"),
		Status:   params.Get("status"),
	}

	items, err := store.ListItems(r.Context(), s.DB, filter)
	if err != nil {
		slog.Error("failed to list items", "error", err)
	}
	inventory.ApplyAges(items, time.Now())

	facets, err := store.ItemFacets(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list filter values", "error", err)
		facets = &store.Facets{}
	}

	s.Templates.Render(w, "items.html", &struct {
		PageData
		Items   []model.Item
		Filters *store.Facets
		Filter  store.ItemFilter
	}{
		PageData: PageData{Title: "Sredstva", User: claims},
		Items:    items,
		Filters:  facets,
		Filter:   filter,
	})
}

// ItemNewPage handles GET /items/new.
func (s *Server) ItemNewPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "item_form.html", &itemFormData{
		PageData: PageData{Title: "Novo sredstvo", User: GetWebClaims(r.Context())},
	})
}

// ItemCreateSubmit handles POST /items. Validation and conflict errors
// re-render the form with the entered values intact.
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	input := formInput(r)

	fields, err := input.Validate(time.Now())
	if err != nil {
		s.Templates.Render(w, "item_form.html", &itemFormData{
			PageData: PageData{Title: "Novo sredstvo", User: claims, Error: formError(err)},
			Input:    input,
		})
		return
	}

	item, err := store.CreateItem(r.Context(), s.DB, fields)
	if err != nil {
		if !errors.Is(err, store.ErrCodeConflict) {
			slog.Error("failed to create item", "error", err)
		}
		s.Templates.Render(w, "item_form.html", &itemFormData{
			PageData: PageData{Title: "Novo sredstvo", User: claims, Error: formError(err)},
			Input:    input,
		})
		return
	}

	slog.Info("item created", "user", claims.Username, "code", item.ItemCode)
	http.Redirect(w, r, fmt.Sprintf("/items/%d", item.ID), http.StatusSeeOther)
}

// ItemDetailPage handles GET /items/{id}.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "sredstvo ne obstaja", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	item.AgeDays = inventory.AgeDays(item.DateOfProcurement, time.Now())

	s.Templates.Render(w, "item_detail.html", &struct {
		PageData
		Item *model.Item
	}{
		PageData: PageData{Title: item.Name, User: claims},
		Item:     item,
	})
}

// ItemEditPage handles GET /items/{id}/edit. The form is prefilled from
// the stored record.
func (s *Server) ItemEditPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "sredstvo ne obstaja", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "item_form.html", &itemFormData{
		PageData: PageData{Title: "Uredi sredstvo", User: claims},
		Input: inventory.ItemInput{
			ItemCode:          item.ItemCode,
			Name:              item.Name,
			Category:          item.Category,
			Quantity:          strconv.Itoa(item.Quantity),
			Location:          item.Location,
			DateOfProcurement: item.DateOfProcurement.String(),
			DisposalStatus:    item.DisposalStatus,
			Notes:             item.Notes,
		},
		EditID: item.ID,
	})
}

// ItemUpdateSubmit handles POST /items/{id}.
func (s *Server) ItemUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	input := formInput(r)
	fields, err := input.Validate(time.Now())
	if err == nil {
		_, err = store.UpdateItem(r.Context(), s.DB, id, fields)
	}
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "sredstvo ne obstaja", http.StatusNotFound)
		return
	}
	if err != nil {
		var verr *inventory.ValidationError
		if !errors.As(err, &verr) && !errors.Is(err, store.ErrCodeConflict) {
			slog.Error("failed to update item", "error", err)
		}
		s.Templates.Render(w, "item_form.html", &itemFormData{
			PageData: PageData{Title: "Uredi sredstvo", User: claims, Error: formError(err)},
			Input:    input,
			EditID:   id,
		})
		return
	}

	slog.Info("item updated", "user", claims.Username, "id", id)
	http.Redirect(w, r, fmt.Sprintf("/items/%d", id), http.StatusSeeOther)
}

// ItemDeleteSubmit handles POST /items/{id}/delete.
func (s *Server) ItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	err = store.DeleteItem(r.Context(), s.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "sredstvo ne obstaja", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to delete item", "error", err)
		http.Error(w, "failed to delete", http.StatusInternalServerError)
		return
	}

	slog.Info("item deleted", "user", claims.Username, "id", id)
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

// ItemPhotoSubmit handles POST /items/{id}/photo.
func (s *Server) ItemPhotoSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		http.Error(w, "file too large", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "photo required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	photo, err := imaging.Normalize(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = store.SetItemPhoto(r.Context(), s.DB, id, photo.Data, photo.MIME)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "sredstvo ne obstaja", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to save photo", "error", err)
		http.Error(w, "failed to save photo", http.StatusInternalServerError)
		return
	}

	slog.Info("item photo uploaded", "user", claims.Username, "id", id)
	http.Redirect(w, r, fmt.Sprintf("/items/%d", id), http.StatusSeeOther)
}

// ItemPhotoGet handles GET /items/{id}/photo.
func (s *Server) ItemPhotoGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	data, mime, err := store.GetItemPhoto(r.Context(), s.DB, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("failed to get photo", "error", err)
		}
		http.NotFound(w, r)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write photo response", "error", err)
	}
}
