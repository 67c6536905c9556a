package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"stocktake/internal/form"
	"stocktake/internal/imaging"
	"stocktake/internal/inventory"
	"stocktake/internal/model"
	"stocktake/internal/query"
)

// column describes one sortable table header: where clicking it leads
// and whether it is the active sort.
type column struct {
	Label  string
	URL    string
	Active bool
	Desc   bool
}

// itemsPageData is the data for the item table page.
type itemsPageData struct {
	PageData
	Items   []model.InventoryItem
	Query   string
	Columns []column
	Total   int
}

// sortableColumns pairs table labels with their sort fields, in display order.
var sortableColumns = []struct {
	Label string
	Field query.Field
}{
	{"SKU", query.BySKU},
	{"Name", query.ByName},
	{"Category", query.ByCategory},
	{"Quantity", query.ByQuantity},
	{"Last count", query.ByDate},
}

// ItemsPage handles GET /items: the searchable, sortable item table.
func (s *Server) ItemsPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	params := r.URL.Query()

	term := params.Get("q")
	active := query.Sort{
		Field:      query.ParseField(params.Get("sort")),
		Descending: params.Get("dir") == "desc",
	}

	items := query.Apply(s.Repo.List(), term, active)

	columns := make([]column, 0, len(sortableColumns))
	for _, c := range sortableColumns {
		next := active.Toggle(c.Field)
		link := url.Values{"sort": {string(next.Field)}}
		if next.Descending {
			link.Set("dir", "desc")
		}
		if term != "" {
			link.Set("q", term)
		}
		columns = append(columns, column{
			Label:  c.Label,
			URL:    "/items?" + link.Encode(),
			Active: active.Field == c.Field,
			Desc:   active.Descending,
		})
	}

	s.Templates.Render(w, "items.html", &itemsPageData{
		PageData: PageData{
			Title:   "Items",
			User:    claims,
			Success: params.Get("flash"),
			Error:   params.Get("warn"),
		},
		Items:   items,
		Query:   term,
		Columns: columns,
		Total:   len(s.Repo.List()),
	})
}

// formPageData is the data for the add/edit form page.
type formPageData struct {
	PageData
	Action     string
	Fields     form.Fields
	Errors     form.Errors
	Categories []string
	IsEdit     bool
	ItemID     string
}

// fieldsFromRequest collects the raw form inputs for validation.
func fieldsFromRequest(r *http.Request) form.Fields {
	return form.Fields{
		SKU:            r.FormValue("sku"),
		Name:           r.FormValue("item_name"),
		Quantity:       r.FormValue("quantity_counted"),
		Unit:           r.FormValue("unit_of_measure"),
		Location:       r.FormValue("location_in_warehouse"),
		Category:       r.FormValue("category"),
		CustomCategory: r.FormValue("custom_category"),
		Notes:          r.FormValue("condition_notes"),
		LastCount:      r.FormValue("last_count_date"),
		ReorderLevel:   r.FormValue("reorder_level"),
		Supplier:       r.FormValue("supplier"),
		ImageURL:       r.FormValue("image_url"),
	}
}

// fieldsFromItem pre-populates the form from a stored item. A category
// outside the enumerated set moves into the custom input.
func fieldsFromItem(item model.InventoryItem) form.Fields {
	f := form.Fields{
		SKU:          item.SKU,
		Name:         item.Name,
		Quantity:     strconv.Itoa(item.Quantity),
		Unit:         item.Unit,
		Location:     item.Location,
		Notes:        item.Notes,
		LastCount:    item.LastCount,
		ReorderLevel: strconv.Itoa(item.ReorderLevel),
		Supplier:     item.Supplier,
		ImageURL:     item.ImageURL,
	}

	f.CustomCategory = item.Category
	for _, c := range model.Categories() {
		if c == item.Category {
			f.Category = item.Category
			f.CustomCategory = ""
			break
		}
	}
	return f
}

// ItemNewPage handles GET /items/new.
func (s *Server) ItemNewPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "item_form.html", &formPageData{
		PageData:   PageData{Title: "Add item", User: GetWebClaims(r.Context())},
		Action:     "/items/new",
		Categories: model.Categories(),
	})
}

// ItemCreateSubmit handles POST /items/new.
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	raw := fieldsFromRequest(r)

	fields, errs := form.Validate(raw)
	if len(errs) > 0 {
		s.Templates.Render(w, "item_form.html", &formPageData{
			PageData:   PageData{Title: "Add item", User: claims},
			Action:     "/items/new",
			Fields:     raw,
			Errors:     errs,
			Categories: model.Categories(),
		})
		return
	}

	item, err := s.Repo.Add(r.Context(), fields)
	if err != nil {
		slog.Warn("inventory write failed", "error", err)
		redirectWithNotice(w, r, "warn", "Item added, but saving to storage failed")
		return
	}

	slog.Info("item created", "user", claims.Name, "item", item.Name)
	redirectWithNotice(w, r, "flash", "Item added")
}

// ItemEditPage handles GET /items/{id}/edit.
func (s *Server) ItemEditPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	item, ok := s.Repo.Get(id)
	if !ok {
		redirectWithNotice(w, r, "warn", "Item no longer exists")
		return
	}

	s.Templates.Render(w, "item_form.html", &formPageData{
		PageData:   PageData{Title: "Edit " + item.Name, User: GetWebClaims(r.Context())},
		Action:     "/items/" + id + "/edit",
		Fields:     fieldsFromItem(item),
		Categories: model.Categories(),
		IsEdit:     true,
		ItemID:     id,
	})
}

// ItemUpdateSubmit handles POST /items/{id}/edit.
func (s *Server) ItemUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id := r.PathValue("id")
	raw := fieldsFromRequest(r)

	fields, errs := form.Validate(raw)
	if len(errs) > 0 {
		s.Templates.Render(w, "item_form.html", &formPageData{
			PageData:   PageData{Title: "Edit item", User: claims},
			Action:     "/items/" + id + "/edit",
			Fields:     raw,
			Errors:     errs,
			Categories: model.Categories(),
			IsEdit:     true,
			ItemID:     id,
		})
		return
	}

	item, err := s.Repo.Update(r.Context(), id, fields)
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		// Edit target vanished; never crash the view.
		redirectWithNotice(w, r, "warn", "Item no longer exists")
	case err != nil:
		// Updated in memory, write failed.
		slog.Warn("inventory write failed", "error", err)
		redirectWithNotice(w, r, "warn", "Item updated, but saving to storage failed")
	default:
		slog.Info("item updated", "user", claims.Name, "item", item.Name)
		redirectWithNotice(w, r, "flash", "Item updated")
	}
}

// ItemDeletePage handles GET /items/{id}/delete: the confirmation step.
func (s *Server) ItemDeletePage(w http.ResponseWriter, r *http.Request) {
	item, ok := s.Repo.Get(r.PathValue("id"))
	if !ok {
		redirectWithNotice(w, r, "warn", "Item no longer exists")
		return
	}

	s.Templates.Render(w, "item_delete.html", &struct {
		PageData
		Item model.InventoryItem
	}{
		PageData: PageData{Title: "Delete " + item.Name, User: GetWebClaims(r.Context())},
		Item:     item,
	})
}

// ItemDeleteSubmit handles POST /items/{id}/delete. Deletion is
// permanent, immediate, and idempotent.
func (s *Server) ItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id := r.PathValue("id")

	if err := s.Repo.Remove(r.Context(), id); err != nil {
		slog.Warn("inventory write failed", "error", err)
		redirectWithNotice(w, r, "warn", "Item deleted, but saving to storage failed")
		return
	}

	slog.Info("item deleted", "user", claims.Name, "id", id)
	redirectWithNotice(w, r, "flash", "Item deleted")
}

// ItemPhotoSubmit handles POST /items/{id}/photo.
func (s *Server) ItemPhotoSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

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

	photo, err := imaging.ProcessPhoto(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.Repo.SetPhoto(r.Context(), id, photo.Data, photo.MIME); err != nil {
		slog.Error("failed to save photo", "error", err)
		redirectWithNotice(w, r, "warn", "Saving the photo failed")
		return
	}

	http.Redirect(w, r, "/items/"+id+"/edit", http.StatusSeeOther)
}

// ItemPhotoGet handles GET /items/{id}/photo.
func (s *Server) ItemPhotoGet(w http.ResponseWriter, r *http.Request) {
	data, mime, err := s.Repo.Photo(r.Context(), r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get photo", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
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

// redirectWithNotice sends the user back to the item table with a
// dismissible notice (flash for success, warn for degraded outcomes).
func redirectWithNotice(w http.ResponseWriter, r *http.Request, kind, message string) {
	http.Redirect(w, r, "/items?"+kind+"="+url.QueryEscape(message), http.StatusSeeOther)
}
