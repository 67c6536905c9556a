package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"stocktake/internal/form"
	"stocktake/internal/imaging"
	"stocktake/internal/inventory"
	"stocktake/internal/model"
	"stocktake/internal/query"
)

// ItemsHandler handles item endpoints.
type ItemsHandler struct {
	Repo *inventory.Repository
}

// itemRequest is the create/update body. Quantities arrive as JSON
// numbers; they are funneled through the shared form validator so API
// and page submissions enforce identical rules.
type itemRequest struct {
	SKU            string `json:"sku"`
	Name           string `json:"item_name"`
	Quantity       int    `json:"quantity_counted"`
	Unit           string `json:"unit_of_measure"`
	Location       string `json:"location_in_warehouse"`
	Category       string `json:"category"`
	CustomCategory string `json:"custom_category"`
	Notes          string `json:"condition_notes"`
	LastCount      string `json:"last_count_date"`
	ReorderLevel   int    `json:"reorder_level"`
	Supplier       string `json:"supplier"`
	ImageURL       string `json:"image_url"`
}

func (req itemRequest) fields() form.Fields {
	return form.Fields{
		SKU:            req.SKU,
		Name:           req.Name,
		Quantity:       strconv.Itoa(req.Quantity),
		Unit:           req.Unit,
		Location:       req.Location,
		Category:       req.Category,
		CustomCategory: req.CustomCategory,
		Notes:          req.Notes,
		LastCount:      req.LastCount,
		ReorderLevel:   strconv.Itoa(req.ReorderLevel),
		Supplier:       req.Supplier,
		ImageURL:       req.ImageURL,
	}
}

// List handles GET /api/items. Supports q (free-text search), sort
// (field name), and dir (asc/desc).
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	s := query.Sort{
		Field:      query.ParseField(params.Get("sort")),
		Descending: params.Get("dir") == "desc",
	}

	items := query.Apply(h.Repo.List(), params.Get("q"), s)
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields, errs := form.Validate(req.fields())
	if len(errs) > 0 {
		jsonResponse(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		return
	}

	item, err := h.Repo.Add(r.Context(), fields)
	if err != nil {
		// The item is in memory even when the write failed; report the
		// degraded state but return the item.
		slog.Warn("inventory write failed", "error", err)
	}

	claims := GetClaims(r.Context())
	slog.Info("item created", "user", claims.Name, "item", item.Name)
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, ok := h.Repo.Get(r.PathValue("id"))
	if !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields, errs := form.Validate(req.fields())
	if len(errs) > 0 {
		jsonResponse(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		return
	}

	item, err := h.Repo.Update(r.Context(), r.PathValue("id"), fields)
	if errors.Is(err, inventory.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		slog.Warn("inventory write failed", "error", err)
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}. Deletion is idempotent: an
// absent id still answers 200.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Remove(r.Context(), r.PathValue("id")); err != nil {
		slog.Warn("inventory write failed", "error", err)
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// Alerts handles GET /api/alerts: the current low-stock items.
func (h *ItemsHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	low := h.Repo.LowStock()
	if low == nil {
		low = []model.InventoryItem{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"count": len(low),
		"items": low,
	})
}

// UploadPhoto handles PUT /api/items/{id}/photo.
func (h *ItemsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	photo, err := imaging.ProcessPhoto(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.Repo.SetPhoto(r.Context(), id, photo.Data, photo.MIME)
	if errors.Is(err, inventory.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"message": "photo uploaded",
		"width":   photo.Width,
		"height":  photo.Height,
	})
}

// GetPhoto handles GET /api/items/{id}/photo.
func (h *ItemsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	data, mime, err := h.Repo.Photo(r.Context(), r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get photo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
