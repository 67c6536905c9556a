package web

import (
	"net/http"

	"stocktake/internal/model"
)

// Dashboard handles GET /.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	items := s.Repo.List()
	low := s.Repo.LowStock()

	totalUnits := 0
	categories := make(map[string]bool)
	for _, item := range items {
		totalUnits += item.Quantity
		categories[item.Category] = true
	}

	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		ItemCount     int
		TotalUnits    int
		LowStockCount int
		CategoryCount int
		LowStock      []model.InventoryItem
	}{
		PageData:      PageData{Title: "Dashboard", User: claims},
		ItemCount:     len(items),
		TotalUnits:    totalUnits,
		LowStockCount: len(low),
		CategoryCount: len(categories),
		LowStock:      low,
	})
}
