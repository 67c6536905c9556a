// Package api is the JSON interface over the inventory repository. It
// mirrors the page operations: list/search/sort, CRUD, low-stock
// alerts, and item photos.
package api

import (
	"net/http"

	"stocktake/internal/inventory"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(repo *inventory.Repository, secret string) http.Handler {
	mux := http.NewServeMux()

	sessionHandler := &SessionHandler{Secret: secret}
	itemsHandler := &ItemsHandler{Repo: repo}

	authMW := AuthMiddleware(secret)

	// Public: open a session.
	mux.HandleFunc("POST /api/session", sessionHandler.Create)

	// Authenticated routes.
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))
	mux.Handle("PUT /api/items/{id}/photo", authMW(http.HandlerFunc(itemsHandler.UploadPhoto)))
	mux.Handle("GET /api/items/{id}/photo", authMW(http.HandlerFunc(itemsHandler.GetPhoto)))
	mux.Handle("GET /api/alerts", authMW(http.HandlerFunc(itemsHandler.Alerts)))

	return mux
}
