// Package web serves the HTML pages: dashboard, the sortable item
// table, the add/edit forms, and delete confirmation. Every user intent
// dispatches into the repository, the query engine, or the validator;
// pages re-render from the resulting snapshot.
package web

import (
	"net/http"

	"stocktake/internal/inventory"

	webembed "stocktake/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(repo *inventory.Repository, secret string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Repo:      repo,
		Templates: templates,
		Secret:    secret,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(secret)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Authenticated routes.
	mux.Handle("GET /{$}", cookieAuth(http.HandlerFunc(s.Dashboard)))

	mux.Handle("GET /items", cookieAuth(http.HandlerFunc(s.ItemsPage)))
	mux.Handle("GET /items/new", cookieAuth(http.HandlerFunc(s.ItemNewPage)))
	mux.Handle("POST /items/new", cookieAuth(http.HandlerFunc(s.ItemCreateSubmit)))
	mux.Handle("GET /items/{id}/edit", cookieAuth(http.HandlerFunc(s.ItemEditPage)))
	mux.Handle("POST /items/{id}/edit", cookieAuth(http.HandlerFunc(s.ItemUpdateSubmit)))
	mux.Handle("GET /items/{id}/delete", cookieAuth(http.HandlerFunc(s.ItemDeletePage)))
	mux.Handle("POST /items/{id}/delete", cookieAuth(http.HandlerFunc(s.ItemDeleteSubmit)))
	mux.Handle("POST /items/{id}/photo", cookieAuth(http.HandlerFunc(s.ItemPhotoSubmit)))
	mux.Handle("GET /items/{id}/photo", cookieAuth(http.HandlerFunc(s.ItemPhotoGet)))

	return mux, nil
}
