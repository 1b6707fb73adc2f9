package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"yatube/app/logging"
	"yatube/app/repositories"
	"yatube/app/views"

	"github.com/gorilla/mux"
)

// base carries what every controller needs to answer a request.
type base struct {
	render *views.Renderer
	log    logging.Logger
}

// page renders a template, falling back to a plain 500 if rendering fails.
func (b *base) page(w http.ResponseWriter, r *http.Request, status int, name string, data views.Data) {
	if err := b.render.Render(w, r, status, name, data); err != nil {
		b.log.Error(r.Context(), "render failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// NotFound renders core/404.html.
func (b *base) NotFound(w http.ResponseWriter, r *http.Request) {
	if isAPI(r) {
		b.sendError(w, r, "Not found", http.StatusNotFound)
		return
	}
	b.page(w, r, http.StatusNotFound, "core/404.html", nil)
}

// ServerError renders core/500.html.
func (b *base) ServerError(w http.ResponseWriter, r *http.Request) {
	if isAPI(r) {
		b.sendError(w, r, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	b.page(w, r, http.StatusInternalServerError, "core/500.html", nil)
}

// fail answers with 404 for missing records and logs anything else as a 500.
func (b *base) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		b.NotFound(w, r)
		return
	}
	b.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	b.ServerError(w, r)
}

// Helper methods for consistent response handling

func (b *base) sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (b *base) sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if isAPI(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
	} else {
		http.Error(w, message, status)
	}
}

func isAPI(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json" || strings.HasPrefix(r.URL.Path, "/api")
}

// pathID reads the numeric route variable name.
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	return id, err == nil && id > 0
}

// safeNext returns next if it is a local path, otherwise fallback.
func safeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return fallback
	}
	return next
}
