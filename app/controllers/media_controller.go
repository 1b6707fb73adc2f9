package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"yatube/app/logging"
	"yatube/app/media"
	"yatube/app/views"

	"github.com/gorilla/mux"
)

// MediaController serves uploaded images.
type MediaController struct {
	base
	store media.Store
}

func NewMediaController(render *views.Renderer, log logging.Logger, store media.Store) *MediaController {
	return &MediaController{base: base{render: render, log: log}, store: store}
}

func (mc *MediaController) Serve(w http.ResponseWriter, r *http.Request) {
	if mc.store == nil {
		mc.NotFound(w, r)
		return
	}
	obj, err := mc.store.Get(r.Context(), mux.Vars(r)["key"])
	if errors.Is(err, media.ErrNotFound) {
		mc.NotFound(w, r)
		return
	}
	if err != nil {
		mc.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Length", strconv.Itoa(len(obj.Data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(obj.Data)
}
