package controllers

import (
	"net/http"

	"yatube/app/logging"
	"yatube/app/views"
)

// AboutController serves the static about pages.
type AboutController struct {
	base
}

func NewAboutController(render *views.Renderer, log logging.Logger) *AboutController {
	return &AboutController{base: base{render: render, log: log}}
}

func (ac *AboutController) Author(w http.ResponseWriter, r *http.Request) {
	ac.page(w, r, http.StatusOK, "about/author.html", nil)
}

func (ac *AboutController) Tech(w http.ResponseWriter, r *http.Request) {
	ac.page(w, r, http.StatusOK, "about/tech.html", nil)
}
