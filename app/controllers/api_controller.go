package controllers

import (
	"net/http"

	"yatube/app/logging"
	"yatube/app/models"
	"yatube/app/services"
	"yatube/app/views"

	"github.com/gorilla/mux"
)

// APIController serves read-only JSON views of the listings.
type APIController struct {
	base
	posts *services.PostService
}

func NewAPIController(render *views.Renderer, log logging.Logger, posts *services.PostService) *APIController {
	return &APIController{base: base{render: render, log: log}, posts: posts}
}

type pageResponse struct {
	Posts    []*models.Post `json:"posts"`
	Page     int            `json:"page"`
	NumPages int            `json:"num_pages"`
	Count    int            `json:"count"`
}

func newPageResponse(p *services.Page[*models.Post]) pageResponse {
	return pageResponse{Posts: p.Items, Page: p.Number, NumPages: p.NumPages, Count: p.Total}
}

// Index handles listing all posts
func (ac *APIController) Index(w http.ResponseWriter, r *http.Request) {
	page, err := ac.posts.Index(r.Context(), pageNumber(r))
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	ac.sendJSON(w, newPageResponse(page))
}

// Show handles displaying a single post
func (ac *APIController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ac.sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}
	post, err := ac.posts.Get(r.Context(), id)
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	ac.sendJSON(w, post)
}

func (ac *APIController) GroupPosts(w http.ResponseWriter, r *http.Request) {
	_, page, err := ac.posts.GroupPage(r.Context(), mux.Vars(r)["slug"], pageNumber(r))
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	ac.sendJSON(w, newPageResponse(page))
}

func (ac *APIController) ProfilePosts(w http.ResponseWriter, r *http.Request) {
	_, page, err := ac.posts.ProfilePage(r.Context(), mux.Vars(r)["username"], pageNumber(r))
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	ac.sendJSON(w, newPageResponse(page))
}
