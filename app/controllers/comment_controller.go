package controllers

import (
	"net/http"

	"yatube/app/auth"
	"yatube/app/forms"
	"yatube/app/logging"
	"yatube/app/services"
	"yatube/app/views"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	base
	comments *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(render *views.Renderer, log logging.Logger, comments *services.CommentService) *CommentController {
	return &CommentController{base: base{render: render, log: log}, comments: comments}
}

// Create adds a comment and returns to the post. Anonymous users and empty
// comments are sent back without changes.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		cc.NotFound(w, r)
		return
	}
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, detailURL(id), http.StatusFound)
		return
	}

	form, err := forms.ParseCommentForm(r)
	if err != nil {
		cc.sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := cc.comments.Add(r.Context(), user, id, form); err != nil {
		if _, invalid := forms.AsErrors(err); !invalid {
			cc.fail(w, r, err)
			return
		}
	}
	http.Redirect(w, r, detailURL(id), http.StatusFound)
}
