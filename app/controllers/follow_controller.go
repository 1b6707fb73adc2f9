package controllers

import (
	"errors"
	"net/http"

	"yatube/app/auth"
	"yatube/app/logging"
	"yatube/app/services"
	"yatube/app/views"

	"github.com/gorilla/mux"
)

// FollowController subscribes and unsubscribes the viewer.
type FollowController struct {
	base
	follows *services.FollowService
}

func NewFollowController(render *views.Renderer, log logging.Logger, follows *services.FollowService) *FollowController {
	return &FollowController{base: base{render: render, log: log}, follows: follows}
}

func (fc *FollowController) Follow(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	username := mux.Vars(r)["username"]
	_, err := fc.follows.Follow(r.Context(), user, username)
	if err != nil && !errors.Is(err, services.ErrSelfFollow) {
		fc.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/profile/"+username+"/", http.StatusFound)
}

func (fc *FollowController) Unfollow(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	username := mux.Vars(r)["username"]
	if _, err := fc.follows.Unfollow(r.Context(), user, username); err != nil {
		fc.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/profile/"+username+"/", http.StatusFound)
}
