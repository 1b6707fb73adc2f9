package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"yatube/app/auth"
	"yatube/app/forms"
	"yatube/app/logging"
	"yatube/app/models"
	"yatube/app/services"
	"yatube/app/views"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for posts and listings
type PostController struct {
	base
	posts   *services.PostService
	groups  *services.GroupService
	follows *services.FollowService
}

// NewPostController creates a new PostController
func NewPostController(render *views.Renderer, log logging.Logger, posts *services.PostService,
	groups *services.GroupService, follows *services.FollowService) *PostController {
	return &PostController{
		base:    base{render: render, log: log},
		posts:   posts,
		groups:  groups,
		follows: follows,
	}
}

func pageNumber(r *http.Request) int {
	return services.ParsePage(r.URL.Query().Get("page"))
}

// Index lists every post, newest first.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page, err := pc.posts.Index(r.Context(), pageNumber(r))
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	pc.page(w, r, http.StatusOK, "posts/index.html", views.Data{"Page": page})
}

// GroupPosts lists the posts of one group.
func (pc *PostController) GroupPosts(w http.ResponseWriter, r *http.Request) {
	group, page, err := pc.posts.GroupPage(r.Context(), mux.Vars(r)["slug"], pageNumber(r))
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	pc.page(w, r, http.StatusOK, "posts/group_list.html", views.Data{"Group": group, "Page": page})
}

// Profile lists the posts of one author.
func (pc *PostController) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	author, page, err := pc.posts.ProfilePage(ctx, mux.Vars(r)["username"], pageNumber(r))
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	viewer, _ := auth.UserFromContext(ctx)
	following, err := pc.follows.IsFollowing(ctx, viewer, author)
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	followers, followingCount, err := pc.follows.Counts(ctx, author)
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	pc.page(w, r, http.StatusOK, "posts/profile.html", views.Data{
		"Author":         author,
		"Page":           page,
		"Following":      following,
		"Followers":      followers,
		"FollowingCount": followingCount,
		"IsOwner":        viewer != nil && viewer.ID == author.ID,
	})
}

// FollowIndex lists posts by the authors the viewer follows.
func (pc *PostController) FollowIndex(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	page, err := pc.posts.FollowPage(r.Context(), user, pageNumber(r))
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	pc.page(w, r, http.StatusOK, "posts/follow.html", views.Data{"Page": page})
}

// Detail shows one post with its comments.
func (pc *PostController) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		pc.NotFound(w, r)
		return
	}
	post, err := pc.posts.Get(r.Context(), id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	count, err := pc.posts.CountByAuthor(r.Context(), post.AuthorID)
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	viewer, _ := auth.UserFromContext(r.Context())
	pc.page(w, r, http.StatusOK, "posts/post_detail.html", views.Data{
		"Post":             post,
		"AuthorPostsCount": count,
		"IsAuthor":         post.IsAuthor(viewer),
	})
}

// renderForm shows the create/edit form.
func (pc *PostController) renderForm(w http.ResponseWriter, r *http.Request, form *forms.PostForm, errs forms.Errors, post *models.Post) {
	groups, err := pc.groups.List(r.Context())
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	data := views.Data{
		"Form":   form,
		"Errors": errs,
		"Groups": groups,
		"Fields": models.PostFields,
		"IsEdit": post != nil,
	}
	if post != nil {
		data["PostID"] = post.ID
		data["Image"] = post.Image
	}
	pc.page(w, r, http.StatusOK, "posts/post_create.html", data)
}

// New displays the form for creating a new post
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	pc.renderForm(w, r, &forms.PostForm{}, nil, nil)
}

// Create stores a post from the submitted form and sends the author to their profile.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	form, err := forms.ParsePostForm(r)
	if err != nil {
		pc.sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := pc.posts.Create(r.Context(), user, form); err != nil {
		if errs, ok := forms.AsErrors(err); ok {
			pc.renderForm(w, r, form, errs, nil)
			return
		}
		pc.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/profile/"+user.Username+"/", http.StatusFound)
}

// EditForm shows the edit form to the author; everyone else goes back to the post.
func (pc *PostController) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		pc.NotFound(w, r)
		return
	}
	post, err := pc.posts.Get(r.Context(), id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	user, _ := auth.UserFromContext(r.Context())
	if !post.IsAuthor(user) {
		http.Redirect(w, r, detailURL(id), http.StatusFound)
		return
	}
	form := &forms.PostForm{Text: post.Text}
	if post.GroupID != nil {
		form.Group = strconv.Itoa(*post.GroupID)
	}
	pc.renderForm(w, r, form, nil, post)
}

// Edit applies the submitted form to the post.
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		pc.NotFound(w, r)
		return
	}
	user, _ := auth.UserFromContext(r.Context())
	current, err := pc.posts.Get(r.Context(), id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	// Strangers are turned away before their upload is read.
	if !current.IsAuthor(user) {
		http.Redirect(w, r, detailURL(id), http.StatusFound)
		return
	}
	form, err := forms.ParsePostForm(r)
	if err != nil {
		pc.sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := pc.posts.Update(r.Context(), user, id, form)
	switch {
	case err == nil:
		http.Redirect(w, r, detailURL(post.ID), http.StatusFound)
	case errors.Is(err, services.ErrPermissionDenied):
		http.Redirect(w, r, detailURL(id), http.StatusFound)
	default:
		if errs, ok := forms.AsErrors(err); ok {
			pc.renderForm(w, r, form, errs, current)
			return
		}
		pc.fail(w, r, err)
	}
}

// Delete removes the post when the author asks for it.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		pc.NotFound(w, r)
		return
	}
	user, _ := auth.UserFromContext(r.Context())
	err := pc.posts.Delete(r.Context(), user, id)
	switch {
	case err == nil:
		http.Redirect(w, r, "/profile/"+user.Username+"/", http.StatusFound)
	case errors.Is(err, services.ErrPermissionDenied):
		http.Redirect(w, r, detailURL(id), http.StatusFound)
	default:
		pc.fail(w, r, err)
	}
}

func detailURL(id int) string {
	return "/posts/" + strconv.Itoa(id) + "/"
}
