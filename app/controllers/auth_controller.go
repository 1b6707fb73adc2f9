package controllers

import (
	"errors"
	"net/http"

	"yatube/app/auth"
	"yatube/app/forms"
	"yatube/app/logging"
	"yatube/app/services"
	"yatube/app/views"
)

// AuthController handles signup, login and logout.
type AuthController struct {
	base
	users    *services.UserService
	sessions *auth.SessionManager
}

func NewAuthController(render *views.Renderer, log logging.Logger, users *services.UserService, sessions *auth.SessionManager) *AuthController {
	return &AuthController{base: base{render: render, log: log}, users: users, sessions: sessions}
}

func (ac *AuthController) SignupForm(w http.ResponseWriter, r *http.Request) {
	ac.page(w, r, http.StatusOK, "users/signup.html", views.Data{"Form": &forms.SignupForm{}})
}

func (ac *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	form, err := forms.ParseSignupForm(r)
	if err != nil {
		ac.sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}
	user, err := ac.users.Register(r.Context(), form)
	if err != nil {
		if errs, ok := forms.AsErrors(err); ok {
			ac.page(w, r, http.StatusOK, "users/signup.html", views.Data{"Form": form, "Errors": errs})
			return
		}
		ac.fail(w, r, err)
		return
	}
	if err := ac.sessions.Issue(w, user); err != nil {
		ac.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (ac *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	ac.page(w, r, http.StatusOK, "users/login.html", views.Data{
		"Form": &forms.LoginForm{},
		"Next": r.URL.Query().Get("next"),
	})
}

func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	form, err := forms.ParseLoginForm(r)
	if err != nil {
		ac.sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}
	rerender := func(errs forms.Errors) {
		ac.page(w, r, http.StatusOK, "users/login.html", views.Data{"Form": form, "Errors": errs, "Next": form.Next})
	}
	if err := form.Validate(); err != nil {
		errs, _ := forms.AsErrors(err)
		rerender(errs)
		return
	}

	user, err := ac.users.Authenticate(r.Context(), form.Username, form.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		rerender(forms.Errors{"": "Пожалуйста, введите правильные имя пользователя и пароль."})
		return
	}
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	if err := ac.sessions.Issue(w, user); err != nil {
		ac.fail(w, r, err)
		return
	}
	http.Redirect(w, r, safeNext(form.Next, "/"), http.StatusFound)
}

func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	ac.sessions.Clear(w)
	// The page is rendered for an anonymous viewer even though this request was authenticated.
	ac.page(w, r.WithContext(auth.WithUser(r.Context(), nil)), http.StatusOK, "users/logged_out.html", nil)
}
