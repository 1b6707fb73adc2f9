package forms

import "net/http"

// CommentForm is the form under a post.
type CommentForm struct {
	Text string `form:"text" validate:"required,notblank"`
}

func ParseCommentForm(r *http.Request) (*CommentForm, error) {
	if err := parse(r); err != nil {
		return nil, err
	}
	return &CommentForm{Text: r.PostFormValue("text")}, nil
}

func (f *CommentForm) Validate() error {
	return check(f).orNil()
}

type LoginForm struct {
	Username string `form:"username" validate:"required,notblank"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"-" validate:"-"`
}

func ParseLoginForm(r *http.Request) (*LoginForm, error) {
	if err := parse(r); err != nil {
		return nil, err
	}
	return &LoginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
		Next:     r.FormValue("next"),
	}, nil
}

func (f *LoginForm) Validate() error {
	return check(f).orNil()
}

type SignupForm struct {
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Username  string `form:"username" validate:"required,max=150,username"`
	Password1 string `form:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

func ParseSignupForm(r *http.Request) (*SignupForm, error) {
	if err := parse(r); err != nil {
		return nil, err
	}
	return &SignupForm{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Username:  r.PostFormValue("username"),
		Password1: r.PostFormValue("password1"),
		Password2: r.PostFormValue("password2"),
	}, nil
}

func (f *SignupForm) Validate() error {
	return check(f).orNil()
}
