// Package forms parses and validates the HTML forms the site accepts.
package forms

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"yatube/app/models"

	"github.com/go-playground/validator/v10"
)

// Errors maps a form field name to its error message. The empty key holds
// errors that belong to the whole form.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" {
			parts = append(parts, e[k])
			continue
		}
		parts = append(parts, k+": "+e[k])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Get returns the message for field, for use in templates.
func (e Errors) Get(field string) string {
	return e[field]
}

// AsErrors extracts form errors from err.
func AsErrors(err error) (Errors, bool) {
	var fe Errors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := models.NewValidator()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var messages = map[string]string{
	"required": "Обязательное поле.",
	"notblank": "Обязательное поле.",
	"max":      "Слишком длинное значение.",
	"min":      "Слишком короткое значение.",
	"username": "Допустимы только буквы, цифры и символы @/./+/-/_.",
	"eqfield":  "Пароли не совпадают.",
}

// check validates form and converts the failures to Errors.
func check(form any) Errors {
	errs := Errors{}
	err := validate.Struct(form)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs[""] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "Некорректное значение."
		}
		errs[fe.Field()] = msg
	}
	return errs
}

func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
