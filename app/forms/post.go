package forms

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize bounds an uploaded post image.
const MaxImageSize = 5 << 20

// InvalidChoice is reported for a group that is malformed or does not exist.
const InvalidChoice = "Выберите корректный вариант. Вашего варианта нет среди допустимых значений."

const badImage = "Загрузите правильное изображение. Файл, который вы загрузили, поврежден или не является изображением."

// imageTypes are the raster formats accepted for a post image. Anything
// else, SVG included, is served back from our origin and must not be stored.
var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Upload is a file received with a form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PostForm is the create/edit form of a post.
type PostForm struct {
	Text    string  `form:"text" validate:"required,notblank"`
	Group   string  `form:"group" validate:"-"`
	Image   *Upload `form:"-" validate:"-"`
	GroupID *int    `form:"-" validate:"-"`
}

// ParsePostForm reads a post form from a urlencoded or multipart request.
func ParsePostForm(r *http.Request) (*PostForm, error) {
	if err := parse(r); err != nil {
		return nil, err
	}
	form := &PostForm{
		Text:  r.PostFormValue("text"),
		Group: strings.TrimSpace(r.PostFormValue("group")),
	}
	if r.MultipartForm == nil {
		return form, nil
	}
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return form, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	defer file.Close()
	form.Image, err = readUpload(file, header)
	if err != nil {
		return nil, err
	}
	return form, nil
}

func readUpload(file multipart.File, header *multipart.FileHeader) (*Upload, error) {
	data, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return &Upload{
		Filename:    header.Filename,
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}, nil
}

// Validate checks the form and fills GroupID. It returns Errors on failure.
func (f *PostForm) Validate() error {
	errs := check(f)

	f.GroupID = nil
	if f.Group != "" {
		id, err := strconv.Atoi(f.Group)
		if err != nil || id <= 0 {
			errs["group"] = InvalidChoice
		} else {
			f.GroupID = &id
		}
	}

	if f.Image != nil && len(f.Image.Data) == 0 {
		f.Image = nil
	}
	if f.Image != nil {
		switch {
		case len(f.Image.Data) > MaxImageSize:
			errs["image"] = "Размер файла превышает допустимый."
		case !imageTypes[f.Image.ContentType]:
			errs["image"] = badImage
		}
	}
	return errs.orNil()
}

// SelectedGroup reports whether the group with id is chosen, for templates.
func (f *PostForm) SelectedGroup(id int) bool {
	return f != nil && f.Group == strconv.Itoa(id)
}

// parse handles both multipart and urlencoded bodies.
func parse(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(MaxImageSize * 2); err != nil {
			return fmt.Errorf("failed to parse form: %w", err)
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("failed to parse form: %w", err)
	}
	return nil
}
