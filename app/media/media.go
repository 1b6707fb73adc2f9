// Package media stores uploaded post images.
package media

import (
	"context"
	"errors"
	"path"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no object is stored under a key.
var ErrNotFound = errors.New("media not found")

// Object is a stored file together with its content type.
type Object struct {
	ContentType string
	Data        []byte
}

// Store keeps uploaded files addressed by key.
type Store interface {
	Put(ctx context.Context, key string, obj *Object) error
	Get(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// NewKey returns a unique key for an upload named filename, under posts/.
func NewKey(filename string) string {
	name := unsafeChars.ReplaceAllString(path.Base(strings.ReplaceAll(filename, `\`, "/")), "_")
	if name == "" || name == "." || name == "/" {
		name = "upload"
	}
	return "posts/" + uuid.NewString() + "-" + name
}

// Save stores data under a fresh key and returns it. The content type is
// sniffed from the bytes.
func Save(ctx context.Context, s Store, filename string, data []byte) (string, error) {
	key := NewKey(filename)
	obj := &Object{ContentType: mimetype.Detect(data).String(), Data: data}
	if err := s.Put(ctx, key, obj); err != nil {
		return "", err
	}
	return key, nil
}
