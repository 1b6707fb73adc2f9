package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGroupValidation(t *testing.T) {
	tests := []struct {
		name    string
		group   *Group
		wantErr bool
	}{
		{"valid group", &Group{Title: "Тестовая группа", Slug: "test-slug", Description: "Тестовое описание"}, false},
		{"empty slug", &Group{Title: "Тестовая группа", Description: "Тестовое описание"}, true},
		{"slug with spaces", &Group{Title: "Тестовая группа", Slug: "Тестовый слаг", Description: "d"}, true},
		{"blank title", &Group{Title: " ", Slug: "s", Description: "d"}, true},
		{"empty description", &Group{Title: "t", Slug: "s"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.group.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGroupString(t *testing.T) {
	group := &Group{Title: "Тестовая группа"}
	assert.Equal(t, "Тестовая группа", group.String())
}

func TestUserValidation(t *testing.T) {
	now := time.Now()
	assert.NoError(t, (&User{Username: "auth", PasswordHash: "x", CreatedAt: now}).Validate())
	assert.Error(t, (&User{Username: "", PasswordHash: "x", CreatedAt: now}).Validate())
	assert.Error(t, (&User{Username: "has space", PasswordHash: "x", CreatedAt: now}).Validate())
	assert.Error(t, (&User{Username: "auth", CreatedAt: now}).Validate())
}

func TestUserNames(t *testing.T) {
	user := &User{Username: "leo"}
	assert.Equal(t, "leo", user.String())
	assert.Equal(t, "leo", user.FullName())

	user.FirstName, user.LastName = "Лев", "Толстой"
	assert.Equal(t, "Лев Толстой", user.FullName())

	user.BeforeCreate()
	assert.False(t, user.CreatedAt.IsZero())
}

func TestFollowValidation(t *testing.T) {
	assert.NoError(t, (&Follow{UserID: 1, AuthorID: 2}).Validate())
	assert.Error(t, (&Follow{UserID: 1, AuthorID: 1}).Validate())
	assert.Error(t, (&Follow{UserID: 1}).Validate())

	f := &Follow{UserID: 1, AuthorID: 2, User: &User{ID: 1}, Author: &User{ID: 2}}
	d := f.Detached()
	assert.Nil(t, d.User)
	assert.Nil(t, d.Author)
	assert.NotNil(t, f.User)
}
