package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostValidation(t *testing.T) {
	groupID := 3
	tests := []struct {
		name    string
		post    *Post
		wantErr bool
	}{
		{
			name: "valid post",
			post: &Post{
				ID:       1,
				Text:     "Тестовый текст",
				AuthorID: 1,
				PubDate:  time.Now(),
			},
			wantErr: false,
		},
		{
			name: "valid post in group",
			post: &Post{
				ID:       1,
				Text:     "Тестовый текст",
				AuthorID: 1,
				GroupID:  &groupID,
				PubDate:  time.Now(),
			},
			wantErr: false,
		},
		{
			name: "empty text",
			post: &Post{
				ID:       1,
				Text:     "",
				AuthorID: 1,
				PubDate:  time.Now(),
			},
			wantErr: true,
		},
		{
			name: "blank text",
			post: &Post{
				ID:       1,
				Text:     "   \n\t",
				AuthorID: 1,
				PubDate:  time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing author",
			post: &Post{
				ID:      1,
				Text:    "Тестовый текст",
				PubDate: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero pub date",
			post: &Post{
				ID:       1,
				Text:     "Тестовый текст",
				AuthorID: 1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	post := &Post{Text: "Test Post", AuthorID: 1}

	assert.True(t, post.PubDate.IsZero())
	post.BeforeCreate()
	assert.False(t, post.PubDate.IsZero())

	stamped := post.PubDate
	post.BeforeCreate()
	assert.Equal(t, stamped, post.PubDate)
}

func TestPostString(t *testing.T) {
	post := &Post{Text: "Тестовый текст больше 15 символов для проверки"}
	assert.Equal(t, "Тестовый текст ", post.String())

	short := &Post{Text: "коротко"}
	assert.Equal(t, "коротко", short.String())
}

func TestPostFieldMeta(t *testing.T) {
	verbose := map[string]string{
		"text":     "Текст поста",
		"pub_date": "Дата публикации",
		"author":   "Автор",
		"group":    "Группа",
	}
	for field, expected := range verbose {
		t.Run(field, func(t *testing.T) {
			assert.Equal(t, expected, PostFields[field].VerboseName)
		})
	}

	assert.Equal(t, "Введите текст поста", PostFields["text"].HelpText)
	assert.Equal(t, "Выберите группу", PostFields["group"].HelpText)
}

func TestPostRelations(t *testing.T) {
	post := &Post{ID: 7, Text: "Test"}

	t.Run("set author", func(t *testing.T) {
		user := &User{ID: 2, Username: "author"}
		assert.NoError(t, post.SetAuthor(user))
		assert.Equal(t, 2, post.AuthorID)
		assert.True(t, post.IsAuthor(user))
		assert.False(t, post.IsAuthor(&User{ID: 3}))
		assert.False(t, post.IsAuthor(nil))
	})

	t.Run("set nil author", func(t *testing.T) {
		assert.Error(t, post.SetAuthor(nil))
	})

	t.Run("set and clear group", func(t *testing.T) {
		post.SetGroup(&Group{ID: 4, Title: "g"})
		assert.True(t, post.InGroup(4))
		assert.False(t, post.InGroup(5))

		post.SetGroup(nil)
		assert.Nil(t, post.GroupID)
		assert.False(t, post.InGroup(4))
	})

	t.Run("add comment", func(t *testing.T) {
		comment := &Comment{ID: 1, Text: "hi"}
		assert.NoError(t, post.AddComment(comment))
		assert.Equal(t, 7, comment.PostID)
		assert.Len(t, post.Comments, 1)
		assert.Error(t, post.AddComment(nil))
	})

	t.Run("detached drops relations", func(t *testing.T) {
		post.SetGroup(&Group{ID: 4})
		d := post.Detached()
		assert.Nil(t, d.Author)
		assert.Nil(t, d.Group)
		assert.Nil(t, d.Comments)
		assert.Equal(t, 4, *d.GroupID)
		*d.GroupID = 9
		assert.Equal(t, 4, *post.GroupID)
	})
}
