package repositories

import (
	"context"
	"testing"

	"yatube/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	posts := NewBadgerPostRepository(db)
	repo := NewBadgerCommentRepository(db)

	post := &models.Post{Text: "Тестовый текст", AuthorID: 1}
	require.NoError(t, posts.Create(ctx, post))
	other := &models.Post{Text: "Другой", AuthorID: 1}
	require.NoError(t, posts.Create(ctx, other))

	t.Run("create comment", func(t *testing.T) {
		comment := &models.Comment{PostID: post.ID, AuthorID: 2, Text: "Тестовый комментарий"}
		require.NoError(t, repo.Create(ctx, comment))
		assert.Equal(t, 1, comment.ID)
		assert.False(t, comment.Created.IsZero())
	})

	t.Run("comment on missing post", func(t *testing.T) {
		err := repo.Create(ctx, &models.Comment{PostID: 999, AuthorID: 2, Text: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list by post newest first", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &models.Comment{PostID: post.ID, AuthorID: 3, Text: "второй"}))
		require.NoError(t, repo.Create(ctx, &models.Comment{PostID: other.ID, AuthorID: 3, Text: "чужой"}))

		comments, err := repo.ListByPost(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "второй", comments[0].Text)
		for _, c := range comments {
			assert.Equal(t, post.ID, c.PostID)
		}

		count, err := repo.CountByPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("empty list", func(t *testing.T) {
		comments, err := repo.ListByPost(ctx, 12345)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}
