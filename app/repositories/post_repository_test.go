package repositories

import (
	"context"
	"testing"
	"time"

	"yatube/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	store := NewBadgerStore(db)
	repo := store.Posts

	groupA := &models.Group{Title: "A", Slug: "a", Description: "a"}
	groupB := &models.Group{Title: "B", Slug: "b", Description: "b"}
	require.NoError(t, store.Groups.Create(ctx, groupA))
	require.NoError(t, store.Groups.Create(ctx, groupB))

	t.Run("create and get post", func(t *testing.T) {
		post := &models.Post{Text: "Тестовый текст", AuthorID: 1, Author: &models.User{ID: 1}}
		post.SetGroup(groupA)

		require.NoError(t, repo.Create(ctx, post))
		assert.Greater(t, post.ID, 0)
		assert.False(t, post.PubDate.IsZero())

		retrieved, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.Text, retrieved.Text)
		assert.True(t, retrieved.InGroup(groupA.ID))
		assert.Nil(t, retrieved.Author, "relations are not persisted")
	})

	t.Run("get missing post", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update post", func(t *testing.T) {
		post := &models.Post{Text: "Original", AuthorID: 1}
		require.NoError(t, repo.Create(ctx, post))

		post.Text = "Отредактированный текст"
		post.SetGroup(groupB)
		require.NoError(t, repo.Update(ctx, post))

		updated, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Отредактированный текст", updated.Text)
		assert.True(t, updated.InGroup(groupB.ID))
		assert.True(t, post.PubDate.Equal(updated.PubDate))
	})

	t.Run("update missing post", func(t *testing.T) {
		err := repo.Update(ctx, &models.Post{ID: 999, Text: "x", AuthorID: 1})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete post removes comments", func(t *testing.T) {
		post := &models.Post{Text: "To delete", AuthorID: 1}
		require.NoError(t, repo.Create(ctx, post))
		require.NoError(t, store.Comments.Create(ctx, &models.Comment{PostID: post.ID, AuthorID: 2, Text: "c"}))

		require.NoError(t, repo.Delete(ctx, post.ID))

		_, err := repo.GetByID(ctx, post.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		count, err := store.Comments.CountByPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		assert.ErrorIs(t, repo.Delete(ctx, post.ID), ErrNotFound)
	})
}

func TestPostRepositoryListing(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)

	groupID := 1
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 13; i++ {
		post := &models.Post{Text: "Пост", AuthorID: 1 + i%2, PubDate: base.Add(time.Duration(i) * time.Hour)}
		if i%3 == 0 {
			post.GroupID = &groupID
		}
		require.NoError(t, repo.Create(ctx, post))
	}

	t.Run("pages newest first", func(t *testing.T) {
		first, err := repo.List(ctx, PostFilter{}, 10, 0)
		require.NoError(t, err)
		assert.Len(t, first, 10)
		assert.Equal(t, 13, first[0].ID)
		for i := 1; i < len(first); i++ {
			assert.True(t, first[i-1].PubDate.After(first[i].PubDate))
		}

		second, err := repo.List(ctx, PostFilter{}, 10, 10)
		require.NoError(t, err)
		assert.Len(t, second, 3)
		assert.Equal(t, 1, second[2].ID)
	})

	t.Run("count with filters", func(t *testing.T) {
		total, err := repo.Count(ctx, PostFilter{})
		require.NoError(t, err)
		assert.Equal(t, 13, total)

		byAuthor, err := repo.Count(ctx, PostFilter{AuthorID: 1})
		require.NoError(t, err)
		assert.Equal(t, 7, byAuthor)

		byGroup, err := repo.Count(ctx, PostFilter{GroupID: groupID})
		require.NoError(t, err)
		assert.Equal(t, 5, byGroup)

		none, err := repo.Count(ctx, PostFilter{ByAuthors: true})
		require.NoError(t, err)
		assert.Equal(t, 0, none)
	})

	t.Run("group listing holds only group posts", func(t *testing.T) {
		posts, err := repo.List(ctx, PostFilter{GroupID: groupID}, 100, 0)
		require.NoError(t, err)
		for _, post := range posts {
			assert.True(t, post.InGroup(groupID))
		}
	})
}
