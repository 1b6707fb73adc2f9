package services

import (
	"testing"

	"yatube/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService(t *testing.T) {
	f := newFixture(t)
	reader := f.user(t, "reader")
	author := f.user(t, "author")

	count := func() int {
		followers, _, err := f.follows.Counts(f.ctx, author)
		require.NoError(t, err)
		return followers
	}

	t.Run("follow adds one edge", func(t *testing.T) {
		_, err := f.follows.Follow(f.ctx, reader, "author")
		require.NoError(t, err)
		assert.Equal(t, 1, count())

		ok, err := f.follows.IsFollowing(f.ctx, reader, author)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("second follow is a no-op", func(t *testing.T) {
		_, err := f.follows.Follow(f.ctx, reader, "author")
		require.NoError(t, err)
		assert.Equal(t, 1, count())
	})

	t.Run("self follow is rejected", func(t *testing.T) {
		_, err := f.follows.Follow(f.ctx, author, "author")
		assert.ErrorIs(t, err, ErrSelfFollow)
		_, following, err := f.follows.Counts(f.ctx, author)
		require.NoError(t, err)
		assert.Zero(t, following)
	})

	t.Run("unknown author", func(t *testing.T) {
		_, err := f.follows.Follow(f.ctx, reader, "ghost")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("unfollow removes the edge", func(t *testing.T) {
		_, err := f.follows.Unfollow(f.ctx, reader, "author")
		require.NoError(t, err)
		assert.Equal(t, 0, count())

		_, err = f.follows.Unfollow(f.ctx, reader, "author")
		require.NoError(t, err)
		assert.Equal(t, 0, count())
	})

	t.Run("anonymous follows nobody", func(t *testing.T) {
		ok, err := f.follows.IsFollowing(f.ctx, nil, author)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
