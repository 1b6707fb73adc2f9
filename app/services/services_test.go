package services

import (
	"context"
	"testing"
	"time"

	"yatube/app/models"
	"yatube/app/repositories"
	"yatube/app/repositories/mock"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	ctx      context.Context
	store    *repositories.Store
	posts    *PostService
	comments *CommentService
	follows  *FollowService
	groups   *GroupService
	users    *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := mock.NewStore()
	return &fixture{
		ctx:      context.Background(),
		store:    store,
		posts:    NewPostService(store, nil, 10),
		comments: NewCommentService(store),
		follows:  NewFollowService(store),
		groups:   NewGroupService(store),
		users:    NewUserService(store).WithCost(bcrypt.MinCost),
	}
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := f.users.Create(f.ctx, username, "password123")
	require.NoError(t, err)
	return user
}

func (f *fixture) group(t *testing.T, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: "Группа " + slug, Slug: slug, Description: "Тестовое описание"}
	require.NoError(t, f.groups.Create(f.ctx, group))
	return group
}

// post stores a post directly, with pub dates spaced so ordering is exact.
func (f *fixture) post(t *testing.T, author *models.User, group *models.Group, n int) *models.Post {
	t.Helper()
	post := &models.Post{
		Text:     "Тестовый пост",
		AuthorID: author.ID,
		PubDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Minute),
	}
	post.SetGroup(group)
	require.NoError(t, f.store.Posts.Create(f.ctx, post))
	return post
}
