package services

import (
	"context"
	"errors"
	"fmt"

	"yatube/app/models"
	"yatube/app/repositories"
)

// FollowService manages subscriptions between users
type FollowService struct {
	store *repositories.Store
}

func NewFollowService(store *repositories.Store) *FollowService {
	return &FollowService{store: store}
}

// Follow subscribes user to the author named username. Following someone
// twice is a no-op.
func (s *FollowService) Follow(ctx context.Context, user *models.User, username string) (*models.User, error) {
	author, err := s.store.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author.ID == user.ID {
		return author, ErrSelfFollow
	}

	follow := &models.Follow{UserID: user.ID, AuthorID: author.ID}
	if err := follow.Validate(); err != nil {
		return nil, fmt.Errorf("invalid follow: %w", err)
	}
	err = s.store.Follows.Create(ctx, follow)
	if err != nil && !errors.Is(err, repositories.ErrAlreadyExists) {
		return nil, fmt.Errorf("failed to follow: %w", err)
	}
	return author, nil
}

// Unfollow removes the subscription if there is one.
func (s *FollowService) Unfollow(ctx context.Context, user *models.User, username string) (*models.User, error) {
	author, err := s.store.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	err = s.store.Follows.Delete(ctx, user.ID, author.ID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to unfollow: %w", err)
	}
	return author, nil
}

// IsFollowing reports whether user follows author. Anonymous users follow nobody.
func (s *FollowService) IsFollowing(ctx context.Context, user, author *models.User) (bool, error) {
	if user == nil || author == nil {
		return false, nil
	}
	_, err := s.store.Follows.Get(ctx, user.ID, author.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Counts returns how many followers author has and how many authors they follow.
func (s *FollowService) Counts(ctx context.Context, author *models.User) (followers, following int, err error) {
	if followers, err = s.store.Follows.CountFollowers(ctx, author.ID); err != nil {
		return 0, 0, err
	}
	if following, err = s.store.Follows.CountFollowing(ctx, author.ID); err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
