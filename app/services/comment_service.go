package services

import (
	"context"
	"fmt"

	"yatube/app/forms"
	"yatube/app/models"
	"yatube/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	store *repositories.Store
}

// NewCommentService creates a new CommentService
func NewCommentService(store *repositories.Store) *CommentService {
	return &CommentService{store: store}
}

// Add attaches a comment by author to the post with postID.
func (s *CommentService) Add(ctx context.Context, author *models.User, postID int, form *forms.CommentForm) (*models.Comment, error) {
	// Verify post exists
	post, err := s.store.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	comment := &models.Comment{Text: form.Text, AuthorID: author.ID, Author: author}
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}
	comment.BeforeCreate()
	if err := comment.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comment: %w", err)
	}

	if err := s.store.Comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// Count returns how many comments the post has.
func (s *CommentService) Count(ctx context.Context, postID int) (int, error) {
	return s.store.Comments.CountByPost(ctx, postID)
}
