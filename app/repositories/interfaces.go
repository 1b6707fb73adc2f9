package repositories

import (
	"context"

	"yatube/app/models"
)

// PostFilter narrows a post listing. Zero values mean "no restriction".
type PostFilter struct {
	AuthorID  int
	GroupID   int
	AuthorIDs []int
	// ByAuthors restricts the listing to AuthorIDs even when it is empty.
	ByAuthors bool
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// GroupRepository defines the interface for group data access
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id int) (*models.Group, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	List(ctx context.Context) ([]*models.Group, error)
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int, error)
	Update(ctx context.Context, post *models.Post) error
	// Delete removes the post together with its comments.
	Delete(ctx context.Context, id int) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID int) ([]*models.Comment, error)
	CountByPost(ctx context.Context, postID int) (int, error)
}

// FollowRepository defines the interface for subscription edges
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	Get(ctx context.Context, userID, authorID int) (*models.Follow, error)
	Delete(ctx context.Context, userID, authorID int) error
	ListAuthorIDs(ctx context.Context, userID int) ([]int, error)
	CountFollowers(ctx context.Context, authorID int) (int, error)
	CountFollowing(ctx context.Context, userID int) (int, error)
}

// Store bundles the repositories of one storage backend.
type Store struct {
	Users    UserRepository
	Groups   GroupRepository
	Posts    PostRepository
	Comments CommentRepository
	Follows  FollowRepository

	closer func() error
}

// NewStore assembles a Store; closer may be nil.
func NewStore(users UserRepository, groups GroupRepository, posts PostRepository,
	comments CommentRepository, follows FollowRepository, closer func() error) *Store {
	return &Store{
		Users:    users,
		Groups:   groups,
		Posts:    posts,
		Comments: comments,
		Follows:  follows,
		closer:   closer,
	}
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// Match reports whether post passes the filter.
func (f PostFilter) Match(post *models.Post) bool {
	if f.AuthorID != 0 && post.AuthorID != f.AuthorID {
		return false
	}
	if f.GroupID != 0 && !post.InGroup(f.GroupID) {
		return false
	}
	if f.ByAuthors || len(f.AuthorIDs) > 0 {
		for _, id := range f.AuthorIDs {
			if id == post.AuthorID {
				return true
			}
		}
		return false
	}
	return true
}
