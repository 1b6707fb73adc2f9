package services

import (
	"context"
	"errors"
	"fmt"

	"yatube/app/forms"
	"yatube/app/media"
	"yatube/app/models"
	"yatube/app/repositories"
)

// PostService handles business logic for posts and their listings
type PostService struct {
	store     *repositories.Store
	media     media.Store
	paginator Paginator
}

// NewPostService creates a new PostService. mediaStore may be nil, in which
// case image uploads are rejected.
func NewPostService(store *repositories.Store, mediaStore media.Store, pageSize int) *PostService {
	return &PostService{
		store:     store,
		media:     mediaStore,
		paginator: NewPaginator(pageSize),
	}
}

// Create validates form and stores a new post written by author.
func (s *PostService) Create(ctx context.Context, author *models.User, form *forms.PostForm) (*models.Post, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	post := &models.Post{Text: form.Text}
	if err := post.SetAuthor(author); err != nil {
		return nil, err
	}
	if err := s.apply(ctx, post, form); err != nil {
		return nil, err
	}
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post: %w", err)
	}

	if err := s.store.Posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// Update changes text, group and image of a post. Only the author may do it;
// pub_date and author stay as they were.
func (s *PostService) Update(ctx context.Context, user *models.User, id int, form *forms.PostForm) (*models.Post, error) {
	post, err := s.store.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.IsAuthor(user) {
		return nil, ErrPermissionDenied
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	post.Text = form.Text
	oldImage := post.Image
	if err := s.apply(ctx, post, form); err != nil {
		return nil, err
	}
	replaced := post.Image != oldImage
	if err := post.Validate(); err != nil {
		s.dropImage(ctx, post.Image, replaced)
		return nil, fmt.Errorf("invalid post: %w", err)
	}
	if err := s.store.Posts.Update(ctx, post); err != nil {
		s.dropImage(ctx, post.Image, replaced)
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	s.dropImage(ctx, oldImage, replaced)
	post.Author = user
	return post, nil
}

// apply copies the group and the uploaded image from form onto post.
func (s *PostService) apply(ctx context.Context, post *models.Post, form *forms.PostForm) error {
	if form.GroupID == nil {
		post.SetGroup(nil)
	} else {
		group, err := s.store.Groups.GetByID(ctx, *form.GroupID)
		if errors.Is(err, repositories.ErrNotFound) {
			return forms.Errors{"group": forms.InvalidChoice}
		}
		if err != nil {
			return fmt.Errorf("failed to load group: %w", err)
		}
		post.SetGroup(group)
	}

	if form.Image != nil {
		if s.media == nil {
			return forms.Errors{"image": "Загрузка изображений отключена."}
		}
		key, err := media.Save(ctx, s.media, form.Image.Filename, form.Image.Data)
		if err != nil {
			return fmt.Errorf("failed to store image: %w", err)
		}
		post.Image = key
	}
	return nil
}

// dropImage removes key from the media store when the edit replaced an image.
func (s *PostService) dropImage(ctx context.Context, key string, replaced bool) {
	if !replaced || key == "" || s.media == nil {
		return
	}
	// A leftover object only costs space.
	_ = s.media.Delete(ctx, key)
}

// Get returns a post with its author, group and comments.
func (s *PostService) Get(ctx context.Context, id int) (*models.Post, error) {
	post, err := s.store.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	posts := []*models.Post{post}
	if err := s.hydrate(ctx, posts); err != nil {
		return nil, err
	}

	comments, err := s.store.Comments.ListByPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	users := map[int]*models.User{}
	for _, comment := range comments {
		if comment.Author, err = s.user(ctx, users, comment.AuthorID); err != nil {
			return nil, err
		}
	}
	post.Comments = comments
	return post, nil
}

// Delete removes a post and its comments. Only the author may do it.
func (s *PostService) Delete(ctx context.Context, user *models.User, id int) error {
	post, err := s.store.Posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !post.IsAuthor(user) {
		return ErrPermissionDenied
	}
	if err := s.store.Posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if post.Image != "" && s.media != nil {
		// The post is gone either way; a leftover file is harmless.
		_ = s.media.Delete(ctx, post.Image)
	}
	return nil
}

// Index returns a page of all posts, newest first.
func (s *PostService) Index(ctx context.Context, page int) (*Page[*models.Post], error) {
	return s.list(ctx, repositories.PostFilter{}, page)
}

// GroupPage returns the group with slug and a page of its posts.
func (s *PostService) GroupPage(ctx context.Context, slug string, page int) (*models.Group, *Page[*models.Post], error) {
	group, err := s.store.Groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.list(ctx, repositories.PostFilter{GroupID: group.ID}, page)
	if err != nil {
		return nil, nil, err
	}
	return group, p, nil
}

// ProfilePage returns the author named username and a page of their posts.
func (s *PostService) ProfilePage(ctx context.Context, username string, page int) (*models.User, *Page[*models.Post], error) {
	author, err := s.store.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.list(ctx, repositories.PostFilter{AuthorID: author.ID}, page)
	if err != nil {
		return nil, nil, err
	}
	return author, p, nil
}

// FollowPage returns a page of posts by the authors user follows.
func (s *PostService) FollowPage(ctx context.Context, user *models.User, page int) (*Page[*models.Post], error) {
	ids, err := s.store.Follows.ListAuthorIDs(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followed authors: %w", err)
	}
	return s.list(ctx, repositories.PostFilter{AuthorIDs: ids, ByAuthors: true}, page)
}

func (s *PostService) list(ctx context.Context, filter repositories.PostFilter, number int) (*Page[*models.Post], error) {
	total, err := s.store.Posts.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}
	number, limit, offset, numPages := s.paginator.Window(number, total)
	posts, err := s.store.Posts.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	if err := s.hydrate(ctx, posts); err != nil {
		return nil, err
	}
	return &Page[*models.Post]{Items: posts, Number: number, NumPages: numPages, Total: total}, nil
}

// hydrate attaches authors and groups to posts, loading each only once.
func (s *PostService) hydrate(ctx context.Context, posts []*models.Post) error {
	users := map[int]*models.User{}
	groups := map[int]*models.Group{}
	for _, post := range posts {
		author, err := s.user(ctx, users, post.AuthorID)
		if err != nil {
			return err
		}
		post.Author = author

		if post.GroupID == nil {
			continue
		}
		group, ok := groups[*post.GroupID]
		if !ok {
			group, err = s.store.Groups.GetByID(ctx, *post.GroupID)
			if err != nil && !errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("failed to load group: %w", err)
			}
			groups[*post.GroupID] = group
		}
		post.Group = group
	}
	return nil
}

func (s *PostService) user(ctx context.Context, cache map[int]*models.User, id int) (*models.User, error) {
	if user, ok := cache[id]; ok {
		return user, nil
	}
	user, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	cache[id] = user
	return user, nil
}

// CountByAuthor returns how many posts the author has written.
func (s *PostService) CountByAuthor(ctx context.Context, authorID int) (int, error) {
	return s.store.Posts.Count(ctx, repositories.PostFilter{AuthorID: authorID})
}
