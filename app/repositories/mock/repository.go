package mock

import (
	"context"
	"sort"
	"sync"

	"yatube/app/models"
	"yatube/app/repositories"
)

type UserRepository struct {
	users  map[int]*models.User
	nextID int
	mutex  sync.RWMutex
}

type GroupRepository struct {
	groups map[int]*models.Group
	nextID int
	mutex  sync.RWMutex
}

type PostRepository struct {
	posts    map[int]*models.Post
	nextID   int
	comments *CommentRepository
	mutex    sync.RWMutex
}

type CommentRepository struct {
	comments map[int]*models.Comment
	nextID   int
	mutex    sync.RWMutex
}

type FollowRepository struct {
	follows map[[2]int]*models.Follow
	nextID  int
	mutex   sync.RWMutex
}

// NewStore returns a Store backed entirely by in-memory maps.
func NewStore() *repositories.Store {
	comments := NewCommentRepository()
	return repositories.NewStore(
		NewUserRepository(),
		NewGroupRepository(),
		NewPostRepository(comments),
		comments,
		NewFollowRepository(),
		nil,
	)
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int]*models.User), nextID: 1}
}

func NewGroupRepository() *GroupRepository {
	return &GroupRepository{groups: make(map[int]*models.Group), nextID: 1}
}

// NewPostRepository creates a post repository; comments may be nil.
func NewPostRepository(comments *CommentRepository) *PostRepository {
	return &PostRepository{posts: make(map[int]*models.Post), nextID: 1, comments: comments}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[int]*models.Comment), nextID: 1}
}

func NewFollowRepository() *FollowRepository {
	return &FollowRepository{follows: make(map[[2]int]*models.Follow), nextID: 1}
}

// UserRepository implementation
func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, u := range m.users {
		if u.Username == user.Username {
			return repositories.ErrAlreadyExists
		}
	}
	user.ID = m.nextID
	m.nextID++
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// GroupRepository implementation
func (m *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, g := range m.groups {
		if g.Slug == group.Slug {
			return repositories.ErrAlreadyExists
		}
	}
	group.ID = m.nextID
	m.nextID++
	cp := *group
	m.groups[group.ID] = &cp
	return nil
}

func (m *GroupRepository) GetByID(ctx context.Context, id int) (*models.Group, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	group, exists := m.groups[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	cp := *group
	return &cp, nil
}

func (m *GroupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, group := range m.groups {
		if group.Slug == slug {
			cp := *group
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *GroupRepository) List(ctx context.Context) ([]*models.Group, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	groups := []*models.Group{}
	for _, group := range m.groups {
		cp := *group
		groups = append(groups, &cp)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })
	return groups, nil
}

// PostRepository implementation
func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.ID = m.nextID
	m.nextID++
	post.BeforeCreate()
	m.posts[post.ID] = post.Detached()
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post.Detached(), nil
}

func (m *PostRepository) Update(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.posts[post.ID] = post.Detached()
	return nil
}

func (m *PostRepository) Delete(ctx context.Context, id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	if m.comments != nil {
		m.comments.deleteByPost(id)
	}
	return nil
}

func (m *PostRepository) matching(filter repositories.PostFilter) []*models.Post {
	var posts []*models.Post
	for _, post := range m.posts {
		if filter.Match(post) {
			posts = append(posts, post.Detached())
		}
	}
	// Newest first, ties broken by ID so ordering is stable
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].PubDate.Equal(posts[j].PubDate) {
			return posts[i].PubDate.After(posts[j].PubDate)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts
}

func (m *PostRepository) List(ctx context.Context, filter repositories.PostFilter, limit, offset int) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := m.matching(filter)
	// Handle pagination
	if offset >= len(posts) {
		return []*models.Post{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end], nil
}

func (m *PostRepository) Count(ctx context.Context, filter repositories.PostFilter) (int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.matching(filter)), nil
}

// CommentRepository implementation
func (m *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment.ID = m.nextID
	m.nextID++
	comment.BeforeCreate()
	m.comments[comment.ID] = comment.Detached()
	return nil
}

func (m *CommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comments := []*models.Comment{}
	for _, comment := range m.comments {
		if comment.PostID == postID {
			comments = append(comments, comment.Detached())
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID > comments[j].ID })
	return comments, nil
}

func (m *CommentRepository) CountByPost(ctx context.Context, postID int) (int, error) {
	comments, err := m.ListByPost(ctx, postID)
	return len(comments), err
}

func (m *CommentRepository) deleteByPost(postID int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for id, comment := range m.comments {
		if comment.PostID == postID {
			delete(m.comments, id)
		}
	}
}

// FollowRepository implementation
func (m *FollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	key := [2]int{follow.UserID, follow.AuthorID}
	if _, exists := m.follows[key]; exists {
		return repositories.ErrAlreadyExists
	}
	follow.ID = m.nextID
	m.nextID++
	m.follows[key] = follow.Detached()
	return nil
}

func (m *FollowRepository) Get(ctx context.Context, userID, authorID int) (*models.Follow, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	follow, exists := m.follows[[2]int{userID, authorID}]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return follow.Detached(), nil
}

func (m *FollowRepository) Delete(ctx context.Context, userID, authorID int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	key := [2]int{userID, authorID}
	if _, exists := m.follows[key]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.follows, key)
	return nil
}

func (m *FollowRepository) ListAuthorIDs(ctx context.Context, userID int) ([]int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	ids := []int{}
	for key := range m.follows {
		if key[0] == userID {
			ids = append(ids, key[1])
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (m *FollowRepository) CountFollowers(ctx context.Context, authorID int) (int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	count := 0
	for key := range m.follows {
		if key[1] == authorID {
			count++
		}
	}
	return count, nil
}

func (m *FollowRepository) CountFollowing(ctx context.Context, userID int) (int, error) {
	ids, err := m.ListAuthorIDs(ctx, userID)
	return len(ids), err
}
