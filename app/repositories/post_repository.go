package repositories

import (
	"context"
	"fmt"

	"yatube/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post
func (r *BadgerPostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id
		post.BeforeCreate()
		return setEntity(txn, idKey(PostKeyPrefix, id), post.Detached())
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, idKey(PostKeyPrefix, id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves a page of posts matching filter, newest first
func (r *BadgerPostRepository) List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error) {
	posts, err := r.scan(filter)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(posts)
	return paginate(posts, limit, offset), nil
}

// Count returns how many posts match filter
func (r *BadgerPostRepository) Count(ctx context.Context, filter PostFilter) (int, error) {
	posts, err := r.scan(filter)
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}

func (r *BadgerPostRepository) scan(filter PostFilter) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		return iteratePrefix(txn, []byte(PostKeyPrefix), func(_, val []byte) error {
			var post models.Post
			if err := unmarshalEntity(val, &post); err != nil {
				return fmt.Errorf("failed to unmarshal post: %w", err)
			}
			if filter.Match(&post) {
				posts = append(posts, &post)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Update updates an existing post
func (r *BadgerPostRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := idKey(PostKeyPrefix, post.ID)

		// Verify post exists
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return setEntity(txn, key, post.Detached())
	})
}

// Delete deletes a post and its comments
func (r *BadgerPostRepository) Delete(ctx context.Context, id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := idKey(PostKeyPrefix, id)

		// Verify post exists
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var commentKeys [][]byte
		prefix := append(idKey(CommentKeyPrefix, id), ':')
		err = iteratePrefix(txn, prefix, func(k, _ []byte) error {
			commentKeys = append(commentKeys, k)
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range commentKeys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}

		return txn.Delete(key)
	})
}
