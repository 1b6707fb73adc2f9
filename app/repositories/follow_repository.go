package repositories

import (
	"context"

	"yatube/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerFollowRepository implements FollowRepository using BadgerDB.
// Edges are keyed follow:<user>:<author>, so the key itself enforces uniqueness.
type BadgerFollowRepository struct {
	db *badger.DB
}

// NewBadgerFollowRepository creates a new BadgerFollowRepository
func NewBadgerFollowRepository(db *badger.DB) *BadgerFollowRepository {
	return &BadgerFollowRepository{db: db}
}

// Create stores a new edge, failing with ErrAlreadyExists on a duplicate.
func (r *BadgerFollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := idKey(FollowKeyPrefix, follow.UserID, follow.AuthorID)
		if _, err := txn.Get(key); err == nil {
			return ErrAlreadyExists
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, FollowSeqKey)
		if err != nil {
			return err
		}
		follow.ID = id
		return setEntity(txn, key, follow.Detached())
	})
}

// Get retrieves the edge from userID to authorID
func (r *BadgerFollowRepository) Get(ctx context.Context, userID, authorID int) (*models.Follow, error) {
	var follow models.Follow
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, idKey(FollowKeyPrefix, userID, authorID), &follow)
	})
	if err != nil {
		return nil, err
	}
	return &follow, nil
}

// Delete removes the edge from userID to authorID
func (r *BadgerFollowRepository) Delete(ctx context.Context, userID, authorID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := idKey(FollowKeyPrefix, userID, authorID)
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// ListAuthorIDs returns the IDs of everyone userID follows
func (r *BadgerFollowRepository) ListAuthorIDs(ctx context.Context, userID int) ([]int, error) {
	ids := []int{}
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := append(idKey(FollowKeyPrefix, userID), ':')
		return iteratePrefix(txn, prefix, func(_, val []byte) error {
			var follow models.Follow
			if err := unmarshalEntity(val, &follow); err != nil {
				return err
			}
			ids = append(ids, follow.AuthorID)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CountFollowers returns how many users follow authorID
func (r *BadgerFollowRepository) CountFollowers(ctx context.Context, authorID int) (int, error) {
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		return iteratePrefix(txn, []byte(FollowKeyPrefix), func(_, val []byte) error {
			var follow models.Follow
			if err := unmarshalEntity(val, &follow); err != nil {
				return err
			}
			if follow.AuthorID == authorID {
				count++
			}
			return nil
		})
	})
	return count, err
}

// CountFollowing returns how many authors userID follows
func (r *BadgerFollowRepository) CountFollowing(ctx context.Context, userID int) (int, error) {
	ids, err := r.ListAuthorIDs(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
