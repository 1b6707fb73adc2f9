package repositories

import (
	"context"
	"sort"

	"yatube/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerGroupRepository implements GroupRepository using BadgerDB
type BadgerGroupRepository struct {
	db *badger.DB
}

// NewBadgerGroupRepository creates a new BadgerGroupRepository
func NewBadgerGroupRepository(db *badger.DB) *BadgerGroupRepository {
	return &BadgerGroupRepository{db: db}
}

// Create stores a new group; the slug must be free.
func (r *BadgerGroupRepository) Create(ctx context.Context, group *models.Group) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, GroupSeqKey)
		if err != nil {
			return err
		}
		if err := setIndex(txn, GroupSlugIndexPrefix+group.Slug, id); err != nil {
			return err
		}
		group.ID = id
		return setEntity(txn, idKey(GroupKeyPrefix, id), group)
	})
}

// GetByID retrieves a group by ID
func (r *BadgerGroupRepository) GetByID(ctx context.Context, id int) (*models.Group, error) {
	var group models.Group
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, idKey(GroupKeyPrefix, id), &group)
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GetBySlug retrieves a group through the slug index
func (r *BadgerGroupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := getIndex(txn, GroupSlugIndexPrefix+slug)
		if err != nil {
			return err
		}
		return getEntity(txn, idKey(GroupKeyPrefix, id), &group)
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// List returns all groups ordered by title
func (r *BadgerGroupRepository) List(ctx context.Context) ([]*models.Group, error) {
	groups := []*models.Group{}
	err := r.db.View(func(txn *badger.Txn) error {
		return iteratePrefix(txn, []byte(GroupKeyPrefix), func(_, val []byte) error {
			var group models.Group
			if err := unmarshalEntity(val, &group); err != nil {
				return err
			}
			groups = append(groups, &group)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })
	return groups, nil
}
