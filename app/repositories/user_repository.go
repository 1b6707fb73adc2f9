package repositories

import (
	"context"

	"yatube/app/models"

	"github.com/dgraph-io/badger/v4"
)

// userRecord keeps the password hash, which models.User hides from JSON.
type userRecord struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create stores a new user; the username must be free.
func (r *BadgerUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, UserSeqKey)
		if err != nil {
			return err
		}
		if err := setIndex(txn, UsernameIndexPrefix+user.Username, id); err != nil {
			return err
		}
		user.ID = id
		return setEntity(txn, idKey(UserKeyPrefix, id), userRecord{User: *user, PasswordHash: user.PasswordHash})
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	var user *models.User
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		user, err = loadUser(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByUsername retrieves a user through the username index
func (r *BadgerUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user *models.User
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := getIndex(txn, UsernameIndexPrefix+username)
		if err != nil {
			return err
		}
		user, err = loadUser(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func loadUser(txn *badger.Txn, id int) (*models.User, error) {
	var rec userRecord
	if err := getEntity(txn, idKey(UserKeyPrefix, id), &rec); err != nil {
		return nil, err
	}
	user := rec.User
	user.PasswordHash = rec.PasswordHash
	return &user, nil
}
