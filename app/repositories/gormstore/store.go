// Package gormstore implements the repositories on top of a SQL database
// through gorm. It is selected with storage=postgres.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"yatube/app/models"
	"yatube/app/repositories"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to PostgreSQL and migrates the schema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables for every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Group{}, &models.Post{}, &models.Comment{}, &models.Follow{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// NewStore wires the gorm repositories into a repositories.Store.
func NewStore(db *gorm.DB) *repositories.Store {
	return repositories.NewStore(
		&UserRepository{db: db},
		&GroupRepository{db: db},
		&PostRepository{db: db},
		&CommentRepository{db: db},
		&FollowRepository{db: db},
		func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrAlreadyExists
	}
	return err
}

type UserRepository struct{ db *gorm.DB }

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.BeforeCreate()
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

type GroupRepository struct{ db *gorm.DB }

func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	return translate(r.db.WithContext(ctx).Create(group).Error)
}

func (r *GroupRepository) GetByID(ctx context.Context, id int) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, translate(err)
	}
	return &group, nil
}

func (r *GroupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, translate(err)
	}
	return &group, nil
}

func (r *GroupRepository) List(ctx context.Context) ([]*models.Group, error) {
	var groups []*models.Group
	err := r.db.WithContext(ctx).Order("title").Find(&groups).Error
	return groups, translate(err)
}

type PostRepository struct{ db *gorm.DB }

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	post.BeforeCreate()
	return translate(r.db.WithContext(ctx).Omit("Author", "Group", "Comments").Create(post).Error)
}

func (r *PostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *PostRepository) filtered(ctx context.Context, filter repositories.PostFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if filter.AuthorID != 0 {
		q = q.Where("author_id = ?", filter.AuthorID)
	}
	if filter.GroupID != 0 {
		q = q.Where("group_id = ?", filter.GroupID)
	}
	if filter.ByAuthors || len(filter.AuthorIDs) > 0 {
		if len(filter.AuthorIDs) == 0 {
			q = q.Where("1 = 0")
		} else {
			q = q.Where("author_id IN ?", filter.AuthorIDs)
		}
	}
	return q
}

func (r *PostRepository) List(ctx context.Context, filter repositories.PostFilter, limit, offset int) ([]*models.Post, error) {
	posts := []*models.Post{}
	q := r.filtered(ctx, filter).Order("pub_date DESC, id DESC").Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

func (r *PostRepository) Count(ctx context.Context, filter repositories.PostFilter) (int, error) {
	var n int64
	err := r.filtered(ctx, filter).Count(&n).Error
	return int(n), translate(err)
}

func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	res := r.db.WithContext(ctx).Model(&models.Post{ID: post.ID}).
		Select("text", "group_id", "image").
		Updates(map[string]interface{}{"text": post.Text, "group_id": post.GroupID, "image": post.Image})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repositories.ErrNotFound
		}
		return nil
	})
}

type CommentRepository struct{ db *gorm.DB }

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.BeforeCreate()
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", comment.PostID).Count(&n).Error; err != nil {
		return translate(err)
	}
	if n == 0 {
		return repositories.ErrNotFound
	}
	return translate(r.db.WithContext(ctx).Omit("Author").Create(comment).Error)
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("created DESC, id DESC").Find(&comments).Error
	return comments, translate(err)
}

func (r *CommentRepository) CountByPost(ctx context.Context, postID int) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID).Count(&n).Error
	return int(n), translate(err)
}

type FollowRepository struct{ db *gorm.DB }

func (r *FollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	return translate(r.db.WithContext(ctx).Omit("User", "Author").Create(follow).Error)
}

func (r *FollowRepository) Get(ctx context.Context, userID, authorID int) (*models.Follow, error) {
	var follow models.Follow
	err := r.db.WithContext(ctx).Where("user_id = ? AND author_id = ?", userID, authorID).First(&follow).Error
	if err != nil {
		return nil, translate(err)
	}
	return &follow, nil
}

func (r *FollowRepository) Delete(ctx context.Context, userID, authorID int) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Follow{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *FollowRepository) ListAuthorIDs(ctx context.Context, userID int) ([]int, error) {
	ids := []int{}
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("user_id = ?", userID).
		Order("author_id").Pluck("author_id", &ids).Error
	return ids, translate(err)
}

func (r *FollowRepository) CountFollowers(ctx context.Context, authorID int) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&n).Error
	return int(n), translate(err)
}

func (r *FollowRepository) CountFollowing(ctx context.Context, userID int) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("user_id = ?", userID).Count(&n).Error
	return int(n), translate(err)
}
