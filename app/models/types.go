package models

import "time"

// User is an account that can author posts, comment and follow other users.
type User struct {
	ID           int       `json:"id" gorm:"primaryKey" validate:"gte=0"`
	Username     string    `json:"username" gorm:"type:varchar(150);uniqueIndex;not null" validate:"required,max=150,username"`
	FirstName    string    `json:"first_name,omitempty" gorm:"type:varchar(150)" validate:"max=150"`
	LastName     string    `json:"last_name,omitempty" gorm:"type:varchar(150)" validate:"max=150"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null" validate:"-"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null" validate:"required"`
}

// Group is a named category of posts.
type Group struct {
	ID          int    `json:"id" gorm:"primaryKey" validate:"gte=0"`
	Title       string `json:"title" gorm:"type:varchar(200);not null" validate:"required,notblank,max=200"`
	Slug        string `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null" validate:"required,max=100,slug"`
	Description string `json:"description" gorm:"type:text;not null" validate:"required,notblank"`
}

// Post is an authored text entry, optionally in a group and with an image.
type Post struct {
	ID       int        `json:"id" gorm:"primaryKey" validate:"gte=0"`
	Text     string     `json:"text" gorm:"type:text;not null" validate:"required,notblank"`
	PubDate  time.Time  `json:"pub_date" gorm:"not null;index" validate:"required"`
	AuthorID int        `json:"author_id" gorm:"not null;index" validate:"required,gt=0"`
	Author   *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" validate:"-"`
	GroupID  *int       `json:"group_id,omitempty" gorm:"index" validate:"omitempty,gt=0"`
	Group    *Group     `json:"group,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" validate:"-"`
	Image    string     `json:"image,omitempty" gorm:"type:varchar(255)" validate:"max=255"`
	Comments []*Comment `json:"comments,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" validate:"-"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID       int       `json:"id" gorm:"primaryKey" validate:"gte=0"`
	PostID   int       `json:"post_id" gorm:"not null;index" validate:"required,gt=0"`
	AuthorID int       `json:"author_id" gorm:"not null;index" validate:"required,gt=0"`
	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" validate:"-"`
	Text     string    `json:"text" gorm:"type:text;not null" validate:"required,notblank"`
	Created  time.Time `json:"created" gorm:"not null;index" validate:"required"`
}

// Follow is a directed subscription edge from UserID to AuthorID.
type Follow struct {
	ID       int   `json:"id" gorm:"primaryKey" validate:"gte=0"`
	UserID   int   `json:"user_id" gorm:"not null;uniqueIndex:idx_follow_user_author" validate:"required,gt=0"`
	User     *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" validate:"-"`
	AuthorID int   `json:"author_id" gorm:"not null;uniqueIndex:idx_follow_user_author;index" validate:"required,gt=0,nefield=UserID"`
	Author   *User `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" validate:"-"`
}
