package models

import (
	"errors"
	"time"
)

// FieldMeta describes how a model field is labelled in forms.
type FieldMeta struct {
	VerboseName string
	HelpText    string
}

// PostFields holds the form labels for Post fields.
var PostFields = map[string]FieldMeta{
	"text":     {VerboseName: "Текст поста", HelpText: "Введите текст поста"},
	"pub_date": {VerboseName: "Дата публикации"},
	"author":   {VerboseName: "Автор"},
	"group":    {VerboseName: "Группа", HelpText: "Выберите группу"},
	"image":    {VerboseName: "Картинка"},
}

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.PubDate.IsZero() {
		return errors.New("pub_date cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.PubDate.IsZero() {
		p.PubDate = time.Now().UTC()
	}
}

// SetAuthor sets the author and updates AuthorID
func (p *Post) SetAuthor(user *User) error {
	if user == nil {
		return errors.New("author cannot be nil")
	}

	p.Author = user
	p.AuthorID = user.ID
	return nil
}

// SetGroup attaches the post to a group, or detaches it when group is nil.
func (p *Post) SetGroup(group *Group) {
	p.Group = group
	if group == nil {
		p.GroupID = nil
		return
	}
	id := group.ID
	p.GroupID = &id
}

// InGroup reports whether the post belongs to the group with the given id.
func (p *Post) InGroup(groupID int) bool {
	return p.GroupID != nil && *p.GroupID == groupID
}

// IsAuthor reports whether user wrote the post.
func (p *Post) IsAuthor(user *User) bool {
	return user != nil && user.ID == p.AuthorID
}

// AddComment adds a comment to the post
func (p *Post) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}

	comment.PostID = p.ID
	p.Comments = append(p.Comments, comment)
	return nil
}

// Detached returns a copy of the post without loaded relations, ready to be stored.
func (p *Post) Detached() *Post {
	cp := *p
	cp.Author = nil
	cp.Group = nil
	cp.Comments = nil
	if p.GroupID != nil {
		id := *p.GroupID
		cp.GroupID = &id
	}
	return &cp
}

func (p *Post) String() string {
	return truncate(p.Text, StringLimit)
}
