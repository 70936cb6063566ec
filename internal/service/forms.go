package service

import "strings"

// PostForm is the payload of the create and edit actions.
type PostForm struct {
	Text    string  `form:"text" json:"text"`
	GroupID *uint64 `form:"group" json:"group"`
	Image   string  `form:"image" json:"image"`
	// ClearImage drops the stored image when no new one is supplied.
	ClearImage bool `form:"image-clear" json:"image_clear"`
}

func (f *PostForm) normalize() {
	// an empty choice binds as 0
	if f.GroupID != nil && *f.GroupID == 0 {
		f.GroupID = nil
	}
	f.Text = strings.TrimSpace(f.Text)
	f.Image = strings.TrimSpace(f.Image)
}

type CommentForm struct {
	Text string `form:"text" json:"text"`
}

// GroupForm is used by group administration.
type GroupForm struct {
	Title       string `form:"title" json:"title"`
	Slug        string `form:"slug" json:"slug"`
	Description string `form:"description" json:"description"`
}
