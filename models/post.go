package models

import (
	"strings"
	"time"
)

// PostDateLayout is the format of Post.Date, e.g. "October 16, 2026".
const PostDateLayout = "January 02, 2006"

type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"size:250;uniqueIndex;not null"`
	Subtitle  string    `json:"subtitle" gorm:"size:250;not null"`
	Date      string    `json:"date" gorm:"size:250;not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	ImgURL    string    `json:"img_url" gorm:"column:img_url;size:250;not null"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
}

func (Post) TableName() string {
	return "blog_posts"
}

// PostView is a post joined with its author's display name.
type PostView struct {
	Post
	AuthorName string `json:"author_name"`
}

type PostRequest struct {
	Title    string `form:"title" binding:"required,max=250"`
	Subtitle string `form:"subtitle" binding:"required,max=250"`
	ImgURL   string `form:"img_url" binding:"required,url,max=250"`
	Body     string `form:"body" binding:"required"`
}

func (r *PostRequest) TrimSpace() {
	r.Title = strings.TrimSpace(r.Title)
	r.Subtitle = strings.TrimSpace(r.Subtitle)
	r.ImgURL = strings.TrimSpace(r.ImgURL)
	r.Body = strings.TrimSpace(r.Body)
}

// UpdatePostRequest leaves a field untouched when it is nil.
type UpdatePostRequest struct {
	Title    *string
	Subtitle *string
	ImgURL   *string
	Body     *string
}

func (r PostRequest) AsUpdate() UpdatePostRequest {
	return UpdatePostRequest{
		Title:    &r.Title,
		Subtitle: &r.Subtitle,
		ImgURL:   &r.ImgURL,
		Body:     &r.Body,
	}
}
