package models

import "strings"

type Comment struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	PostID      uint   `json:"post_id" gorm:"not null;index"`
	CommenterID uint   `json:"commenter_id" gorm:"not null;index"`
	Text        string `json:"text" gorm:"column:comment;type:text;not null"`
	Post        Post   `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Commenter   User   `json:"-" gorm:"foreignKey:CommenterID;constraint:OnDelete:RESTRICT"`
}

func (Comment) TableName() string {
	return "users_comment"
}

// CommentView is a comment joined with the commenter's name and email.
type CommentView struct {
	Comment
	CommenterName  string `json:"commenter_name"`
	CommenterEmail string `json:"-"`
}

type CommentRequest struct {
	Text string `form:"comment" binding:"required"`
}

func (r *CommentRequest) TrimSpace() {
	r.Text = strings.TrimSpace(r.Text)
}
