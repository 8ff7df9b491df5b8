package services

import (
	"context"
	"errors"
	"fmt"

	"quill/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// CreateComment fails with ErrForeignKeyViolation when the post or the
// commenter does not exist.
func (s *CommentService) CreateComment(ctx context.Context, postID, commenterID uint, text string) (*models.CommentView, error) {
	comment := models.Comment{
		PostID:      postID,
		CommenterID: commenterID,
		Text:        text,
	}

	var commenter models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, postID).Error; err != nil {
			return err
		}
		if err := tx.Select("id", "name", "email").First(&commenter, commenterID).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&comment).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || isForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("create comment on post %d: %w", postID, err)
	}

	return &models.CommentView{
		Comment:        comment,
		CommenterName:  commenter.Name,
		CommenterEmail: commenter.Email,
	}, nil
}

// ListCommentsForPost returns the post's comments in id order.
func (s *CommentService) ListCommentsForPost(ctx context.Context, postID uint) ([]models.CommentView, error) {
	var comments []models.CommentView
	err := s.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("users_comment.*, users.name AS commenter_name, users.email AS commenter_email").
		Joins("JOIN users ON users.id = users_comment.commenter_id").
		Where("users_comment.post_id = ?", postID).
		Order("users_comment.id ASC").
		Scan(&comments).Error
	return comments, err
}

func (s *CommentService) CountComments(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
