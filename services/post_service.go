package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quill/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db, now: time.Now}
}

// WithClock overrides the clock used to stamp new posts.
func (s *PostService) WithClock(now func() time.Time) *PostService {
	s.now = now
	return s
}

// CreatePost stamps the post with today's date and the given author.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, req *models.PostRequest) (*models.Post, error) {
	post := &models.Post{
		AuthorID: authorID,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImgURL:   req.ImgURL,
		Date:     s.now().Format(models.PostDateLayout),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var author models.User
		if err := tx.Select("id").First(&author, authorID).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(post).Error
	})
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, ErrDuplicateTitle
		case errors.Is(err, gorm.ErrRecordNotFound), isForeignKeyViolation(err):
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("create post: %w", err)
	}

	return post, nil
}

// UpdatePost changes only the supplied fields. Id, author and date are
// never touched.
func (s *PostService) UpdatePost(ctx context.Context, id uint, req *models.UpdatePostRequest) (*models.Post, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Subtitle != nil {
		updates["subtitle"] = *req.Subtitle
	}
	if req.Body != nil {
		updates["body"] = *req.Body
	}
	if req.ImgURL != nil {
		updates["img_url"] = *req.ImgURL
	}

	var post models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, id).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&post).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&post, id).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		case isUniqueViolation(err):
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}

	return &post, nil
}

// DeletePost removes the post together with its comments.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, id).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	return nil
}

// ListPosts returns every post in id order.
func (s *PostService) ListPosts(ctx context.Context) ([]models.PostView, error) {
	var posts []models.PostView
	err := s.postViews(ctx).Order("blog_posts.id ASC").Scan(&posts).Error
	return posts, err
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.PostView, error) {
	var posts []models.PostView
	err := s.postViews(ctx).Where("blog_posts.id = ?", id).Limit(1).Scan(&posts).Error
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrNotFound
	}
	return &posts[0], nil
}

func (s *PostService) postViews(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("blog_posts.*, users.name AS author_name").
		Joins("JOIN users ON users.id = blog_posts.author_id")
}
