package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quill/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

type SessionService struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

func NewSessionService(db *gorm.DB, ttl time.Duration) *SessionService {
	return &SessionService{db: db, ttl: ttl, now: time.Now}
}

func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.now = now
	return s
}

func (s *SessionService) CreateSession(ctx context.Context, userID uint) (*models.Session, error) {
	return s.create(s.db.WithContext(ctx), userID)
}

func (s *SessionService) create(tx *gorm.DB, userID uint) (*models.Session, error) {
	now := s.now().UTC()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}

	if err := tx.Omit(clause.Associations).Create(session).Error; err != nil {
		return nil, fmt.Errorf("create session for user %d: %w", userID, err)
	}
	return session, nil
}

// GetSession loads a live session. Expired sessions are deleted on sight.
func (s *SessionService) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if session.Expired(s.now()) {
		_ = s.DeleteSession(ctx, id)
		return nil, ErrSessionExpired
	}

	return &session, nil
}

func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Session{})
	if result.Error != nil {
		return fmt.Errorf("delete session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// CleanupExpiredSessions returns the number of purged rows.
func (s *SessionService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at <= ?", s.now().UTC()).Delete(&models.Session{})
	if result.Error != nil {
		return 0, fmt.Errorf("cleanup expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
