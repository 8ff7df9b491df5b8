package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"quill/models"
	"quill/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService turns credentials into sessions and session tokens back
// into identities.
type AuthService struct {
	users    *UserService
	sessions *SessionService
	secret   string
	logger   *zap.Logger
}

func NewAuthService(users *UserService, sessions *SessionService, secret string, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		secret:   secret,
		logger:   logger,
	}
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// equalizeTiming burns one bcrypt comparison so unknown emails cost the
// same as wrong passwords.
func equalizeTiming(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("quill-timing-guard"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// Register creates the user and their first session in one transaction.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error) {
	var (
		user  *models.User
		token string
	)
	err := s.users.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = createUser(tx, req); err != nil {
			return err
		}

		session, err := s.sessions.create(tx, user.ID)
		if err != nil {
			return err
		}

		token, err = s.signSession(session)
		return err
	})
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID))
	return user, token, nil
}

// Login fails with ErrUnknownEmail or ErrWrongPassword, both of which
// match ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			equalizeTiming(req.Password)
			return nil, "", ErrUnknownEmail
		}
		return nil, "", err
	}

	if !user.CheckPassword(req.Password) {
		return nil, "", ErrWrongPassword
	}

	token, err := s.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user logged in", zap.Uint("user_id", user.ID))
	return user, token, nil
}

// Logout revokes the session behind token. Unknown or invalid tokens are
// not an error: the caller ends up anonymous either way.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := utils.ValidateSessionToken(s.secret, token)
	if err != nil {
		return nil
	}
	if err := s.sessions.DeleteSession(ctx, claims.ID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

// CurrentIdentity never fails: anything short of a valid, live session
// owned by an existing user resolves to models.Anonymous.
func (s *AuthService) CurrentIdentity(ctx context.Context, token string) models.Identity {
	if token == "" {
		return models.Anonymous
	}

	claims, err := utils.ValidateSessionToken(s.secret, token)
	if err != nil {
		return models.Anonymous
	}

	session, err := s.sessions.GetSession(ctx, claims.ID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionExpired) {
			s.logger.Warn("session lookup failed", zap.Error(err))
		}
		return models.Anonymous
	}
	if session.UserID != claims.UserID {
		return models.Anonymous
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		return models.Anonymous
	}

	return models.IdentityOf(user)
}

func (s *AuthService) openSession(ctx context.Context, user *models.User) (string, error) {
	session, err := s.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return s.signSession(session)
}

func (s *AuthService) signSession(session *models.Session) (string, error) {
	token, err := utils.GenerateSessionToken(s.secret, session.UserID, session.ID, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}
