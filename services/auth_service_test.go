package services

import (
	"context"
	"testing"
	"time"

	"quill/models"
	"quill/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegisterOpensSession(t *testing.T) {
	db := newTestDB(t)
	auth := newTestAuth(t, db)
	ctx := context.Background()

	user, token, err := auth.Register(ctx, &models.RegisterRequest{Email: "a@x.com", Password: "pw", Name: "Ann"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity := auth.CurrentIdentity(ctx, token)
	require.False(t, identity.IsAnonymous())
	assert.Equal(t, user.ID, identity.UserID())
}

func TestRegisterTwiceWithSameEmail(t *testing.T) {
	db := newTestDB(t)
	auth := newTestAuth(t, db)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, &models.RegisterRequest{Email: "a@x.com", Password: "pw", Name: "Ann"})
	require.NoError(t, err)

	_, token, err := auth.Register(ctx, &models.RegisterRequest{Email: "a@x.com", Password: "pw2", Name: "Ann2"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Empty(t, token)

	count, err := NewUserService(db).CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRegisterRollsBackUserWhenSessionFails(t *testing.T) {
	db := newTestDB(t)
	auth := newTestAuth(t, db)
	ctx := context.Background()

	require.NoError(t, db.Migrator().DropTable(&models.Session{}))

	user, token, err := auth.Register(ctx, &models.RegisterRequest{Email: "a@x.com", Password: "pw", Name: "Ann"})
	require.Error(t, err)
	assert.Nil(t, user)
	assert.Empty(t, token)

	count, err := NewUserService(db).CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	auth := newTestAuth(t, db)
	ctx := context.Background()

	registered, _, err := auth.Register(ctx, &models.RegisterRequest{Email: "a@x.com", Password: "pw", Name: "Ann"})
	require.NoError(t, err)

	cases := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "a@x.com", "pw", nil},
		{"email case", "A@X.com", "pw", nil},
		{"wrong password", "a@x.com", "pw2", ErrWrongPassword},
		{"empty password", "a@x.com", "", ErrWrongPassword},
		{"unknown email", "b@x.com", "pw", ErrUnknownEmail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user, token, err := auth.Login(ctx, &models.LoginRequest{Email: tc.email, Password: tc.password})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.Nil(t, user)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, user.ID)
			assert.Equal(t, registered.ID, auth.CurrentIdentity(ctx, token).UserID())
		})
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	db := newTestDB(t)
	auth := newTestAuth(t, db)
	ctx := context.Background()

	_, token, err := auth.Register(ctx, &models.RegisterRequest{Email: "a@x.com", Password: "pw", Name: "Ann"})
	require.NoError(t, err)

	_, other, err := auth.Login(ctx, &models.LoginRequest{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, token))
	assert.True(t, auth.CurrentIdentity(ctx, token).IsAnonymous())
	assert.False(t, auth.CurrentIdentity(ctx, other).IsAnonymous())

	assert.NoError(t, auth.Logout(ctx, token))
	assert.NoError(t, auth.Logout(ctx, "garbage"))
}

func TestCurrentIdentityAnonymousCases(t *testing.T) {
	db := newTestDB(t)
	auth := newTestAuth(t, db)
	ctx := context.Background()

	user, token, err := auth.Register(ctx, &models.RegisterRequest{Email: "a@x.com", Password: "pw", Name: "Ann"})
	require.NoError(t, err)

	assert.True(t, auth.CurrentIdentity(ctx, "").IsAnonymous())
	assert.True(t, auth.CurrentIdentity(ctx, "not-a-jwt").IsAnonymous())

	forged, err := utils.GenerateSessionToken("other-secret", user.ID, "x", time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, auth.CurrentIdentity(ctx, forged).IsAnonymous())

	claims, err := utils.ValidateSessionToken("test-secret", token)
	require.NoError(t, err)
	swapped, err := utils.GenerateSessionToken("test-secret", user.ID+1, claims.ID, time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, auth.CurrentIdentity(ctx, swapped).IsAnonymous())
}

func TestCurrentIdentityExpiredSession(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	now := time.Now()
	sessions := NewSessionService(db, time.Hour).WithClock(func() time.Time { return now })
	auth := NewAuthService(NewUserService(db), sessions, "test-secret", zap.NewNop())

	_, token, err := auth.Register(ctx, &models.RegisterRequest{Email: "a@x.com", Password: "pw", Name: "Ann"})
	require.NoError(t, err)
	require.False(t, auth.CurrentIdentity(ctx, token).IsAnonymous())

	now = now.Add(2 * time.Hour)
	assert.True(t, auth.CurrentIdentity(ctx, token).IsAnonymous())
}
