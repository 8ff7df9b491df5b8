package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	user := mustCreateUser(t, db, "a@x.com", "Ann")
	sessions := NewSessionService(db, time.Hour)
	ctx := context.Background()

	session, err := sessions.CreateSession(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, session.ID, 36)

	loaded, err := sessions.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loaded.UserID)

	require.NoError(t, sessions.DeleteSession(ctx, session.ID))
	_, err = sessions.GetSession(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, sessions.DeleteSession(ctx, session.ID), ErrSessionNotFound)
}

func TestCleanupExpiredSessions(t *testing.T) {
	db := newTestDB(t)
	user := mustCreateUser(t, db, "a@x.com", "Ann")
	ctx := context.Background()

	now := time.Now()
	sessions := NewSessionService(db, time.Hour).WithClock(func() time.Time { return now })

	old, err := sessions.CreateSession(ctx, user.ID)
	require.NoError(t, err)

	now = now.Add(90 * time.Minute)
	fresh, err := sessions.CreateSession(ctx, user.ID)
	require.NoError(t, err)

	purged, err := sessions.CleanupExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = sessions.GetSession(ctx, old.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = sessions.GetSession(ctx, fresh.ID)
	assert.NoError(t, err)
}
