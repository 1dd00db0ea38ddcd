package redisrepo_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cardlinkhq/cardlink-server/internal/apperrors"
	"github.com/cardlinkhq/cardlink-server/sessions"
	"github.com/cardlinkhq/cardlink-server/sessions/redisrepo"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestSessionRepoRoundTrip(t *testing.T) {
	repo := redisrepo.NewSessionRepo(setupRedis(t))

	now := time.Now().UTC().Truncate(time.Second)
	session := &sessions.Session{
		ID:        "session-1",
		Identity:  "admin@example.com",
		Role:      sessions.RoleSuperAdmin,
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
	require.NoError(t, repo.Upsert(session))

	loaded, err := repo.Get("session-1")
	require.NoError(t, err)
	require.Equal(t, session.Identity, loaded.Identity)
	require.Equal(t, session.Role, loaded.Role)
	require.True(t, session.ExpiresAt.Equal(loaded.ExpiresAt))
}

func TestSessionRepoGetUnknown(t *testing.T) {
	repo := redisrepo.NewSessionRepo(setupRedis(t))

	_, err := repo.Get("missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSessionRepoDelete(t *testing.T) {
	repo := redisrepo.NewSessionRepo(setupRedis(t))

	session := &sessions.Session{ID: "session-1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Upsert(session))
	require.NoError(t, repo.Delete("session-1"))

	_, err := repo.Get("session-1")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	// Deleting again is fine
	require.NoError(t, repo.Delete("session-1"))
}

func TestChallengeRepoOverwrites(t *testing.T) {
	repo := redisrepo.NewChallengeRepo(setupRedis(t))

	expiry := time.Now().Add(10 * time.Minute)
	require.NoError(t, repo.Upsert(&sessions.Challenge{Identity: "admin@example.com", Code: "111111", ExpiresAt: expiry}))
	require.NoError(t, repo.Upsert(&sessions.Challenge{Identity: "admin@example.com", Code: "222222", ExpiresAt: expiry}))

	challenge, err := repo.Get("admin@example.com")
	require.NoError(t, err)
	require.Equal(t, "222222", challenge.Code)
}

func TestChallengeRepoTTLEviction(t *testing.T) {
	mr := miniredis.RunT(t)
	repo := redisrepo.NewChallengeRepo(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	require.NoError(t, repo.Upsert(&sessions.Challenge{
		Identity:  "admin@example.com",
		Code:      "111111",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}))

	mr.FastForward(11 * time.Minute)

	_, err := repo.Get("admin@example.com")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
