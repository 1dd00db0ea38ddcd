// Package redisrepo stores sessions and login challenges in Redis. Records
// carry a TTL matching their expiry so Redis evicts stale entries on its
// own, but the authority still checks ExpiresAt at read time; the TTL is a
// cleanup mechanism, not the source of truth.
package redisrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cardlinkhq/cardlink-server/internal/apperrors"
	"github.com/cardlinkhq/cardlink-server/sessions"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix   = "cls:session:"
	challengeKeyPrefix = "cls:challenge:"
)

var (
	_ sessions.SessionRepo   = (*SessionRepo)(nil)
	_ sessions.ChallengeRepo = (*ChallengeRepo)(nil)
)

type SessionRepo struct {
	redis   *redis.Client
	nowTime func() time.Time
}

func NewSessionRepo(redisClient *redis.Client) *SessionRepo {
	return &SessionRepo{redis: redisClient, nowTime: time.Now}
}

func (sr *SessionRepo) Upsert(session *sessions.Session) error {
	encoded, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "[SessionRepo.Upsert] encode")
	}
	ttl := ttlUntil(session.ExpiresAt, sr.nowTime())
	if err := sr.redis.Set(context.Background(), sessionKeyPrefix+session.ID, encoded, ttl).Err(); err != nil {
		return errors.Wrap(err, "[SessionRepo.Upsert] redis set")
	}
	return nil
}

func (sr *SessionRepo) Get(sessionID string) (*sessions.Session, error) {
	data, err := sr.redis.Get(context.Background(), sessionKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[SessionRepo.Get] redis get")
	}
	var session sessions.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrap(err, "[SessionRepo.Get] decode")
	}
	return &session, nil
}

func (sr *SessionRepo) Delete(sessionID string) error {
	if err := sr.redis.Del(context.Background(), sessionKeyPrefix+sessionID).Err(); err != nil {
		return errors.Wrap(err, "[SessionRepo.Delete] redis del")
	}
	return nil
}

type ChallengeRepo struct {
	redis   *redis.Client
	nowTime func() time.Time
}

func NewChallengeRepo(redisClient *redis.Client) *ChallengeRepo {
	return &ChallengeRepo{redis: redisClient, nowTime: time.Now}
}

func (cr *ChallengeRepo) Upsert(challenge *sessions.Challenge) error {
	encoded, err := json.Marshal(challenge)
	if err != nil {
		return errors.Wrap(err, "[ChallengeRepo.Upsert] encode")
	}
	ttl := ttlUntil(challenge.ExpiresAt, cr.nowTime())
	if err := cr.redis.Set(context.Background(), challengeKeyPrefix+challenge.Identity, encoded, ttl).Err(); err != nil {
		return errors.Wrap(err, "[ChallengeRepo.Upsert] redis set")
	}
	return nil
}

func (cr *ChallengeRepo) Get(identity string) (*sessions.Challenge, error) {
	data, err := cr.redis.Get(context.Background(), challengeKeyPrefix+identity).Bytes()
	if err == redis.Nil {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[ChallengeRepo.Get] redis get")
	}
	var challenge sessions.Challenge
	if err := json.Unmarshal(data, &challenge); err != nil {
		return nil, errors.Wrap(err, "[ChallengeRepo.Get] decode")
	}
	return &challenge, nil
}

func (cr *ChallengeRepo) Delete(identity string) error {
	if err := cr.redis.Del(context.Background(), challengeKeyPrefix+identity).Err(); err != nil {
		return errors.Wrap(err, "[ChallengeRepo.Delete] redis del")
	}
	return nil
}

// ttlUntil keeps a small floor so a record expiring between now and the
// write still lands in Redis; Validate rejects it at read time anyway.
func ttlUntil(expiresAt, now time.Time) time.Duration {
	ttl := expiresAt.Sub(now)
	if ttl < time.Second {
		ttl = time.Second
	}
	return ttl
}
