package fakesessionrepo

import (
	"sync"

	"github.com/cardlinkhq/cardlink-server/internal/apperrors"
	"github.com/cardlinkhq/cardlink-server/sessions"
)

var (
	_ sessions.SessionRepo   = (*FakeSessionRepo)(nil)
	_ sessions.ChallengeRepo = (*FakeChallengeRepo)(nil)
)

// FakeSessionRepo is an in-memory session store for tests and
// zero-dependency runs.
type FakeSessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*sessions.Session
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		sessions: make(map[string]*sessions.Session),
	}
}

func (sr *FakeSessionRepo) Upsert(session *sessions.Session) error {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	copied := *session
	sr.sessions[session.ID] = &copied
	return nil
}

func (sr *FakeSessionRepo) Get(sessionID string) (*sessions.Session, error) {
	sr.mu.RLock()
	defer sr.mu.RUnlock()

	session, ok := sr.sessions[sessionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (sr *FakeSessionRepo) Delete(sessionID string) error {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	delete(sr.sessions, sessionID)
	return nil
}

// FakeChallengeRepo is the in-memory challenge store. Upsert overwrites the
// previous challenge for the same identity.
type FakeChallengeRepo struct {
	mu         sync.RWMutex
	challenges map[string]*sessions.Challenge
}

func NewFakeChallengeRepo() *FakeChallengeRepo {
	return &FakeChallengeRepo{
		challenges: make(map[string]*sessions.Challenge),
	}
}

func (cr *FakeChallengeRepo) Upsert(challenge *sessions.Challenge) error {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	copied := *challenge
	cr.challenges[challenge.Identity] = &copied
	return nil
}

func (cr *FakeChallengeRepo) Get(identity string) (*sessions.Challenge, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	challenge, ok := cr.challenges[identity]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *challenge
	return &copied, nil
}

func (cr *FakeChallengeRepo) Delete(identity string) error {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	delete(cr.challenges, identity)
	return nil
}
