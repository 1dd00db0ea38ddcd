package sessions

// SessionRepo is the durable session store. Implementations return
// apperrors.ErrNotFound for unknown IDs; Delete of an absent ID is not an
// error.
type SessionRepo interface {
	Upsert(session *Session) error
	Get(sessionID string) (*Session, error)
	Delete(sessionID string) error
}

// ChallengeRepo stores pending login challenges keyed by identity.
// Upsert overwrites any existing challenge for the same identity.
type ChallengeRepo interface {
	Upsert(challenge *Challenge) error
	Get(identity string) (*Challenge, error)
	Delete(identity string) error
}
