package sessions

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/cardlinkhq/cardlink-server/companies"
	"github.com/cardlinkhq/cardlink-server/internal/apperrors"
	"github.com/cardlinkhq/cardlink-server/notify"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	defaultChallengeExpiry = 10 * time.Minute
	defaultSessionExpiry   = 24 * time.Hour
)

// Repos holds all repository dependencies for the Authority
type Repos struct {
	Sessions   SessionRepo    // Durable session store
	Challenges ChallengeRepo  // Pending login challenges
	Companies  companies.Repo // Company accounts for credential login
}

// Authority issues, validates, and revokes sessions. It is the single source
// of truth for "who is calling" across the API surface.
type Authority struct {
	repos           Repos
	sender          notify.Sender
	adminIdentities map[string]struct{} // lowercase allow-list for challenge login
	challengeExpiry time.Duration
	sessionExpiry   time.Duration
	bypassCode      string           // optional fixed code, wired only in non-production
	nowTime         func() time.Time // nowTime function (injectable for testing)
	generateCode    func() (string, error)
}

// Option modifies the Authority instance.
type Option func(*Authority)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(a *Authority) {
		a.nowTime = nowFunc
	}
}

// WithChallengeExpiry overrides the default 10 minute challenge lifetime.
func WithChallengeExpiry(d time.Duration) Option {
	return func(a *Authority) {
		a.challengeExpiry = d
	}
}

// WithSessionExpiry overrides the default 24 hour session lifetime.
func WithSessionExpiry(d time.Duration) Option {
	return func(a *Authority) {
		a.sessionExpiry = d
	}
}

// WithStaticBypassCode accepts a fixed code in place of an issued challenge.
// The caller decides whether to wire it at all; the Authority itself has no
// default and production wiring must never set one.
func WithStaticBypassCode(code string) Option {
	return func(a *Authority) {
		a.bypassCode = code
	}
}

// WithCodeGenerator sets the challenge code generator (primarily for testing)
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(a *Authority) {
		a.generateCode = gen
	}
}

// NewAuthority initializes the session authority. adminIdentities is the
// injected allow-list of administrator emails permitted to request a
// challenge; matching is case-insensitive.
func NewAuthority(repos Repos, adminIdentities []string, sender notify.Sender, options ...Option) (*Authority, error) {
	if repos.Sessions == nil {
		return nil, errors.New("[NewAuthority] Sessions repo is required")
	}
	if repos.Challenges == nil {
		return nil, errors.New("[NewAuthority] Challenges repo is required")
	}
	if repos.Companies == nil {
		return nil, errors.New("[NewAuthority] Companies repo is required")
	}
	if sender == nil {
		return nil, errors.New("[NewAuthority] sender is required")
	}

	allowed := make(map[string]struct{}, len(adminIdentities))
	for _, identity := range adminIdentities {
		allowed[strings.ToLower(strings.TrimSpace(identity))] = struct{}{}
	}

	authority := &Authority{
		repos:           repos,
		sender:          sender,
		adminIdentities: allowed,
		challengeExpiry: defaultChallengeExpiry,
		sessionExpiry:   defaultSessionExpiry,
		nowTime:         time.Now,
		generateCode:    generateNumericCode,
	}

	for _, opt := range options {
		opt(authority)
	}

	return authority, nil
}

// IssueChallenge generates a one-time 6-digit code for an administrator
// identity and hands it to the delivery port. Any existing challenge for the
// identity is overwritten. Identities outside the allow-list get
// ErrUnauthorized.
func (a *Authority) IssueChallenge(identity string) (string, error) {
	identity = strings.ToLower(strings.TrimSpace(identity))
	if _, ok := a.adminIdentities[identity]; !ok {
		return "", apperrors.ErrUnauthorized
	}

	code, err := a.generateCode()
	if err != nil {
		return "", errors.Wrap(err, "[Authority.IssueChallenge] code generation")
	}

	challenge := &Challenge{
		Identity:  identity,
		Code:      code,
		ExpiresAt: a.nowTime().Add(a.challengeExpiry),
	}
	if err := a.repos.Challenges.Upsert(challenge); err != nil {
		return "", errors.Wrap(err, "[Authority.IssueChallenge] challenge upsert")
	}

	if err := a.sender.Send(identity, code); err != nil {
		return "", errors.Wrap(err, "[Authority.IssueChallenge] send")
	}
	return code, nil
}

// VerifyChallenge consumes a pending challenge and creates a super-admin
// session. The challenge is single use: it is deleted on success, and also
// on expiry so a repeated check fails the same way.
func (a *Authority) VerifyChallenge(identity, code string) (*Session, error) {
	identity = strings.ToLower(strings.TrimSpace(identity))

	if a.bypassCode != "" && code == a.bypassCode {
		if _, ok := a.adminIdentities[identity]; !ok {
			return nil, apperrors.ErrUnauthorized
		}
		return a.createSession(identity, RoleSuperAdmin, "")
	}

	challenge, err := a.repos.Challenges.Get(identity)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNoPendingChallenge
		}
		return nil, errors.Wrap(err, "[Authority.VerifyChallenge] challenge get")
	}

	if !a.nowTime().Before(challenge.ExpiresAt) {
		if err := a.repos.Challenges.Delete(identity); err != nil {
			return nil, errors.Wrap(err, "[Authority.VerifyChallenge] expired challenge delete")
		}
		return nil, apperrors.ErrChallengeExpired
	}

	if challenge.Code != code {
		return nil, apperrors.ErrInvalidCode
	}

	if err := a.repos.Challenges.Delete(identity); err != nil {
		return nil, errors.Wrap(err, "[Authority.VerifyChallenge] challenge delete")
	}

	return a.createSession(identity, RoleSuperAdmin, "")
}

// LoginCompany checks a company's credentials and creates a company-admin
// session bound to the company. Unknown email and wrong password are
// indistinguishable to the caller: both are ErrInvalidCredentials.
func (a *Authority) LoginCompany(email, password string) (*Session, error) {
	company, err := a.repos.Companies.GetByEmail(email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "[Authority.LoginCompany] company lookup")
	}

	if !companies.CheckPasswordHash(password, company.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return a.createSession(company.Email, RoleCompanyAdmin, company.ID)
}

// Validate resolves a session token to a caller Context. Expiry is checked
// at read time against the injected clock; a session is valid strictly
// before ExpiresAt. Expired records are deleted lazily, there is no sweep.
func (a *Authority) Validate(sessionID string) (*Context, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, apperrors.ErrUnauthorized
	}

	session, err := a.repos.Sessions.Get(sessionID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, errors.Wrap(err, "[Authority.Validate] session get")
	}

	if !a.nowTime().Before(session.ExpiresAt) {
		if err := a.repos.Sessions.Delete(sessionID); err != nil {
			return nil, errors.Wrap(err, "[Authority.Validate] expired session delete")
		}
		return nil, apperrors.ErrUnauthorized
	}

	return &Context{
		SessionID: session.ID,
		Identity:  session.Identity,
		Role:      session.Role,
		CompanyID: session.CompanyID,
	}, nil
}

// Revoke deletes a session. Revoking an unknown token is not an error.
func (a *Authority) Revoke(sessionID string) error {
	if err := a.repos.Sessions.Delete(sessionID); err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return errors.Wrap(err, "[Authority.Revoke] session delete")
	}
	return nil
}

func (a *Authority) createSession(identity string, role Role, companyID string) (*Session, error) {
	now := a.nowTime()
	session := &Session{
		ID:        uuid.New().String(),
		Identity:  identity,
		Role:      role,
		CompanyID: companyID,
		CreatedAt: now,
		ExpiresAt: now.Add(a.sessionExpiry),
	}
	if err := a.repos.Sessions.Upsert(session); err != nil {
		return nil, errors.Wrap(err, "[Authority.createSession] session upsert")
	}
	return session, nil
}

// generateNumericCode returns a uniformly random 6-digit code with leading
// zeros preserved.
func generateNumericCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	digits := []byte("000000")
	v := n.Int64()
	for i := len(digits) - 1; i >= 0 && v > 0; i-- {
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	return string(digits), nil
}
