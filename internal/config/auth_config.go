package config

import (
	"strings"
	"time"
)

type AuthConfig interface {
	GetAdminIdentities() []string
	GetChallengeExpiry() time.Duration
	GetSessionExpiry() time.Duration
	GetDebugBypassCode() string
}

type Auth struct{}

var _ AuthConfig = Auth{}

// GetAdminIdentities returns the email addresses allowed to request a
// super-admin login challenge. Comma separated in ADMIN_IDENTITIES.
func (Auth) GetAdminIdentities() []string {
	raw := GetEnv("ADMIN_IDENTITIES", "")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	identities := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			identities = append(identities, p)
		}
	}
	return identities
}

func (Auth) GetChallengeExpiry() time.Duration {
	return 10 * time.Minute
}

func (Auth) GetSessionExpiry() time.Duration {
	return 24 * time.Hour
}

// GetDebugBypassCode returns a fixed code that substitutes for challenge
// verification. Only honoured outside production; never has a default.
func (Auth) GetDebugBypassCode() string {
	return GetEnv("AUTH_DEBUG_CODE", "")
}
