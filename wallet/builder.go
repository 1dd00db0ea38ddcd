package wallet

import (
	"strings"
	"time"

	"github.com/cardlinkhq/cardlink-server/companies"
	"github.com/cardlinkhq/cardlink-server/contacts"
	"github.com/cardlinkhq/cardlink-server/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Provider selects a wallet vendor.
type Provider string

const (
	ProviderGoogle  Provider = "google"
	ProviderSamsung Provider = "samsung"
)

// ParseProvider maps a request path segment to a Provider.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(s)) {
	case ProviderGoogle:
		return ProviderGoogle, nil
	case ProviderSamsung:
		return ProviderSamsung, nil
	}
	return "", apperrors.Wrapf(apperrors.ErrValidation, "unknown wallet provider %q", s)
}

// Builder turns a contact/company pair into a signed save link for one
// provider. Building is a pure synchronous transform: no network calls to
// the provider happen server side; the client's wallet app performs the
// actual save.
type Builder interface {
	Provider() Provider
	BuildPayload(contact *contacts.Contact, company *companies.Company) (jwt.MapClaims, error)
	Sign(claims jwt.MapClaims) (string, error)
	ComposeURL(token string) string
}

// Service composes the credential store and the per-provider builders.
type Service struct {
	store   *Store
	nowTime func() time.Time // nowTime function (injectable for testing)
}

// ServiceOption modifies the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func NewService(store *Store, options ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, errors.New("[wallet.NewService] credential store is required")
	}
	service := &Service{
		store:   store,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(service)
	}
	return service, nil
}

// Configured reports whether the provider can sign at all.
func (s *Service) Configured(provider Provider) bool {
	return s.store.Configured(provider)
}

// SaveLink builds, signs, and wraps a pass for the given provider. An
// unconfigured provider fails before any payload is built or signing is
// attempted.
func (s *Service) SaveLink(provider Provider, contact *contacts.Contact, company *companies.Company) (string, error) {
	if contact == nil || strings.TrimSpace(contact.ID) == "" || strings.TrimSpace(contact.DisplayName) == "" {
		return "", apperrors.Wrapf(apperrors.ErrValidation, "contact id and display name are required")
	}
	if company == nil {
		return "", apperrors.Wrapf(apperrors.ErrValidation, "company is required")
	}
	if !s.store.Configured(provider) {
		return "", apperrors.ErrProviderNotConfigured
	}

	builder, err := s.builder(provider)
	if err != nil {
		return "", err
	}

	claims, err := builder.BuildPayload(contact, company)
	if err != nil {
		return "", errors.Wrapf(err, "[wallet.SaveLink] %s payload", provider)
	}

	token, err := builder.Sign(claims)
	if err != nil {
		return "", errors.Wrapf(err, "[wallet.SaveLink] %s sign", provider)
	}

	return builder.ComposeURL(token), nil
}

func (s *Service) builder(provider Provider) (Builder, error) {
	switch provider {
	case ProviderGoogle:
		cred, err := s.store.Google()
		if err != nil {
			return nil, err
		}
		return NewGoogleBuilder(cred, s.nowTime), nil
	case ProviderSamsung:
		cred, err := s.store.Samsung()
		if err != nil {
			return nil, err
		}
		return NewSamsungBuilder(cred, s.nowTime), nil
	}
	return nil, apperrors.Wrapf(apperrors.ErrValidation, "unknown wallet provider %q", provider)
}
