package wallet

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"os"
	"strings"

	"github.com/cardlinkhq/cardlink-server/internal/apperrors"
	"github.com/cardlinkhq/cardlink-server/internal/config"
	"github.com/pkg/errors"
)

// GoogleCredential is the signing configuration for Google Wallet passes.
type GoogleCredential struct {
	IssuerID    string
	IssuerEmail string
	PrivateKey  *rsa.PrivateKey
	Origins     []string
}

// SamsungCredential is the signing configuration for Samsung Wallet passes.
type SamsungCredential struct {
	PartnerID     string
	CardID        string
	CertificateID string
	PrivateKey    *rsa.PrivateKey
}

// Store holds the per-provider signing configuration. Loaded once at process
// start and treated as immutable; no hot reload. A provider is configured
// iff all of its required fields are present; malformed key material is held
// back as a key-import error surfaced when the credential is requested.
type Store struct {
	google     *GoogleCredential
	googleSet  bool
	googleErr  error
	samsung    *SamsungCredential
	samsungSet bool
	samsungErr error
}

// NewStore reads the wallet configuration for both providers.
func NewStore(cfg config.WalletConfig) *Store {
	s := &Store{}
	s.loadGoogle(cfg)
	s.loadSamsung(cfg)
	return s
}

// Configured reports whether all required secrets for the provider are
// present. It is true even when the key material fails to parse; that
// failure surfaces as a key-import error instead.
func (s *Store) Configured(provider Provider) bool {
	switch provider {
	case ProviderGoogle:
		return s.googleSet
	case ProviderSamsung:
		return s.samsungSet
	}
	return false
}

// Google hands out the validated Google credential.
func (s *Store) Google() (*GoogleCredential, error) {
	if !s.googleSet {
		return nil, apperrors.ErrProviderNotConfigured
	}
	if s.googleErr != nil {
		return nil, s.googleErr
	}
	return s.google, nil
}

// Samsung hands out the validated Samsung credential.
func (s *Store) Samsung() (*SamsungCredential, error) {
	if !s.samsungSet {
		return nil, apperrors.ErrProviderNotConfigured
	}
	if s.samsungErr != nil {
		return nil, s.samsungErr
	}
	return s.samsung, nil
}

func (s *Store) loadGoogle(cfg config.WalletConfig) {
	issuerID := strings.TrimSpace(cfg.GetGoogleIssuerID())
	account := strings.TrimSpace(cfg.GetGoogleServiceAccount())
	if issuerID == "" || account == "" {
		return
	}
	s.googleSet = true

	material, err := resolveKeyMaterial(account)
	if err != nil {
		s.googleErr = apperrors.Wrapf(apperrors.ErrKeyImport, "google: %v", err)
		return
	}

	email, key, err := parseServiceAccount(material)
	if err != nil {
		s.googleErr = apperrors.Wrapf(apperrors.ErrKeyImport, "google: %v", err)
		return
	}
	if email == "" {
		email = strings.TrimSpace(cfg.GetGoogleIssuerEmail())
	}
	if email == "" {
		s.googleErr = apperrors.Wrapf(apperrors.ErrKeyImport, "google: no issuer email in key material or config")
		return
	}

	s.google = &GoogleCredential{
		IssuerID:    issuerID,
		IssuerEmail: email,
		PrivateKey:  key,
		Origins:     cfg.GetGoogleOrigins(),
	}
}

func (s *Store) loadSamsung(cfg config.WalletConfig) {
	partnerID := strings.TrimSpace(cfg.GetSamsungPartnerID())
	cardID := strings.TrimSpace(cfg.GetSamsungCardID())
	certificateID := strings.TrimSpace(cfg.GetSamsungCertificateID())
	keyValue := strings.TrimSpace(cfg.GetSamsungPrivateKey())
	if partnerID == "" || cardID == "" || certificateID == "" || keyValue == "" {
		return
	}
	s.samsungSet = true

	material, err := resolveKeyMaterial(keyValue)
	if err != nil {
		s.samsungErr = apperrors.Wrapf(apperrors.ErrKeyImport, "samsung: %v", err)
		return
	}
	key, err := parseRSAPrivateKeyPEM(material)
	if err != nil {
		s.samsungErr = apperrors.Wrapf(apperrors.ErrKeyImport, "samsung: %v", err)
		return
	}

	s.samsung = &SamsungCredential{
		PartnerID:     partnerID,
		CardID:        cardID,
		CertificateID: certificateID,
		PrivateKey:    key,
	}
}

// resolveKeyMaterial accepts inline PEM/JSON text or a filesystem path. The
// literal form is tried first; only values that look like neither are read
// from disk.
func resolveKeyMaterial(value string) ([]byte, error) {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "-----BEGIN") || strings.HasPrefix(trimmed, "{") {
		return []byte(trimmed), nil
	}
	data, err := os.ReadFile(trimmed)
	if err != nil {
		return nil, errors.Wrap(err, "key material is neither inline PEM/JSON nor a readable file")
	}
	return data, nil
}

// serviceAccountKey is the subset of a Google service-account JSON we need.
type serviceAccountKey struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// parseServiceAccount handles both the service-account JSON form and a bare
// PEM private key. For bare PEM the issuer email comes from config instead.
func parseServiceAccount(material []byte) (email string, key *rsa.PrivateKey, err error) {
	trimmed := strings.TrimSpace(string(material))
	if strings.HasPrefix(trimmed, "{") {
		var account serviceAccountKey
		if err := json.Unmarshal([]byte(trimmed), &account); err != nil {
			return "", nil, errors.Wrap(err, "failed to decode service account JSON")
		}
		if account.PrivateKey == "" {
			return "", nil, errors.New("service account JSON has no private_key")
		}
		key, err := parseRSAPrivateKeyPEM([]byte(account.PrivateKey))
		if err != nil {
			return "", nil, err
		}
		return account.ClientEmail, key, nil
	}

	key, err = parseRSAPrivateKeyPEM(material)
	if err != nil {
		return "", nil, err
	}
	return "", key, nil
}

// parseRSAPrivateKeyPEM loads an RSA private key from PEM, accepting both
// PKCS#8 (what Google issues) and PKCS#1 blocks.
func parseRSAPrivateKeyPEM(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, errors.New("failed to decode PEM block")
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("private key is not RSA")
		}
		return rsaKey, nil
	}

	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse RSA private key")
	}
	return key, nil
}
