package config

import "strings"

// WalletConfig exposes the per-provider signing configuration. Key material
// values accept either inline PEM/JSON text or a filesystem path; the wallet
// package resolves which form was supplied.
type WalletConfig interface {
	GetGoogleIssuerID() string
	GetGoogleIssuerEmail() string
	GetGoogleServiceAccount() string
	GetGoogleOrigins() []string
	GetSamsungPartnerID() string
	GetSamsungCardID() string
	GetSamsungCertificateID() string
	GetSamsungPrivateKey() string
}

type Wallet struct{}

var _ WalletConfig = Wallet{}

func (Wallet) GetGoogleIssuerID() string {
	return GetEnv("GOOGLE_WALLET_ISSUER_ID", "")
}

// GetGoogleIssuerEmail returns the signing identity when the key material is
// supplied as bare PEM rather than a service-account JSON.
func (Wallet) GetGoogleIssuerEmail() string {
	return GetEnv("GOOGLE_WALLET_ISSUER_EMAIL", "")
}

// GetGoogleServiceAccount returns the Google service-account key: inline
// JSON, inline PEM, or a path to either.
func (Wallet) GetGoogleServiceAccount() string {
	return GetEnv("GOOGLE_WALLET_SERVICE_ACCOUNT", "")
}

func (Wallet) GetGoogleOrigins() []string {
	raw := GetEnv("GOOGLE_WALLET_ORIGINS", "")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func (Wallet) GetSamsungPartnerID() string {
	return GetEnv("SAMSUNG_WALLET_PARTNER_ID", "")
}

func (Wallet) GetSamsungCardID() string {
	return GetEnv("SAMSUNG_WALLET_CARD_ID", "")
}

func (Wallet) GetSamsungCertificateID() string {
	return GetEnv("SAMSUNG_WALLET_CERTIFICATE_ID", "")
}

func (Wallet) GetSamsungPrivateKey() string {
	return GetEnv("SAMSUNG_WALLET_PRIVATE_KEY", "")
}
