package wallet

import (
	"fmt"
	"time"

	"github.com/cardlinkhq/cardlink-server/companies"
	"github.com/cardlinkhq/cardlink-server/contacts"
	"github.com/cardlinkhq/cardlink-server/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
)

const (
	googleSaveBaseURL = "https://pay.google.com/gp/v/save/"
	googleAudience    = "google"
	googleTokenType   = "savetowallet"
	googleClassSuffix = "business_card"

	// Google object identifiers are length-limited; the contact id is
	// truncated to this prefix before the timestamp suffix is appended.
	objectIDPrefixMax = 20
)

var _ Builder = (*GoogleBuilder)(nil)

// GoogleBuilder produces "Save to Google Wallet" links: a generic pass
// object wrapped in a signed RS256 JWT embedded in the fixed save URL.
type GoogleBuilder struct {
	cred    *GoogleCredential
	nowTime func() time.Time
}

func NewGoogleBuilder(cred *GoogleCredential, nowTime func() time.Time) *GoogleBuilder {
	return &GoogleBuilder{cred: cred, nowTime: nowTime}
}

func (b *GoogleBuilder) Provider() Provider {
	return ProviderGoogle
}

// BuildPayload constructs the claims envelope around a single generic pass
// object. Every build produces a fresh object id (timestamp suffix); passes
// are not deduplicated.
func (b *GoogleBuilder) BuildPayload(contact *contacts.Contact, company *companies.Company) (jwt.MapClaims, error) {
	now := b.nowTime()
	objectID := fmt.Sprintf("%s.%s", b.cred.IssuerID, ObjectIDSuffix(contact.ID, now))
	classID := fmt.Sprintf("%s.%s", b.cred.IssuerID, googleClassSuffix)

	passObject := map[string]any{
		"id":      objectID,
		"classId": classID,
		"state":   "ACTIVE",
		"cardTitle": map[string]any{
			"defaultValue": localizedString(company.Name),
		},
		"header": map[string]any{
			"defaultValue": localizedString(contact.DisplayName),
		},
		"subheader": map[string]any{
			"defaultValue": localizedString(contact.Title),
		},
		"textModulesData": []map[string]any{
			{"id": "phone", "header": "Phone", "body": contact.Phone},
			{"id": "email", "header": "Email", "body": contact.Email},
		},
	}
	if company.LogoURL != "" {
		passObject["logo"] = map[string]any{
			"sourceUri": map[string]any{"uri": company.LogoURL},
		}
	}

	origins := b.cred.Origins
	if origins == nil {
		origins = []string{}
	}

	return jwt.MapClaims{
		"iss":     b.cred.IssuerEmail,
		"aud":     googleAudience,
		"typ":     googleTokenType,
		"iat":     now.Unix(),
		"origins": origins,
		"payload": map[string]any{
			"genericObjects": []map[string]any{passObject},
		},
	}, nil
}

func (b *GoogleBuilder) Sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signedToken, err := token.SignedString(b.cred.PrivateKey)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrSigningFailed, "google: %v", err)
	}
	return signedToken, nil
}

func (b *GoogleBuilder) ComposeURL(token string) string {
	return googleSaveBaseURL + token
}

// ObjectIDSuffix derives the provider-facing object id from a contact id:
// a bounded prefix plus a millisecond timestamp, restricted to
// [A-Za-z0-9_-]. Disallowed characters become underscores.
func ObjectIDSuffix(contactID string, now time.Time) string {
	prefix := contactID
	if len(prefix) > objectIDPrefixMax {
		prefix = prefix[:objectIDPrefixMax]
	}
	return fmt.Sprintf("%s_%d", sanitizeIdentifier(prefix), now.UnixMilli())
}

func sanitizeIdentifier(s string) string {
	out := []byte(s)
	for i := 0; i < len(out); i++ {
		c := out[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			out[i] = '_'
		}
	}
	return string(out)
}

func localizedString(value string) map[string]any {
	return map[string]any{
		"language": "en",
		"value":    value,
	}
}
