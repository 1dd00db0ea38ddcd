package wallet

import (
	"fmt"
	"net/url"
	"time"

	"github.com/cardlinkhq/cardlink-server/companies"
	"github.com/cardlinkhq/cardlink-server/contacts"
	"github.com/cardlinkhq/cardlink-server/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
)

const (
	samsungDeepLinkBase = "https://a.swallet.link/atw/v3/"
	samsungCardType     = "generic"
	samsungCardSubType  = "others"
	samsungTokenCty     = "CARD"
	samsungTokenVersion = "3"
)

var _ Builder = (*SamsungBuilder)(nil)

// SamsungBuilder produces "Add to Samsung Wallet" deep links: card data
// signed as an RS256 JWS whose header carries the partner certificate id,
// embedded as a query-encoded parameter on the fixed deep-link base.
type SamsungBuilder struct {
	cred    *SamsungCredential
	nowTime func() time.Time
}

func NewSamsungBuilder(cred *SamsungCredential, nowTime func() time.Time) *SamsungBuilder {
	return &SamsungBuilder{cred: cred, nowTime: nowTime}
}

func (b *SamsungBuilder) Provider() Provider {
	return ProviderSamsung
}

// BuildPayload constructs the card-data envelope: one card entry with
// per-field attributes, stamped with the partner and card identifiers.
func (b *SamsungBuilder) BuildPayload(contact *contacts.Contact, company *companies.Company) (jwt.MapClaims, error) {
	now := b.nowTime()
	millis := now.UnixMilli()

	attributes := map[string]any{
		"title":      contact.DisplayName,
		"subtitle1":  contact.Title,
		"groupingId": company.Name,
		"phone":      contact.Phone,
		"email":      contact.Email,
		"location":   contact.Location,
	}
	if company.LogoURL != "" {
		attributes["logoImage"] = company.LogoURL
	}

	return jwt.MapClaims{
		"cardId":    b.cred.CardID,
		"partnerId": b.cred.PartnerID,
		"iat":       now.Unix(),
		"card": map[string]any{
			"type":    samsungCardType,
			"subType": samsungCardSubType,
			"data": []map[string]any{
				{
					"refId":      fmt.Sprintf("%s-%d", sanitizeIdentifier(contact.ID), millis),
					"createdAt":  millis,
					"updatedAt":  millis,
					"language":   "en",
					"attributes": attributes,
				},
			},
		},
	}, nil
}

// Sign produces the compact JWS. The header carries the configured
// certificate id so Samsung can pick the matching partner certificate.
func (b *SamsungBuilder) Sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["cty"] = samsungTokenCty
	token.Header["ver"] = samsungTokenVersion
	token.Header["certificateId"] = b.cred.CertificateID
	token.Header["partnerId"] = b.cred.PartnerID
	token.Header["utc"] = b.nowTime().UnixMilli()

	signedToken, err := token.SignedString(b.cred.PrivateKey)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrSigningFailed, "samsung: %v", err)
	}
	return signedToken, nil
}

func (b *SamsungBuilder) ComposeURL(token string) string {
	return samsungDeepLinkBase + b.cred.CardID + "#Clip?pdata=" + url.QueryEscape(token)
}
