package server_test

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cardlinkhq/cardlink-server/companies"
	fakecompanyrepo "github.com/cardlinkhq/cardlink-server/companies/repofake"
	"github.com/cardlinkhq/cardlink-server/contacts"
	fakecontactrepo "github.com/cardlinkhq/cardlink-server/contacts/repofake"
	"github.com/cardlinkhq/cardlink-server/internal/config"
	"github.com/cardlinkhq/cardlink-server/notify"
	"github.com/cardlinkhq/cardlink-server/server"
	"github.com/cardlinkhq/cardlink-server/sessions"
	fakesessionrepo "github.com/cardlinkhq/cardlink-server/sessions/repofakes"
	"github.com/cardlinkhq/cardlink-server/wallet"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail      = "admin@example.com"
	fixedCode       = "654321"
	companyEmail    = "owner@acme.example"
	companyPassword = "hunter2 but longer"
	otherCompanyID  = "globex-1"
)

// testWalletConfig satisfies config.WalletConfig with fixed values.
type testWalletConfig struct {
	googleIssuerID       string
	googleIssuerEmail    string
	googleServiceAccount string
}

func (c testWalletConfig) GetGoogleIssuerID() string       { return c.googleIssuerID }
func (c testWalletConfig) GetGoogleIssuerEmail() string    { return c.googleIssuerEmail }
func (c testWalletConfig) GetGoogleServiceAccount() string { return c.googleServiceAccount }
func (c testWalletConfig) GetGoogleOrigins() []string      { return nil }
func (c testWalletConfig) GetSamsungPartnerID() string     { return "" }
func (c testWalletConfig) GetSamsungCardID() string        { return "" }
func (c testWalletConfig) GetSamsungCertificateID() string { return "" }
func (c testWalletConfig) GetSamsungPrivateKey() string    { return "" }

// testFixture holds the server under test plus direct repo access for seeding.
type testFixture struct {
	server      *server.Server
	companyRepo *fakecompanyrepo.FakeCompanyRepo
	contactRepo *fakecontactrepo.FakeContactRepo
	company     *companies.Company
	contact     *contacts.Contact
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	companyRepo := fakecompanyrepo.NewFakeCompanyRepo()
	contactRepo := fakecontactrepo.NewFakeContactRepo()

	authority, err := sessions.NewAuthority(sessions.Repos{
		Sessions:   fakesessionrepo.NewFakeSessionRepo(),
		Challenges: fakesessionrepo.NewFakeChallengeRepo(),
		Companies:  companyRepo,
	}, []string{adminEmail}, notify.NewLogSender(zerolog.Nop(), false),
		sessions.WithCodeGenerator(func() (string, error) { return fixedCode, nil }))
	require.NoError(t, err)

	walletService, err := wallet.NewService(wallet.NewStore(testWalletConfig{
		googleIssuerID:       "3388000000099999999",
		googleIssuerEmail:    "passes@cardlink-test.iam.gserviceaccount.com",
		googleServiceAccount: generateTestKeyPEM(t),
	}))
	require.NoError(t, err)

	srv, err := server.New(config.New(), zerolog.Nop(), authority, walletService, server.Repos{
		Companies: companyRepo,
		Contacts:  contactRepo,
	})
	require.NoError(t, err)

	f := &testFixture{
		server:      srv,
		companyRepo: companyRepo,
		contactRepo: contactRepo,
	}
	f.seed(t)
	return f
}

func generateTestKeyPEM(t *testing.T) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
}

func (f *testFixture) seed(t *testing.T) {
	t.Helper()

	hash, err := companies.HashPassword(companyPassword)
	require.NoError(t, err)

	f.company = &companies.Company{
		ID:           "acme-1",
		Name:         "Acme",
		Email:        companyEmail,
		PasswordHash: hash,
		LogoURL:      "https://acme.example/logo.png",
		Website:      "https://acme.example",
	}
	require.NoError(t, f.companyRepo.Upsert(f.company))
	require.NoError(t, f.companyRepo.Upsert(&companies.Company{
		ID:    otherCompanyID,
		Name:  "Globex",
		Email: "owner@globex.example",
	}))

	f.contact = &contacts.Contact{
		ID:          "jane-1",
		CompanyID:   f.company.ID,
		DisplayName: "Jane Doe",
		Title:       "Head of Product",
		Phone:       "+44 20 7946 0000",
		Email:       "jane@acme.example",
	}
	require.NoError(t, f.contactRepo.Upsert(f.contact))
}

// doJSON performs a request against the server and decodes the JSON response.
func (f *testFixture) doJSON(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	f.server.ServeHTTP(recorder, req)

	response := map[string]any{}
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	}
	return recorder.Code, response
}

func (f *testFixture) adminToken(t *testing.T) string {
	t.Helper()

	status, _ := f.doJSON(t, http.MethodPost, "/auth/challenge", "", map[string]string{"identity": adminEmail})
	require.Equal(t, http.StatusAccepted, status)

	status, response := f.doJSON(t, http.MethodPost, "/auth/verify", "", map[string]string{
		"identity": adminEmail,
		"code":     fixedCode,
	})
	require.Equal(t, http.StatusOK, status)
	return response["token"].(string)
}

func (f *testFixture) companyToken(t *testing.T) string {
	t.Helper()

	status, response := f.doJSON(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    companyEmail,
		"password": companyPassword,
	})
	require.Equal(t, http.StatusOK, status)
	return response["token"].(string)
}

func TestAdminChallengeLoginFlow(t *testing.T) {
	f := setupTestFixture(t)

	token := f.adminToken(t)
	require.NotEmpty(t, token)

	status, response := f.doJSON(t, http.MethodGet, "/api/companies", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, response["companies"], 2)

	status, _ = f.doJSON(t, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, response = f.doJSON(t, http.MethodGet, "/api/companies", token, nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "unauthorized", response["error"])
}

func TestChallengeUnknownIdentity(t *testing.T) {
	f := setupTestFixture(t)

	status, response := f.doJSON(t, http.MethodPost, "/auth/challenge", "", map[string]string{"identity": "nobody@example.com"})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "unauthorized", response["error"])
}

func TestVerifyWrongCode(t *testing.T) {
	f := setupTestFixture(t)

	status, _ := f.doJSON(t, http.MethodPost, "/auth/challenge", "", map[string]string{"identity": adminEmail})
	require.Equal(t, http.StatusAccepted, status)

	status, response := f.doJSON(t, http.MethodPost, "/auth/verify", "", map[string]string{
		"identity": adminEmail,
		"code":     "000000",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "invalid_code", response["error"])
}

func TestCompanyLoginErrors(t *testing.T) {
	f := setupTestFixture(t)

	status, response := f.doJSON(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    companyEmail,
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "invalid_credentials", response["error"])

	status, response = f.doJSON(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "ghost@nowhere.example",
		"password": companyPassword,
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "invalid_credentials", response["error"])
}

func TestCompanyAdminScopedToOwnCompany(t *testing.T) {
	f := setupTestFixture(t)
	token := f.companyToken(t)

	status, _ := f.doJSON(t, http.MethodGet, "/api/companies/"+f.company.ID, token, nil)
	require.Equal(t, http.StatusOK, status)

	status, response := f.doJSON(t, http.MethodGet, "/api/companies/"+otherCompanyID, token, nil)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "forbidden", response["error"])

	// Company admins cannot list or create companies
	status, _ = f.doJSON(t, http.MethodGet, "/api/companies", token, nil)
	require.Equal(t, http.StatusForbidden, status)

	status, _ = f.doJSON(t, http.MethodPost, "/api/companies", token, map[string]string{
		"name": "Sneaky", "email": "x@y.example", "password": "pw",
	})
	require.Equal(t, http.StatusForbidden, status)
}

func TestSuperAdminCompanyCRUD(t *testing.T) {
	f := setupTestFixture(t)
	token := f.adminToken(t)

	status, created := f.doJSON(t, http.MethodPost, "/api/companies", token, map[string]string{
		"name":     "Initech",
		"email":    "Owner@Initech.example",
		"password": "a strong one",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "owner@initech.example", created["email"])
	require.NotContains(t, created, "password_hash")

	companyID := created["id"].(string)

	status, updated := f.doJSON(t, http.MethodPut, "/api/companies/"+companyID, token, map[string]string{
		"name": "Initech Ltd",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Initech Ltd", updated["name"])

	status, _ = f.doJSON(t, http.MethodDelete, "/api/companies/"+companyID, token, nil)
	require.Equal(t, http.StatusOK, status)

	status, response := f.doJSON(t, http.MethodGet, "/api/companies/"+companyID, token, nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "not_found", response["error"])
}

func TestContactOwnership(t *testing.T) {
	f := setupTestFixture(t)
	token := f.companyToken(t)

	status, created := f.doJSON(t, http.MethodPost, "/api/companies/"+f.company.ID+"/contacts", token, map[string]string{
		"display_name": "John Smith",
		"title":        "Engineer",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, f.company.ID, created["company_id"])

	status, _ = f.doJSON(t, http.MethodPost, "/api/companies/"+otherCompanyID+"/contacts", token, map[string]string{
		"display_name": "Intruder",
	})
	require.Equal(t, http.StatusForbidden, status)

	// Seed a contact for the other company and try to touch it
	require.NoError(t, f.contactRepo.Upsert(&contacts.Contact{
		ID: "globex-contact", CompanyID: otherCompanyID, DisplayName: "Hank",
	}))

	status, _ = f.doJSON(t, http.MethodGet, "/api/contacts/globex-contact", token, nil)
	require.Equal(t, http.StatusForbidden, status)

	status, _ = f.doJSON(t, http.MethodDelete, "/api/contacts/globex-contact", token, nil)
	require.Equal(t, http.StatusForbidden, status)
}

func TestContactUpdateKeepsCompany(t *testing.T) {
	f := setupTestFixture(t)
	token := f.companyToken(t)

	status, updated := f.doJSON(t, http.MethodPut, "/api/contacts/"+f.contact.ID, token, map[string]string{
		"title": "VP of Product",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "VP of Product", updated["title"])
	require.Equal(t, "Jane Doe", updated["display_name"])
	require.Equal(t, f.company.ID, updated["company_id"])
}

func TestPublicCardView(t *testing.T) {
	f := setupTestFixture(t)

	status, card := f.doJSON(t, http.MethodGet, "/cards/"+f.contact.ID, "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Jane Doe", card["display_name"])
	require.Equal(t, "Acme", card["company_name"])
	require.Equal(t, "https://acme.example/logo.png", card["logo_url"])

	// Internal ownership data stays private
	require.NotContains(t, card, "company_id")
	require.NotContains(t, card, "created_at")

	status, response := f.doJSON(t, http.MethodGet, "/cards/unknown-contact", "", nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "not_found", response["error"])
}

func TestWalletSaveLink(t *testing.T) {
	f := setupTestFixture(t)

	status, response := f.doJSON(t, http.MethodGet, "/cards/"+f.contact.ID+"/wallet/google", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, strings.HasPrefix(response["save_url"].(string), "https://pay.google.com/gp/v/save/"))
}

func TestWalletSaveLinkUnconfiguredProvider(t *testing.T) {
	f := setupTestFixture(t)

	status, response := f.doJSON(t, http.MethodGet, "/cards/"+f.contact.ID+"/wallet/samsung", "", nil)
	require.Equal(t, http.StatusBadGateway, status)
	require.Equal(t, "wallet_unavailable", response["error"])
}

func TestWalletSaveLinkUnknownProvider(t *testing.T) {
	f := setupTestFixture(t)

	status, response := f.doJSON(t, http.MethodGet, "/cards/"+f.contact.ID+"/wallet/apple", "", nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "validation_failed", response["error"])
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	f := setupTestFixture(t)

	status, response := f.doJSON(t, http.MethodGet, "/api/companies", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "unauthorized", response["error"])

	req := httptest.NewRequest(http.MethodGet, "/api/companies", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
	recorder := httptest.NewRecorder()
	f.server.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestMalformedBodyIsValidationError(t *testing.T) {
	f := setupTestFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{not json"))
	recorder := httptest.NewRecorder()
	f.server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Contains(t, recorder.Body.String(), "validation_failed")
}
