package companies_test

import (
	"testing"

	"github.com/cardlinkhq/cardlink-server/companies"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := companies.HashPassword("s3cret-passphrase")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-passphrase", hash)

	require.True(t, companies.CheckPasswordHash("s3cret-passphrase", hash))
	require.False(t, companies.CheckPasswordHash("wrong", hash))
	require.False(t, companies.CheckPasswordHash("s3cret-passphrase", "not-a-hash"))
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "owner@acme.example", companies.NormalizeEmail("  Owner@ACME.example "))
}

func TestCompanyValidate(t *testing.T) {
	company := &companies.Company{Name: "Acme", Email: "owner@acme.example"}
	require.NoError(t, company.Validate())

	require.Error(t, (&companies.Company{Email: "owner@acme.example"}).Validate())
	require.Error(t, (&companies.Company{Name: "Acme"}).Validate())
	require.Error(t, (&companies.Company{Name: "Acme", Email: "not-an-email"}).Validate())
}
