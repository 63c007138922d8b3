package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Contable-api/pkg/jwt"
)

const secret = "test-secret"

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u", "c", "admin", "iss", 5)
	assert.Error(t, err)
}

func TestParseClaims_IncluyeJTIyExpiracion(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u1", "c1", "accountant", "iss", 10)
	require.NoError(t, err)

	claims, err := pkgjwt.ParseClaims(secret, tok)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "c1", claims.CompanyID)
	assert.Equal(t, "accountant", claims.Role)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), claims.ExpiresAtTime(), 5*time.Second)
}

func TestGenerate_TokensDistintosTienenJTIDistinto(t *testing.T) {
	a, err := pkgjwt.Generate(secret, "u1", "c1", "admin", "iss", 10)
	require.NoError(t, err)
	b, err := pkgjwt.Generate(secret, "u1", "c1", "admin", "iss", 10)
	require.NoError(t, err)

	ca, err := pkgjwt.ParseClaims(secret, a)
	require.NoError(t, err)
	cb, err := pkgjwt.ParseClaims(secret, b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestParse_RechazaTokenExpiradoOSecretDistinto(t *testing.T) {
	expired, err := pkgjwt.Generate(secret, "u1", "c1", "admin", "iss", -1)
	require.NoError(t, err)
	_, _, _, err = pkgjwt.Parse(secret, expired)
	assert.Error(t, err)

	tok, err := pkgjwt.Generate(secret, "u1", "c1", "admin", "iss", 5)
	require.NoError(t, err)
	_, _, _, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)

	userID, companyID, role, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "c1", "admin"}, []string{userID, companyID, role})
}
