package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate("s3cret", "u-1", "store-1", "manager", "ristoranti-test", 5)
	require.NoError(t, err)

	claims, err := Parse("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "store-1", claims.StoreID)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, "ristoranti-test", claims.Issuer)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Generate("s3cret", "u-1", "", "admin", "x", 5)
	require.NoError(t, err)
	_, err = Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	tok, err := Generate("s3cret", "u-1", "", "admin", "x", -1)
	require.NoError(t, err)
	_, err = Parse("s3cret", tok)
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := Generate("", "u", "", "admin", "x", 1)
	assert.Error(t, err)
	_, err = Parse("", "token")
	assert.Error(t, err)
}
