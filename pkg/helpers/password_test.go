package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("pw123", MinPasswordCost)
	require.NoError(t, err)
	assert.NotEqual(t, "pw123", hash)
	assert.True(t, CompareHashAndPassword(hash, "pw123"))
	assert.False(t, CompareHashAndPassword(hash, "wrong"))
}

func TestHashPassword_RaisesLowCost(t *testing.T) {
	hash, err := HashPassword("pw123", 4)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, MinPasswordCost, cost)
}

func TestCompareHashAndPassword_GarbageHash(t *testing.T) {
	assert.False(t, CompareHashAndPassword("not-a-hash", "pw123"))
}
