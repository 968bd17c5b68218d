package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("sekret123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hashed, "$argon2"))

	ok, err := VerifyPassword(hashed, "sekret123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hashed, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordSalts(t *testing.T) {
	a, err := HashPassword("sekret123")
	require.NoError(t, err)
	b, err := HashPassword("sekret123")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
