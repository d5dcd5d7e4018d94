package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckSecret(t *testing.T) {
	h, err := HashSecret("cisco")
	require.NoError(t, err)
	assert.True(t, IsHashed(h))
	assert.NotEqual(t, "cisco", h)

	assert.True(t, CheckSecret(h, "cisco"))
	assert.False(t, CheckSecret(h, "Cisco"))
}

func TestCheckSecretPlainText(t *testing.T) {
	assert.True(t, CheckSecret("class", "class"))
	assert.False(t, CheckSecret("class", "other"))
	assert.False(t, CheckSecret("", ""))
}

func TestDigest(t *testing.T) {
	assert.Equal(t,
		"5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
		Digest("password"))
}
