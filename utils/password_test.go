package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecurePassword(t *testing.T) {
	p, err := GenerateSecurePassword(16)
	require.NoError(t, err)
	assert.Len(t, p, 16)
	assert.NotContains(t, p, "+")
	assert.NotContains(t, p, "/")

	other, err := GenerateSecurePassword(16)
	require.NoError(t, err)
	assert.NotEqual(t, p, other)

	short, err := GenerateSecurePassword(3)
	require.NoError(t, err)
	assert.Len(t, short, 8)
}
