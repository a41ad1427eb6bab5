package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	code, err := Generate(DefaultLength)
	require.NoError(t, err)

	assert.Len(t, code, DefaultLength)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "unexpected rune %q", r)
	}
}

func TestGenerateCoversAllDigits(t *testing.T) {
	seen := make(map[rune]bool)
	for range 100 {
		code, err := Generate(DefaultLength)
		require.NoError(t, err)
		for _, r := range code {
			seen[r] = true
		}
	}

	// 600 draws make a missing digit vanishingly unlikely.
	assert.Len(t, seen, 10)
}

func TestGenerateRejectsBadLength(t *testing.T) {
	_, err := Generate(0)
	assert.Error(t, err)

	_, err = Generate(-3)
	assert.Error(t, err)
}
