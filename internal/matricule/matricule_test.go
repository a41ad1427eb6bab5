package matricule

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	code, err := Generate()
	require.NoError(t, err)

	assert.Len(t, code, 10)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q", r)
	}
}

func TestGenerateIsNotRepeating(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		code, err := Generate()
		require.NoError(t, err)
		assert.False(t, seen[code], "generated %q twice", code)
		seen[code] = true
	}
}

func TestWithPrefix(t *testing.T) {
	code, err := WithPrefix("ROL-", 10)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(code, "ROL-"))
	assert.Len(t, code, 14)
}

func TestWithPrefixRejectsBadLength(t *testing.T) {
	_, err := WithPrefix("", 0)
	assert.Error(t, err)
}
