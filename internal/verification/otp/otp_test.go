package otp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	for range 50 {
		code, err := Generate()
		require.NoError(t, err)
		require.Len(t, code, CodeLength)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestHashIsDeterministicAndSalted(t *testing.T) {
	h := Hash("482913", "pepper")
	assert.Len(t, h, 64)
	assert.Equal(t, h, Hash("482913", "pepper"))
	assert.NotEqual(t, h, Hash("482913", "other"))
}

func TestCompare(t *testing.T) {
	stored := Hash("482913", "pepper")
	assert.True(t, Compare("482913", "pepper", stored))

	// every single-character change fails
	for i := range 6 {
		b := []byte("482913")
		b[i] = '0' + (b[i]-'0'+1)%10
		assert.False(t, Compare(string(b), "pepper", stored), string(b))
	}
	assert.False(t, Compare("482913", "pepper", ""))
	assert.False(t, Compare("48291", "pepper", stored))
}

func TestNewReference(t *testing.T) {
	a, err := NewReference()
	require.NoError(t, err)
	b, err := NewReference()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, ReferencePrefix))
	assert.Len(t, a, len(ReferencePrefix)+32)
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "+")
	assert.NotContains(t, a, "/")
}
