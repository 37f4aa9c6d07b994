package token

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintFormat(t *testing.T) {
	hexRe := regexp.MustCompile(`^[0-9a-f]{16}$`)

	for i := 0; i < 100; i++ {
		tok, err := Mint()
		require.NoError(t, err)
		assert.True(t, hexRe.MatchString(tok), "token %q is not 16 lowercase hex chars", tok)
	}
}

func TestMintDoesNotRepeat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok, err := Mint()
		require.NoError(t, err)
		assert.False(t, seen[tok], "token %q minted twice", tok)
		seen[tok] = true
	}
}
