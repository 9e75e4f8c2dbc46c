package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOriginAllowed(t *testing.T) {
	patterns := []string{"blog.example.com", "*.inkwell.dev", "localhost:*"}

	require.True(t, originAllowed(patterns, "https://blog.example.com"))
	require.True(t, originAllowed(patterns, "https://admin.inkwell.dev"))
	require.True(t, originAllowed(patterns, "http://localhost:3000"))
	require.False(t, originAllowed(patterns, "https://evil.example.com"))
	require.False(t, originAllowed(nil, "https://blog.example.com"))
}
