package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("QT7F", "player-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	roomCode, playerID, err := DecodeSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "QT7F", roomCode)
	assert.Equal(t, "player-123", playerID)
}

func TestDecodeSessionTokenRejectsGarbage(t *testing.T) {
	_, _, err := DecodeSessionToken("not-a-jwt")
	assert.Error(t, err)
}

func TestDecodeSessionTokenRejectsTampering(t *testing.T) {
	token, err := GenerateSessionToken("QT7F", "player-123")
	require.NoError(t, err)

	// Flip a character in the signature segment.
	tampered := token[:len(token)-2] + "xx"
	_, _, err = DecodeSessionToken(tampered)
	assert.Error(t, err)
}

func TestSessionTokenFromHandshake(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		token, ok := SessionTokenFromHandshake(map[string]interface{}{
			"sessionToken": "abc.def.ghi",
		})
		require.True(t, ok)
		assert.Equal(t, "abc.def.ghi", token)
	})

	t.Run("empty token", func(t *testing.T) {
		_, ok := SessionTokenFromHandshake(map[string]interface{}{"sessionToken": ""})
		assert.False(t, ok)
	})

	t.Run("missing key", func(t *testing.T) {
		_, ok := SessionTokenFromHandshake(map[string]interface{}{})
		assert.False(t, ok)
	})

	t.Run("not an object", func(t *testing.T) {
		_, ok := SessionTokenFromHandshake("just-a-string")
		assert.False(t, ok)
	})

	t.Run("nil auth", func(t *testing.T) {
		_, ok := SessionTokenFromHandshake(nil)
		assert.False(t, ok)
	})
}
