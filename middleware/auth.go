package middleware

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session tokens bind a (roomCode, playerId) pair so a reloading client can
// resume its seat straight from the socket.io handshake, without waiting
// for an explicit reconnectPlayer round-trip. Tokens are issued in the
// roomJoined payload and presented back under handshake auth.

const sessionTokenLifetime = 7 * 24 * time.Hour

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
	jwt.RegisteredClaims
}

func sessionKey() []byte {
	key := os.Getenv("SESSION_KEY")
	if key == "" {
		// Dev fallback. Production sets SESSION_KEY.
		key = "polashi-dev-session-key"
	}
	return []byte(key)
}

// GenerateSessionToken signs a session token for one seat.
func GenerateSessionToken(roomCode string, playerID string) (string, error) {
	claims := SessionClaims{
		RoomCode: roomCode,
		PlayerID: playerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(sessionKey())
}

// DecodeSessionToken validates a session token and returns its seat.
func DecodeSessionToken(tokenString string) (roomCode string, playerID string, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return sessionKey(), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid session token")
	}
	return claims.RoomCode, claims.PlayerID, nil
}

// SessionTokenFromHandshake extracts the session token from socket.io
// handshake auth data, if the client presented one.
func SessionTokenFromHandshake(authData interface{}) (string, bool) {
	auth, ok := authData.(map[string]interface{})
	if !ok {
		return "", false
	}
	token, exists := auth["sessionToken"].(string)
	if !exists || token == "" {
		return "", false
	}
	return token, true
}
