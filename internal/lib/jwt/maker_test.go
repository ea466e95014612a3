package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken(t *testing.T) {
	maker := NewJWTMaker("test_secret_key_1234567890", 15*time.Minute)

	tests := []struct {
		name     string
		uid      string
		username string
		role     string
	}{
		{name: "trainer", uid: "3f1c6e0a-0000-4000-8000-000000000001", username: "coach_ana", role: "trainer"},
		{name: "superuser", uid: "3f1c6e0a-0000-4000-8000-000000000002", username: "root", role: "superuser"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.uid, tt.username, tt.role)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.uid, claims.UserUID())
			assert.Equal(t, tt.username, claims.Username)
			assert.Equal(t, tt.role, claims.Role)
			assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_Invalid(t *testing.T) {
	secret := "test_secret_key_1234567890"
	maker := NewJWTMaker(secret, 15*time.Minute)

	valid, err := maker.GenerateToken("uid-1", "coach", "trainer")
	require.NoError(t, err)
	expired, err := NewJWTMaker(secret, -time.Hour).GenerateToken("uid-1", "coach", "trainer")
	require.NoError(t, err)
	foreign, err := NewJWTMaker("other_secret", time.Hour).GenerateToken("uid-1", "coach", "trainer")
	require.NoError(t, err)
	noSubject, err := maker.GenerateToken("", "coach", "trainer")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "malformed", token: "invalid.token.here"},
		{name: "expired", token: expired},
		{name: "wrong secret", token: foreign},
		{name: "tampered", token: valid + "x"},
		{name: "missing subject", token: noSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}
