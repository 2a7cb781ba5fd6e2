package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/pinauth/internal/common"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken_RoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("user-1", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := GetUserIDFromToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)
}

func TestGetUserIDFromToken_WrongKey(t *testing.T) {
	token, err := GenerateToken("user-1", []byte("right-key"), time.Hour)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, []byte("wrong-key"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken("user-1", secret, -time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, secret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetUserIDFromToken_Garbage(t *testing.T) {
	_, err := GetUserIDFromToken("not.a.token", []byte("k"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}
