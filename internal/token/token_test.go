package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidmr019/cafeteria_backend/internal/models"
)

func TestSignAndParse(t *testing.T) {
	secret := []byte("test_secret")

	raw, err := SignAccessToken(42, models.RoleEmployee, secret, 30*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := ParseAccessToken(raw, secret)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, models.RoleEmployee, claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	raw, err := SignAccessToken(1, models.RoleCustomer, []byte("right"), time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(raw, []byte("wrong"))
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	secret := []byte("test_secret")
	raw, err := SignAccessToken(1, models.RoleCustomer, secret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(raw, secret)
	require.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := ParseAccessToken("not.a.token", []byte("test_secret"))
	require.Error(t, err)
}
