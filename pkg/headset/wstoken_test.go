package headset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectTokenRoundTrip(t *testing.T) {
	secret := "team-six-shared-secret"

	token, err := GenerateConnectToken(secret, "device-1234", "es", "Quest-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := DecodeConnectToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, "device-1234", claims["device"])
	require.Equal(t, "es", claims["lang"])
	require.Equal(t, "Quest-1", claims["display_name"])
	require.NotNil(t, claims["exp"])
}

func TestConnectTokenRejectsShortSecret(t *testing.T) {
	_, err := GenerateConnectToken("short", "device-1", "en", "")
	require.Error(t, err)
}

func TestConnectTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateConnectToken("team-six-shared-secret", "device-1", "en", "")
	require.NoError(t, err)

	_, err = DecodeConnectToken(token, "a-different-secret-here")
	require.Error(t, err)
}
