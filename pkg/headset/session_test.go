package headset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionDefaults(t *testing.T) {
	session := NewSession("", "")

	lang, name := session.Preference()
	require.Equal(t, "en", lang)
	require.True(t, strings.HasPrefix(name, "Headset-"))
	require.NotEmpty(t, session.DeviceTag())
}

func TestSessionLabelPrefersClientID(t *testing.T) {
	session := NewSession("en", "Quest-1")
	require.Equal(t, session.DeviceTag(), session.Label())

	session.SetClientID("abc123")
	require.Equal(t, "abc123", session.Label())
}

func TestSessionResetKeepsPreference(t *testing.T) {
	session := NewSession("es", "Quest-1")
	session.SetClientID("abc123")
	tag := session.DeviceTag()

	session.Reset()

	require.Empty(t, session.ClientID())
	require.Equal(t, tag, session.DeviceTag(), "device tag survives reconnects")
	lang, name := session.Preference()
	require.Equal(t, "es", lang)
	require.Equal(t, "Quest-1", name)
}

func TestSessionSetPreferencePartialUpdate(t *testing.T) {
	session := NewSession("en", "Quest-1")

	session.SetPreference("fr", "")
	lang, name := session.Preference()
	require.Equal(t, "fr", lang)
	require.Equal(t, "Quest-1", name, "empty display name leaves the old one")
}
