package headset

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubtitleBroadcast(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/subtitle", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{
			"status":   "ok",
			"mode":     "broadcast",
			"original": gotBody["text"],
		})
	}))
	defer srv.Close()

	api := NewAPIClient(srv.URL)
	result := api.SubtitleBroadcast("hello room", "en", "client-1")

	require.True(t, result.Success)
	require.Equal(t, "ok", result.Data.Status)
	require.Equal(t, "broadcast", result.Data.Mode)
	require.Equal(t, "hello room", result.Data.Original)
	require.Equal(t, "en", gotBody["source_lang"])
	require.Equal(t, "client-1", gotBody["source_client_id"])
}

func TestSubtitleBroadcastRejectsEmptyText(t *testing.T) {
	api := NewAPIClient("http://unused.invalid")
	result := api.SubtitleBroadcast("", "en", "")
	require.False(t, result.Success)
	require.Equal(t, ErrCodeConfigInvalid, result.Error.Code)
}

func TestSubtitleOne(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/subtitle_one", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"status":     "ok",
			"mode":       "one_to_one",
			"original":   "hi",
			"translated": "hola",
		})
	}))
	defer srv.Close()

	api := NewAPIClient(srv.URL)
	result := api.SubtitleOne("hi", "en", "es", "client-1", "client-2")

	require.True(t, result.Success)
	require.Equal(t, "one_to_one", result.Data.Mode)
	require.Equal(t, "hola", result.Data.Translated)
}

func TestSubtitleOneRequiresTarget(t *testing.T) {
	api := NewAPIClient("http://unused.invalid")
	result := api.SubtitleOne("hi", "en", "es", "client-1", "")
	require.False(t, result.Success)
	require.Equal(t, ErrCodeConfigInvalid, result.Error.Code)
}

func TestGetLangGroups(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/debug/lang-groups", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"lang_groups":    map[string]int{"en": 2, "es": 1},
			"pi_client_id":   "pi-1",
			"active_clients": 3,
		})
	}))
	defer srv.Close()

	api := NewAPIClient(srv.URL)
	result := api.GetLangGroups()

	require.True(t, result.Success)
	require.Equal(t, 3, result.Data.ActiveClients)
	require.Equal(t, 2, result.Data.Groups["en"])
	require.NotNil(t, result.Data.PiClientID)
	require.Equal(t, "pi-1", *result.Data.PiClientID)
}

func TestServerErrorMapsToCodedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "translator unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	api := NewAPIClient(srv.URL)
	result := api.SubtitleBroadcast("hello", "en", "")

	require.False(t, result.Success)
	code, ok := result.Error.GetDetail("status_code")
	require.True(t, ok)
	require.Equal(t, http.StatusBadGateway, code)
}

func TestHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"message": "server running"})
	}))
	defer srv.Close()

	api := NewAPIClient(srv.URL)
	result := api.HealthCheck()

	require.True(t, result.Success)
	require.Equal(t, "server running", result.Data["message"])
}

func TestConnectionRefusedIsRecoverable(t *testing.T) {
	api := NewAPIClient("http://127.0.0.1:1")
	result := api.HealthCheck()
	require.False(t, result.Success)
	require.Equal(t, ErrCodeConnectionFailed, result.Error.Code)
}
