package headset

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Session holds the per-connection identity and the language preference. The
// client id is assigned by the server's hello frame and cleared on close; the
// device tag is a locally generated uuid that outlives reconnects and serves
// as a fallback label until hello arrives.
type Session struct {
	mu          sync.Mutex
	clientID    string
	deviceTag   string
	lang        string
	displayName string
}

func NewSession(lang, displayName string) *Session {
	tag := uuid.NewString()
	if lang == "" {
		lang = "en"
	}
	if displayName == "" {
		displayName = fmt.Sprintf("Headset-%s", tag[:8])
	}
	return &Session{
		deviceTag:   tag,
		lang:        lang,
		displayName: displayName,
	}
}

// SetClientID stores the server-assigned identity.
func (s *Session) SetClientID(id string) {
	s.mu.Lock()
	s.clientID = id
	s.mu.Unlock()
}

// ClientID returns the server-assigned identity, or empty if no hello has
// been received on the current connection.
func (s *Session) ClientID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientID
}

// DeviceTag returns the local fallback identity.
func (s *Session) DeviceTag() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deviceTag
}

// Label returns the best available identity for logging.
func (s *Session) Label() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clientID != "" {
		return s.clientID
	}
	return s.deviceTag
}

// SetPreference updates the language preference. Empty arguments leave the
// existing values untouched.
func (s *Session) SetPreference(lang, displayName string) {
	s.mu.Lock()
	if lang != "" {
		s.lang = lang
	}
	if displayName != "" {
		s.displayName = displayName
	}
	s.mu.Unlock()
}

// Preference returns the current language preference and display name.
func (s *Session) Preference() (lang, displayName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang, s.displayName
}

// Reset clears the server-assigned identity. Called when the connection is
// closed or superseded; the device tag and preference survive.
func (s *Session) Reset() {
	s.mu.Lock()
	s.clientID = ""
	s.mu.Unlock()
}
