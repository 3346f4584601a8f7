package headset

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Kind is the wire discriminant carried in every frame's "type" field.
type Kind string

const (
	KindChat         Kind = "chat"
	KindPersonalChat Kind = "personal_chat"
	KindHeartbeat    Kind = "heartbeat"
	KindError        Kind = "error"
	KindSetLang      Kind = "set_lang"
	KindHello        Kind = "hello"
	KindHeadsetToPi  Kind = "headset_to_pi"
)

// Seconds is a message timestamp in seconds since an epoch local to the
// session. The backend has emitted it both as a JSON number and as a string,
// so the decoder accepts either form; it always encodes as a number.
type Seconds float64

func (s Seconds) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(s))
}

func (s *Seconds) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*s = 0
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		if str == "" {
			*s = 0
			return nil
		}
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return fmt.Errorf("invalid time string %q: %w", str, err)
		}
		*s = Seconds(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Seconds(v)
	return nil
}

// Now returns the current wall clock as a Seconds timestamp.
func Now() Seconds {
	return Seconds(float64(time.Now().UnixNano()) / float64(time.Second))
}

// Message is one decoded frame of the tagged wire protocol. The schema is
// fixed: nullable fields are pointers and serialize as null, never omitted.
type Message interface {
	Kind() Kind
}

// envelope exposes only the discriminant for the first decode pass.
type envelope struct {
	Type Kind `json:"type"`
}

// ChatMessage carries one translated chat/subtitle line. display_text is what
// the client renders; original_text/translated_text are kept for diagnostics.
// text mirrors original_text on outbound frames: the server reads the chat
// line from it when building the broadcast.
type ChatMessage struct {
	Type           Kind    `json:"type"`
	Time           Seconds `json:"time"`
	SourceID       string  `json:"source_id"`
	TargetID       *string `json:"target_id"`
	SourceLang     string  `json:"source_lang"`
	TargetLang     *string `json:"target_lang"`
	Text           string  `json:"text"`
	OriginalText   string  `json:"original_text"`
	TranslatedText *string `json:"translated_text"`
	DisplayText    string  `json:"display_text"`
}

func (m *ChatMessage) Kind() Kind {
	if m.Type == KindPersonalChat {
		return KindPersonalChat
	}
	return KindChat
}

// SetLangMessage announces a language preference (client to server). The
// server's acknowledgement reuses the same shape with text and client_id set.
type SetLangMessage struct {
	Type        Kind    `json:"type"`
	Time        Seconds `json:"time"`
	Lang        string  `json:"lang"`
	DisplayName string  `json:"display_name"`
	Text        string  `json:"text"`
	ClientID    *string `json:"client_id"`
}

func (m *SetLangMessage) Kind() Kind { return KindSetLang }

// HelloMessage is the server's greeting assigning this client its identity.
type HelloMessage struct {
	Type          Kind    `json:"type"`
	Time          Seconds `json:"time"`
	ClientID      string  `json:"client_id"`
	PreferredLang string  `json:"preferred_lang"`
	IsPi          bool    `json:"is_pi"`
}

func (m *HelloMessage) Kind() Kind { return KindHello }

// TranscriptMessage forwards a local speech-to-text transcript to the Pi.
type TranscriptMessage struct {
	Type Kind    `json:"type"`
	Time Seconds `json:"time"`
	Text string  `json:"text"`
}

func (m *TranscriptMessage) Kind() Kind { return KindHeadsetToPi }

// ErrorMessage is a human-readable server-side error report.
type ErrorMessage struct {
	Type Kind    `json:"type"`
	Time Seconds `json:"time"`
	Text string  `json:"text"`
}

func (m *ErrorMessage) Kind() Kind { return KindError }

// HeartbeatMessage is a periodic liveness frame. Logged, never displayed.
// Older servers put the payload under text instead of display_text.
type HeartbeatMessage struct {
	Type        Kind    `json:"type"`
	Time        Seconds `json:"time"`
	DisplayText string  `json:"display_text"`
	Text        string  `json:"text"`
}

func (m *HeartbeatMessage) Kind() Kind { return KindHeartbeat }

// Payload returns the liveness text from whichever field carried it.
func (m *HeartbeatMessage) Payload() string {
	if m.DisplayText != "" {
		return m.DisplayText
	}
	return m.Text
}

// EncodeMessage serializes a message into one UTF-8 JSON frame, stamping the
// discriminant from the concrete type so a zero Type field cannot leak a
// mistagged frame onto the wire. The discriminant is stamped on a copy; the
// caller's message is never modified.
func EncodeMessage(msg Message) ([]byte, error) {
	if msg == nil {
		return nil, fmt.Errorf("nil message")
	}
	switch m := msg.(type) {
	case *ChatMessage:
		c := *m
		if c.Type != KindPersonalChat {
			c.Type = KindChat
		}
		return json.Marshal(&c)
	case *SetLangMessage:
		c := *m
		c.Type = KindSetLang
		return json.Marshal(&c)
	case *HelloMessage:
		c := *m
		c.Type = KindHello
		return json.Marshal(&c)
	case *TranscriptMessage:
		c := *m
		c.Type = KindHeadsetToPi
		return json.Marshal(&c)
	case *ErrorMessage:
		c := *m
		c.Type = KindError
		return json.Marshal(&c)
	case *HeartbeatMessage:
		c := *m
		c.Type = KindHeartbeat
		return json.Marshal(&c)
	default:
		return nil, fmt.Errorf("unsupported message type %T", msg)
	}
}

// DecodeMessage parses one frame: first the envelope for the discriminant,
// then the full variant. An unrecognized discriminant is an error the caller
// treats as recoverable.
func DecodeMessage(data []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}

	var msg Message
	switch env.Type {
	case KindChat, KindPersonalChat:
		msg = &ChatMessage{}
	case KindSetLang:
		msg = &SetLangMessage{}
	case KindHello:
		msg = &HelloMessage{}
	case KindHeadsetToPi:
		msg = &TranscriptMessage{}
	case KindError:
		msg = &ErrorMessage{}
	case KindHeartbeat:
		msg = &HeartbeatMessage{}
	default:
		return nil, fmt.Errorf("unknown message type %q", string(env.Type))
	}

	if err := json.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("malformed %s frame: %w", env.Type, err)
	}
	return msg, nil
}
