package headset

// Dispatcher routes each decoded inbound frame to its side effect. It runs
// only on the consumer context: the receive loop never calls it directly, it
// enqueues a closure that does.
//
// Dispatch is stateless across calls except for the session identity written
// on hello. A frame that fails to decode is logged with its raw payload and
// dropped; nothing here closes the connection.
type Dispatcher struct {
	session *Session
	display DisplaySink
	logger  *HeadsetLogger
}

func NewDispatcher(session *Session, display DisplaySink, logger *HeadsetLogger) *Dispatcher {
	if logger == nil {
		logger = GetGlobalLogger()
	}
	return &Dispatcher{
		session: session,
		display: display,
		logger:  logger.WithComponent("dispatcher"),
	}
}

// Dispatch decodes one raw frame and invokes the matching handler.
func (d *Dispatcher) Dispatch(raw []byte) {
	msg, err := DecodeMessage(raw)
	if err != nil {
		d.logger.LogError(NewProtocolError(err.Error(), raw))
		return
	}
	d.DispatchMessage(msg)
}

// DispatchMessage routes an already-decoded message.
func (d *Dispatcher) DispatchMessage(msg Message) {
	switch m := msg.(type) {
	case *HelloMessage:
		d.handleHello(m)
	case *ChatMessage:
		d.handleChat(m)
	case *HeartbeatMessage:
		d.logger.LogMessageEvent(KindHeartbeat, map[string]interface{}{
			"display_text": m.Payload(),
		})
	case *SetLangMessage:
		// set_lang is client to server; the server's ack carries no state the
		// client does not already hold.
	case *TranscriptMessage:
		// headset_to_pi frames are consumed by the Pi, not this client.
	case *ErrorMessage:
		d.logger.LogError(NewHeadsetError(m.Text, ErrCodeServerError))
	default:
		d.logger.LogError(NewProtocolError("unhandled message kind", nil).
			AddDetail("kind", string(msg.Kind())))
	}
}

func (d *Dispatcher) handleHello(m *HelloMessage) {
	if d.session != nil {
		d.session.SetClientID(m.ClientID)
	}
	d.logger.WithField("client_id", m.ClientID).
		WithField("preferred_lang", m.PreferredLang).
		WithField("is_pi", m.IsPi).
		Info("Assigned session identity")
}

func (d *Dispatcher) handleChat(m *ChatMessage) {
	// Empty display text is a valid no-op, not an error.
	if m.DisplayText == "" {
		return
	}
	if d.display != nil {
		d.display.ShowText(m.DisplayText)
	}
	d.logger.LogMessageEvent(m.Kind(), map[string]interface{}{
		"source_id":   m.SourceID,
		"source_lang": m.SourceLang,
	})
}
