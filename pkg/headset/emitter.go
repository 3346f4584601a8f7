package headset

// Emitter serializes outbound messages and funnels their transmission through
// the DispatchQueue, so writes happen only on the consumer drain and never
// interleave with each other or with socket teardown.
//
// Send is valid only while the connection is Open. Anything else is a
// not-connected error: the message is dropped and logged, never buffered for
// replay. That includes SetLanguage while Disconnected; the next Connect
// announces the stored preference anyway.
type Emitter struct {
	socket  *SocketClient
	session *Session
	queue   *DispatchQueue
	logger  *HeadsetLogger
}

func NewEmitter(socket *SocketClient, session *Session, queue *DispatchQueue, logger *HeadsetLogger) *Emitter {
	if logger == nil {
		logger = GetGlobalLogger()
	}
	return &Emitter{
		socket:  socket,
		session: session,
		queue:   queue,
		logger:  logger.WithComponent("emitter"),
	}
}

// Send serializes msg and queues it for transmission. Returns the error that
// was also logged, so callers may observe the outcome without wiring a sink.
func (e *Emitter) Send(msg Message) *HeadsetError {
	if !e.socket.IsOpen() {
		hErr := NewNotConnectedError("not connected").AddDetail("kind", string(msg.Kind()))
		e.logger.LogError(hErr)
		return hErr
	}

	frame, err := EncodeMessage(msg)
	if err != nil {
		hErr := WrapError(err, ErrCodeJSONParse)
		e.logger.LogError(hErr)
		return hErr
	}

	e.queue.Enqueue(func() {
		if werr := e.socket.writeFrame(frame); werr != nil {
			if hErr, ok := werr.(*HeadsetError); ok {
				e.logger.LogError(hErr)
			} else {
				e.logger.LogError(WrapError(werr, ErrCodeWebSocket))
			}
		}
	})
	return nil
}

// SetLanguage updates the stored preference and announces it on the channel.
// While Open the update is stored and exactly one set_lang frame goes out;
// while Disconnected the update is still stored but the send fails loudly.
func (e *Emitter) SetLanguage(lang, displayName string) *HeadsetError {
	e.session.SetPreference(lang, displayName)
	lang, displayName = e.session.Preference()
	return e.Send(&SetLangMessage{
		Time:        Now(),
		Lang:        lang,
		DisplayName: displayName,
	})
}

// SendChat broadcasts a chat line to the channel.
func (e *Emitter) SendChat(text string) *HeadsetError {
	lang, _ := e.session.Preference()
	return e.Send(&ChatMessage{
		Time:         Now(),
		SourceID:     e.session.Label(),
		SourceLang:   lang,
		Text:         text,
		OriginalText: text,
		DisplayText:  text,
	})
}

// SendTranscript forwards a completed local speech-to-text transcript to the
// Pi participant.
func (e *Emitter) SendTranscript(text string) *HeadsetError {
	return e.Send(&TranscriptMessage{
		Time: Now(),
		Text: text,
	})
}
