package headset

import (
	"context"
	"time"
)

// HeadsetClient composes the channel client: config, session, dispatch
// queue, socket lifecycle, protocol dispatcher, outbound emitter, and the
// one-shot API client. Construct one instance and pass it around; there is
// no ambient global connection.
type HeadsetClient struct {
	config     *HeadsetConfig
	logger     *HeadsetLogger
	session    *Session
	queue      *DispatchQueue
	socket     *SocketClient
	dispatcher *Dispatcher
	emitter    *Emitter
	api        *APIClient
}

func NewHeadsetClient(config *HeadsetConfig, display DisplaySink, logger *HeadsetLogger) *HeadsetClient {
	if config == nil {
		config = NewHeadsetConfig()
	}
	if logger == nil {
		logConfig := DefaultLogConfig()
		logConfig.Level = config.LogLevel()
		logger = NewHeadsetLogger(logConfig)
	}

	session := NewSession(config.Lang, config.DisplayName)
	queue := NewDispatchQueue()
	dispatcher := NewDispatcher(session, display, logger)
	socket := NewSocketClient(config, session, queue, dispatcher, logger)
	emitter := NewEmitter(socket, session, queue, logger)

	return &HeadsetClient{
		config:     config,
		logger:     logger,
		session:    session,
		queue:      queue,
		socket:     socket,
		dispatcher: dispatcher,
		emitter:    emitter,
		api:        NewAPIClient(config.APIBaseURL),
	}
}

// Connect dials the configured channel endpoint.
func (c *HeadsetClient) Connect() error {
	return c.socket.Connect(c.config.WsEndpoint)
}

// ConnectURL dials an explicit endpoint, superseding any live connection.
func (c *HeadsetClient) ConnectURL(url string) error {
	return c.socket.Connect(url)
}

// Close releases the connection. Safe to call repeatedly.
func (c *HeadsetClient) Close() {
	c.socket.Close()
}

// Drain runs one consumer tick: every queued action from the receive loop
// and from Send callers executes now, in order. Call it from exactly one
// goroutine, the one that owns display and session mutation.
func (c *HeadsetClient) Drain() int {
	return c.queue.DrainOnce()
}

// Run pumps the dispatch queue on the configured cadence until ctx is done,
// then closes the connection and drains whatever is left.
func (c *HeadsetClient) Run(ctx context.Context) {
	interval := c.config.DrainInterval
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Close()
			c.queue.DrainOnce()
			return
		case <-ticker.C:
			c.queue.DrainOnce()
		}
	}
}

// Send queues one outbound message, if Open.
func (c *HeadsetClient) Send(msg Message) *HeadsetError {
	return c.emitter.Send(msg)
}

// SendChat broadcasts a chat line.
func (c *HeadsetClient) SendChat(text string) *HeadsetError {
	return c.emitter.SendChat(text)
}

// SendTranscript forwards a finished speech-to-text transcript to the Pi.
// This is the entry point the local transcription pipeline calls.
func (c *HeadsetClient) SendTranscript(text string) *HeadsetError {
	return c.emitter.SendTranscript(text)
}

// SetLanguage updates the preference and announces it on the channel.
func (c *HeadsetClient) SetLanguage(lang, displayName string) *HeadsetError {
	return c.emitter.SetLanguage(lang, displayName)
}

// AddConnectionHandler observes state transitions on the consumer drain.
func (c *HeadsetClient) AddConnectionHandler(handler ConnectionHandler) {
	c.socket.AddConnectionHandler(handler)
}

// ConnectionState returns the socket's current state.
func (c *HeadsetClient) ConnectionState() ConnectionState {
	return c.socket.State()
}

// Session exposes the identity and preference store.
func (c *HeadsetClient) Session() *Session {
	return c.session
}

// API returns the one-shot request client.
func (c *HeadsetClient) API() *APIClient {
	return c.api
}

// Socket exposes the lifecycle manager for callers that need direct control.
func (c *HeadsetClient) Socket() *SocketClient {
	return c.socket
}
