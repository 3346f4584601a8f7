package headset

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const closeWriteTimeout = 2 * time.Second

// SocketClient owns the single live channel connection. Connect supersedes
// any previous connection, so at most one transport handle exists at a time.
//
// The receive loop runs on its own goroutine and is the only reader; it never
// touches shared state directly. Everything it learns is wrapped in a closure
// and pushed through the DispatchQueue to the consumer. Writes are issued
// under the client mutex, from Connect (the initial set_lang frame) and from
// emitter actions executed by the consumer drain.
type SocketClient struct {
	config     *HeadsetConfig
	session    *Session
	queue      *DispatchQueue
	dispatcher *Dispatcher
	logger     *HeadsetLogger

	mu     sync.Mutex
	conn   *websocket.Conn
	state  ConnectionState
	cancel context.CancelFunc
	gen    uint64 // connection generation; stale loops are ignored

	connectionHandlers []ConnectionHandler
}

func NewSocketClient(config *HeadsetConfig, session *Session, queue *DispatchQueue, dispatcher *Dispatcher, logger *HeadsetLogger) *SocketClient {
	if logger == nil {
		logger = GetGlobalLogger()
	}
	return &SocketClient{
		config:     config,
		session:    session,
		queue:      queue,
		dispatcher: dispatcher,
		logger:     logger.WithComponent("socket"),
		state:      Disconnected,
	}
}

// Connect dials the channel endpoint. A connection that is already Open is
// gracefully closed first; two live transports never coexist. On success the
// state is Open, the configured language preference has been announced, and
// the receive loop is running. On failure the state is back to Disconnected
// and the error is returned; retry policy belongs to the caller.
func (sc *SocketClient) Connect(rawURL string) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.conn != nil {
		sc.teardownLocked("superseded")
	}

	if rawURL == "" {
		rawURL = sc.config.WsEndpoint
	}

	sc.setStateLocked(Connecting)

	dialURL, err := sc.buildDialURL(rawURL)
	if err != nil {
		sc.setStateLocked(Disconnected)
		hErr := WrapError(err, ErrCodeConnectionFailed)
		sc.logger.LogError(hErr)
		return hErr
	}

	header := make(http.Header)
	for k, v := range sc.config.Headers {
		header.Set(k, v)
	}

	conn, _, err := websocket.DefaultDialer.Dial(dialURL, header)
	if err != nil {
		sc.setStateLocked(Disconnected)
		hErr := WrapError(err, ErrCodeConnectionFailed).AddDetail("endpoint", rawURL)
		sc.logger.LogError(hErr)
		return hErr
	}

	sc.conn = conn
	sc.gen++
	sc.setStateLocked(Open)
	sc.logger.LogConnectionEvent("connected", Open, map[string]interface{}{
		"endpoint": rawURL,
	})

	// Announce the language preference before any inbound traffic is read.
	// The receive loop has not started yet, so this write cannot interleave.
	lang, displayName := sc.session.Preference()
	frame, err := EncodeMessage(&SetLangMessage{
		Time:        Now(),
		Lang:        lang,
		DisplayName: displayName,
	})
	if err != nil {
		sc.logger.LogError(WrapError(err, ErrCodeJSONParse))
	} else if werr := conn.WriteMessage(websocket.TextMessage, frame); werr != nil {
		sc.logger.LogError(WrapError(werr, ErrCodeWebSocket))
	}

	ctx, cancel := context.WithCancel(context.Background())
	sc.cancel = cancel
	go sc.receiveLoop(ctx, conn, sc.gen)

	return nil
}

// buildDialURL attaches the signed connect token when a secret is configured.
func (sc *SocketClient) buildDialURL(rawURL string) (string, error) {
	if sc.config.WsSecret == "" {
		return rawURL, nil
	}

	lang, displayName := sc.session.Preference()
	token, err := GenerateConnectToken(sc.config.WsSecret, sc.session.DeviceTag(), lang, displayName)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Close shuts the connection down: cancels the receive loop, sends a close
// frame if the socket is Open, releases the transport, and returns the state
// to Disconnected. Calling Close when already Disconnected is a no-op, and
// Close is safe to call while a receive is in flight.
func (sc *SocketClient) Close() {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.conn == nil && sc.state == Disconnected {
		return
	}
	sc.teardownLocked("closed")
}

func (sc *SocketClient) teardownLocked(reason string) {
	sc.setStateLocked(Closing)

	if sc.cancel != nil {
		sc.cancel()
		sc.cancel = nil
	}

	if sc.conn != nil {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = sc.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWriteTimeout))
		_ = sc.conn.Close()
		sc.conn = nil
	}

	sc.session.Reset()
	sc.setStateLocked(Disconnected)
	sc.logger.LogConnectionEvent(reason, Disconnected, nil)
}

// receiveLoop reads frames until the connection dies or the context is
// cancelled. It only decodes bytes, enqueues closures, and (with frame
// tracing enabled) emits debug logs; every side effect runs on the consumer
// drain, in frame order.
func (sc *SocketClient) receiveLoop(ctx context.Context, conn *websocket.Conn, gen uint64) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				// Cancelled by Close or a superseding Connect; the teardown
				// already logged it.
				return
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				sc.queue.Enqueue(func() {
					sc.logger.LogConnectionEvent("peer_closed", Disconnected, nil)
				})
			} else if sc.markReceiveFailure(gen) {
				hErr := WrapError(err, ErrCodeWebSocket)
				sc.queue.Enqueue(func() {
					sc.logger.LogError(hErr)
				})
			}
			sc.releaseConn(gen)
			return
		}

		if sc.config.DebugWebsocket {
			sc.logger.WithField("bytes", len(data)).Debug("frame received")
		}

		raw := data
		sc.queue.Enqueue(func() {
			if ctx.Err() != nil {
				// The session this frame belongs to is already closed.
				return
			}
			sc.dispatcher.Dispatch(raw)
		})
	}
}

// markReceiveFailure reports whether a mid-session read error should be
// surfaced: only when this loop's connection is still current and was Open.
func (sc *SocketClient) markReceiveFailure(gen uint64) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.gen == gen && sc.state == Open
}

// releaseConn drops the transport after the receive loop exits, unless a
// superseding Connect already replaced it.
func (sc *SocketClient) releaseConn(gen uint64) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.gen != gen || sc.conn == nil {
		return
	}
	_ = sc.conn.Close()
	sc.conn = nil
	if sc.cancel != nil {
		sc.cancel()
		sc.cancel = nil
	}
	sc.session.Reset()
	sc.setStateLocked(Disconnected)
}

// writeFrame transmits one encoded frame. It is invoked by emitter actions on
// the consumer drain; the mutex keeps it from interleaving with teardown.
func (sc *SocketClient) writeFrame(data []byte) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.state != Open || sc.conn == nil {
		return NewNotConnectedError("not connected")
	}
	if err := sc.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return WrapError(err, ErrCodeWebSocket)
	}
	if sc.config.DebugWebsocket {
		sc.logger.WithField("bytes", len(data)).Debug("frame sent")
	}
	return nil
}

func (sc *SocketClient) setStateLocked(state ConnectionState) {
	if sc.state == state {
		return
	}
	sc.state = state
	for _, handler := range sc.connectionHandlers {
		h := handler
		s := state
		sc.queue.Enqueue(func() { h(s) })
	}
}

// AddConnectionHandler registers a state-change observer. Handlers run on the
// consumer drain, in the order the transitions happened.
func (sc *SocketClient) AddConnectionHandler(handler ConnectionHandler) {
	sc.mu.Lock()
	sc.connectionHandlers = append(sc.connectionHandlers, handler)
	sc.mu.Unlock()
}

// State returns the current connection state.
func (sc *SocketClient) State() ConnectionState {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.state
}

// IsOpen reports whether the channel is ready for sends.
func (sc *SocketClient) IsOpen() bool {
	return sc.State() == Open
}
