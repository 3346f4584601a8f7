package headset

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// syncBuffer lets the logger be written from multiple goroutines in tests.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// newTestLogger returns a JSON logger capturing everything at debug level.
func newTestLogger() (*HeadsetLogger, *syncBuffer) {
	buf := &syncBuffer{}
	logger := NewHeadsetLogger(&LogConfig{
		Level:  DebugLevel,
		Pretty: false,
		Output: buf,
		Fields: map[string]interface{}{},
	})
	return logger, buf
}

// logEntries parses the captured JSON log lines.
func logEntries(buf *syncBuffer) []map[string]interface{} {
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// countErrorLogs counts error-level entries, optionally filtered by code.
func countErrorLogs(buf *syncBuffer, code string) int {
	count := 0
	for _, entry := range logEntries(buf) {
		if entry["level"] != "error" {
			continue
		}
		if code != "" && entry["error_code"] != code {
			continue
		}
		count++
	}
	return count
}

// serverConn wraps one accepted WebSocket on the test server side.
type serverConn struct {
	ws     *websocket.Conn
	frames chan []byte
	closed chan struct{}
}

// nextFrame waits for one raw frame from the client.
func (c *serverConn) nextFrame(t *testing.T) []byte {
	t.Helper()
	select {
	case frame, ok := <-c.frames:
		require.True(t, ok, "server connection closed while waiting for frame")
		return frame
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for client frame")
		return nil
	}
}

// waitClosed waits until the client side of this connection goes away.
func (c *serverConn) waitClosed(t *testing.T) {
	t.Helper()
	select {
	case <-c.closed:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for connection close")
	}
}

func (c *serverConn) send(t *testing.T, frame string) {
	t.Helper()
	require.NoError(t, c.ws.WriteMessage(websocket.TextMessage, []byte(frame)))
}

// channelServer is an in-process stand-in for the channel backend.
type channelServer struct {
	srv   *httptest.Server
	conns chan *serverConn

	mu       sync.Mutex
	lastAuth string
}

func newChannelServer(t *testing.T) *channelServer {
	t.Helper()
	cs := &channelServer{conns: make(chan *serverConn, 8)}
	upgrader := websocket.Upgrader{}

	cs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.mu.Lock()
		cs.lastAuth = r.URL.Query().Get("token")
		cs.mu.Unlock()

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn := &serverConn{
			ws:     ws,
			frames: make(chan []byte, 32),
			closed: make(chan struct{}),
		}
		cs.conns <- conn

		go func() {
			defer close(conn.closed)
			for {
				_, data, err := ws.ReadMessage()
				if err != nil {
					return
				}
				conn.frames <- data
			}
		}()
	}))
	t.Cleanup(cs.srv.Close)
	return cs
}

func (cs *channelServer) url() string {
	return "ws" + strings.TrimPrefix(cs.srv.URL, "http")
}

// accept waits for the next client connection.
func (cs *channelServer) accept(t *testing.T) *serverConn {
	t.Helper()
	select {
	case conn := <-cs.conns:
		return conn
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for client connection")
		return nil
	}
}

func (cs *channelServer) lastToken() string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.lastAuth
}

// drainUntil drains the queue until cond holds or the deadline passes.
func drainUntil(t *testing.T, queue *DispatchQueue, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		queue.DrainOnce()
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached while draining")
}
