package headset

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, server *channelServer) (*HeadsetClient, *CapturingDisplay, *syncBuffer) {
	t.Helper()
	logger, buf := newTestLogger()
	config := &HeadsetConfig{
		WsEndpoint:    server.url(),
		Lang:          "en",
		DisplayName:   "Quest-1",
		DrainInterval: 5 * time.Millisecond,
	}
	display := NewCapturingDisplay()
	client := NewHeadsetClient(config, display, logger)
	t.Cleanup(client.Close)
	return client, display, buf
}

func TestClientEndToEndScenario(t *testing.T) {
	server := newChannelServer(t)
	client, display, buf := newTestClient(t, server)

	require.NoError(t, client.Connect())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Run(ctx)

	conn := server.accept(t)
	frame := decodeFrame(t, conn.nextFrame(t))
	require.Equal(t, "set_lang", frame["type"])

	conn.send(t, `{"type":"hello","client_id":"abc123"}`)
	conn.send(t, `{"type":"chat","display_text":"Bonjour"}`)

	require.Eventually(t, func() bool {
		return client.Session().ClientID() == "abc123" && len(display.Lines()) == 1
	}, 2*time.Second, 5*time.Millisecond)

	require.Equal(t, []string{"Bonjour"}, display.Lines())
	require.Equal(t, 0, countErrorLogs(buf, ""))
}

func TestClientRunStopsAndCloses(t *testing.T) {
	server := newChannelServer(t)
	client, _, _ := newTestClient(t, server)

	require.NoError(t, client.Connect())
	conn := server.accept(t)
	conn.nextFrame(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		client.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}

	require.Equal(t, Disconnected, client.ConnectionState())
	conn.waitClosed(t)
}

func TestTranscriptForwarderSendsToPi(t *testing.T) {
	server := newChannelServer(t)
	client, _, _ := newTestClient(t, server)

	require.NoError(t, client.Connect())
	conn := server.accept(t)
	conn.nextFrame(t)

	forward := CreateTranscriptForwarder(client)
	forward("") // empty transcripts are swallowed, not sent
	forward("take the next exit")
	client.Drain()

	frame := decodeFrame(t, conn.nextFrame(t))
	require.Equal(t, "headset_to_pi", frame["type"])
	require.Equal(t, "take the next exit", frame["text"])
}

func TestClientSendWhileDisconnected(t *testing.T) {
	server := newChannelServer(t)
	client, _, buf := newTestClient(t, server)

	err := client.SendChat("nobody hears this")
	require.NotNil(t, err)
	require.Equal(t, ErrCodeNotConnected, err.Code)
	require.Equal(t, 1, countErrorLogs(buf, ErrCodeNotConnected))
}
