package headset

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Factory functions for common collaborator glue

// CreateConsoleDisplay renders chat lines to a writer, one per line. The
// dispatcher only calls it from the consumer drain.
func CreateConsoleDisplay(out io.Writer) DisplaySink {
	return DisplayFunc(func(text string) {
		fmt.Fprintln(out, text)
	})
}

// CreateLoggingDisplay forwards display text to the structured logger instead
// of a UI surface. Useful for headless runs.
func CreateLoggingDisplay(logger *HeadsetLogger) DisplaySink {
	if logger == nil {
		logger = GetGlobalLogger()
	}
	l := logger.WithComponent("display")
	return DisplayFunc(func(text string) {
		l.Info(text)
	})
}

// CreateCapturingDisplay records every rendered line, for tests and replay.
// Lines() returns a copy in render order.
type CapturingDisplay struct {
	mu    sync.Mutex
	lines []string
}

func NewCapturingDisplay() *CapturingDisplay {
	return &CapturingDisplay{}
}

func (d *CapturingDisplay) ShowText(text string) {
	d.mu.Lock()
	d.lines = append(d.lines, text)
	d.mu.Unlock()
}

func (d *CapturingDisplay) Lines() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// ChainDisplays fans one chat line out to several sinks, in order.
func ChainDisplays(sinks ...DisplaySink) DisplaySink {
	return DisplayFunc(func(text string) {
		for _, s := range sinks {
			if s != nil {
				s.ShowText(text)
			}
		}
	})
}

// CreateConnectionStatusHandler logs every state transition and optionally
// forwards it to a callback.
func CreateConnectionStatusHandler(logger *HeadsetLogger, callback func(ConnectionState)) ConnectionHandler {
	if logger == nil {
		logger = GetGlobalLogger()
	}
	return func(state ConnectionState) {
		logger.LogConnectionEvent("state_changed", state, map[string]interface{}{
			"at": time.Now().Format(time.RFC3339),
		})
		if callback != nil {
			callback(state)
		}
	}
}

// CreateTranscriptForwarder adapts the local speech-to-text pipeline to the
// emitter: hand the returned func to the pipeline as its completion callback
// and each finished transcript goes out as a headset_to_pi frame.
func CreateTranscriptForwarder(client *HeadsetClient) func(transcript string) {
	return func(transcript string) {
		if transcript == "" {
			return
		}
		client.SendTranscript(transcript)
	}
}
