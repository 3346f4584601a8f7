package headset

import "time"

// Result types for error handling on the one-shot API surface
type Result[T any] struct {
	Data    T
	Error   *HeadsetError
	Success bool
}

func Ok[T any](data T) Result[T] {
	return Result[T]{Data: data, Success: true}
}

func Err[T any](err *HeadsetError) Result[T] {
	return Result[T]{Error: err, Success: false}
}

// ConnectionState enum. Exactly one socket client owns one of these at a time.
type ConnectionState string

const (
	Disconnected ConnectionState = "disconnected"
	Connecting   ConnectionState = "connecting"
	Open         ConnectionState = "open"
	Closing      ConnectionState = "closing"
)

// HeadsetError struct
type HeadsetError struct {
	Message   string
	Code      string
	Timestamp float64
	err       error
	Details   map[string]interface{} // Additional details about the error
}

func (e *HeadsetError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return e.Message
}

func NewHeadsetError(message, code string) *HeadsetError {
	return &HeadsetError{
		Message:   message,
		Code:      code,
		Timestamp: float64(time.Now().UnixMilli()),
	}
}

// Handler types
type MessageHandler func(Message)
type ConnectionHandler func(ConnectionState)
type ErrorHandler func(*HeadsetError)

// DisplaySink receives translated text ready to render. The dispatcher calls
// it from the consumer context only.
type DisplaySink interface {
	ShowText(text string)
}

// DisplayFunc adapts a plain function to a DisplaySink.
type DisplayFunc func(text string)

func (f DisplayFunc) ShowText(text string) { f(text) }
