package headset

// Error codes as constants
const (
	ErrCodeConnectionFailed = "CONNECTION_FAILED"
	ErrCodeNotConnected     = "NOT_CONNECTED"
	ErrCodeWebSocket        = "WEBSOCKET_ERROR"
	ErrCodeProtocol         = "PROTOCOL_ERROR"
	ErrCodeServerError      = "SERVER_ERROR"
	ErrCodeConfigInvalid    = "CONFIG_INVALID"
	ErrCodeJSONParse        = "JSON_PARSE_ERROR"
	ErrCodeTokenFailed      = "TOKEN_GENERATION_FAILED"
	ErrCodeUnknown          = "UNKNOWN_ERROR"
)

// Specific error creators with common codes
func NewConnectionError(message string) *HeadsetError {
	return NewHeadsetError(message, ErrCodeConnectionFailed)
}

func NewNotConnectedError(message string) *HeadsetError {
	return NewHeadsetError(message, ErrCodeNotConnected)
}

func NewWebSocketError(message string) *HeadsetError {
	return NewHeadsetError(message, ErrCodeWebSocket)
}

func NewProtocolError(message string, raw []byte) *HeadsetError {
	return NewHeadsetError(message, ErrCodeProtocol).AddDetail("raw", string(raw))
}

func NewConfigError(message string) *HeadsetError {
	return NewHeadsetError(message, ErrCodeConfigInvalid)
}

func NewJSONError(message string) *HeadsetError {
	return NewHeadsetError(message, ErrCodeJSONParse)
}

func NewUnknownError(message string) *HeadsetError {
	return NewHeadsetError(message, ErrCodeUnknown)
}

// Helper to wrap any error as HeadsetError
func WrapError(err error, code string) *HeadsetError {
	if err == nil {
		return nil
	}
	hErr := NewHeadsetError(err.Error(), code)
	hErr.err = err
	return hErr
}

// Helper to add details to existing HeadsetError
func (e *HeadsetError) AddDetail(key string, value interface{}) *HeadsetError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Helper to get error details
func (e *HeadsetError) GetDetail(key string) (interface{}, bool) {
	if e.Details == nil {
		return nil, false
	}
	value, exists := e.Details[key]
	return value, exists
}

// Helper to check if error has specific code
func IsErrorCode(err *HeadsetError, code string) bool {
	if err == nil {
		return false
	}
	return err.Code == code
}
