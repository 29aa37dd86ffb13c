package core

import "errors"

// ErrChatUnavailable is returned when the generative client was never
// initialized (e.g. missing API key at startup).
var ErrChatUnavailable = errors.New("chat service not initialized")

// ErrInvalidCredentials is returned on any username/password/role mismatch
// during login. Deliberately does not say which field was wrong.
var ErrInvalidCredentials = errors.New("invalid username, password, or role")

// ValidationError marks malformed or missing request input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ExtractionError marks a failure of an external model inference call
// (sentiment classifier or image feature extractor).
type ExtractionError struct {
	Msg string
	Err error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ExtractionError) Unwrap() error { return e.Err }
