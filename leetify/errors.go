package leetify

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindInvalidIdentifier ErrorKind = "invalid_identifier"
	KindMissingParameter  ErrorKind = "missing_parameter"
	KindInvalidConfig     ErrorKind = "invalid_config"
	KindInvalidAPIKey     ErrorKind = "invalid_api_key"
	KindHTTP              ErrorKind = "http"
	KindAPI               ErrorKind = "api"
	KindDecode            ErrorKind = "decode"
)

// Sentinels for errors.Is. Matching is by kind only, so
// errors.Is(err, ErrAPI) holds for every API error regardless of status.
var (
	ErrInvalidIdentifier = &Error{Kind: KindInvalidIdentifier}
	ErrMissingParameter  = &Error{Kind: KindMissingParameter}
	ErrInvalidConfig     = &Error{Kind: KindInvalidConfig}
	ErrInvalidAPIKey     = &Error{Kind: KindInvalidAPIKey}
	ErrHTTP              = &Error{Kind: KindHTTP}
	ErrAPI               = &Error{Kind: KindAPI}
	ErrDecode            = &Error{Kind: KindDecode}
)

// Error is returned by every Client operation.
type Error struct {
	Kind ErrorKind

	// StatusCode is set for KindAPI, and for KindInvalidAPIKey when the
	// server rejected the key.
	StatusCode int
	Message    string

	// Param names the offending argument for KindMissingParameter and
	// KindInvalidConfig.
	Param string
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	var msg string
	switch e.Kind {
	case KindAPI:
		msg = fmt.Sprintf("leetify: api error (status %d): %s", e.StatusCode, e.Message)
	case KindMissingParameter:
		msg = fmt.Sprintf("leetify: missing required parameter: %s", e.Param)
	case KindInvalidAPIKey:
		msg = "leetify: invalid or missing api key"
	default:
		msg = fmt.Sprintf("leetify: %s", e.Kind)
		if e.Message != "" {
			msg += ": " + e.Message
		}
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (%v)", e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of a *Error in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

func invalidIdentifier(input, reason string) error {
	return &Error{Kind: KindInvalidIdentifier, Message: fmt.Sprintf("%q: %s", input, reason)}
}

func missingParameter(name string) error {
	return &Error{Kind: KindMissingParameter, Param: name}
}

func invalidConfig(param, reason string) error {
	return &Error{Kind: KindInvalidConfig, Param: param, Message: param + ": " + reason}
}
