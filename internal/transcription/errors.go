package transcription

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindInvalidCredential Kind = "invalid_credential"
	KindRateLimited       Kind = "rate_limited"
	KindRemoteServerError Kind = "remote_server_error"
	KindRemoteOverloaded  Kind = "remote_overloaded"
	KindMalformedResponse Kind = "malformed_response"
	KindTransport         Kind = "transport_error"
)

// Error — единственный тип ошибки пайплайна. Классифицируется один раз,
// в месте обнаружения, и дальше не переупаковывается.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable — можно ли вызывающему повторить запрос позже. Сам пайплайн не ретраит.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindRateLimited, KindRemoteServerError, KindRemoteOverloaded, KindTransport:
		return true
	}
	return false
}

func invalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

func malformed(msg string) *Error {
	return &Error{Kind: KindMalformedResponse, Message: msg}
}

// KindOf возвращает вид ошибки; пустую строку для nil и чужих ошибок.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return ""
}
