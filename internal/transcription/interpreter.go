package transcription

import (
	"net/http"

	json "github.com/goccy/go-json"
)

const (
	msgInvalidSecret = "Invalid API secret."
	msgRateLimit     = "Rate limit reached for requests."
	msgServerError   = "API server error."
	msgOverloaded    = "API server is overloaded."
	msgInvalidFormat = "Invalid response format."
	msgNoTextKey     = "The response does not have the text key."
)

type Interpreter struct{}

func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

// Interpret сначала смотрит на статус и только потом парсит тело:
// ответы с ошибкой не обязаны быть валидным JSON.
func (i *Interpreter) Interpret(resp RawResponse) (string, error) {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return "", remoteError(KindInvalidCredential, msgInvalidSecret, resp.StatusCode)
	case http.StatusTooManyRequests:
		return "", remoteError(KindRateLimited, msgRateLimit, resp.StatusCode)
	case http.StatusInternalServerError:
		return "", remoteError(KindRemoteServerError, msgServerError, resp.StatusCode)
	case http.StatusServiceUnavailable:
		return "", remoteError(KindRemoteOverloaded, msgOverloaded, resp.StatusCode)
	}

	var parsed any
	if err := json.Unmarshal(resp.Body, &parsed); err != nil || parsed == nil {
		return "", malformed(msgInvalidFormat)
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return "", malformed(msgNoTextKey)
	}

	raw, ok := obj["text"]
	if !ok {
		return "", malformed(msgNoTextKey)
	}

	text, ok := raw.(string)
	if !ok {
		return "", malformed(msgInvalidFormat)
	}

	return text, nil
}

func remoteError(kind Kind, msg string, status int) *Error {
	return &Error{Kind: kind, Message: msg, StatusCode: status}
}
