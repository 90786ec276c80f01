package delivery

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/Vovarama1992/voice_to_text/internal/transcription"
)

func statusFor(kind transcription.Kind) int {
	switch kind {
	case transcription.KindInvalidInput:
		return http.StatusBadRequest
	case transcription.KindInvalidCredential:
		return http.StatusUnauthorized
	case transcription.KindRateLimited:
		return http.StatusTooManyRequests
	case transcription.KindRemoteOverloaded, transcription.KindTransport:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func messageOf(err error) string {
	var te *transcription.Error
	if errors.As(err, &te) {
		return te.Message
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   msg,
	})
}

func writeErrors(w http.ResponseWriter, status int, msgs []string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"errors":  msgs,
	})
}
