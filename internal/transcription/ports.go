package transcription

import "context"

// RawResponse — статус и тело ответа, без интерпретации.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// Sender отправляет собранный запрос в сервис распознавания.
type Sender interface {
	Send(ctx context.Context, req WireRequest) (RawResponse, error)
}
