package notificator

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/voice_to_text/internal/transcription"
)

type Service struct {
	infra Notificator
}

// NewService: infra == nil — уведомления выключены.
func NewService(infra Notificator) *Service {
	return &Service{infra: infra}
}

// needsOperator — ошибки, которые пользователь сам не исправит.
func needsOperator(kind transcription.Kind) bool {
	switch kind {
	case transcription.KindInvalidCredential,
		transcription.KindRemoteServerError,
		transcription.KindRemoteOverloaded:
		return true
	}
	return false
}

// Alert шлёт админу только ошибки конфигурации и сбои на стороне сервиса.
func (s *Service) Alert(ctx context.Context, f transcription.File, err error) error {
	if s.infra == nil || err == nil {
		return nil
	}
	if !needsOperator(transcription.KindOf(err)) {
		return nil
	}
	return s.infra.Notify(ctx, err, fmt.Sprintf("file=%s mime=%s size=%d", f.Name(), f.Mime(), f.Size()))
}
