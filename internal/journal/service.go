package journal

import (
	"context"
	"errors"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/voice_to_text/internal/transcription"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

var ErrDisabled = errors.New("journal is disabled")

type Service struct {
	repo Repo
	log  *logger.ZapLogger
	now  func() time.Time
}

// NewService: repo == nil выключает журнал, Record становится no-op.
func NewService(repo Repo, log *logger.ZapLogger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

func (s *Service) Enabled() bool { return s.repo != nil }

// Record сохраняет исход конвертации. Ошибка записи только логируется:
// журнал не должен ломать ответ пользователю.
func (s *Service) Record(ctx context.Context, f transcription.File, text string, convErr error, archiveURL string) {
	if s.repo == nil {
		return
	}

	e := Entry{
		FileName:  f.Name(),
		Mime:      f.Mime(),
		Size:      f.Size(),
		CreatedAt: s.now(),
	}
	if archiveURL != "" {
		e.ArchiveURL = &archiveURL
	}

	var te *transcription.Error
	switch {
	case convErr == nil:
		e.Text = &text
	case errors.As(convErr, &te):
		e.Kind = string(te.Kind)
		msg := te.Message
		e.Error = &msg
		if te.StatusCode != 0 {
			code := te.StatusCode
			e.StatusCode = &code
		}
	default:
		msg := convErr.Error()
		e.Error = &msg
	}

	if _, err := s.repo.Save(ctx, e); err != nil {
		s.log.Log(logger.LogEntry{Level: "error", Message: "journal save failed", Error: err})
	}
}

func (s *Service) List(ctx context.Context, limit int) ([]Entry, error) {
	if s.repo == nil {
		return nil, ErrDisabled
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.List(ctx, limit)
}
