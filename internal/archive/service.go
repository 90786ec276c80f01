package archive

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Vovarama1992/voice_to_text/internal/transcription"
)

type Service struct {
	client Client
	now    func() time.Time
}

// NewService: client == nil — архив выключен, SaveAudio ничего не делает.
func NewService(client Client) *Service {
	return &Service{client: client, now: time.Now}
}

func (s *Service) Enabled() bool { return s.client != nil }

// ObjectKey — путь в бакете
func (s *Service) ObjectKey(filename string) string {
	date := s.now().Format("2006-01-02")
	return fmt.Sprintf("audio/%s/%s", date, filepath.Base(filename))
}

// SaveAudio кладёт загруженный файл в бакет под его временным (уникальным) именем.
func (s *Service) SaveAudio(ctx context.Context, f transcription.File) (string, error) {
	if s.client == nil {
		return "", nil
	}

	key := s.ObjectKey(f.Path())
	data := f.Content()
	return s.client.PutObject(ctx, key, bytes.NewReader(data), int64(len(data)), f.Mime())
}
