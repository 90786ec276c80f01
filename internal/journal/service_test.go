package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"go.uber.org/zap"

	"github.com/Vovarama1992/voice_to_text/internal/transcription"
)

type fakeRepo struct {
	saved   []Entry
	limit   int
	saveErr error
}

func (r *fakeRepo) Save(_ context.Context, e Entry) (int64, error) {
	if r.saveErr != nil {
		return 0, r.saveErr
	}
	r.saved = append(r.saved, e)
	return int64(len(r.saved)), nil
}

func (r *fakeRepo) List(_ context.Context, limit int) ([]Entry, error) {
	r.limit = limit
	return r.saved, nil
}

func newTestService(repo Repo) *Service {
	s := NewService(repo, logger.NewZapLogger(zap.NewNop().Sugar()))
	s.now = func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestServiceRecordSuccess(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo)
	f := transcription.NewFile("", "a.mp3", "mp3", "audio/mpeg", []byte("abc"))

	s.Record(context.Background(), f, "hello", nil, "https://s3/a.mp3")

	if len(repo.saved) != 1 {
		t.Fatalf("saved = %d, want 1", len(repo.saved))
	}
	e := repo.saved[0]
	if e.FileName != "a.mp3" || e.Mime != "audio/mpeg" || e.Size != 3 {
		t.Errorf("entry = %+v", e)
	}
	if e.Text == nil || *e.Text != "hello" {
		t.Errorf("Text = %v, want hello", e.Text)
	}
	if e.Error != nil || e.Kind != "" {
		t.Errorf("success entry should not carry an error: %+v", e)
	}
	if e.ArchiveURL == nil || *e.ArchiveURL != "https://s3/a.mp3" {
		t.Errorf("ArchiveURL = %v", e.ArchiveURL)
	}
}

func TestServiceRecordFailure(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo)
	f := transcription.NewFile("", "a.mp3", "mp3", "audio/mpeg", []byte("abc"))

	s.Record(context.Background(), f, "", &transcription.Error{
		Kind:       transcription.KindRateLimited,
		Message:    "Rate limit reached for requests.",
		StatusCode: 429,
	}, "")

	e := repo.saved[0]
	if e.Kind != string(transcription.KindRateLimited) {
		t.Errorf("Kind = %v", e.Kind)
	}
	if e.Text != nil {
		t.Errorf("Text = %v, want nil", *e.Text)
	}
	if e.StatusCode == nil || *e.StatusCode != 429 {
		t.Errorf("StatusCode = %v, want 429", e.StatusCode)
	}
	if e.ArchiveURL != nil {
		t.Errorf("ArchiveURL = %v, want nil", *e.ArchiveURL)
	}
}

func TestServiceRecordSaveErrorIsSwallowed(t *testing.T) {
	s := newTestService(&fakeRepo{saveErr: errors.New("db down")})
	f := transcription.NewFile("", "a.mp3", "mp3", "audio/mpeg", []byte("abc"))
	s.Record(context.Background(), f, "hello", nil, "")
}

func TestServiceDisabled(t *testing.T) {
	s := newTestService(nil)
	if s.Enabled() {
		t.Error("Enabled() = true, want false")
	}
	s.Record(context.Background(), transcription.File{}, "", nil, "")
	if _, err := s.List(context.Background(), 10); !errors.Is(err, ErrDisabled) {
		t.Errorf("List() error = %v, want ErrDisabled", err)
	}
}

func TestServiceListLimit(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo)

	for _, tt := range []struct{ in, want int }{{0, 50}, {-3, 50}, {10, 10}, {10000, 500}} {
		if _, err := s.List(context.Background(), tt.in); err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if repo.limit != tt.want {
			t.Errorf("List(%d) limit = %d, want %d", tt.in, repo.limit, tt.want)
		}
	}
}
