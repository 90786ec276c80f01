package journal

import (
	"context"
	"time"
)

// Entry — одна попытка распознавания, успешная или нет.
type Entry struct {
	ID         int64     `json:"id"`
	FileName   string    `json:"file_name"`
	Mime       string    `json:"mime"`
	Size       int       `json:"size"`
	Kind       string    `json:"kind,omitempty"`
	Text       *string   `json:"text,omitempty"`
	Error      *string   `json:"error,omitempty"`
	StatusCode *int      `json:"status_code,omitempty"`
	ArchiveURL *string   `json:"archive_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Repo interface {
	Save(ctx context.Context, e Entry) (int64, error)
	List(ctx context.Context, limit int) ([]Entry, error)
}
