package journal

import (
	"context"
	"database/sql"
	"fmt"
)

type pgRepo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Repo {
	return &pgRepo{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id          BIGSERIAL PRIMARY KEY,
	file_name   TEXT        NOT NULL,
	mime        TEXT        NOT NULL,
	size        INTEGER     NOT NULL,
	kind        TEXT        NOT NULL DEFAULT '',
	text        TEXT,
	error       TEXT,
	status_code INTEGER,
	archive_url TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// EnsureSchema создаёт таблицу, если её ещё нет.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create transcriptions table: %w", err)
	}
	return nil
}

func (r *pgRepo) Save(ctx context.Context, e Entry) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO transcriptions (file_name, mime, size, kind, text, error, status_code, archive_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, e.FileName, e.Mime, e.Size, e.Kind, e.Text, e.Error, e.StatusCode, e.ArchiveURL, e.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert transcription: %w", err)
	}
	return id, nil
}

func (r *pgRepo) List(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, file_name, mime, size, kind, text, error, status_code, archive_url, created_at
		FROM transcriptions
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID,
			&e.FileName,
			&e.Mime,
			&e.Size,
			&e.Kind,
			&e.Text,
			&e.Error,
			&e.StatusCode,
			&e.ArchiveURL,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
