package transcription

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File — описание аудио, которое уходит в пайплайн. После создания не меняется.
type File struct {
	path    string
	name    string
	ext     string
	mime    string
	content []byte
}

func NewFile(path, name, ext, mime string, content []byte) File {
	return File{
		path:    path,
		name:    name,
		ext:     strings.TrimPrefix(ext, "."),
		mime:    mime,
		content: content,
	}
}

// LoadFile читает байты с диска один раз; расширение берётся из path.
func LoadFile(path, name, mime string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read audio file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	return NewFile(path, name, ext, mime, data), nil
}

func (f File) Path() string { return f.path }
func (f File) Name() string { return f.name }
func (f File) Ext() string  { return f.ext }
func (f File) Mime() string { return f.mime }

// Content отдаёт копию, чтобы File оставался неизменяемым.
func (f File) Content() []byte {
	out := make([]byte, len(f.content))
	copy(out, f.content)
	return out
}

func (f File) Size() int { return len(f.content) }
