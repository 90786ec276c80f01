package delivery

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/Vovarama1992/voice_to_text/internal/archive"
	"github.com/Vovarama1992/voice_to_text/internal/journal"
	"github.com/Vovarama1992/voice_to_text/internal/notificator"
	"github.com/Vovarama1992/voice_to_text/internal/transcription"
)

const (
	uploadField = "audioFile"
	tokenField  = "_token"
	tokenHeader = "X-CSRF-Token"

	// запас на заголовки multipart сверх размера самого файла
	multipartOverhead = 1 << 20
)

type Converter interface {
	Convert(ctx context.Context, f transcription.File) (string, error)
}

type TranscriptionHandler struct {
	converter Converter
	journal   *journal.Service
	archive   *archive.Service
	notifier  *notificator.Service
	log       *logger.ZapLogger

	uploadDir string
	maxSize   int64
	csrfToken string
}

type HandlerOptions struct {
	UploadDir string
	MaxSize   int64
	CSRFToken string
}

func NewTranscriptionHandler(
	converter Converter,
	journalSvc *journal.Service,
	archiveSvc *archive.Service,
	notifier *notificator.Service,
	log *logger.ZapLogger,
	opts HandlerOptions,
) *TranscriptionHandler {
	return &TranscriptionHandler{
		converter: converter,
		journal:   journalSvc,
		archive:   archiveSvc,
		notifier:  notifier,
		log:       log,
		uploadDir: opts.UploadDir,
		maxSize:   opts.MaxSize,
		csrfToken: opts.CSRFToken,
	}
}

// Convert — POST /audio-to-text
func (h *TranscriptionHandler) Convert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrors(w, http.StatusBadRequest, []string{h.tooLargeMessage(tooLarge.Limit)})
			return
		}
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid multipart", Error: err})
		writeError(w, http.StatusBadRequest, "Invalid multipart request.")
		return
	}
	defer r.MultipartForm.RemoveAll()

	if !h.validToken(r) {
		writeError(w, http.StatusForbidden, "Invalid CSRF token.")
		return
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file was uploaded")
		return
	}
	defer file.Close()

	mimeType := declaredMime(header.Header.Get("Content-Type"))
	if violations := h.preCheck(header.Size, mimeType); len(violations) > 0 {
		writeErrors(w, http.StatusBadRequest, violations)
		return
	}

	path, err := h.store(file, header.Filename)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "failed to store upload", Error: err})
		writeError(w, http.StatusInternalServerError, "Failed to store the uploaded file.")
		return
	}
	// временный файл удаляется при любом исходе
	defer h.remove(path)

	f, err := transcription.LoadFile(path, header.Filename, mimeType)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "failed to read upload", Error: err})
		writeError(w, http.StatusInternalServerError, "Failed to store the uploaded file.")
		return
	}

	ctx := r.Context()

	archiveURL, err := h.archive.SaveAudio(ctx, f)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "archive upload failed", Error: err})
	}

	text, convErr := h.converter.Convert(ctx, f)

	h.journal.Record(ctx, f, text, convErr, archiveURL)
	if err := h.notifier.Alert(ctx, f, convErr); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "admin alert failed", Error: err})
	}

	if convErr != nil {
		writeError(w, statusFor(transcription.KindOf(convErr)), messageOf(convErr))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"text":    text,
	})
}

// List — GET /transcriptions?limit=N
func (h *TranscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := h.journal.List(r.Context(), limit)
	if errors.Is(err, journal.ErrDisabled) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "db error", Error: err})
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"transcriptions": entries,
	})
}

func (h *TranscriptionHandler) validToken(r *http.Request) bool {
	if h.csrfToken == "" {
		return true
	}
	token := r.Header.Get(tokenHeader)
	if token == "" {
		token = r.FormValue(tokenField)
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.csrfToken)) == 1
}

func (h *TranscriptionHandler) preCheck(size int64, mimeType string) []string {
	var violations []string
	if size > h.maxSize {
		violations = append(violations, h.tooLargeMessage(size))
	}
	if !transcription.SupportedMime(mimeType) {
		violations = append(violations,
			"Please upload a valid audio file (mp3, mp4, mpeg, m4a, wav, or webm).")
	}
	return violations
}

func (h *TranscriptionHandler) tooLargeMessage(size int64) string {
	return fmt.Sprintf("The file is too large (%s). Allowed maximum size is %s.",
		humanize.Bytes(uint64(size)), humanize.Bytes(uint64(h.maxSize)))
}

// store сохраняет загрузку под уникальным именем <uuid>-audio.<ext>.
func (h *TranscriptionHandler) store(src io.Reader, original string) (string, error) {
	name := uuid.NewString() + "-audio"
	if ext := strings.ToLower(filepath.Ext(original)); ext != "" {
		name += ext
	}
	path := filepath.Join(h.uploadDir, name)

	dst, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close upload: %w", err)
	}
	return path, nil
}

func (h *TranscriptionHandler) remove(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "failed to remove upload " + path, Error: err})
	}
}

func declaredMime(header string) string {
	mt, _, err := mime.ParseMediaType(header)
	if err != nil {
		return strings.TrimSpace(header)
	}
	return mt
}
