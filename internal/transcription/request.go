package transcription

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Model — фиксированная модель распознавания.
const Model = openai.Whisper1

// WireRequest — готовое к отправке тело и заголовки.
type WireRequest struct {
	Body   []byte
	Header http.Header
}

type RequestBuilder struct {
	secret   string
	boundary string
}

type BuilderOption func(*RequestBuilder)

// WithBoundary фиксирует multipart boundary (иначе он случайный).
func WithBoundary(boundary string) BuilderOption {
	return func(b *RequestBuilder) { b.boundary = boundary }
}

func NewRequestBuilder(secret string, opts ...BuilderOption) *RequestBuilder {
	b := &RequestBuilder{secret: secret}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build собирает multipart из двух частей: file и model.
func (b *RequestBuilder) Build(f File) (WireRequest, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if b.boundary != "" {
		if err := w.SetBoundary(b.boundary); err != nil {
			return WireRequest{}, buildError("set boundary", err)
		}
	}

	part, err := w.CreatePart(filePartHeader(f))
	if err != nil {
		return WireRequest{}, buildError("create file part", err)
	}
	if _, err := part.Write(f.content); err != nil {
		return WireRequest{}, buildError("write file part", err)
	}

	if err := w.WriteField("model", Model); err != nil {
		return WireRequest{}, buildError("write model field", err)
	}

	if err := w.Close(); err != nil {
		return WireRequest{}, buildError("close multipart writer", err)
	}

	header := make(http.Header)
	header.Set("Content-Type", w.FormDataContentType())
	header.Set("Authorization", "Bearer "+b.secret)

	return WireRequest{Body: buf.Bytes(), Header: header}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func filePartHeader(f File) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(f.name)))
	mime := f.mime
	if mime == "" {
		mime = "application/octet-stream"
	}
	h.Set("Content-Type", mime)
	return h
}

// Ошибки сборки сводятся к InvalidInput: до сети запрос не дошёл.
func buildError(op string, err error) *Error {
	return &Error{Kind: KindInvalidInput, Message: op + ": " + err.Error(), Err: err}
}
