package transcription

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"
)

func TestRequestBuilderBuild(t *testing.T) {
	f := NewFile("", "test-1.mp3", "mp3", "audio/mpeg", []byte("Fake audio content"))
	b := NewRequestBuilder("sk-test", WithBoundary("fixed-boundary"))

	req, err := b.Build(f)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := req.Header.Get("Authorization"); got != "Bearer sk-test" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer sk-test")
	}

	mediaType, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil {
		t.Fatalf("parse content type: %v", err)
	}
	if mediaType != "multipart/form-data" {
		t.Errorf("media type = %q, want multipart/form-data", mediaType)
	}
	if params["boundary"] != "fixed-boundary" {
		t.Errorf("boundary = %q, want fixed-boundary", params["boundary"])
	}

	r := multipart.NewReader(bytes.NewReader(req.Body), params["boundary"])
	var names []string
	for {
		p, err := r.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextPart() error = %v", err)
		}
		data, _ := io.ReadAll(p)
		names = append(names, p.FormName())

		switch p.FormName() {
		case "file":
			if p.FileName() != "test-1.mp3" {
				t.Errorf("filename = %q, want test-1.mp3", p.FileName())
			}
			if ct := p.Header.Get("Content-Type"); ct != "audio/mpeg" {
				t.Errorf("file Content-Type = %q, want audio/mpeg", ct)
			}
			if string(data) != "Fake audio content" {
				t.Errorf("file data = %q", data)
			}
		case "model":
			if string(data) != "whisper-1" {
				t.Errorf("model = %q, want whisper-1", data)
			}
		}
	}

	if len(names) != 2 || names[0] != "file" || names[1] != "model" {
		t.Errorf("parts = %v, want [file model]", names)
	}
}

func TestRequestBuilderDeterministic(t *testing.T) {
	f := NewFile("", "a.wav", "wav", "audio/wav", []byte{1, 2, 3})
	b := NewRequestBuilder("secret", WithBoundary("b0undary"))

	first, err := b.Build(f)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	second, err := b.Build(f)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !bytes.Equal(first.Body, second.Body) {
		t.Error("Build() should produce identical bodies for identical input")
	}
	if bytes.Contains(first.Body, []byte("secret")) {
		t.Error("credential must not leak into the body")
	}
}

func TestRequestBuilderBadBoundary(t *testing.T) {
	b := NewRequestBuilder("secret", WithBoundary("bad boundary with trailing space "))
	_, err := b.Build(NewFile("", "a.wav", "wav", "audio/wav", []byte{1}))
	if KindOf(err) != KindInvalidInput {
		t.Errorf("KindOf() = %v, want %v", KindOf(err), KindInvalidInput)
	}
}
