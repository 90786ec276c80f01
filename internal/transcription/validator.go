package transcription

import (
	"os"
	"strings"
)

const (
	msgFileMissing      = "The audio file does not exist."
	msgContentInvalid   = "The content of the audio file is invalid."
	msgNameInvalid      = "The name of the audio file is invalid."
	msgExtensionInvalid = "The extension of the audio file is invalid."
	msgMimeInvalid      = "The file passed is not an audio file or the format is not supported."
)

var supportedExtensions = map[string]struct{}{
	"mp3":  {},
	"mp4":  {},
	"m4a":  {},
	"wav":  {},
	"webm": {},
}

var supportedMimes = map[string]struct{}{
	"audio/mpeg":  {},
	"audio/mp3":   {},
	"audio/mp4":   {},
	"audio/x-m4a": {},
	"audio/wav":   {},
	"audio/x-wav": {},
	"audio/wave":  {},
	"audio/webm":  {},
}

// SupportedMime нужен HTTP-слою для предварительной проверки загрузки.
func SupportedMime(mime string) bool {
	_, ok := supportedMimes[mime]
	return ok
}

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate проверяет файл до любого сетевого вызова; первая ошибка прерывает проверку.
func (v *Validator) Validate(f File) error {
	if f.path != "" {
		if _, err := os.Stat(f.path); err != nil {
			return invalidInput(msgFileMissing)
		}
	}
	if len(f.content) == 0 {
		return invalidInput(msgContentInvalid)
	}

	if f.name == "" {
		return invalidInput(msgNameInvalid)
	}

	if _, ok := supportedExtensions[strings.ToLower(f.ext)]; !ok {
		return invalidInput(msgExtensionInvalid)
	}

	if !SupportedMime(f.mime) {
		return invalidInput(msgMimeInvalid)
	}

	return nil
}
