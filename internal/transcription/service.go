package transcription

import (
	"context"
	"errors"

	"github.com/Vovarama1992/go-utils/logger"
)

const serviceName = "voice_to_text"

// Service — единая точка входа: validate → build → send → interpret.
// Состояния между вызовами нет, можно звать конкурентно.
type Service struct {
	validator   *Validator
	builder     *RequestBuilder
	sender      Sender
	interpreter *Interpreter
	log         *logger.ZapLogger
}

func NewService(builder *RequestBuilder, sender Sender, log *logger.ZapLogger) *Service {
	return &Service{
		validator:   NewValidator(),
		builder:     builder,
		sender:      sender,
		interpreter: NewInterpreter(),
		log:         log,
	}
}

// Convert возвращает текст либо *Error с видом ошибки.
func (s *Service) Convert(ctx context.Context, f File) (string, error) {
	if err := s.validator.Validate(f); err != nil {
		return s.fail(f, err)
	}

	req, err := s.builder.Build(f)
	if err != nil {
		return s.fail(f, err)
	}

	resp, err := s.sender.Send(ctx, req)
	if err != nil {
		var te *Error
		if !errors.As(err, &te) {
			err = transportError(err)
		}
		return s.fail(f, err)
	}

	text, err := s.interpreter.Interpret(resp)
	if err != nil {
		return s.fail(f, err)
	}

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "transcribed " + f.name,
		Service: serviceName,
	})
	return text, nil
}

func (s *Service) fail(f File, err error) (string, error) {
	level := "warn"
	if k := KindOf(err); k != KindInvalidInput && k != KindMalformedResponse {
		level = "error"
	}
	s.log.Log(logger.LogEntry{
		Level:   level,
		Message: "transcription failed for " + f.name,
		Service: serviceName,
		Error:   err,
	})
	return "", err
}
