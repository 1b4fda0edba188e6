package telemetry

import (
	"log/slog"
	"sync"
)

// Sink — приёмник сообщений pipeline.
//
// Повторяет контракт логгеров платформы: одна человекочитаемая строка,
// без структурированных полей и без результата.
type Sink interface {
	Info(msg string)
	Error(msg string)
}

// SlogSink пишет сообщения в slog.Logger.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink создаёт SlogSink. Nil logger — глобальный.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

// Info пишет сообщение уровня INFO.
func (s *SlogSink) Info(msg string) {
	s.logger.Info(msg, "sink", "info")
}

// Error пишет сообщение уровня ERROR.
func (s *SlogSink) Error(msg string) {
	s.logger.Error(msg, "sink", "error")
}

// Message — сообщение, сохранённое RecordingSink.
type Message struct {
	Level string
	Text  string
}

// RecordingSink сохраняет сообщения в памяти. Команда run переносит их
// в Report.Journal.
type RecordingSink struct {
	mu       sync.Mutex
	messages []Message
}

// Info сохраняет сообщение уровня info.
func (s *RecordingSink) Info(msg string) {
	s.add("info", msg)
}

// Error сохраняет сообщение уровня error.
func (s *RecordingSink) Error(msg string) {
	s.add("error", msg)
}

func (s *RecordingSink) add(level, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, Message{Level: level, Text: msg})
}

// Messages возвращает копию сохранённых сообщений.
func (s *RecordingSink) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Tee возвращает Sink, который пишет во все переданные sinks.
func Tee(sinks ...Sink) Sink {
	return teeSink(sinks)
}

type teeSink []Sink

func (t teeSink) Info(msg string) {
	for _, s := range t {
		s.Info(msg)
	}
}

func (t teeSink) Error(msg string) {
	for _, s := range t {
		s.Error(msg)
	}
}
