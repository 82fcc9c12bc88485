// Package notify is the injected notifier capability: toast messages plus an
// unread badge count, fanned out to whatever surfaces are wired in. Absence
// of sinks is tolerated.
package notify

import (
	"sync"

	"github.com/ashirarif0999-sketch/blueember/internal/logger"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Sink receives user-facing feedback from the order engine.
type Sink interface {
	Notify(message string, severity Severity)
	SetBadgeCount(count int)
}

// Fanout broadcasts to zero or more sinks.
type Fanout struct {
	sinks []Sink
}

func NewFanout(sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks}
}

var _ Sink = (*Fanout)(nil)

func (f *Fanout) Notify(message string, severity Severity) {
	for _, s := range f.sinks {
		s.Notify(message, severity)
	}
}

func (f *Fanout) SetBadgeCount(count int) {
	for _, s := range f.sinks {
		s.SetBadgeCount(count)
	}
}

// LogSink surfaces toasts and badge updates through the structured log.
type LogSink struct{}

func NewLogSink() *LogSink { return &LogSink{} }

var _ Sink = (*LogSink)(nil)

func (*LogSink) Notify(message string, severity Severity) {
	logger.Info("toast", "severity", string(severity), "message", message)
}

func (*LogSink) SetBadgeCount(count int) {
	logger.Info("badge", "unread", count)
}

// Toast is a recorded notification.
type Toast struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Recorder keeps the toast history and latest badge count in memory, for
// tests and for UI polling.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
	badge  int
}

func NewRecorder() *Recorder { return &Recorder{} }

var _ Sink = (*Recorder)(nil)

func (r *Recorder) Notify(message string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, Toast{Message: message, Severity: severity})
}

func (r *Recorder) SetBadgeCount(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.badge = count
}

func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]Toast, len(r.toasts))
	copy(cp, r.toasts)
	return cp
}

func (r *Recorder) BadgeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.badge
}
