// Package logging configures the library's structured logging. Every
// handler is wrapped in a redactor so the caller-supplied password can
// never leak through a log attribute, whatever key it travels under.
package logging

import (
	"context"
	"log/slog"
	"regexp"
)

// redactedPlaceholder replaces any attribute value judged sensitive.
const redactedPlaceholder = "[REDACTED]"

// RedactionConfig contains configuration for redacting sensitive
// information from log records.
type RedactionConfig struct {
	// SensitiveKeyPatterns match attribute keys whose values must be
	// replaced with the placeholder.
	SensitiveKeyPatterns []*regexp.Regexp
}

// DefaultRedactionConfig returns the redaction configuration used by the
// library: anything that smells like a credential is dropped.
func DefaultRedactionConfig() *RedactionConfig {
	return &RedactionConfig{
		SensitiveKeyPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(password|passwd|secret|token|credential)`),
		},
	}
}

func (c *RedactionConfig) isSensitiveKey(key string) bool {
	for _, pattern := range c.SensitiveKeyPatterns {
		if pattern.MatchString(key) {
			return true
		}
	}
	return false
}

// RedactingHandler is a decorator that redacts sensitive attributes
// before forwarding records to the underlying handler.
type RedactingHandler struct {
	handler slog.Handler
	config  *RedactionConfig
}

// NewRedactingHandler creates a redacting handler wrapping the given
// handler. A nil config selects the default configuration.
func NewRedactingHandler(handler slog.Handler, config *RedactionConfig) *RedactingHandler {
	if config == nil {
		config = DefaultRedactionConfig()
	}
	return &RedactingHandler{
		handler: handler,
		config:  config,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (r *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return r.handler.Enabled(ctx, level)
}

// Handle redacts the record's attributes and forwards it.
func (r *RedactingHandler) Handle(ctx context.Context, record slog.Record) error {
	newRecord := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		newRecord.AddAttrs(r.redactAttr(attr))
		return true
	})
	return r.handler.Handle(ctx, newRecord)
}

// WithAttrs returns a new RedactingHandler with the given attributes.
func (r *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		redacted = append(redacted, r.redactAttr(attr))
	}
	return &RedactingHandler{
		handler: r.handler.WithAttrs(redacted),
		config:  r.config,
	}
}

// WithGroup returns a new RedactingHandler with the given group name.
func (r *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{
		handler: r.handler.WithGroup(name),
		config:  r.config,
	}
}

func (r *RedactingHandler) redactAttr(attr slog.Attr) slog.Attr {
	if attr.Value.Kind() == slog.KindGroup {
		members := attr.Value.Group()
		redacted := make([]any, 0, len(members))
		for _, member := range members {
			redacted = append(redacted, r.redactAttr(member))
		}
		return slog.Group(attr.Key, redacted...)
	}
	if r.config.isSensitiveKey(attr.Key) {
		return slog.String(attr.Key, redactedPlaceholder)
	}
	return attr
}
