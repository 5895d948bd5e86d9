package log

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// slogHandler forwards slog records to a named Logger.
type slogHandler struct {
	logger Logger
	attrs  []slog.Attr
	group  string
}

// NewSlogHandler returns a slog.Handler that writes through the named logger, for libraries
// that only accept a *slog.Logger. Level filtering is left to SetLevel.
//
// Parameters:
//   - name: the module name printed with every line
//
// Returns:
//   - slog.Handler: the bridging handler
func NewSlogHandler(name string) slog.Handler {
	return &slogHandler{logger: New(name)}
}

func (h *slogHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *slogHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", h.qualify(a.Key), a.Value)
		return true
	})

	switch {
	case r.Level >= slog.LevelError:
		h.logger.Error(b.String())
	case r.Level >= slog.LevelWarn:
		h.logger.Warning(b.String())
	case r.Level >= slog.LevelInfo:
		h.logger.Info(b.String())
	default:
		h.logger.Debug(b.String())
	}
	return nil
}

// qualify prefixes key with the open group, if any.
func (h *slogHandler) qualify(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, slog.Attr{Key: h.qualify(a.Key), Value: a.Value})
	}
	return &next
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.group = h.qualify(name)
	return &next
}
