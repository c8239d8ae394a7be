package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// Handler writes one colored line per record: time, request id, level, source, message, attrs.
type Handler struct {
	attrs []slog.Attr
	group string

	opts Options

	mu  *sync.Mutex
	out io.Writer
}

// NewHandler creates a new Handler. If opts is nil, uses [DefaultOptions].
func NewHandler(out io.Writer, opts *Options) *Handler {
	h := &Handler{out: out, mu: &sync.Mutex{}, opts: *DefaultOptions}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	return h
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	p := newPainter(h.opts.NoColor)

	var bf bytes.Buffer
	if !r.Time.IsZero() {
		bf.WriteString(p.paint(r.Time.Format(h.opts.TimeFormat), color.Faint))
		bf.WriteByte(' ')
	}

	if requestID, ok := RequestIDFromContext(ctx); ok {
		bf.WriteString(p.paint(requestID, color.FgMagenta))
		bf.WriteByte(' ')
	}

	bf.WriteString(p.level(r.Level))
	bf.WriteByte(' ')

	if h.opts.AddSource && r.PC != 0 {
		f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		fmt.Fprintf(&bf, "%s:%d ", filepath.Base(f.File), f.Line)
	}

	bf.WriteString("| ")
	bf.WriteString(r.Message)

	attrs := append([]slog.Attr(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.qualify(a))
		return true
	})

	for _, a := range attrs {
		key := a.Key
		attr := color.FgCyan
		if strings.Contains(a.Key, "err") {
			attr = color.FgRed
		}
		bf.WriteByte(' ')
		bf.WriteString(p.paint(key+"=", attr))
		bf.WriteString(a.Value.String())
	}
	bf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(bf.Bytes())
	return err
}

func (h *Handler) WithGroup(name string) slog.Handler {
	h2 := *h
	if h2.group != "" {
		h2.group += "." + name
	} else {
		h2.group = name
	}
	return &h2
}

// WithAttrs qualifies attrs with the groups open at the time of the call.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		h2.attrs = append(h2.attrs, h.qualify(a))
	}
	return &h2
}

func (h *Handler) qualify(a slog.Attr) slog.Attr {
	if h.group != "" {
		a.Key = h.group + "." + a.Key
	}
	return a
}

type painter struct {
	noColor bool
}

func newPainter(noColor bool) painter {
	return painter{noColor: noColor}
}

func (p painter) paint(s string, attrs ...color.Attribute) string {
	if p.noColor {
		return s
	}
	return color.New(attrs...).Sprint(s)
}

func (p painter) level(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return p.paint("ERROR", color.BgRed, color.FgHiWhite)
	case l >= slog.LevelWarn:
		return p.paint("WARN ", color.BgYellow, color.FgHiWhite)
	case l >= slog.LevelInfo:
		return p.paint("INFO ", color.BgGreen, color.FgHiWhite)
	default:
		return p.paint("DEBUG", color.BgCyan, color.FgHiWhite)
	}
}

// Err is the attribute used for errors across the codebase.
func Err(err error) slog.Attr {
	return slog.Any("err", err)
}

var DefaultOptions = &Options{
	Level:      slog.LevelInfo,
	TimeFormat: time.DateTime,
	AddSource:  true,
}

type Options struct {
	// Level reports the minimum level to log. If nil, the Handler uses [slog.LevelInfo].
	Level slog.Leveler

	TimeFormat string

	// AddSource prints file:line of the call site.
	AddSource bool

	NoColor bool
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok
}
