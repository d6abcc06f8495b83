package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type logEntry struct {
	Source   string            `json:"source"`
	Level    string            `json:"level"`
	Logger   string            `json:"logger,omitempty"`
	Message  string            `json:"message"`
	Time     string            `json:"ts"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// forwarder ships log entries to an HTTP collector off the logging path.
// Entries are dropped when the buffer is full.
type forwarder struct {
	url    string
	apiKey string
	source string
	client *http.Client
	ch     chan logEntry
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func newForwarder(baseURL, apiKey, source string) *forwarder {
	return &forwarder{
		url:    strings.TrimRight(baseURL, "/") + "/v1/logs",
		apiKey: apiKey,
		source: source,
		client: &http.Client{Timeout: 3 * time.Second},
		ch:     make(chan logEntry, 256),
		done:   make(chan struct{}),
	}
}

func (f *forwarder) start() {
	go func() {
		defer close(f.done)
		for entry := range f.ch {
			f.send(entry)
		}
	}()
}

func (f *forwarder) send(entry logEntry) {
	body, err := json.Marshal(entry)
	if err != nil {
		return
	}
	req, err := http.NewRequest(http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if f.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.apiKey)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return
	}
	_ = resp.Body.Close()
}

// enqueue is a no-op once close has been called; loggers outlive the
// forwarder during shutdown.
func (f *forwarder) enqueue(entry logEntry) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return
	}
	select {
	case f.ch <- entry:
	default:
	}
}

// close stops accepting entries and waits for the queue to drain or ctx to end.
func (f *forwarder) close(ctx context.Context) {
	f.mu.Lock()
	if !f.closed {
		f.closed = true
		close(f.ch)
	}
	f.mu.Unlock()
	select {
	case <-f.done:
	case <-ctx.Done():
	}
}

func attachForwarder(logger *zap.Logger, fwd *forwarder, level zapcore.LevelEnabler) *zap.Logger {
	core := &forwardCore{level: level, fwd: fwd}
	return logger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, core)
	}))
}

type forwardCore struct {
	level  zapcore.LevelEnabler
	fields []zapcore.Field
	fwd    *forwarder
}

func (c *forwardCore) Enabled(level zapcore.Level) bool {
	return c.level.Enabled(level)
}

func (c *forwardCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(append([]zapcore.Field(nil), c.fields...), fields...)
	return &clone
}

func (c *forwardCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *forwardCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}
	metadata := make(map[string]string, len(enc.Fields))
	for k, v := range enc.Fields {
		metadata[k] = fmt.Sprint(v)
	}
	c.fwd.enqueue(logEntry{
		Source:   c.fwd.source,
		Level:    entry.Level.String(),
		Logger:   entry.LoggerName,
		Message:  entry.Message,
		Time:     entry.Time.UTC().Format(time.RFC3339Nano),
		Metadata: metadata,
	})
	return nil
}

func (c *forwardCore) Sync() error { return nil }
