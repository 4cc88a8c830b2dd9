package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net"
	"os"
	"strings"
	"sync"
	"time"
)

// LogstashWriter mirrors log lines to a Logstash TCP input using the
// json_lines codec. Every event carries the service name and a timestamp;
// lines that already hold a JSON object keep their fields. Writes never
// block on an unreachable Logstash: they are dropped until the next retry.
type LogstashWriter struct {
	addr          string
	service       string
	dialTimeout   time.Duration
	writeTimeout  time.Duration
	retryInterval time.Duration
	dial          func(network, addr string, timeout time.Duration) (net.Conn, error)
	now           func() time.Time

	mu        sync.Mutex
	conn      net.Conn
	nextRetry time.Time
	closed    bool
}

type Option func(*LogstashWriter)

// WithDialTimeout overrides the TCP dial timeout. Defaults to 2 seconds.
func WithDialTimeout(d time.Duration) Option {
	return func(w *LogstashWriter) {
		w.dialTimeout = d
	}
}

// WithWriteTimeout overrides the TCP write timeout. Defaults to 1 second.
func WithWriteTimeout(d time.Duration) Option {
	return func(w *LogstashWriter) {
		w.writeTimeout = d
	}
}

// WithRetryInterval overrides the cool-down after a failed connect or write.
// Defaults to 5 seconds.
func WithRetryInterval(d time.Duration) Option {
	return func(w *LogstashWriter) {
		w.retryInterval = d
	}
}

func WithService(name string) Option {
	return func(w *LogstashWriter) {
		w.service = name
	}
}

func NewLogstashWriter(addr string, opts ...Option) (*LogstashWriter, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logstash: empty address")
	}

	w := &LogstashWriter{
		addr:          addr,
		service:       "portfolio-api",
		dialTimeout:   2 * time.Second,
		writeTimeout:  time.Second,
		retryInterval: 5 * time.Second,
		dial:          net.DialTimeout,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Setup mirrors the standard logger to Logstash when addr is set. The
// returned closer is a no-op otherwise.
func Setup(addr string, opts ...Option) (io.Closer, error) {
	if strings.TrimSpace(addr) == "" {
		return closerFunc(func() error { return nil }), nil
	}
	w, err := NewLogstashWriter(addr, opts...)
	if err != nil {
		return nil, err
	}
	log.SetOutput(io.MultiWriter(os.Stderr, w))
	return closerFunc(func() error {
		log.SetOutput(os.Stderr)
		return w.Close()
	}), nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Write implements io.Writer. It reports the full length even when the
// event is dropped so the standard logger never fails.
func (w *LogstashWriter) Write(p []byte) (int, error) {
	if len(bytes.TrimSpace(p)) == 0 {
		return len(p), nil
	}
	event, err := w.encode(p)
	if err != nil {
		return len(p), nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, io.ErrClosedPipe
	}
	if err := w.ensureConnLocked(); err != nil {
		return len(p), nil
	}
	if w.writeTimeout > 0 {
		_ = w.conn.SetWriteDeadline(w.now().Add(w.writeTimeout))
	}
	if _, err := w.conn.Write(event); err != nil {
		w.closeConnLocked()
		w.scheduleRetryLocked()
	}
	return len(p), nil
}

// encode turns one log line into a json_lines event. The standard logger
// prefixes lines with a date, so the JSON object may start mid-line.
func (w *LogstashWriter) encode(p []byte) ([]byte, error) {
	line := bytes.TrimSpace(p)
	fields := map[string]any{}
	if i := bytes.IndexByte(line, '{'); i >= 0 && json.Valid(line[i:]) {
		if err := json.Unmarshal(line[i:], &fields); err != nil {
			fields = map[string]any{"message": string(line)}
		}
	} else {
		fields["message"] = string(line)
	}
	if _, ok := fields["@timestamp"]; !ok {
		fields["@timestamp"] = w.now().UTC().Format(time.RFC3339Nano)
	}
	fields["service"] = w.service

	out, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func (w *LogstashWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.closeConnLocked()
}

func (w *LogstashWriter) ensureConnLocked() error {
	if w.conn != nil {
		return nil
	}
	if !w.nextRetry.IsZero() && w.now().Before(w.nextRetry) {
		return errRetryCooldown
	}
	conn, err := w.dial("tcp", w.addr, w.dialTimeout)
	if err != nil {
		w.scheduleRetryLocked()
		return err
	}
	w.conn = conn
	w.nextRetry = time.Time{}
	return nil
}

func (w *LogstashWriter) closeConnLocked() error {
	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	return err
}

func (w *LogstashWriter) scheduleRetryLocked() {
	if w.retryInterval <= 0 {
		w.nextRetry = time.Time{}
		return
	}
	w.nextRetry = w.now().Add(w.retryInterval)
}

var errRetryCooldown = errors.New("logstash: retry cooldown in effect")
