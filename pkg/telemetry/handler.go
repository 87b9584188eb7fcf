package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"
)

// row is the flat document shape written to the backend.
type row struct {
	Timestamp   time.Time      `json:"@timestamp"`
	Level       string         `json:"level"`
	Message     string         `json:"message"`
	Service     string         `json:"service"`
	Environment string         `json:"environment"`
	Host        string         `json:"host"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

// shipper owns the queue and the background goroutine; it is shared by
// every Handler derived through WithAttrs/WithGroup.
type shipper struct {
	cfg    Config
	client *opensearch.Client
	host   string

	queue chan []byte
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

// Handler is a slog.Handler that batches records and ships them to the
// OpenSearch bulk API from a background goroutine. Emission never blocks:
// when the queue is full the record is dropped.
type Handler struct {
	ship   *shipper
	attrs  []slog.Attr
	groups []string
}

// New connects to OpenSearch and starts the shipping goroutine. The caller
// must Close the handler to flush buffered rows on shutdown.
func New(_ context.Context, cfg Config) (*Handler, error) {
	client, err := opensearch.NewClient(opensearch.Config{
		Addresses:    cfg.Addresses,
		Username:     cfg.Username,
		Password:     cfg.Password,
		MaxRetries:   cfg.MaxRetries,
		DisableRetry: cfg.DisableRetry,
	})
	if err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}
	return NewWithClient(cfg, client), nil
}

// NewWithClient starts a handler on an existing OpenSearch client. Useful
// for sharing one client across components and for tests.
func NewWithClient(cfg Config, client *opensearch.Client) *Handler {
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.Index == "" {
		cfg.Index = "taskpad-logs"
	}

	host, _ := os.Hostname()
	s := &shipper{
		cfg:    cfg,
		client: client,
		host:   host,
		queue:  make(chan []byte, cfg.QueueSize),
		done:   make(chan struct{}),
	}

	s.wg.Add(1)
	go s.run()

	return &Handler{ship: s}
}

// Enabled reports whether the record's level reaches the configured minimum.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.ship.cfg.Level
}

// Handle converts the record to a row and enqueues it. Rows that cannot be
// serialized or queued are dropped; the handler never propagates transport
// concerns to the logging call site.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	s := h.ship
	r := row{
		Timestamp:   record.Time,
		Level:       record.Level.String(),
		Message:     record.Message,
		Service:     s.cfg.Service,
		Environment: s.cfg.Environment,
		Host:        s.host,
		Attributes:  make(map[string]any),
	}

	// Static attrs were prefixed when stored; only record attrs take the
	// current group prefix.
	for _, a := range h.attrs {
		r.Attributes[a.Key] = a.Value.Resolve().Any()
	}
	prefix := h.prefix()
	record.Attrs(func(a slog.Attr) bool {
		r.Attributes[prefix+a.Key] = a.Value.Resolve().Any()
		return true
	})

	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	select {
	case s.queue <- data:
	default:
		// Queue full, drop rather than block the caller.
	}
	return nil
}

// WithAttrs returns a handler sharing the same queue with additional static
// attributes, keyed under the group path open at the time they are added.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := h.prefix()
	stored := append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		stored = append(stored, slog.Attr{Key: prefix + a.Key, Value: a.Value})
	}
	return &Handler{ship: h.ship, attrs: stored, groups: h.groups}
}

func (h *Handler) prefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

// WithGroup returns a handler sharing the same queue that prefixes
// subsequent attribute keys with the group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	groups := append(append([]string{}, h.groups...), name)
	return &Handler{ship: h.ship, attrs: h.attrs, groups: groups}
}

// Close stops the shipping goroutine after flushing everything still
// buffered. Safe for repeated calls.
func (h *Handler) Close() error {
	s := h.ship
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()
	})
	return nil
}

func (s *shipper) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.FlushInterval)
	defer ticker.Stop()

	var batch [][]byte

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := s.bulk(batch); err != nil {
			fmt.Fprintf(os.Stderr, "telemetry: dropping %d rows: %v\n", len(batch), err)
		}
		batch = batch[:0]
	}

	for {
		select {
		case data := <-s.queue:
			batch = append(batch, data)
			if len(batch) >= s.cfg.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.done:
			// Drain whatever made it into the queue before shutdown.
			for {
				select {
				case data := <-s.queue:
					batch = append(batch, data)
					if len(batch) >= s.cfg.BatchSize {
						flush()
					}
					continue
				default:
				}
				break
			}
			flush()
			return
		}
	}
}

// bulk writes one batch through the OpenSearch bulk API.
func (s *shipper) bulk(batch [][]byte) error {
	var buf bytes.Buffer
	meta := fmt.Sprintf(`{"index":{"_index":%q}}`, s.cfg.Index)
	for _, doc := range batch {
		buf.WriteString(meta)
		buf.WriteByte('\n')
		buf.Write(doc)
		buf.WriteByte('\n')
	}

	res, err := s.client.Bulk(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("%w: %s", ErrBulkRejected, res.String())
	}
	return nil
}
