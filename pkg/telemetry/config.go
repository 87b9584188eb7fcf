package telemetry

import (
	"log/slog"
	"time"
)

// Config holds the remote logging client settings with environment variable
// mapping compatible with github.com/taskpad/taskpad/pkg/config.
type Config struct {
	// OpenSearch connection.
	Addresses    []string `env:"TELEMETRY_OPENSEARCH_ADDRESSES,required"`
	Username     string   `env:"TELEMETRY_OPENSEARCH_USERNAME"`
	Password     string   `env:"TELEMETRY_OPENSEARCH_PASSWORD"`
	MaxRetries   int      `env:"TELEMETRY_OPENSEARCH_MAX_RETRIES" envDefault:"3"`
	DisableRetry bool     `env:"TELEMETRY_OPENSEARCH_DISABLE_RETRY" envDefault:"false"`

	// Service identifies the emitting application; Environment tags every row.
	Service     string `env:"TELEMETRY_SERVICE" envDefault:"taskpad"`
	Environment string `env:"TELEMETRY_ENVIRONMENT" envDefault:"development"`

	// Index receives the bulk writes; Level is the minimum level shipped upstream.
	Index string     `env:"TELEMETRY_INDEX" envDefault:"taskpad-logs"`
	Level slog.Level `env:"TELEMETRY_LEVEL" envDefault:"INFO"`

	// FlushInterval caps how long a row waits in the batch, BatchSize
	// triggers an early flush, QueueSize bounds the in-memory buffer.
	FlushInterval time.Duration `env:"TELEMETRY_FLUSH_INTERVAL" envDefault:"1s"`
	BatchSize     int           `env:"TELEMETRY_BATCH_SIZE" envDefault:"100"`
	QueueSize     int           `env:"TELEMETRY_QUEUE_SIZE" envDefault:"10000"`
}
