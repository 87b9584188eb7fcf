package telemetry

import "errors"

var (
	// ErrConnectionFailed indicates the OpenSearch client could not be
	// created due to configuration or network issues. Use errors.Is() to check.
	ErrConnectionFailed = errors.New("telemetry: opensearch connection failed")

	// ErrBulkRejected indicates the backend rejected a bulk write. The
	// affected batch is dropped; shipping continues with the next one.
	ErrBulkRejected = errors.New("telemetry: bulk write rejected")
)
