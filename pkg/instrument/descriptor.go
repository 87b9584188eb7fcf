package instrument

// Descriptor identifies one instrumented call. It is constructed per call
// and discarded after the envelope's logs have been emitted.
type Descriptor struct {
	// Operation is the human-readable operation name used in log messages,
	// e.g. "Add Doc".
	Operation string

	// Payload is the operation's input document, serialized to text on the
	// "initiated" and "failed" logs. A nil payload is omitted entirely.
	Payload any

	// Tags are additional attributes attached to every log of the envelope.
	// They are sanitized before emission; the reserved "status" key is
	// always dropped.
	Tags map[string]any
}
