package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// SchemaValidator validates a decoded value.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// DecodeStrict decodes raw completion text as exactly one JSON object of
// type T. Surrounding prose, markdown fences and trailing values are
// rejected rather than repaired. Unknown keys are ignored and missing keys
// leave zero values. If validator is non-nil it runs after decoding.
// All failures wrap ErrInvalidOutput.
func DecodeStrict[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 {
		return zero, fmt.Errorf("%w: empty text", ErrInvalidOutput)
	}
	if trimmed[0] != '{' {
		return zero, fmt.Errorf("%w: expected a JSON object", ErrInvalidOutput)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	var result T
	if err := dec.Decode(&result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return zero, fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidOutput)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}

	return result, nil
}
