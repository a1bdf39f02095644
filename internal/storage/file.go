package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"tradeboard/internal/board"
)

// WriteFile writes the document as indented JSON, the format used by the
// save-to-file action so exported boards stay hand-readable.
func WriteFile(w io.Writer, elements []*board.Element) error {
	if elements == nil {
		elements = []*board.Element{}
	}
	data, err := json.MarshalIndent(elements, "", "  ")
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write board: %w", err)
	}
	return nil
}

// ReadFile parses a board file previously written by WriteFile. Unlike the
// key-value load path this is a user-initiated action, so malformed input is
// reported rather than swallowed.
func ReadFile(r io.Reader) ([]*board.Element, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read board: %w", err)
	}
	var elements []*board.Element
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("parse board: %w", err)
	}
	return elements, nil
}
