// Package storage persists the board document to a key-value store as a
// JSON array of element records. Missing or malformed payloads are treated
// as an empty document, never as an error the rest of the app has to see.
package storage

import (
	"encoding/json"
	"log"

	"fyne.io/fyne/v2"

	"tradeboard/internal/board"
)

// DefaultKey is the preferences key the board document is stored under.
const DefaultKey = "tradeboard.document"

// Store is the persistence boundary of the engine: Load once at startup,
// Save (fire-and-forget) on every committed mutation.
type Store interface {
	Load() []*board.Element
	Save(elements []*board.Element)
}

// Encode serializes a document's elements to the stored JSON form.
func Encode(elements []*board.Element) ([]byte, error) {
	if elements == nil {
		elements = []*board.Element{}
	}
	return json.Marshal(elements)
}

// Decode parses a stored payload. Empty, malformed or non-array payloads
// decode to nil with a log line; persisted garbage never breaks startup.
func Decode(data []byte) []*board.Element {
	if len(data) == 0 {
		return nil
	}
	var elements []*board.Element
	if err := json.Unmarshal(data, &elements); err != nil {
		log.Printf("storage: discarding malformed document payload: %v", err)
		return nil
	}
	return elements
}

// PreferencesStore keeps the document in the Fyne preferences key-value
// store under a single key.
type PreferencesStore struct {
	prefs fyne.Preferences
	key   string
}

// NewPreferencesStore wraps the given preferences. An empty key uses
// DefaultKey.
func NewPreferencesStore(prefs fyne.Preferences, key string) *PreferencesStore {
	if key == "" {
		key = DefaultKey
	}
	return &PreferencesStore{prefs: prefs, key: key}
}

func (s *PreferencesStore) Load() []*board.Element {
	return Decode([]byte(s.prefs.StringWithFallback(s.key, "")))
}

func (s *PreferencesStore) Save(elements []*board.Element) {
	data, err := Encode(elements)
	if err != nil {
		// Drawing continues; losing a write is an accepted degradation.
		log.Printf("storage: encode failed, document not saved: %v", err)
		return
	}
	s.prefs.SetString(s.key, string(data))
}
