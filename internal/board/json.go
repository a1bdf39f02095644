package board

import (
	"encoding/json"
	"fmt"
)

// elementJSON is the persisted shape of an Element: the same fields plus the
// type tag as a stable string so stored documents survive reordering of the
// ElementType constants.
type elementJSON struct {
	Type string `json:"type"`
	elementAlias
}

type elementAlias Element

// MarshalJSON encodes the element with its string type tag.
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(elementJSON{Type: e.Type.String(), elementAlias: elementAlias(*e)})
}

// UnmarshalJSON decodes an element, rejecting unknown type tags.
func (e *Element) UnmarshalJSON(data []byte) error {
	var raw elementJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t, ok := elementTypeFromTag(raw.Type)
	if !ok {
		return fmt.Errorf("unknown element type %q", raw.Type)
	}
	*e = Element(raw.elementAlias)
	e.Type = t
	return nil
}
