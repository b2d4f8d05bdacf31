package httputil

import (
	"bytes"
	"encoding/json"
	"strings"
)

// OptionalString is a JSON field whose absence differs from null.
// Update requests use it for nullable references such as folderId, parentId
// and avatar: absent keeps the stored value, null clears it.
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON only runs for keys present in the document
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// OrNil returns the value, treating null and blank strings alike as nil
func (o OptionalString) OrNil() *string {
	if o.Value == nil || strings.TrimSpace(*o.Value) == "" {
		return nil
	}
	return o.Value
}
