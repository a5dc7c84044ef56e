package dto

import (
	"encoding/json"
)

// Optional models the three states a JSON field can take in a partial update
// request: absent, explicit null, or a value. A plain pointer cannot tell
// absent from null, which matters for nullable fields like a medication's
// endDate where null means "clear it" and absent means "leave it alone".
type Optional[T any] struct {
	// Present is true when the field appeared in the request body at all
	Present bool
	// Value is nil when the field was an explicit null
	Value *T
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for fields
// present in the body, so Present is false exactly for absent fields.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON implements json.Marshaler
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Get returns the contained value and whether a non-null value is present
func (o Optional[T]) Get() (T, bool) {
	if !o.Present || o.Value == nil {
		var zero T
		return zero, false
	}
	return *o.Value, true
}
