package dtos

import (
	"bytes"
	"encoding/json"
)

// NullString is an update field that distinguishes an absent key (Set is
// false) from an explicit null (Set with a nil Value), which clears the column.
type NullString struct {
	Value *string
	Set   bool
}

func SetString(s string) NullString { return NullString{Value: &s, Set: true} }

func ClearString() NullString { return NullString{Set: true} }

func (n *NullString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(b, []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

func (n NullString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// IsZero lets omitzero drop fields that were never set.
func (n NullString) IsZero() bool { return !n.Set }

// column is the value written for a set field; nil stores NULL.
func (n NullString) column() any {
	if n.Value == nil {
		return nil
	}
	return *n.Value
}
