package models

import (
	"encoding/json"
	"fmt"
)

// NullableInt represents an integer field that can distinguish between:
// - Field absent in JSON: Set=false, Valid=false, Value=0
// - Field present with null: Set=true, Valid=false, Value=0
// - Field present with value: Set=true, Valid=true, Value=the value
//
// A plain *int cannot tell "leave unchanged" apart from "clear", and
// display_order needs both.
type NullableInt struct {
	Value int
	Valid bool // true if Value is not null
	Set   bool // true if field was present in JSON
}

// UnmarshalJSON implements custom JSON unmarshaling for NullableInt.
func (ni *NullableInt) UnmarshalJSON(data []byte) error {
	ni.Set = true

	if string(data) == "null" {
		ni.Valid = false
		ni.Value = 0
		return nil
	}

	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("expected integer or null: %w", err)
	}
	ni.Value = v
	ni.Valid = true
	return nil
}

// MarshalJSON implements custom JSON marshaling for NullableInt.
func (ni NullableInt) MarshalJSON() ([]byte, error) {
	if !ni.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ni.Value)
}

// ToPtr converts NullableInt to *int.
// Returns nil if Valid is false, otherwise returns pointer to Value.
func (ni NullableInt) ToPtr() *int {
	if !ni.Valid {
		return nil
	}
	v := ni.Value
	return &v
}
