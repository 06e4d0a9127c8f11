package dto

import (
	"database/sql"
	"encoding/json"
)

// OptionalString is a JSON field that distinguishes absent, null and a
// concrete value. Partial updates only touch fields that were present in
// the request body.
type OptionalString struct {
	Set   bool
	Valid bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// NullString converts the value to its database representation.
func (o OptionalString) NullString() sql.NullString {
	return sql.NullString{String: o.Value, Valid: o.Valid}
}

// OptionalUint64 is the numeric counterpart of OptionalString, used for
// nullable foreign key fields.
type OptionalUint64 struct {
	Set   bool
	Valid bool
	Value uint64
}

func (o *OptionalUint64) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// NullInt64 converts the value to its database representation.
func (o OptionalUint64) NullInt64() sql.NullInt64 {
	return sql.NullInt64{Int64: int64(o.Value), Valid: o.Valid}
}
