package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// UUIDArray is an ordered list of ids stored as a JSON array column.
type UUIDArray []uuid.UUID

// Value implements the driver.Valuer interface
func (a UUIDArray) Value() (driver.Value, error) {
	return marshalColumn(a, len(a) == 0)
}

// Scan implements the sql.Scanner interface
func (a *UUIDArray) Scan(value any) error {
	return scanColumn(value, a)
}

// Contains reports whether id is present in the array.
func (a UUIDArray) Contains(id uuid.UUID) bool {
	for _, existing := range a {
		if existing == id {
			return true
		}
	}
	return false
}

// StringArray is an ordered list of strings stored as a JSON array column.
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	return marshalColumn(a, len(a) == 0)
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value any) error {
	return scanColumn(value, a)
}

func marshalColumn(v any, empty bool) (driver.Value, error) {
	if empty {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON column: %w", err)
	}
	return string(b), nil
}

func scanColumn(value any, dest any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		raw = []byte("[]")
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal JSON column: unsupported type %T", value)
	}
	if len(raw) == 0 {
		raw = []byte("[]")
	}
	return json.Unmarshal(raw, dest)
}
