package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a multi-valued text attribute stored as a JSON array in a
// single column, so the same schema works on PostgreSQL and SQLite
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	if len(data) == 0 {
		*l = StringList{}
		return nil
	}

	return json.Unmarshal(data, l)
}

// Contains checks if the list holds the given value
func (l StringList) Contains(value string) bool {
	for _, item := range l {
		if item == value {
			return true
		}
	}
	return false
}

// CastMember represents one cast entry projected from provider credits
type CastMember struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// CastList is an ordered list of cast members stored as JSON in one column
type CastList []CastMember

// Value implements driver.Valuer
func (l CastList) Value() (driver.Value, error) {
	if l == nil {
		l = CastList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *CastList) Scan(value interface{}) error {
	if value == nil {
		*l = CastList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into CastList", value)
	}

	if len(data) == 0 {
		*l = CastList{}
		return nil
	}

	return json.Unmarshal(data, l)
}
