package domain

import (
	"database/sql/driver"
	"encoding/json"
)

type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringSlice) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// CommentCloud is the comment keyword cloud, stored as a JSON column.
type CommentCloud []CommentWord

func (c CommentCloud) Value() (driver.Value, error) {
	if len(c) == 0 {
		return nil, nil
	}
	return json.Marshal(c)
}

func (c *CommentCloud) Scan(value interface{}) error {
	return scanJSON(value, c)
}

// Value implements driver.Valuer so AIStats can live in a JSON column.
func (a AIStats) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *AIStats) Scan(value interface{}) error {
	return scanJSON(value, a)
}

func scanJSON(value, dest interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil
	}

	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	return json.Unmarshal(data, dest)
}
