package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Scalar captures a loosely typed JSON scalar (string, number or boolean)
// and whether it was present at all. Forms send numbers as strings and vice
// versa, so callers normalize the raw text instead of relying on the JSON
// type.
type Scalar struct {
	Valid bool
	Null  bool
	Raw   string
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	s.Valid = true
	switch trimmed[0] {
	case 'n':
		s.Null = true
		s.Raw = ""
		return nil
	case '"':
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return err
		}
		s.Raw = str
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return err
		}
		s.Raw = fmt.Sprintf("%t", b)
		return nil
	case '{', '[':
		return fmt.Errorf("expected a scalar value, got %s", kindOf(trimmed[0]))
	default:
		var num json.Number
		if err := json.Unmarshal(trimmed, &num); err != nil {
			return err
		}
		s.Raw = num.String()
		return nil
	}
}

// MarshalJSON implements json.Marshaler.
func (s Scalar) MarshalJSON() ([]byte, error) {
	if !s.Valid || s.Null {
		return []byte("null"), nil
	}
	return json.Marshal(s.Raw)
}

// String returns the trimmed raw text, empty when absent or null.
func (s Scalar) String() string {
	return strings.TrimSpace(s.Raw)
}

// Blank reports whether the value is absent, null, or whitespace.
func (s Scalar) Blank() bool {
	return s.String() == ""
}

// StringPtr returns the raw text for optional columns, nil when absent or null.
func (s Scalar) StringPtr() *string {
	if !s.Valid || s.Null {
		return nil
	}
	v := s.Raw
	return &v
}

// S builds a present Scalar; handy in tests and internal callers.
func S(raw string) Scalar {
	return Scalar{Valid: true, Raw: raw}
}

func kindOf(b byte) string {
	if b == '{' {
		return "object"
	}
	return "array"
}
