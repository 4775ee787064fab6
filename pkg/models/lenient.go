package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidScalar marks a numeric or flag field whose value is not a number.
// The value never reaches the store, so callers report it the way they report
// a failed write.
var ErrInvalidScalar = errors.New("invalid scalar")

// Number decodes from a JSON number or a numeric string. Form inputs in the
// browser client post hours as strings ("8"), the CLI posts numbers.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	s, isNull, err := scalarText(b)
	if err != nil {
		return err
	}
	if isNull || s == "" {
		*n = 0
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%w: number %q", ErrInvalidScalar, s)
	}

	*n = Number(f)
	return nil
}

// Flag decodes a boolean-like value into 0 or 1: true/false, numbers, or the
// same as strings.
type Flag int

func (f *Flag) UnmarshalJSON(b []byte) error {
	s, _, err := scalarText(b)
	if err != nil {
		return err
	}

	// null scans as ""
	switch strings.ToLower(s) {
	case "", "false", "0":
		*f = 0
		return nil
	case "true":
		*f = 1
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%w: flag %q", ErrInvalidScalar, s)
	}
	if v != 0 {
		*f = 1
	} else {
		*f = 0
	}

	return nil
}

// scalarText returns the text of a JSON scalar with string quotes removed.
func scalarText(b []byte) (string, bool, error) {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return "", true, nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", false, err
		}
		return strings.TrimSpace(s), false, nil
	}
	if len(b) > 0 && (b[0] == '{' || b[0] == '[') {
		return "", false, fmt.Errorf("%w: expected scalar, got %s", ErrInvalidScalar, b)
	}

	return string(b), false, nil
}
