package piratebay

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The API encodes the same logical field as a JSON number on some endpoints
// and as a numeric string on others, depending on endpoint and API age.
// Every helper below accepts both shapes and fails the enclosing decode on
// the first field that fits neither; there is no partial construction.

var (
	errExpectedUint64    = errors.New("expected a u64 or a string")
	errExpectedUint16    = errors.New("expected a u16")
	errExpectedTimestamp = errors.New("expected a timestamp in seconds")
	errExpectedString    = errors.New("expected a string or null")
)

func flexUint64(data []byte) (uint64, error) {
	text, ok := flexNumericText(data)
	if !ok {
		return 0, errExpectedUint64
	}
	value, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, errExpectedUint64
	}
	return value, nil
}

func flexUint16(data []byte) (uint16, error) {
	value, err := flexUint64(data)
	if err != nil {
		return 0, err
	}
	if value > 1<<16-1 {
		return 0, errExpectedUint16
	}
	return uint16(value), nil
}

func flexUnixTime(data []byte) (time.Time, error) {
	text, ok := flexNumericText(data)
	if !ok {
		return time.Time{}, errExpectedTimestamp
	}
	seconds, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return time.Time{}, errExpectedTimestamp
	}
	return time.Unix(seconds, 0).UTC(), nil
}

// flexNumericText returns the textual form of a JSON number or string value.
func flexNumericText(data []byte) (string, bool) {
	text := strings.TrimSpace(string(data))
	if !strings.HasPrefix(text, `"`) {
		return text, text != "" && text != "null"
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return "", false
	}
	return value, true
}

// optionalString maps a missing field, JSON null and the empty string to
// "no value" (an empty Go string) and any other string to itself.
func optionalString(data []byte) (string, error) {
	switch strings.TrimSpace(string(data)) {
	case "", "null":
		return "", nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return "", errExpectedString
	}
	return value, nil
}

// unitArray decodes a single-element JSON array into its sole element.
func unitArray[T any](data []byte) (T, error) {
	var zero T
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return zero, errors.New("expected an array")
	}
	if len(elements) != 1 {
		return zero, errors.New("expected an array of length 1")
	}
	var value T
	if err := json.Unmarshal(elements[0], &value); err != nil {
		return zero, fmt.Errorf("decode array element: %w", err)
	}
	return value, nil
}
