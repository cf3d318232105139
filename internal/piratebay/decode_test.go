package piratebay

import (
	"strings"
	"testing"
	"time"
)

func TestFlexUint64(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    uint64
		wantErr bool
	}{
		{"json number", `42`, 42, false},
		{"numeric string", `"42"`, 42, false},
		{"zero", `0`, 0, false},
		{"max u64 number", `18446744073709551615`, 18446744073709551615, false},
		{"max u64 string", `"18446744073709551615"`, 18446744073709551615, false},
		{"overflow string", `"18446744073709551616"`, 0, true},
		{"negative number", `-1`, 0, true},
		{"float number", `1.5`, 0, true},
		{"non-numeric string", `"abc"`, 0, true},
		{"empty string", `""`, 0, true},
		{"null", `null`, 0, true},
		{"bool", `true`, 0, true},
		{"missing field", ``, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := flexUint64([]byte(tc.input))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("flexUint64(%s) = %d, want error", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("flexUint64(%s) error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("flexUint64(%s) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestFlexUint16(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    uint16
		wantErr bool
	}{
		{"json number", `207`, 207, false},
		{"numeric string", `"207"`, 207, false},
		{"max u16", `65535`, 65535, false},
		{"one past max", `65536`, 0, true},
		{"valid u64 but not u16", `"4294967295"`, 0, true},
		{"non-numeric string", `"video"`, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := flexUint16([]byte(tc.input))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("flexUint16(%s) = %d, want error", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("flexUint16(%s) error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("flexUint16(%s) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestFlexUint16RangeError(t *testing.T) {
	_, err := flexUint16([]byte(`65536`))
	if err == nil || !strings.Contains(err.Error(), "u16") {
		t.Fatalf("expected u16 range error, got %v", err)
	}
}

func TestFlexUnixTimeStringAndNumberAgree(t *testing.T) {
	fromString, err := flexUnixTime([]byte(`"1700000000"`))
	if err != nil {
		t.Fatalf("string timestamp error: %v", err)
	}
	fromNumber, err := flexUnixTime([]byte(`1700000000`))
	if err != nil {
		t.Fatalf("number timestamp error: %v", err)
	}
	if !fromString.Equal(fromNumber) {
		t.Fatalf("string and number timestamps differ: %v vs %v", fromString, fromNumber)
	}
	want := time.Date(2023, time.November, 14, 22, 13, 20, 0, time.UTC)
	if !fromString.Equal(want) {
		t.Fatalf("unexpected instant: %v, want %v", fromString, want)
	}
	if fromString.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", fromString.Location())
	}
	if fromString.Nanosecond() != 0 {
		t.Fatalf("expected zero sub-second precision, got %d ns", fromString.Nanosecond())
	}
}

func TestFlexUnixTimeInvalid(t *testing.T) {
	for _, input := range []string{`"yesterday"`, `""`, `null`, `1.5`, `true`} {
		if _, err := flexUnixTime([]byte(input)); err == nil {
			t.Errorf("flexUnixTime(%s): expected error", input)
		}
	}
}

func TestOptionalString(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"empty string is absent", `""`, "", false},
		{"null is absent", `null`, "", false},
		{"value present", `"tt0133093"`, "tt0133093", false},
		{"number is rejected", `7`, "", true},
		{"array is rejected", `["x"]`, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := optionalString([]byte(tc.input))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("optionalString(%s) = %q, want error", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("optionalString(%s) error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("optionalString(%s) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestUnitArray(t *testing.T) {
	value, err := unitArray[string]([]byte(`["x"]`))
	if err != nil {
		t.Fatalf("unit array error: %v", err)
	}
	if value != "x" {
		t.Fatalf("unexpected element: %q", value)
	}

	size, err := unitArray[uint64]([]byte(`[2048]`))
	if err != nil {
		t.Fatalf("unit array error: %v", err)
	}
	if size != 2048 {
		t.Fatalf("unexpected element: %d", size)
	}
}

func TestUnitArrayLengthMismatch(t *testing.T) {
	if _, err := unitArray[string]([]byte(`[]`)); err == nil {
		t.Error("empty array: expected error")
	}
	if _, err := unitArray[string]([]byte(`["x","y"]`)); err == nil {
		t.Error("two-element array: expected error")
	}
	if _, err := unitArray[string]([]byte(`"x"`)); err == nil {
		t.Error("non-array: expected error")
	}
}

func TestUnitArrayNestedDecodeError(t *testing.T) {
	_, err := unitArray[uint64]([]byte(`["not a number"]`))
	if err == nil {
		t.Fatal("expected nested decode error")
	}
	if !strings.Contains(err.Error(), "array element") {
		t.Fatalf("expected element context in error, got: %v", err)
	}
}
