package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"String", "9074729", "9074729"},
		{"WholeFloat", float64(9074729), "9074729"},
		{"FractionalFloat", 1.5, "1.5"},
		{"Int", 42, "42"},
		{"Bytes", []byte("abc"), "abc"},
		{"Nil", nil, ""},
		{"Bool", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.in))
		})
	}
}

func TestToBool(t *testing.T) {
	for _, in := range []any{true, 1, "1", "true", "TRUE", " yes ", "on", []byte("true")} {
		assert.True(t, ToBool(in), "%v", in)
	}
	for _, in := range []any{false, 0, 2, "", "no", "false", nil, 1.0} {
		assert.False(t, ToBool(in), "%v", in)
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2026, 3, 1, 10, 15, 0, 0, time.UTC)

	for _, in := range []string{
		"2026-03-01 10:15:00",
		"2026-03-01T10:15:00Z",
		"2026-03-01T12:15:00+02:00",
		"2026-03-01T10:15:00",
		"2026-03-01 10:15:00+00:00",
		"03/01/2026 10:15:00",
		"3/1/2026 10:15:00 AM",
	} {
		got, ok := ParseTimestamp(in)
		assert.True(t, ok, in)
		assert.True(t, want.Equal(got), "%s parsed as %s", in, got)
	}

	_, ok := ParseTimestamp("")
	assert.False(t, ok)
	_, ok = ParseTimestamp("not a time")
	assert.False(t, ok)
}

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	assert.Equal(t, "2026-03-01 10:15:00", FormatTimestamp(time.Date(2026, 3, 1, 12, 15, 0, 0, loc)))
}

func TestFormatGap(t *testing.T) {
	assert.Equal(t, "26h3m4s", FormatGap(26*time.Hour+3*time.Minute+4*time.Second+900*time.Millisecond))
	assert.Equal(t, "0s", FormatGap(0))
}
