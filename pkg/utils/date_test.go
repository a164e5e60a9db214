package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDateParam(t *testing.T) {
	type testCase struct {
		name     string
		value    string
		expected time.Time
		ok       bool
	}

	testCases := []testCase{
		{name: "valid date", value: "2026-08-28", expected: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "empty is absent", value: "", ok: false},
		{name: "garbage is absent", value: "yesterday", ok: false},
		{name: "wrong layout is absent", value: "28/08/2026", ok: false},
		{name: "impossible date is absent", value: "2026-13-40", ok: false},
		{name: "trailing time is absent", value: "2026-08-28T10:00:00Z", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, ok := ParseDateParam(tc.value)

			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.True(t, parsed.Equal(tc.expected))
			}
		})
	}
}
