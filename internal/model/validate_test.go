package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("al"))
	assert.NoError(t, ValidateUsername("  alice  "))

	err := ValidateUsername(" a ")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "username")
}

func TestValidateDeadline(t *testing.T) {
	valid := Deadline{Date: "2026-09-01", Comment: "finish chapter one"}
	assert.NoError(t, ValidateDeadline(valid, testNow))

	// Today is allowed; only the past is rejected.
	assert.NoError(t, ValidateDeadline(Deadline{Date: "2026-08-29", Comment: "today works"}, testNow))

	cases := []struct {
		name     string
		deadline Deadline
	}{
		{"missing date", Deadline{Comment: "long enough"}},
		{"garbage date", Deadline{Date: "soon", Comment: "long enough"}},
		{"past date", Deadline{Date: "2026-08-28", Comment: "long enough"}},
		{"short comment", Deadline{Date: "2026-09-01", Comment: "hi"}},
		{"whitespace comment", Deadline{Date: "2026-09-01", Comment: "   hi   "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDeadline(tc.deadline, testNow)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestValidateImportURL(t *testing.T) {
	assert.NoError(t, ValidateImportURL("https://example.com/feed.json"))
	assert.NoError(t, ValidateImportURL("  http://example.com  "))

	for _, bad := range []string{"", "example.com/feed", "ftp://example.com/x", "::nope"} {
		err := ValidateImportURL(bad)
		require.Error(t, err, "url %q", bad)
		assert.True(t, IsValidationError(err))
	}
}
