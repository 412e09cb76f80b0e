package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a := New()
	b := New()
	assert.NotEqual(t, a, b)

	_, err := uuid.Parse(a)
	require.NoError(t, err)
}

func TestFormatMonthKey(t *testing.T) {
	tests := []struct {
		year, month int
		want        string
	}{
		{2025, 1, "2025-01"},
		{2025, 12, "2025-12"},
		{999, 7, "0999-07"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMonthKey(tt.year, tt.month))
	}
}

func TestParseMonthKey(t *testing.T) {
	year, month, err := ParseMonthKey("2024-02")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 2, month)
}

func TestParseMonthKey_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"2024",
		"2024-1",
		"24-01",
		"xxxx-01",
		"2024-13",
		"2024-00",
		"2024-01-15",
	}
	for _, input := range badInputs {
		_, _, err := ParseMonthKey(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestHasPrefix(t *testing.T) {
	full := "3f2a9c1e-7b4d-4e2a-9c1f-000000000001"
	assert.True(t, HasPrefix(full, "3f2a"))
	assert.True(t, HasPrefix(full, "3F2A9C1E7B"))
	assert.True(t, HasPrefix(full, "3f2a9c1e-7b"))
	assert.False(t, HasPrefix(full, "3f2b"))
	assert.False(t, HasPrefix(full, ""))
}

func TestFromReference(t *testing.T) {
	a := FromReference("chase_20250103_GITHUBPRO_-4.00")
	assert.Equal(t, a, FromReference("chase_20250103_GITHUBPRO_-4.00"))
	assert.NotEqual(t, a, FromReference("chase_20250103_GITHUBPRO_-5.00"))
	assert.Len(t, a, 36)
}
