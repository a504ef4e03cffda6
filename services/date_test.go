package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)

	tests := []struct {
		name     string
		input    string
		loc      *time.Location
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "Valid date",
			input:    "2026-01-27",
			expected: time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Valid date in location",
			input:    "2026-01-27",
			loc:      bogota,
			expected: time.Date(2026, 1, 27, 0, 0, 0, 0, bogota),
		},
		{
			name:    "Invalid format",
			input:   "27-01-2026",
			wantErr: true,
		},
		{
			name:    "Invalid day",
			input:   "2026-01-32",
			wantErr: true,
		},
		{
			name:    "Empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, tt.loc)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.expected.Equal(got), "got %v", got)
			}
		})
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2026, 3, 4, 17, 45, 12, 99, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), StartOfDay(in))
}
