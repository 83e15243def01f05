package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduleOf(t *testing.T) {
	now := time.Date(2024, time.May, 1, 12, 45, 10, 0, time.UTC)
	day := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		rawDate  any
		rawTime  any
		wantDate time.Time
		wantTime time.Time
		wantOK   bool
	}{
		{
			name:     "string date and duration time",
			rawDate:  "2024-03-15",
			rawTime:  9*time.Hour + 30*time.Minute,
			wantDate: day,
			wantTime: time.Date(0, time.January, 1, 9, 30, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "bytes date and text time",
			rawDate:  []byte("2024-03-15"),
			rawTime:  "18:05:00",
			wantDate: day,
			wantTime: time.Date(0, time.January, 1, 18, 5, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "driver time value and short clock",
			rawDate:  day,
			rawTime:  []byte("07:15"),
			wantDate: day,
			wantTime: time.Date(0, time.January, 1, 7, 15, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "seconds since midnight drop seconds",
			rawDate:  "2024-03-15",
			rawTime:  int64(9*3600 + 30*60 + 59),
			wantDate: day,
			wantTime: time.Date(0, time.January, 1, 9, 30, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "malformed date falls back to now",
			rawDate:  "not-a-date",
			rawTime:  "09:30:00",
			wantDate: now,
			wantTime: now,
			wantOK:   false,
		},
		{
			name:     "malformed time falls back to now",
			rawDate:  "2024-03-15",
			rawTime:  "half past nine",
			wantDate: now,
			wantTime: now,
			wantOK:   false,
		},
		{
			name:     "zero driver time is a failure",
			rawDate:  time.Time{},
			rawTime:  "09:30:00",
			wantDate: now,
			wantTime: now,
			wantOK:   false,
		},
		{
			name:     "duration past a day is a failure",
			rawDate:  "2024-03-15",
			rawTime:  25 * time.Hour,
			wantDate: now,
			wantTime: now,
			wantOK:   false,
		},
		{
			name:     "unsupported type",
			rawDate:  3.14,
			rawTime:  nil,
			wantDate: now,
			wantTime: now,
			wantOK:   false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ScheduleOf(tt.rawDate, tt.rawTime, now)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, tt.wantDate.Equal(got.Date), "date %v, want %v", got.Date, tt.wantDate)
			assert.True(t, tt.wantTime.Equal(got.Time), "time %v, want %v", got.Time, tt.wantTime)
		})
	}
}

func TestTimestamp(t *testing.T) {
	now := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		raw    any
		want   time.Time
		wantOK bool
	}{
		{
			name:   "sqlite text",
			raw:    "2024-03-15 10:20:30",
			want:   time.Date(2024, time.March, 15, 10, 20, 30, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "rfc3339",
			raw:    []byte("2024-03-15T10:20:30Z"),
			want:   time.Date(2024, time.March, 15, 10, 20, 30, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "driver value",
			raw:    time.Date(2024, time.March, 15, 10, 20, 30, 0, time.UTC),
			want:   time.Date(2024, time.March, 15, 10, 20, 30, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "garbage",
			raw:    "yesterday",
			want:   now,
			wantOK: false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Timestamp(tt.raw, now)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}
