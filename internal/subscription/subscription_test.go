package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRemainingDays(t *testing.T) {
	start := date(2024, 1, 1)
	thirty := 30

	tests := []struct {
		name  string
		start *time.Time
		days  *int
		today time.Time
		want  *int
	}{
		{
			name:  "no start date means no status",
			start: nil,
			days:  &thirty,
			today: date(2024, 1, 15),
			want:  nil,
		},
		{
			name:  "no duration means no status",
			start: &start,
			days:  nil,
			today: date(2024, 1, 15),
			want:  nil,
		},
		{
			name:  "middle of the window",
			start: &start,
			days:  &thirty,
			today: date(2024, 1, 15),
			want:  intPtr(16),
		},
		{
			name:  "expires today reports zero",
			start: &start,
			days:  &thirty,
			today: date(2024, 1, 31),
			want:  intPtr(0),
		},
		{
			name:  "long expired clamps to zero",
			start: &start,
			days:  &thirty,
			today: date(2024, 6, 1),
			want:  intPtr(0),
		},
		{
			name:  "start in the future counts full window",
			start: &start,
			days:  &thirty,
			today: date(2023, 12, 31),
			want:  intPtr(31),
		},
		{
			name:  "time of day is ignored",
			start: &start,
			days:  &thirty,
			today: time.Date(2024, 1, 15, 23, 59, 59, 0, time.UTC),
			want:  intPtr(16),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemainingDays(tt.start, tt.days, tt.today)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestRemainingDays_NeverNegative(t *testing.T) {
	start := date(2020, 1, 1)
	for _, days := range []int{0, 1, 7, 30, 365} {
		days := days
		got := RemainingDays(&start, &days, date(2024, 1, 1))
		require.NotNil(t, got)
		assert.GreaterOrEqual(t, *got, 0)
	}
}

func TestIsActive(t *testing.T) {
	assert.False(t, IsActive(nil), "no data is not active")
	assert.False(t, IsActive(intPtr(0)), "expiring today is not active")
	assert.True(t, IsActive(intPtr(1)))
}

func intPtr(v int) *int { return &v }
