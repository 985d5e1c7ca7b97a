package baseyear

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestFallbackYear_UserWindow(t *testing.T) {
	tests := []struct {
		name  string
		today time.Time
		want  int
	}{
		{"window opens Nov 7", date(2025, time.November, 7), 2026},
		{"day before the window", date(2025, time.November, 6), 2025},
		{"window closes Dec 31", date(2025, time.December, 31), 2026},
		{"new year is outside again", date(2025, time.January, 1), 2025},
		{"mid window", date(2025, time.December, 1), 2026},
		{"mid year", date(2025, time.June, 15), 2025},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackYear(tt.today, UserWindow))
		})
	}
}

// The school window opens ten days later than the user window. Nov 10 is the
// discriminating date: inside the user window, outside the school window.
func TestFallbackYear_SchoolWindowIsDistinct(t *testing.T) {
	nov10 := date(2025, time.November, 10)
	assert.Equal(t, 2026, FallbackYear(nov10, UserWindow))
	assert.Equal(t, 2025, FallbackYear(nov10, SchoolWindow))

	assert.Equal(t, 2026, FallbackYear(date(2025, time.November, 17), SchoolWindow))
	assert.Equal(t, 2025, FallbackYear(date(2025, time.November, 16), SchoolWindow))
}
