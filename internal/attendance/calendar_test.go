package attendance

import (
	"testing"

	attendanceerrors "spincraft-tracker/internal/attendance/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCalendar(t *testing.T) {
	first, err := ParseMonth("2024-02")
	require.NoError(t, err)

	days := BuildCalendar(first, "2024-02-14", map[string][]CalendarLog{
		"2024-02-14": {{ID: "log-1", TotalHours: 8}},
	})

	// 1 Feb 2024 is a Thursday.
	require.Len(t, days, 4+29)
	assert.Equal(t, "2024-01-28", days[0].Date)
	assert.False(t, days[0].IsCurrentMonth)
	assert.Equal(t, "2024-02-01", days[4].Date)
	assert.True(t, days[4].IsCurrentMonth)
	assert.Equal(t, "2024-02-29", days[len(days)-1].Date)

	feb14 := days[4+13]
	assert.True(t, feb14.IsToday)
	assert.Len(t, feb14.Logs, 1)
	assert.NotNil(t, days[5].Logs)
}

func TestParseMonth(t *testing.T) {
	_, err := ParseMonth("2024-13")
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidMonth)

	first, err := ParseMonth("2023-12")
	require.NoError(t, err)
	start, end := MonthBounds(first)
	assert.Equal(t, "2023-12-01", start)
	assert.Equal(t, "2023-12-31", end)
}
