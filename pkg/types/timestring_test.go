package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, invalid := range []string{"", "9:30:00", "25:00", "09-30", "noon"} {
		_, err := NewTimeStringFromString(invalid)
		assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", invalid)
	}
}

func TestTimeStringOrdering(t *testing.T) {
	early := TimeString("08:00")
	late := TimeString("14:30")

	assert.True(t, early.IsBefore(late))
	assert.False(t, late.IsBefore(early))
	assert.True(t, late.IsAfter(early))
	assert.False(t, early.IsBefore(early))
}

func TestTimeStringOnDate(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	result := TimeString("09:30").OnDate(day)

	assert.Equal(t, time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), result)
}

func TestTimeStringOnDateKeepsLocation(t *testing.T) {
	loc := time.FixedZone("CST", -6*60*60)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, loc)

	result := TimeString("14:00").OnDate(day)

	assert.Equal(t, loc, result.Location())
	assert.Equal(t, 14, result.Hour())
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts, err := TimeString("09:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), ts)
}

func TestTimeStringIsZero(t *testing.T) {
	assert.True(t, TimeString("").IsZero())
	assert.False(t, TimeString("00:00").IsZero())
}
