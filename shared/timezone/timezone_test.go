package timezone_test

import (
	"testing"
	"time"

	"resto/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowAndLocation(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
	assert.Equal(t, timezone.GetLocation(), timezone.Now().Location())
}

func TestLoadFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, timezone.Load(""))
	assert.Equal(t, time.UTC, timezone.Load("Mars/Olympus_Mons"))
	assert.Equal(t, "Asia/Jakarta", timezone.Load("Asia/Jakarta").String())
}

func TestParseDay(t *testing.T) {
	day, err := timezone.ParseDay("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, timezone.GetLocation(), day.Location())
	assert.Equal(t, 0, day.Hour())

	_, err = timezone.ParseDay("01/01/2024")
	assert.Error(t, err)
}

func TestDayBounds(t *testing.T) {
	day, err := timezone.ParseDay("2024-03-10")
	require.NoError(t, err)

	noon := day.Add(12 * time.Hour)

	assert.True(t, timezone.StartOfDay(noon).Equal(day))

	end := timezone.EndOfDay(noon)
	assert.Equal(t, 10, end.Day())
	assert.True(t, end.Add(time.Microsecond).Equal(day.AddDate(0, 0, 1)))
}
