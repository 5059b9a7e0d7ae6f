package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, 10, d.Day())

	_, err = ParseDate("10/06/2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestParseDateRange(t *testing.T) {
	start, end, err := ParseDateRange("2024-06-10", "2024-06-12")
	require.NoError(t, err)
	assert.True(t, start.Before(end))

	// Same-day range is fine
	_, _, err = ParseDateRange("2024-06-10", "2024-06-10")
	assert.NoError(t, err)

	// Start after end must be rejected before any database work
	_, _, err = ParseDateRange("2024-06-12", "2024-06-10")
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	afternoon := time.Date(2026, 8, 31, 14, 30, 12, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), StartOfDay(afternoon))

	// Already at midnight stays put
	midnight := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, midnight, StartOfDay(midnight))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "orchard-cottage", Slugify("Orchard Cottage"))
	assert.Equal(t, "the-hayloft", Slugify("  The Hayloft! "))
	assert.Equal(t, "a-day-in-the-orchard", Slugify("A day in the orchard?"))
	assert.Equal(t, "", Slugify("!!!"))
}
