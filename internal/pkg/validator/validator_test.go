package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.example.dk"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail("@example.com"))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("01912ed1-4a5b-7abc-89ab-0123456789ab"))
	// v4 is rejected, only v7 ids are issued by the database
	assert.False(t, IsValidUUID("7c9e6679-7425-40de-944b-e07fc1f90ae7"))
	assert.False(t, IsValidUUID("nope"))
}

func TestIsValidClock(t *testing.T) {
	assert.True(t, IsValidClock("08:00"))
	assert.True(t, IsValidClock("23:59"))
	assert.True(t, IsValidClock("00:00"))
	assert.False(t, IsValidClock("24:00"))
	assert.False(t, IsValidClock("8:00"))
	assert.False(t, IsValidClock("08:60"))
	assert.False(t, IsValidClock(""))
}

func TestClockToMinutes(t *testing.T) {
	assert.Equal(t, 480, ClockToMinutes("08:00"))
	assert.Equal(t, 0, ClockToMinutes("00:00"))
	assert.Equal(t, 16*60, ClockToMinutes("16:00"))
	assert.Equal(t, 23*60+59, ClockToMinutes("23:59"))
	assert.Equal(t, -1, ClockToMinutes("25:00"))
	assert.Equal(t, -1, ClockToMinutes("garbage"))
}

func TestMinutesToClock(t *testing.T) {
	assert.Equal(t, "08:00", MinutesToClock(480))
	assert.Equal(t, "00:05", MinutesToClock(5))
	assert.Equal(t, "16:30", MinutesToClock(16*60+30))
	// Out-of-range values clamp rather than wrap
	assert.Equal(t, "00:00", MinutesToClock(-10))
	assert.Equal(t, "23:59", MinutesToClock(25*60))
}

func TestClockRoundTrip(t *testing.T) {
	for _, clock := range []string{"00:00", "07:15", "12:00", "16:45", "23:59"} {
		assert.Equal(t, clock, MinutesToClock(ClockToMinutes(clock)))
	}
}

func TestIsValidCoordinates(t *testing.T) {
	assert.True(t, IsValidLatitude(56.1629))
	assert.True(t, IsValidLongitude(10.2039))
	assert.False(t, IsValidLatitude(91))
	assert.False(t, IsValidLatitude(-91))
	assert.False(t, IsValidLongitude(181))
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2026-09-07"))
	assert.False(t, IsValidDate("2026-13-01"))
	assert.False(t, IsValidDate("07-09-2026"))
	assert.False(t, IsValidDate(""))
}
