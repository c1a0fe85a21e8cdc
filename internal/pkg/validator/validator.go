package validator

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidUUID checks a UUIDv7 string, the only id version the database issues.
func IsValidUUID(id string) bool {
	u, err := uuid.Parse(id)
	return err == nil && u.Version() == 7
}

// Date validation
func IsValidDate(dateStr string) bool {
	_, err := time.Parse("2006-01-02", dateStr)
	return err == nil
}

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidClock checks a wall-clock string in "HH:MM" (24h) format.
func IsValidClock(clock string) bool {
	return clockRegex.MatchString(clock)
}

// ClockToMinutes converts "HH:MM" to minutes since midnight.
// Returns -1 for malformed input.
func ClockToMinutes(clock string) int {
	if !IsValidClock(clock) {
		return -1
	}
	parts := strings.SplitN(clock, ":", 2)
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours*60 + minutes
}

// MinutesToClock converts minutes since midnight to "HH:MM".
func MinutesToClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes > 23*60+59 {
		minutes = 23*60 + 59
	}
	h := minutes / 60
	m := minutes % 60
	return pad2(h) + ":" + pad2(m)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// IsValidLatitude checks a latitude in degrees.
func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// IsValidLongitude checks a longitude in degrees.
func IsValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}
