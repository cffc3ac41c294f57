// Package timeutil converts between whole seconds and the bracketed timecodes used in notes.
package timeutil

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedTimestamp is returned when text is not an MM:SS or HH:MM:SS timecode.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// bracketedTimecode matches the first [M:SS], [MM:SS], [H:MM:SS] or [HH:MM:SS] in free text.
var bracketedTimecode = regexp.MustCompile(`\[(\d{1,2}:\d{2}(?::\d{2})?)\]`)

// FormatTimestamp formats seconds as MM:SS, or HH:MM:SS from one hour up (e.g. 01:30, 01:11:22).
func FormatTimestamp(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	if hours == 0 {
		return fmt.Sprintf("%02d:%02d", mins, secs)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
}

// FormatDuration formats a fractional player time, dropping the fraction.
func FormatDuration(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	return FormatTimestamp(int(math.Floor(seconds)))
}

// ParseTimestamp parses a time string in HH:MM:SS or MM:SS format.
// Field magnitudes are not range checked, so "1:75" parses as 135.
func ParseTimestamp(timeStr string) (int, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: expected HH:MM:SS or MM:SS, got '%s'", ErrMalformedTimestamp, timeStr)
	}

	values := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("%w: field %q in '%s' is not a number", ErrMalformedTimestamp, p, timeStr)
		}
		values[i] = n
	}

	if len(values) == 2 {
		return values[0]*60 + values[1], nil
	}
	return values[0]*3600 + values[1]*60 + values[2], nil
}

// ExtractFirstTimestamp returns the seconds of the first bracketed timecode in text.
// A bracketed value that fails to parse counts as no timestamp.
func ExtractFirstTimestamp(text string) (int, bool) {
	match := bracketedTimecode.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	seconds, err := ParseTimestamp(match[1])
	if err != nil {
		return 0, false
	}
	return seconds, true
}
