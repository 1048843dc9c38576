package dateutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is the report window used when none is given.
const DefaultWindow = "1w"

const (
	day  = 24 * time.Hour
	week = 7 * day
)

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]*)`)

	minuteUnits = map[string]time.Duration{
		"":        time.Minute,
		"m":       time.Minute,
		"min":     time.Minute,
		"mins":    time.Minute,
		"minute":  time.Minute,
		"minutes": time.Minute,
		"h":       time.Hour,
		"hr":      time.Hour,
		"hrs":     time.Hour,
		"hour":    time.Hour,
		"hours":   time.Hour,
	}

	windowUnits = map[string]time.Duration{
		"h":     time.Hour,
		"hr":    time.Hour,
		"hrs":   time.Hour,
		"hour":  time.Hour,
		"hours": time.Hour,
		"d":     day,
		"day":   day,
		"days":  day,
		"w":     week,
		"wk":    week,
		"wks":   week,
		"week":  week,
		"weeks": week,
	}
)

// sumSegments adds up "<n><unit>" segments such as "1h30m".
func sumSegments(input string, units map[string]time.Duration) (time.Duration, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, fmt.Errorf("empty duration")
	}
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := segmentPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, fmt.Errorf("invalid duration segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration value %q: %w", matches[1], err)
		}
		unit, ok := units[matches[2]]
		if !ok {
			return 0, fmt.Errorf("unsupported duration unit %q", matches[2])
		}
		total += time.Duration(value) * unit
		remaining = remaining[len(matches[0]):]
	}
	if total <= 0 {
		return 0, fmt.Errorf("duration must be greater than zero")
	}
	return total, nil
}

// ParseDuration parses an appointment length such as "45", "45m", "1h" or
// "1h30m" into whole minutes. A bare number is read as minutes.
func ParseDuration(input string) (int, error) {
	total, err := sumSegments(input, minuteUnits)
	if err != nil {
		return 0, err
	}
	return int(total / time.Minute), nil
}

// FormatDuration renders minutes as "45m", "1h" or "1h30m".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// ParseWindow parses a report window such as "3d" or "1w2d" and returns it
// with a compact label. Empty input means DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	if strings.TrimSpace(input) == "" {
		input = DefaultWindow
	}
	total, err := sumSegments(input, windowUnits)
	if err != nil {
		return 0, "", err
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders a window with w/d/h tokens, dropping any remainder
// below an hour.
func FormatWindow(d time.Duration) string {
	var parts []string
	for _, u := range []struct {
		label string
		value time.Duration
	}{{"w", week}, {"d", day}, {"h", time.Hour}} {
		if d < u.value {
			continue
		}
		count := d / u.value
		d -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	if len(parts) == 0 {
		return "0h"
	}
	return strings.Join(parts, "")
}
