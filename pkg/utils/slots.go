package utils

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SlotLabelLayout is the 12-hour label format the booking UI shows,
// e.g. "09:00 AM".
const SlotLabelLayout = "03:04 PM"

// ParseSlotLabel converts a slot label like "09:00 AM" to its hour of day.
func ParseSlotLabel(label string) (int, error) {
	t, err := time.Parse(SlotLabelLayout, strings.ToUpper(strings.TrimSpace(label)))
	if err != nil {
		return 0, fmt.Errorf("invalid slot label %q: %w", label, err)
	}
	if t.Minute() != 0 {
		return 0, fmt.Errorf("slot label %q is not hour-aligned", label)
	}
	return t.Hour(), nil
}

// SlotLabel formats an hour of day (0-23) as a slot label.
func SlotLabel(hour int) string {
	return time.Date(0, 1, 1, hour, 0, 0, 0, time.UTC).Format(SlotLabelLayout)
}

// TimeOfDay formats an hour of day as the "HH:MM:SS" string stored on
// booking rows. Zero-padded so text comparison orders correctly.
func TimeOfDay(hour int) string {
	return fmt.Sprintf("%02d:00:00", hour)
}

// SlotHours parses a set of slot labels into hours of day.
// Duplicate labels are rejected.
func SlotHours(labels []string) ([]int, error) {
	hours := make([]int, 0, len(labels))
	seen := make(map[int]bool, len(labels))
	for _, label := range labels {
		hour, err := ParseSlotLabel(label)
		if err != nil {
			return nil, err
		}
		if seen[hour] {
			return nil, fmt.Errorf("duplicate slot %q", label)
		}
		seen[hour] = true
		hours = append(hours, hour)
	}
	return hours, nil
}

// SlotBounds derives the booked interval from a set of slot hours:
// start is the earliest slot, end is one hour after the latest.
// The input is sorted here so unsorted selections cannot produce an
// inverted interval.
func SlotBounds(hours []int) (start, end string, err error) {
	if len(hours) == 0 {
		return "", "", fmt.Errorf("no slots selected")
	}

	sorted := make([]int, len(hours))
	copy(sorted, hours)
	sort.Ints(sorted)

	return TimeOfDay(sorted[0]), TimeOfDay(sorted[len(sorted)-1] + 1), nil
}
