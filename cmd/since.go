package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseSince handles: unix seconds ("1700000000"), "2024-01-15", "today",
// "yesterday", "-7d", "-2h". Returns a unix timestamp.
func parseSince(input string, now time.Time) (int64, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return 0, fmt.Errorf("empty timestamp")
	}

	today := truncateToDay(now)

	switch input {
	case "today":
		return today.Unix(), nil
	case "yesterday":
		return today.AddDate(0, 0, -1).Unix(), nil
	}

	// Relative: -7d, -2h
	if strings.HasPrefix(input, "-") && len(input) > 2 {
		n, err := strconv.Atoi(input[1 : len(input)-1])
		switch {
		case err != nil:
		case strings.HasSuffix(input, "d"):
			return now.AddDate(0, 0, -n).Unix(), nil
		case strings.HasSuffix(input, "h"):
			return now.Add(-time.Duration(n) * time.Hour).Unix(), nil
		}
	}

	// Unix seconds
	if secs, err := strconv.ParseInt(input, 10, 64); err == nil {
		return secs, nil
	}

	// Absolute: YYYY-MM-DD
	t, err := time.Parse("2006-01-02", input)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q (expected unix seconds, YYYY-MM-DD, today, yesterday, -Nd, or -Nh)", input)
	}
	return t.Unix(), nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
