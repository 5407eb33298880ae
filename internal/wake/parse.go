package wake

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Layout is the timestamp format passed to rtcwake.
const Layout = "2006-01-02 15:04:05"

var dateLayouts = []string{"2006-01-02 15:04:05", "2006-01-02 15:04"}

var clockParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ParseTime resolves the time tokens, joined with spaces, into an absolute
// time in now's location. "YYYY-MM-DD HH:MM[:SS]" is taken literally;
// "HH:MM[:SS]" is its next occurrence, today if it has not passed yet.
func ParseTime(tokens []string, now time.Time) (time.Time, error) {
	s := strings.Join(strings.Fields(strings.Join(tokens, " ")), " ")
	if s == "" {
		return time.Time{}, fmt.Errorf("no wake time given")
	}

	if strings.Contains(s, " ") {
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("invalid wake time %q: want \"YYYY-MM-DD HH:MM[:SS]\" or \"HH:MM[:SS]\"", s)
	}

	h, m, sec, err := parseClock(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid wake time %q: %w", s, err)
	}
	return NextOccurrence(h, m, sec, now)
}

// NextOccurrence returns the first time at or after now whose clock reads h:m:sec.
func NextOccurrence(h, m, sec int, now time.Time) (time.Time, error) {
	schedule, err := clockParser.Parse(fmt.Sprintf("%d %d %d * * *", sec, m, h))
	if err != nil {
		return time.Time{}, err
	}

	// Next is strictly after its argument and truncates to whole seconds.
	next := schedule.Next(now.Add(-time.Second))
	if next.Before(now) {
		next = schedule.Next(next)
	}
	return next, nil
}

func parseClock(s string) (h, m, sec int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("want HH:MM or HH:MM:SS")
	}

	limits := []int{23, 59, 59}
	values := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil || n < 0 || n > limits[i] || len(p) > 2 {
			return 0, 0, 0, fmt.Errorf("%q is out of range", p)
		}
		values[i] = n
	}
	return values[0], values[1], values[2], nil
}
