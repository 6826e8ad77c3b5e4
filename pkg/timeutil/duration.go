// Package timeutil parses the look-back windows used by --since flags.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

var (
	segment = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	units   = map[string]time.Duration{}
)

func init() {
	for d, names := range map[time.Duration][]string{
		time.Minute: {"m", "min", "mins", "minute", "minutes"},
		time.Hour:   {"h", "hr", "hrs", "hour", "hours"},
		day:         {"d", "day", "days"},
		week:        {"w", "wk", "wks", "week", "weeks"},
	} {
		for _, n := range names {
			units[n] = d
		}
	}
}

// ParseWindow reads a window such as "3d", "2 weeks" or "1w2d" and returns it
// with a compact label. An empty window is zero, meaning no limit.
func ParseWindow(input string) (time.Duration, string, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	if rest == "" {
		return 0, "", nil
	}

	var total time.Duration
	for strings.TrimSpace(rest) != "" {
		m := segment.FindStringSubmatch(rest)
		if m == nil {
			return 0, "", fmt.Errorf("invalid window %q", strings.TrimSpace(rest))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid window value %q: %w", m[1], err)
		}
		unit, ok := units[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("unknown window unit %q", m[2])
		}
		total += time.Duration(n) * unit
		rest = rest[len(m[0]):]
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("window %q must be longer than zero", input)
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders d with w/d/h/m tokens, dropping seconds.
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range []struct {
		label string
		size  time.Duration
	}{{"w", week}, {"d", day}, {"h", time.Hour}, {"m", time.Minute}} {
		if n := d / u.size; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.label)
			d -= n * u.size
		}
	}
	if b.Len() == 0 {
		return "0m"
	}
	return b.String()
}

// Since returns the start of a window ending at now. A zero window returns
// the zero time.
func Since(window time.Duration, now time.Time) time.Time {
	if window <= 0 {
		return time.Time{}
	}
	return now.Add(-window)
}
