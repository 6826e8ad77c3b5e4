package entry

import (
	"time"
)

// Layouts the backend has been seen to emit for created_at/updated_at.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func ParseTime(v string) (time.Time, error) {
	var err error
	for _, l := range layouts {
		var t time.Time
		if t, err = time.Parse(l, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

const layoutDisplay = "Jan 2, 2006 3:04 PM"

// DisplayDate renders a timestamp-ish string for people. Values that do not
// parse are shown as they came.
func DisplayDate(v string) string {
	if v == "" {
		return ""
	}
	t, err := ParseTime(v)
	if err != nil {
		return v
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("Jan 2, 2006")
	}
	return t.Local().Format(layoutDisplay)
}

func FormatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339Nano)
}
