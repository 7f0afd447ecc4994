package recruitee

import (
	"fmt"
	"time"
)

// Layouts tried in order for string timestamps. Layouts without a zone are
// interpreted as UTC; a bare date is midnight UTC on that date.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// EpochSeconds coerces a timestamp-ish value to integer epoch seconds. It
// accepts integer or float epoch values, time.Time, and the string layouts
// above.
func EpochSeconds(v interface{}) (int64, error) {
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case float32:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case time.Time:
		return t.Unix(), nil
	case string:
		for _, layout := range timestampLayouts {
			if parsed, err := time.ParseInLocation(layout, t, time.UTC); err == nil {
				return parsed.Unix(), nil
			}
		}
		return 0, &ValidationError{Message: fmt.Sprintf("unrecognized timestamp %q", t)}
	default:
		return 0, &ValidationError{Message: fmt.Sprintf("cannot coerce %T to epoch seconds", v)}
	}
}
