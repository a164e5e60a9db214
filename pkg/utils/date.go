package utils

import "time"

func ConvertDateTimeToHumanReadableFormat(t time.Time) string {
	outputFormat := "02 January 2006, 15:04 MST"
	return t.Format(outputFormat)
}

// ParseDateParam parses a yyyy-mm-dd query value. Malformed values are
// treated as absent rather than rejected.
func ParseDateParam(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
