package handlers

import (
	"time"

	"github.com/hospitalhq/hospital-api/internal/timezone"
)

// Accepted payload formats for appointment dates. Offset-less values
// are interpreted in the hospital's configured timezone.
var appointmentDateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
}

func parseAppointmentDate(value, tz string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	loc := timezone.Location(tz)

	var lastErr error
	for _, layout := range appointmentDateLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
