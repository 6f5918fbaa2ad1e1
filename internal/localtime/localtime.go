// Package localtime derives wall-clock display data for an IANA timezone.
package localtime

import (
	"fmt"
	"time"
)

// Phase names the part of the day at a location.
type Phase string

const (
	PhaseEarlyMorning Phase = "EARLY MORNING"
	PhaseMorning      Phase = "MORNING"
	PhaseAfternoon    Phase = "AFTERNOON"
	PhaseEvening      Phase = "EVENING"
	PhaseNight        Phase = "NIGHT"
	PhaseLateNight    Phase = "LATE NIGHT"
)

// Info is the local-time display data for a timezone at an instant.
type Info struct {
	// Time is the 12-hour wall-clock string, e.g. "3:07 PM".
	Time string

	// Phase is the part of the day.
	Phase Phase

	// Progress is how far through the day the local clock is, 0-100.
	Progress float64
}

// At computes the local-time info for tz at the given instant. The zero Info
// and an error are returned when tz is not a loadable IANA identifier.
func At(tz string, at time.Time) (Info, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Info{}, fmt.Errorf("loading timezone %q: %w", tz, err)
	}

	local := at.In(loc)
	hour := local.Hour()
	minute := local.Minute()

	totalMinutes := hour*60 + minute
	progress := float64(totalMinutes) / 1440 * 100

	return Info{
		Time:     local.Format("3:04 PM"),
		Phase:    phaseForHour(hour),
		Progress: progress,
	}, nil
}

// Now computes the local-time info for tz at the current instant.
func Now(tz string) (Info, error) {
	return At(tz, time.Now())
}

func phaseForHour(hour int) Phase {
	switch {
	case hour >= 6 && hour < 12:
		return PhaseMorning
	case hour >= 12 && hour < 17:
		return PhaseAfternoon
	case hour >= 17 && hour < 21:
		return PhaseEvening
	case hour < 3:
		return PhaseLateNight
	case hour < 6:
		return PhaseEarlyMorning
	default:
		return PhaseNight
	}
}
