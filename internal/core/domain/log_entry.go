package domain

import "time"

type LogEvent string

const (
	LogEventCommissioned  LogEvent = "commissioned"
	LogEventSpeedOrder    LogEvent = "speed_order"
	LogEventCrewDismissed LogEvent = "crew_dismissed"
	LogEventCrewBoarded   LogEvent = "crew_boarded"
)

// LogEntry is one line of a vessel's captain's log.
type LogEntry struct {
	ID        string
	VesselID  string
	Event     LogEvent
	Message   string
	CreatedAt time.Time
}
