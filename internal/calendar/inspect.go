package calendar

import (
	"fmt"
	"io"

	ics "github.com/arran4/golang-ical"
)

// EventSummary is the part of a VEVENT the inspect command lists.
type EventSummary struct {
	UID     string `json:"uid"`
	Summary string `json:"summary"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// Inspect parses an iCalendar document and lists its events in file order.
func Inspect(r io.Reader) ([]EventSummary, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	events := cal.Events()
	summaries := make([]EventSummary, 0, len(events))
	for _, event := range events {
		summaries = append(summaries, EventSummary{
			UID:     propertyValue(event, ics.ComponentPropertyUniqueId),
			Summary: propertyValue(event, ics.ComponentPropertySummary),
			Start:   propertyValue(event, ics.ComponentPropertyDtStart),
			End:     propertyValue(event, ics.ComponentPropertyDtEnd),
		})
	}
	return summaries, nil
}

func propertyValue(event *ics.VEvent, property ics.ComponentProperty) string {
	if p := event.GetProperty(property); p != nil {
		return p.Value
	}
	return ""
}
