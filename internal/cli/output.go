package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pfrederiksen/class-schedule/internal/calendar"
	"github.com/pfrederiksen/class-schedule/internal/jalali"
	"github.com/pfrederiksen/class-schedule/internal/persian"
	"github.com/pfrederiksen/class-schedule/internal/schedule"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// SkippedSession is a dropped session as shown to the user.
type SkippedSession struct {
	Class   string `json:"class"`
	Session int    `json:"session"`
	Reason  string `json:"reason"`
	Error   string `json:"error,omitempty"`
}

// ConvertResult is the summary of one convert run.
type ConvertResult struct {
	Path      string                   `json:"path"`
	Classes   int                      `json:"classes"`
	Events    int                      `json:"events"`
	Skipped   []SkippedSession         `json:"skipped"`
	Filter    string                   `json:"filter,omitempty"`
	Filtered  int                      `json:"filtered,omitempty"`
	Schedules []schedule.ClassSchedule `json:"schedules,omitempty"`
	Metrics   map[string]interface{}   `json:"metrics,omitempty"`
}

// DateResult is the outcome of converting one date string.
type DateResult struct {
	Input      string                 `json:"input"`
	Components persian.DateComponents `json:"components"`
	Gregorian  *jalali.GregorianDate  `json:"gregorian"`
	Warning    string                 `json:"warning,omitempty"`
}

// InspectResult lists the events found in a calendar file.
type InspectResult struct {
	Path   string                  `json:"path"`
	Events []calendar.EventSummary `json:"events"`
}

// WriteConvertOutput writes a convert summary in the specified format
func WriteConvertOutput(w io.Writer, result *ConvertResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeConvertText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteDateOutput writes a date conversion in the specified format
func WriteDateOutput(w io.Writer, result *DateResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeDateText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteInspectOutput writes a calendar listing in the specified format
func WriteInspectOutput(w io.Writer, result *InspectResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeInspectText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeConvertText(w io.Writer, result *ConvertResult) error {
	if len(result.Schedules) > 0 {
		writeScheduleListing(w, result.Schedules)
	}

	fmt.Fprintf(w, "Calendar file created: %s\n", result.Path)
	fmt.Fprintf(w, "Classes: %d\n", result.Classes)
	fmt.Fprintf(w, "Events: %d\n", result.Events)
	if result.Filter != "" {
		fmt.Fprintf(w, "Filter: %s (%d sessions left out)\n", result.Filter, result.Filtered)
	}

	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped %d sessions:\n", len(result.Skipped))
		for _, s := range result.Skipped {
			fmt.Fprintf(w, "  %s, session %d: %s\n", s.Class, s.Session, s.Reason)
			if s.Error != "" {
				fmt.Fprintf(w, "       %s\n", s.Error)
			}
		}
	}

	if len(result.Metrics) > 0 {
		writeMetrics(w, result.Metrics)
	}
	return nil
}

// writeScheduleListing prints every class and session before the summary.
func writeScheduleListing(w io.Writer, classes []schedule.ClassSchedule) {
	total := countSessions(classes)

	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Classes: %d  Sessions: %d\n", len(classes), total)
	fmt.Fprintln(w, rule)

	for i, c := range classes {
		fmt.Fprintf(w, "\nClass %d/%d: %s (%d sessions)\n", i+1, len(classes), c.ClassName, len(c.Sessions))
		for _, s := range c.Sessions {
			fmt.Fprintf(w, "  Session %d:\n", s.Number)
			fmt.Fprintf(w, "    Start: %s\n", display(s.StartGregorian))
			fmt.Fprintf(w, "    End:   %s\n", display(s.EndGregorian))
		}
	}
	fmt.Fprintln(w)
}

func display(g *jalali.GregorianDate) string {
	if g == nil {
		return "-"
	}
	return g.Display
}

func writeMetrics(w io.Writer, metrics map[string]interface{}) {
	counters, _ := metrics["counters"].(map[string]int64)
	gauges, _ := metrics["gauges"].(map[string]float64)
	if len(counters) == 0 && len(gauges) == 0 {
		return
	}

	fmt.Fprintln(w, "\nMetrics:")
	for _, name := range sortedKeys(counters) {
		fmt.Fprintf(w, "  %s: %d\n", name, counters[name])
	}
	for _, name := range sortedKeys(gauges) {
		fmt.Fprintf(w, "  %s: %g\n", name, gauges[name])
	}
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeDateText(w io.Writer, result *DateResult) error {
	c := result.Components
	fmt.Fprintf(w, "Input: %s\n", result.Input)
	fmt.Fprintf(w, "Extracted: year=%s month=%s day=%s time=%s\n", c.Year, c.Month, c.Day, valueOr(c.Time, "-"))
	fmt.Fprintf(w, "Gregorian date: %s\n", display(result.Gregorian))
	if result.Warning != "" {
		fmt.Fprintf(w, "Warning: %s\n", result.Warning)
	}
	return nil
}

func writeInspectText(w io.Writer, result *InspectResult) error {
	if len(result.Events) == 0 {
		fmt.Fprintf(w, "No events found in %s.\n", result.Path)
		return nil
	}

	for _, e := range result.Events {
		fmt.Fprintf(w, "%s  %s -> %s\n", e.Summary, e.Start, e.End)
		fmt.Fprintf(w, "     UID: %s\n", e.UID)
	}
	fmt.Fprintf(w, "\nTotal: %d events\n", len(result.Events))
	return nil
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
