package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pfrederiksen/class-schedule/internal/calendar"
	"github.com/spf13/cobra"
)

// SortOrder represents the available event orderings for inspect.
type SortOrder string

const (
	SortByFile    SortOrder = "file"
	SortByStart   SortOrder = "start"
	SortBySummary SortOrder = "summary"
)

func newInspectCmd() *cobra.Command {
	var format, order string

	cmd := &cobra.Command{
		Use:   "inspect <file.ics>",
		Short: "List the events of a calendar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			sortOrder := SortOrder(strings.ToLower(order))
			if sortOrder != SortByFile && sortOrder != SortByStart && sortOrder != SortBySummary {
				return fmt.Errorf("invalid sort order: %s (must be 'file', 'start' or 'summary')", order)
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening calendar: %w", err)
			}
			defer file.Close()

			events, err := calendar.Inspect(file)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			sortEvents(events, sortOrder)

			return WriteInspectOutput(cmd.OutOrStdout(), &InspectResult{Path: args[0], Events: events}, f)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&order, "sort", string(SortByFile), "Sort order: file, start or summary")
	return cmd
}

// sortEvents orders events in place. Ties keep their file order.
func sortEvents(events []calendar.EventSummary, order SortOrder) {
	switch order {
	case SortByStart:
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Start < events[j].Start
		})
	case SortBySummary:
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].Summary != events[j].Summary {
				return events[i].Summary < events[j].Summary
			}
			return events[i].Start < events[j].Start
		})
	}
}
