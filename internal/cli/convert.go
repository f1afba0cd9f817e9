package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/class-schedule/internal/calendar"
	"github.com/pfrederiksen/class-schedule/internal/filter"
	"github.com/pfrederiksen/class-schedule/internal/logger"
	"github.com/pfrederiksen/class-schedule/internal/portal"
	"github.com/pfrederiksen/class-schedule/internal/schedule"
	"github.com/pfrederiksen/class-schedule/internal/storage"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	outputDir  string
	outputFile string
	format     string
	workers    int
	verbose    bool
	debug      bool
	classes    []string
	dateRange  string
}

func newConvertCmd(a *app) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [html files...]",
		Short: "Convert saved portal pages into one calendar file",
		Long: `Reads one or more saved portal pages (standard input when no file is given),
collects every class session and writes them as events of a single .ics file.
Sessions that cannot be converted are skipped and listed in the summary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, a, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Directory for the calendar file (default from config: out)")
	cmd.Flags().StringVarP(&opts.outputFile, "output", "o", "", "Calendar file name (default from config: class_schedule.ics)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Classes assembled in parallel (default from config: 4)")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging and print run metrics")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Print every extracted session before writing")
	cmd.Flags().StringSliceVar(&opts.classes, "class", nil, "Only include classes whose name contains this text (repeatable)")
	cmd.Flags().StringVar(&opts.dateRange, "range", "", "Only include sessions starting in a Jalali range, e.g. '1404/07/01 - 1404/07/30' or 'مهر ۱۴۰۴'")

	return cmd
}

// applyConfig fills unset flags from configuration.
func (o *convertOptions) applyConfig(cmd *cobra.Command, a *app) {
	cfg := a.cfg
	if !cmd.Flags().Changed("output-dir") {
		o.outputDir = cfg.OutputDir
	}
	if !cmd.Flags().Changed("output") {
		o.outputFile = cfg.OutputFile
	}
	if !cmd.Flags().Changed("workers") {
		o.workers = cfg.Workers
	}
}

func runConvert(cmd *cobra.Command, a *app, opts *convertOptions, args []string) error {
	started := time.Now()

	format, err := parseFormat(opts.format)
	if err != nil {
		return err
	}
	opts.applyConfig(cmd, a)
	if opts.workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", opts.workers)
	}

	sessionFilter, err := opts.buildFilter()
	if err != nil {
		return err
	}

	blocks, err := readBlocks(cmd, args, a.cfg.SessionMarker)
	if err != nil {
		return err
	}
	if opts.verbose {
		logger.Info("Parsed portal input", logger.Fields{
			"inputs": max(len(args), 1),
			"blocks": len(blocks),
		})
	}

	logger.SetGauge("convert.workers", float64(opts.workers))
	classes, assemblySkips := schedule.AssembleAll(blocks, opts.workers)

	result := &ConvertResult{}
	if !sessionFilter.IsEmpty() {
		before := countSessions(classes)
		classes = sessionFilter.Apply(classes)
		result.Filter = sessionFilter.String()
		result.Filtered = before - countSessions(classes)
		logger.Info("Applied session filter", logger.Fields{
			"filter":   result.Filter,
			"filtered": result.Filtered,
		})
	}
	if opts.debug {
		result.Schedules = classes
	}

	store, err := storage.New(opts.outputDir)
	if err != nil {
		return fmt.Errorf("initializing output directory: %w", err)
	}

	serializer := calendar.NewSerializer(a.cfg.ProductID, a.cfg.Language)
	report, err := serializer.WriteFile(store, opts.outputFile, classes)
	if err != nil {
		return err
	}

	result.Path = report.Path
	result.Classes = report.Classes
	result.Events = report.Events
	result.Skipped = skippedSessions(assemblySkips, report.Skipped)

	logger.RecordTiming("convert.duration", time.Since(started))
	if opts.verbose {
		result.Metrics = logger.GetMetricsSnapshot()
	}

	if err := WriteConvertOutput(cmd.OutOrStdout(), result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func (o *convertOptions) buildFilter() (*filter.Filter, error) {
	f := filter.NewFilter()
	for _, c := range o.classes {
		if strings.TrimSpace(c) != "" {
			f.Classes = append(f.Classes, c)
		}
	}
	if o.dateRange != "" {
		from, to, err := filter.ParseDateRange(o.dateRange)
		if err != nil {
			return nil, fmt.Errorf("invalid --range: %w", err)
		}
		f.DateFrom, f.DateTo = from, to
	}
	return f, nil
}

func countSessions(classes []schedule.ClassSchedule) int {
	n := 0
	for _, c := range classes {
		n += len(c.Sessions)
	}
	return n
}

// readBlocks parses every named file in order, or standard input when there are none.
func readBlocks(cmd *cobra.Command, args []string, marker string) ([]schedule.Block, error) {
	if len(args) == 0 {
		blocks, err := portal.ParseBlocks(cmd.InOrStdin(), marker)
		if err != nil {
			return nil, fmt.Errorf("reading standard input: %w", err)
		}
		return blocks, nil
	}

	var blocks []schedule.Block
	for _, path := range args {
		b, err := portal.ParseFile(path, marker)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b...)
	}
	return blocks, nil
}

// skippedSessions lists assembly skips first, then serialization skips.
func skippedSessions(groups ...[]schedule.Skip) []SkippedSession {
	out := make([]SkippedSession, 0)
	for _, skips := range groups {
		for _, s := range skips {
			entry := SkippedSession{
				Class:   s.ClassName,
				Session: s.Session,
				Reason:  string(s.Reason),
			}
			if s.Err != nil {
				entry.Error = s.Err.Error()
			}
			out = append(out, entry)
		}
	}
	return out
}
