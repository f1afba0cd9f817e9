package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pfrederiksen/class-schedule/internal/config"
	"github.com/pfrederiksen/class-schedule/internal/logger"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	configFile string
	logLevel   string
	cfg        *config.Config
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "class-schedule",
		Short: "Turn saved university portal schedules into an iCalendar file",
		Long: `A CLI tool that reads the session dates of a saved university portal page,
converts the Persian (Jalali) dates to Gregorian and writes one .ics calendar.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (yaml, json, toml or env)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: DEBUG, INFO, WARN or ERROR")

	cmd.AddCommand(newConvertCmd(a), newDateCmd(), newInspectCmd())
	return cmd
}

// setup loads configuration and installs a logger writing to the command's stderr.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	a.cfg = cfg
	return nil
}

func parseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

func run(cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}
