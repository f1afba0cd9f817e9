package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pfrederiksen/class-schedule/internal/jalali"
	"github.com/spf13/cobra"
)

func newDateCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "date <text>",
		Short: "Convert one Persian date string and show how it was read",
		Example: `  class-schedule date "پنج شنبه ۲۴ مهر ۱۴۰۴ - ۱۸:۰۰"
  class-schedule date --format json ۲۴ مهر ۱۴۰۴ - ۱۸:۰۰`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			components, gregorian, err := jalali.ConvertString(text)
			result := &DateResult{Input: text, Components: components, Gregorian: gregorian}

			switch {
			case err == nil:
			case errors.Is(err, jalali.ErrMalformedTime) && gregorian != nil:
				result.Warning = err.Error()
			default:
				return fmt.Errorf("converting %q: %w", text, err)
			}

			return WriteDateOutput(cmd.OutOrStdout(), result, f)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	return cmd
}
