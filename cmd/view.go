package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"intlcode.dev/pkg/intlcode/internal/domain"
	m "intlcode.dev/pkg/intlcode/internal/model"
)

var viewReportFlag string

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [paths...]",
		Short: "Browse synthesized members interactively",
		Long: `Browse the synthesis report in a terminal viewer. With --report a report
saved by 'generate --report' is shown instead of scanning.`,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.View(context.Background(), domain.ViewArgs{
				ScanArgs: scanArgs(args),
				Report:   m.Path(viewReportFlag),
			})
		},
	}

	cmd.Flags().StringVar(&viewReportFlag, reportFlagName, "", "saved YAML report to open")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
