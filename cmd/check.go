package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"intlcode.dev/pkg/intlcode/internal/domain"
)

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [paths...]",
		Short: "Verify generated files are up to date",
		Long:  checkLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Check(context.Background(), domain.CheckArgs{ScanArgs: scanArgs(args)})
		},
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
