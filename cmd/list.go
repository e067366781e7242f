package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"intlcode.dev/pkg/intlcode/internal/domain"
)

var listFormatFlag string

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List annotated types and synthesized members",
		Long:  listLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.List(context.Background(), domain.ListArgs{
				ScanArgs: scanArgs(args),
				Format:   listFormatFlag,
			})
		},
	}

	cmd.Flags().StringVar(&listFormatFlag, formatFlagName, domain.FormatTable, "output format: table or yaml")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
