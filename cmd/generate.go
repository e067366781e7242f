package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"intlcode.dev/pkg/intlcode/internal/domain"
	m "intlcode.dev/pkg/intlcode/internal/model"
)

var generateVerifyFlag bool
var generateReportFlag string

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [paths...]",
		Short: "Generate result-code members for annotated types",
		Long:  generateLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Generate(context.Background(), domain.GenerateArgs{
				ScanArgs: scanArgs(args),
				Verify:   generateVerifyFlag,
				Report:   m.Path(generateReportFlag),
			})
		},
	}

	configureGenerateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func configureGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&generateVerifyFlag, "verify", false, "run 'go build' on every generated package")
	cmd.Flags().StringVar(&generateReportFlag, reportFlagName, "", "also save a YAML report to this path")
}
