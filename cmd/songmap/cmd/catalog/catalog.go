// Package catalog implements the adapters command, which prints every
// registered adapter with its options.
package catalog

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/songmap/internal/cmd/application"
	"github.com/agentstation/songmap/internal/cmd/output"
	"github.com/agentstation/songmap/pkg/adapters"
)

// NewCommand creates the adapters command.
func NewCommand(app application.Application) *cobra.Command {
	var only string
	cmd := &cobra.Command{
		Use:     "adapters",
		Aliases: []string{"adapter"},
		GroupID: "management",
		Short:   "List available readers and writers",
		Example: `  songmap adapters
  songmap adapters --type writer -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			discovered, err := app.Registry().Discover()
			if err != nil {
				return err
			}

			var list []adapters.Descriptor
			for _, t := range []adapters.Type{adapters.TypeReader, adapters.TypeWriter} {
				if only != "" && string(t) != only {
					continue
				}
				list = append(list, discovered[t]...)
			}

			format := output.DetectFormat(app.OutputFormat())
			var data any = list
			if format == output.FormatTable || format == output.FormatWide {
				data = output.DescriptorsToTableData(list)
			}
			return output.NewFormatter(format).Format(app.Stdout(), data)
		},
	}
	cmd.Flags().StringVar(&only, "type", "", "only show adapters of this type: reader, writer")
	return cmd
}
