package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"mapper-planner/internal/conversion"
)

func newConversionsCmd(opts *options) *cobra.Command {
	var categories []string

	cmd := &cobra.Command{
		Use:   "conversions",
		Short: "List the built-in conversions",
		Long: `List the built-in conversions of the enabled categories, one per line as
"source -> target (category)". Conversions between enums and strings depend on
the declared types and are not listed.

Examples:
  mapper-planner conversions
  mapper-planner conversions --category all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(opts, cmd, func(s *session) error {
				if cmd.Flags().Changed("category") {
					s.cfg.Planning.Conversions = categories
				}

				selected, err := conversion.ParseCategories(s.cfg.Planning.Conversions)
				if err != nil {
					return err
				}

				registry, err := conversion.NewRegistry(selected)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, c := range registry.Conversions() {
					fmt.Fprintln(out, c)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&categories, "category", nil, "Conversion categories to list instead of the configured ones")

	return cmd
}
