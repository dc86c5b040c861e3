package commands

import (
	"github.com/spf13/cobra"

	"mapper-planner/internal/plan"
)

func newPlanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "plan FILE",
		Short: "Print the plan of a declaration file as YAML",
		Long: `Plan every method of the declared mapper and print the plan as YAML.

Methods that cannot be planned are printed with their error. In strict mode the
command fails after printing if any error or warning was reported.

Examples:
  mapper-planner plan mapper.yaml
  mapper-planner plan --load ./model/... mapper.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, cmd, func(s *session) error {
				p, planErr := s.plan(args[0])
				if p == nil {
					return planErr
				}

				data, err := plan.ExportYAML(p)
				if err != nil {
					return err
				}

				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}

				return planErr
			})
		},
	}
}
