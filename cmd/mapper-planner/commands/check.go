package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"mapper-planner/internal/diagnostic"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Report the diagnostics of a declaration file",
		Long: `Plan every method of the declared mapper and print the diagnostics, one
per line. The command fails if any error was reported, or any warning in strict
mode.

Examples:
  mapper-planner check mapper.yaml
  mapper-planner check --strict --unmapped error mapper.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, cmd, func(s *session) error {
				p, err := s.plan(args[0])
				if p == nil {
					return err
				}

				out := cmd.OutOrStdout()
				diags := p.Diagnostics

				for _, list := range [][]diagnostic.Diagnostic{diags.Errors, diags.Warnings, diags.Infos} {
					for _, d := range list {
						fmt.Fprintf(out, "%s: %s\n", d.Severity, d)
					}
				}

				fmt.Fprintf(out, "%d methods, %d errors, %d warnings\n",
					len(p.Methods), len(diags.Errors), len(diags.Warnings))

				if diags.HasErrors() || (s.cfg.Planning.Strict && diags.HasWarnings()) {
					return errCheckFailed
				}

				return nil
			})
		},
	}
}
