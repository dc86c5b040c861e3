package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"mapper-planner/internal/reverse"
)

func newLinksCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "links FILE",
		Short: "Print the configurations adopted from reverse methods",
		Long: `Print every unconfigured method that adopts the configuration of its
reverse method, as "method <- reverse".

Examples:
  mapper-planner links mapper.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, cmd, func(s *session) error {
				c, err := s.catalogue(args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()

				_, links := reverse.Apply(c, s.log)
				if len(links) == 0 {
					fmt.Fprintln(out, "No reverse links.")

					return nil
				}

				for _, l := range links {
					fmt.Fprintf(out, "%s <- %s\n", l.Method.Name, l.Reverse.Name)
				}

				return nil
			})
		},
	}
}
