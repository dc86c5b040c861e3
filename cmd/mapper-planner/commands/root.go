// Package commands provides the CLI commands for the mapper-planner tool.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"mapper-planner/internal/analyze"
	"mapper-planner/internal/catalogue"
	"mapper-planner/internal/config"
	"mapper-planner/internal/logging"
	"mapper-planner/internal/mapping"
	"mapper-planner/internal/plan"
)

// errCheckFailed is returned by check when the declaration does not plan cleanly.
// The diagnostics have been printed already.
var errCheckFailed = errors.New("check failed")

// options holds the global flags.
type options struct {
	configPath  string
	logLevel    string
	logFormat   string
	load        []string
	parallelism int
	strict      bool
	unmapped    policyValue
}

// NewRootCommand creates the mapper-planner command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "mapper-planner",
		Short: "Plan the implementation of declared mapping methods",
		Long: `mapper-planner reads a YAML declaration of a mapper and plans how each
of its methods is implemented.

Usage:
  mapper-planner plan mapper.yaml          Print the plan as YAML
  mapper-planner check mapper.yaml         Report diagnostics, fail on errors
  mapper-planner links mapper.yaml         Print configurations adopted from reverse methods
  mapper-planner conversions               List the built-in conversions`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to the YAML configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format (text, json)")
	flags.StringSliceVarP(&opts.load, "load", "l", nil, "Go package patterns whose types declarations may refer to")
	flags.IntVarP(&opts.parallelism, "parallelism", "p", 0, "Number of methods planned concurrently")
	flags.BoolVar(&opts.strict, "strict", false, "Fail on any error or warning diagnostic")
	flags.Var(&opts.unmapped, "unmapped", "Unmapped target property policy (ignore, warn, error)")

	root.AddCommand(newPlanCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newLinksCmd(opts))
	root.AddCommand(newConversionsCmd(opts))

	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}

		os.Exit(1)
	}
}

// session is the configuration and logger of one command run.
type session struct {
	cfg    *config.Config
	log    *logrus.Logger
	closer io.Closer
	load   []string
}

// newSession loads the configuration file and applies the flags set on the
// command line on top of it.
func (o *options) newSession(flags *pflag.FlagSet) (*session, error) {
	cfg := config.DefaultConfig()

	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}

	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}

	if flags.Changed("log-format") {
		cfg.Logging.Format = o.logFormat
	}

	if flags.Changed("parallelism") {
		cfg.Planning.Parallelism = o.parallelism
	}

	if flags.Changed("strict") {
		cfg.Planning.Strict = o.strict
	}

	if flags.Changed("unmapped") {
		cfg.Planning.UnmappedTargetPolicy = o.unmapped.String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, closer := logging.New(cfg.LoggingOptions())

	return &session{cfg: cfg, log: log, closer: closer, load: o.load}, nil
}

func (s *session) Close() error {
	return s.closer.Close()
}

// catalogue loads the declaration file and builds its catalogue.
func (s *session) catalogue(path string) (*catalogue.Catalogue, error) {
	var graph *analyze.TypeGraph

	if len(s.load) > 0 {
		var err error
		if graph, err = analyze.NewAnalyzer(s.log).LoadPackages(s.load...); err != nil {
			return nil, fmt.Errorf("failed to load packages: %w", err)
		}
	}

	mf, err := mapping.LoadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := mapping.NewBuilder(graph, s.log).Build(mf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// plan plans the declaration file. The plan is returned with the strict mode
// error, if any.
func (s *session) plan(path string) (*plan.MapperPlan, error) {
	c, err := s.catalogue(path)
	if err != nil {
		return nil, err
	}

	registry, err := s.cfg.Registry()
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"file":        path,
		"methods":     len(c.Methods()),
		"conversions": registry.Len(),
	}).Info("planning")

	return plan.NewPlanner(c, registry, s.cfg.PlanConfig(), s.log).Plan()
}

// withSession runs fn with a session for cmd.
func withSession(opts *options, cmd *cobra.Command, fn func(*session) error) error {
	s, err := opts.newSession(cmd.Flags())
	if err != nil {
		return err
	}

	defer s.Close()

	return fn(s)
}

// policyValue is a pflag.Value accepting the unmapped target policy names.
type policyValue struct {
	policy plan.UnmappedTargetPolicy
}

var _ pflag.Value = (*policyValue)(nil)

func (v *policyValue) String() string { return v.policy.String() }

func (v *policyValue) Set(s string) error {
	policy, err := plan.ParseUnmappedTargetPolicy(s)
	if err != nil {
		return err
	}

	v.policy = policy

	return nil
}

func (*policyValue) Type() string { return "policy" }
