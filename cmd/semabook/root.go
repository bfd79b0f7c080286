package main

import (
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/llxisdsh/semabook"
	"github.com/llxisdsh/semabook/internal/demo"
)

const envPrefix = "semabook"

// newRootCmd builds the semabook command. Progress lines go to stdout;
// logs, argument errors and usage go to stderr. The level of log is set
// from the environment when the command runs.
func newRootCmd(stdout, stderr io.Writer, log *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "semabook",
		Short: "Classic semaphore patterns, demonstrated",
		Long: `semabook runs four synchronization patterns built from semaphores:
Rendezvous, Mutex, Multiplex and a reusable two-turnstile Barrier.

It takes no arguments. Sizes are read from SEMABOOK_* environment variables.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				cmd.PrintErrln(cmd.UsageString())
				return errors.Errorf("%s takes no arguments.", cmd.Name())
			}
			return nil
		},
		// Usage is printed by Args, the only place it applies.
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Past argument checking, failures are reported through the
			// logger.
			cmd.SilenceErrors = true
			return runDemos(stdout, log)
		},
	}
	cmd.SetErr(stderr)
	return cmd
}

// loadConfig reads the demo sizes and log level from the environment,
// falling back to demo.DefaultConfig.
func loadConfig() (demo.Config, logrus.Level, error) {
	def := demo.DefaultConfig()
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault("log_level", logrus.InfoLevel.String())
	v.SetDefault("mutex_threads", def.MutexThreads)
	v.SetDefault("multiplex_threads", def.MultiplexThreads)
	v.SetDefault("multiplex_capacity", def.MultiplexCapacity)
	v.SetDefault("multiplex_hold", def.MultiplexHold)
	v.SetDefault("barrier_parties", def.BarrierParties)
	v.SetDefault("barrier_cycles", def.BarrierCycles)
	v.SetDefault("barrier_work", def.BarrierWork)

	level, err := logrus.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return demo.Config{}, 0, errors.Wrap(demo.ErrInvalidConfig, err.Error())
	}
	cfg := demo.Config{
		MutexThreads:      v.GetInt("mutex_threads"),
		MultiplexThreads:  v.GetInt("multiplex_threads"),
		MultiplexCapacity: v.GetInt("multiplex_capacity"),
		MultiplexHold:     v.GetDuration("multiplex_hold"),
		BarrierParties:    v.GetInt("barrier_parties"),
		BarrierCycles:     v.GetInt("barrier_cycles"),
		BarrierWork:       v.GetDuration("barrier_work"),
	}
	return cfg, level, cfg.Validate()
}

func runDemos(stdout io.Writer, log *logrus.Logger) error {
	cfg, level, err := loadConfig()
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.WithField("config", cfg).Debug("loaded configuration")

	header := color.New(color.FgCyan, color.Bold)
	r := demo.NewRunner(cfg, log, semabook.NewTrace(stdout))
	r.Announce = func(s demo.Step) {
		_, _ = header.Fprintf(stdout, "== %s ==\n", s.Pattern)
	}
	err = r.All()
	if isInvariant(err) {
		// A pattern failed to provide its guarantee; nothing after this
		// point can be trusted.
		log.WithError(err).Fatal("invariant violated")
	}
	return err
}

func isInvariant(err error) bool {
	return errors.Is(err, demo.ErrLostUpdate) ||
		errors.Is(err, demo.ErrOverCapacity) ||
		errors.Is(err, demo.ErrOrdering)
}
