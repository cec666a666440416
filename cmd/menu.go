package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/stadium-booking/internal/config"
	"github.com/example/stadium-booking/internal/console"
	"github.com/example/stadium-booking/internal/logging"
	"github.com/spf13/cobra"
)

func newMenuCmd(opts *options) *cobra.Command {
	var verbose bool

	c := &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive text menu on stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}

			// the menu owns stdout; logs go to stderr only on request
			log := logging.Discard()
			if verbose {
				if log, err = logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat); err != nil {
					return err
				}
			}
			slog.SetDefault(log)

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(cfg, log)
			if err != nil {
				return err
			}
			err = console.New(a.manager, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	c.Flags().BoolVarP(&verbose, "verbose", "v", false, "log booking activity to stderr")
	return c
}
