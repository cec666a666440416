package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/stadium-booking/internal/config"
	"github.com/example/stadium-booking/internal/logging"
	"github.com/example/stadium-booking/internal/web"
	"github.com/spf13/cobra"
)

func newServerCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the web form interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			slog.SetDefault(log)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(cfg, log)
			if err != nil {
				return err
			}
			if len(cfg.FlashHashKey) == 0 {
				log.Warn("FLASH_HASH_KEY not set; using a random key for this run")
			}

			ws := &web.Server{
				Manager: a.manager,
				Flash:   web.NewFlashStore(cfg.FlashHashKey, cfg.FlashBlockKey),
				Log:     log,
			}
			if cfg.MetricsEnabled {
				ws.Metrics = a.metrics.Handler()
				ws.MetricsPath = cfg.MetricsPath
			}
			return web.Start(ctx, cfg.ListenAddr, ws.Routes(), log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides LISTEN_ADDR)")
	return cmd
}
