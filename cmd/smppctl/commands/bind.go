package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Ucell-first/smppv5/internal/logger"
	"github.com/Ucell-first/smppv5/internal/telemetry"
)

var bindCmd = &cobra.Command{
	Use:   "bind",
	Short: "Bind as a transceiver and hold the session open until interrupted",
	RunE:  runBind,
}

func runBind(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	metrics := telemetry.NewCollector("smppctl", nil)
	client, err := dialBound(cmd, cfg, metrics)
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	log := logger.Default()
	log.Info("session established, waiting for events or interrupt")

	for {
		select {
		case <-sigCh:
			log.Info("interrupt received, unbinding")
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Session.GracefulCloseTimeout)
			err := client.Unbind(ctx)
			cancel()
			return err
		case evt, ok := <-client.Events():
			if !ok {
				return nil
			}
			log.Info("received event", "command_id", evt.Header.ID.String(), "sequence", evt.Header.Sequence)
		case <-client.Done():
			log.Warn("session closed by peer or transport error")
			return nil
		}
	}
}
