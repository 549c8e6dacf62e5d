package commands

import (
	"context"
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/Ucell-first/smppv5/internal/config"
	"github.com/Ucell-first/smppv5/internal/logger"
	"github.com/Ucell-first/smppv5/internal/telemetry"
	"github.com/Ucell-first/smppv5/pdu"
	"github.com/Ucell-first/smppv5/session"
)

func setupLogging(cfg *config.Config) error {
	return logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

func sessionConfig(cfg *config.Config, metrics *telemetry.Collector) session.Config {
	return session.Config{
		EnquireLinkInterval:  cfg.Session.EnquireLinkInterval,
		ResponseTimeout:      cfg.Session.ResponseTimeout,
		SessionBindTimeout:   cfg.Session.SessionBindTimeout,
		GracefulCloseTimeout: cfg.Session.GracefulCloseTimeout,
		MaxFrameSize:         cfg.Session.MaxFrameSize,
		Logger:               logger.Default(),
		Metrics:              metrics,
	}
}

// dialBound connects to cfg.Bind.Host and completes a transceiver
// bind, returning a live *session.Client.
func dialBound(cmd *cobra.Command, cfg *config.Config, metrics *telemetry.Collector) (*session.Client, error) {
	conn, err := net.DialTimeout("tcp", cfg.Bind.Host, cfg.Session.SessionBindTimeout)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.Bind.Host, err)
	}
	client := session.Dial(conn, sessionConfig(cfg, metrics))

	bindReq := pdu.NewBindTransceiver(cfg.Bind.SystemID, cfg.Bind.Password, cfg.Bind.SystemType,
		0x50, pdu.TONUnknown, pdu.NPIUnknown, cfg.Bind.AddressRange)

	bindCtx, cancel := context.WithTimeout(cmd.Context(), cfg.Session.SessionBindTimeout)
	defer cancel()

	if _, err := client.Bind(bindCtx, bindReq); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("bind: %w", err)
	}
	logger.Default().Info("bound", "system_id", cfg.Bind.SystemID, "host", cfg.Bind.Host)
	return client, nil
}
