package commands

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/xid"
	"github.com/spf13/cobra"

	"github.com/Ucell-first/smppv5/internal/config"
	"github.com/Ucell-first/smppv5/internal/logger"
	"github.com/Ucell-first/smppv5/internal/telemetry"
	"github.com/Ucell-first/smppv5/pdu"
	"github.com/Ucell-first/smppv5/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a minimal SMSC: accept binds, echo submit_sm as submit_sm_resp",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}
	log := logger.Default()

	metrics := telemetry.NewCollector("smppctl_serve", nil)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(metrics)
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server stopped", "error", err)
			}
		}()
		defer srv.Close()
		log.Info("metrics listening", "addr", cfg.Metrics.Addr, "path", cfg.Metrics.Path)
	}

	ln, err := net.Listen("tcp", cfg.Serve.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Serve.Addr, err)
	}
	defer ln.Close()
	log.Info("listening", "addr", cfg.Serve.Addr)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("interrupt received, closing listener")
		cancel()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go serveConn(ctx, conn, cfg, metrics)
	}
}

func serveConn(ctx context.Context, conn net.Conn, cfg *config.Config, metrics *telemetry.Collector) {
	log := logger.Default().With("remote_addr", conn.RemoteAddr().String())
	acceptor := session.NewAcceptor(conn, sessionConfig(cfg, metrics))

	req, err := acceptor.Accept(ctx)
	if err != nil {
		log.Warn("bind failed", "error", err)
		return
	}

	var systemID, password string
	switch b := req.Body().(type) {
	case *pdu.BindTransmitter:
		systemID, password = b.SystemID, b.Password
	case *pdu.BindReceiver:
		systemID, password = b.SystemID, b.Password
	case *pdu.BindTransceiver:
		systemID, password = b.SystemID, b.Password
	}
	if cfg.Serve.Credentials != nil {
		if want, exists := cfg.Serve.Credentials[systemID]; exists {
			if password != want {
				log.Warn("rejecting bind: bad credentials", "system_id", systemID)
				_ = req.Reject(pdu.StatusInvPaswd)
				return
			}
		} else {
			log.Warn("rejecting bind: unknown system_id", "system_id", systemID)
			_ = req.Reject(pdu.StatusInvSysID)
			return
		}
	}

	var respBody pdu.Body
	switch req.Kind() {
	case pdu.BindTransmitterID:
		respBody = pdu.NewBindTransmitterResp(systemID)
	case pdu.BindReceiverID:
		respBody = pdu.NewBindReceiverResp(systemID)
	default:
		respBody = pdu.NewBindTransceiverResp(systemID)
	}

	client, err := req.Accept(pdu.StatusOK, respBody)
	if err != nil {
		log.Warn("accept failed", "error", err)
		return
	}
	log.Info("bound", "system_id", systemID)
	defer client.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-client.Done():
			return
		case evt, ok := <-client.Events():
			if !ok {
				return
			}
			handleEvent(client, evt, log)
		}
	}
}

func handleEvent(client *session.Client, evt pdu.Command, log interface {
	Info(string, ...any)
	Warn(string, ...any)
}) {
	submit, ok := evt.Body.(*pdu.SubmitSM)
	if !ok {
		log.Warn("unhandled event", "command_id", evt.Header.ID.String())
		return
	}
	messageID := xid.New().String()
	resp := pdu.NewResponse(evt.Header.Sequence, pdu.StatusOK, pdu.NewSubmitSMResp(messageID))
	if err := client.Respond(resp); err != nil {
		log.Warn("failed to respond to submit_sm", "error", err)
		return
	}
	log.Info("echoed submit_sm", "message_id", messageID)
}
