package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ucell-first/smppv5/internal/logger"
	"github.com/Ucell-first/smppv5/internal/telemetry"
	"github.com/Ucell-first/smppv5/pdu"
)

var (
	submitDest string
	submitText string
)

// messagePayloadThreshold is the short_message field's wire capacity
// (sm_length is a single byte); anything longer must go via the
// message_payload TLV instead.
const messagePayloadThreshold = 254

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Bind, submit one message, print its message id, and unbind",
	RunE:  runSubmit,
}

func init() {
	submitCmd.Flags().StringVar(&submitDest, "dest", "", "destination address")
	submitCmd.Flags().StringVar(&submitText, "text", "", "message text")
	_ = submitCmd.MarkFlagRequired("dest")
	_ = submitCmd.MarkFlagRequired("text")
}

func runSubmit(cmd *cobra.Command, args []string) error {
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
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Session.GracefulCloseTimeout)
		defer cancel()
		_ = client.Unbind(ctx)
	}()

	submit := pdu.NewSubmitSM("", pdu.Address{}, pdu.Address{TON: pdu.TONInternational, NPI: pdu.NPIISDN, Addr: submitDest},
		0, 0, 0)

	body := []byte(submitText)
	if len(body) > messagePayloadThreshold {
		if !submit.SetMessagePayload(body) {
			return fmt.Errorf("submit: could not set message_payload")
		}
	} else if !submit.SetShortMessage(body) {
		return fmt.Errorf("submit: could not set short_message")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Session.ResponseTimeout)
	defer cancel()
	resp, err := client.Submit(ctx, submit)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	submitResp, ok := resp.Body.(*pdu.SubmitSMResp)
	if !ok {
		return fmt.Errorf("submit: unexpected response body %T", resp.Body)
	}
	fmt.Println(submitResp.MessageID)
	logger.Default().Info("submitted", "message_id", submitResp.MessageID, "dest", submitDest)
	return nil
}
