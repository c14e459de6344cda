package forwarding

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/milkbill/internal/config"
	"github.com/mamadbah2/milkbill/internal/domain/models"
	"github.com/mamadbah2/milkbill/pkg/clients/webhook"
)

// ErrNotConfigured is returned when the shared secret or the webhook URL is missing.
var ErrNotConfigured = errors.New("forwarding secret or webhook url not configured")

// Service relays bill rows to the spreadsheet web app, adding the server-held secret.
type Service struct {
	cfg    config.ForwardingConfig
	client webhook.Client
	logger *zap.Logger
}

// NewService wires a forwarding service.
func NewService(cfg config.ForwardingConfig, client webhook.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cfg: cfg, client: client, logger: logger}
}

// Forward posts row to the webhook. The downstream status is logged but not
// interpreted; only missing configuration and transport failures are errors.
func (s *Service) Forward(ctx context.Context, row models.SheetRow) error {
	if !s.cfg.Configured() {
		return ErrNotConfigured
	}

	status, err := s.client.Post(ctx, s.cfg.WebhookURL, webhook.Payload{SheetRow: row, Secret: s.cfg.SecretKey})
	if err != nil {
		return fmt.Errorf("forward row: %w", err)
	}

	s.logger.Info("row forwarded to sheet webhook",
		zap.String("mobile_number", row.MobileNumber),
		zap.String("billing_period", row.BillingPeriod),
		zap.Int("status", status))
	return nil
}
