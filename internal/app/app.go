package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/milkbill/internal/config"
	"github.com/mamadbah2/milkbill/internal/invoice"
	"github.com/mamadbah2/milkbill/internal/repository"
	"github.com/mamadbah2/milkbill/internal/service/directory"
	"github.com/mamadbah2/milkbill/internal/service/messaging"
	"github.com/mamadbah2/milkbill/internal/service/submission"
	whatsappclient "github.com/mamadbah2/milkbill/pkg/clients/whatsapp"
)

// Services are the billing services built from one configuration.
type Services struct {
	Store       repository.Store
	Directory   *directory.Service
	Submissions *submission.Coordinator
	Messaging   *messaging.Service
	Invoices    *invoice.Generator
}

// NewServices opens the store and the sheet sink and wires the services on top of them.
func NewServices(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Services, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := repository.Open(ctx, cfg.Store, logger)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}

	sink, err := NewSheetSink(ctx, cfg.Sheets, logger)
	if err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("init sheet sink: %w", err)
	}

	var whatsClient whatsappclient.Client
	if cfg.WhatsApp.CloudAPIEnabled() {
		whatsClient = whatsappclient.NewClient(cfg.WhatsApp)
		logger.Info("whatsapp cloud api enabled")
	}

	dir := directory.NewService(store, store, logger.Named("svc.directory"))

	return &Services{
		Store:       store,
		Directory:   dir,
		Submissions: submission.NewCoordinator(dir, sink, logger.Named("svc.submission")),
		Messaging:   messaging.NewService(cfg.WhatsApp.CountryCode, whatsClient, logger.Named("svc.messaging")),
		Invoices:    invoice.NewGenerator(cfg.Billing, cfg.WhatsApp.CountryCode),
	}, nil
}

// Close releases the store connection.
func (s *Services) Close(ctx context.Context) error {
	return s.Store.Close(ctx)
}
