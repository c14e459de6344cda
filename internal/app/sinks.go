// Package app assembles the services shared by the server and the console.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/milkbill/internal/config"
	"github.com/mamadbah2/milkbill/internal/repository/sheets"
	"github.com/mamadbah2/milkbill/internal/service/submission"
	"github.com/mamadbah2/milkbill/pkg/clients/forwarding"
)

// NewSheetSink returns the spreadsheet sink selected by SHEET_SINK.
func NewSheetSink(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (submission.SheetSink, error) {
	switch cfg.Sink {
	case config.SinkForward:
		return forwarding.NewClient(cfg.ForwardBaseURL), nil
	case config.SinkAPI:
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg, logger.Named("repo.sheets"))
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported sheet sink %q", cfg.Sink)
	}
}
