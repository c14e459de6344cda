package sheets

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/milkbill/internal/config"
	"github.com/mamadbah2/milkbill/internal/domain/models"
)

// GoogleSheetRepository appends bill rows straight to a spreadsheet through the Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewGoogleSheetRepository authenticates with the service account file in cfg.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return NewWithService(service, cfg, logger), nil
}

// NewWithService wraps an already configured Sheets service.
func NewWithService(service *sheetsapi.Service, cfg config.SheetsConfig, logger *zap.Logger) *GoogleSheetRepository {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.Range,
		logger:        logger,
	}
}

// Append writes row below the last row of the configured range.
func (r *GoogleSheetRepository) Append(ctx context.Context, row models.SheetRow) error {
	if r.sheetRange == "" {
		return errors.New("sheet range must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row.Values()}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, r.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", r.sheetRange, err)
	}

	r.logger.Debug("row appended to sheet", zap.String("range", r.sheetRange), zap.String("billing_period", row.BillingPeriod))
	return nil
}
