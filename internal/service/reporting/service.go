package reporting

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/mamadbah2/milkbill/internal/billing"
	"github.com/mamadbah2/milkbill/internal/domain/models"
)

// BillLister lists the bills of a billing period.
type BillLister interface {
	BillsForPeriod(ctx context.Context, period string) ([]models.BillRecord, error)
}

// Service exposes monthly totals for owner summaries.
type Service struct {
	bills  BillLister
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(bills BillLister, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{bills: bills, logger: logger}
}

// MonthlySummary aggregates every bill recorded for month.
func (s *Service) MonthlySummary(ctx context.Context, month billing.Month) (models.MonthlySummary, error) {
	period := month.Label()
	bills, err := s.bills.BillsForPeriod(ctx, period)
	if err != nil {
		return models.MonthlySummary{}, fmt.Errorf("load bills: %w", err)
	}

	s.logger.Debug("bills loaded for summary", zap.String("billing_period", period), zap.Int("count", len(bills)))

	return models.MonthlySummary{
		BillingPeriod: period,
		Bills:         len(bills),
		TotalQuantity: lo.SumBy(bills, func(b models.BillRecord) float64 { return b.MilkQuantity }),
		TotalAmount:   lo.SumBy(bills, func(b models.BillRecord) float64 { return b.TotalAmount }),
	}, nil
}

// MonthlyReport renders the summary of month as a WhatsApp message.
func (s *Service) MonthlyReport(ctx context.Context, month billing.Month) (string, error) {
	summary, err := s.MonthlySummary(ctx, month)
	if err != nil {
		return "", err
	}
	return FormatSummary(summary), nil
}

// FormatSummary renders summary as text.
func FormatSummary(summary models.MonthlySummary) string {
	if summary.Bills == 0 {
		return fmt.Sprintf("*Monthly Summary - %s*\nNo bills recorded yet.", summary.BillingPeriod)
	}

	return fmt.Sprintf("*Monthly Summary - %s*\nBills: %d\nTotal Milk: %.2f L\nTotal Amount: ₹%.2f",
		summary.BillingPeriod, summary.Bills, summary.TotalQuantity, summary.TotalAmount)
}
