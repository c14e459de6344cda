package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/milkbill/internal/billing"
	"github.com/mamadbah2/milkbill/internal/domain/models"
)

type fakeLister struct {
	period string
	bills  []models.BillRecord
	err    error
}

func (f *fakeLister) BillsForPeriod(_ context.Context, period string) ([]models.BillRecord, error) {
	f.period = period
	return f.bills, f.err
}

var march2024 = billing.Month{Year: 2024, Month: time.March}

func TestMonthlySummary(t *testing.T) {
	lister := &fakeLister{bills: []models.BillRecord{
		{MilkQuantity: 4, TotalAmount: 240},
		{MilkQuantity: 31, TotalAmount: 1550},
	}}
	svc := NewService(lister, nil)

	summary, err := svc.MonthlySummary(context.Background(), march2024)
	require.NoError(t, err)
	assert.Equal(t, "March 2024", lister.period)
	assert.Equal(t, models.MonthlySummary{
		BillingPeriod: "March 2024",
		Bills:         2,
		TotalQuantity: 35,
		TotalAmount:   1790,
	}, summary)

	report, err := svc.MonthlyReport(context.Background(), march2024)
	require.NoError(t, err)
	assert.Equal(t, "*Monthly Summary - March 2024*\nBills: 2\nTotal Milk: 35.00 L\nTotal Amount: ₹1790.00", report)
}

func TestMonthlyReportEmpty(t *testing.T) {
	report, err := NewService(&fakeLister{}, nil).MonthlyReport(context.Background(), march2024)
	require.NoError(t, err)
	assert.Equal(t, "*Monthly Summary - March 2024*\nNo bills recorded yet.", report)
}

func TestMonthlySummaryError(t *testing.T) {
	_, err := NewService(&fakeLister{err: errors.New("down")}, nil).MonthlySummary(context.Background(), march2024)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load bills")
}
