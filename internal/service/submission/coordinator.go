// Package submission persists a finished bill to every sink at once without
// making the operator wait for any of them.
package submission

import (
	"context"
	"errors"
	"strings"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/mamadbah2/milkbill/internal/billing"
	"github.com/mamadbah2/milkbill/internal/domain/models"
)

const mobileNumberLength = 10

var (
	// ErrMissingCustomer is returned when the bill has no customer name or mobile number.
	ErrMissingCustomer = errors.New("customer name and mobile number are required")
	// ErrInvalidMobile is returned when the mobile number is not 10 characters long.
	ErrInvalidMobile = errors.New("mobile number must have 10 digits")
	// ErrNoDeliveries is returned when no delivery day is selected.
	ErrNoDeliveries = billing.ErrNoDeliveries
)

// Directory stores customers and bill records.
type Directory interface {
	SaveCustomer(ctx context.Context, customer models.Customer) error
	RecordBill(ctx context.Context, bill models.BillRecord) error
}

// SheetSink appends the spreadsheet copy of a bill.
type SheetSink interface {
	Append(ctx context.Context, row models.SheetRow) error
}

// Coordinator fans a submission out to the directory and the spreadsheet.
type Coordinator struct {
	directory Directory
	sheet     SheetSink
	logger    *zap.Logger
}

// NewCoordinator wires a coordinator.
func NewCoordinator(directory Directory, sheet SheetSink, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{directory: directory, sheet: sheet, logger: logger}
}

// Submission tracks the background writes of one submitted bill.
type Submission struct {
	Bill models.BillRecord
	Row  models.SheetRow
	done chan struct{}
}

// Wait blocks until the three writes have finished, successfully or not.
func (s *Submission) Wait() {
	<-s.done
}

// Done is closed once every write has finished.
func (s *Submission) Done() <-chan struct{} {
	return s.done
}

// Submit validates bill and starts the customer upsert, the bill insert and
// the spreadsheet append concurrently. It returns as soon as they are
// launched. The writes are detached from ctx cancellation, never retried, and
// their failures are only logged.
func (c *Coordinator) Submit(ctx context.Context, bill billing.Bill) (*Submission, error) {
	name := strings.TrimSpace(bill.CustomerName)
	mobile := strings.TrimSpace(bill.MobileNumber)
	if name == "" || mobile == "" {
		return nil, ErrMissingCustomer
	}
	if len(bill.Entries) == 0 {
		return nil, ErrNoDeliveries
	}
	if len(mobile) != mobileNumberLength {
		return nil, ErrInvalidMobile
	}

	totals := bill.Totals()
	period := bill.Month.Label()

	sub := &Submission{
		Bill: models.BillRecord{
			CustomerName:  name,
			MobileNumber:  mobile,
			BillingPeriod: period,
			MilkQuantity:  totals.Quantity,
			PricePerLiter: totals.PricePerLiter,
			TotalAmount:   totals.Amount,
		},
		Row: models.SheetRow{
			CustomerName:  name,
			MobileNumber:  mobile,
			BillingPeriod: period,
			MilkQuantity:  models.FixedAmount(totals.Quantity),
			PricePerLiter: models.FixedAmount(totals.PricePerLiter),
			TotalAmount:   models.FixedAmount(totals.Amount),
		},
		done: make(chan struct{}),
	}

	log := c.logger.With(
		zap.String("customer_name", name),
		zap.String("mobile_number", mobile),
		zap.String("billing_period", period))

	bg := context.WithoutCancel(ctx)
	go func() {
		defer close(sub.done)

		var wg conc.WaitGroup
		wg.Go(func() {
			if err := c.directory.SaveCustomer(bg, models.Customer{Name: name, MobileNumber: mobile}); err != nil {
				log.Error("customer upsert failed", zap.Error(err))
			}
		})
		wg.Go(func() {
			if err := c.directory.RecordBill(bg, sub.Bill); err != nil {
				log.Error("bill insert failed", zap.Error(err))
			}
		})
		wg.Go(func() {
			if err := c.sheet.Append(bg, sub.Row); err != nil {
				log.Error("sheet forward failed", zap.Error(err))
			}
		})

		if recovered := wg.WaitAndRecover(); recovered != nil {
			log.Error("submission write panicked", zap.Any("panic", recovered.Value))
			return
		}
		log.Info("submission writes finished")
	}()

	return sub, nil
}
