package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/milkbill/internal/domain/models"
	"github.com/mamadbah2/milkbill/internal/repository"
)

// SearchLimit caps the number of customers returned by a search.
const SearchLimit = 10

// MobileNumberLength is the number of digits of a customer mobile number.
const MobileNumberLength = 10

var (
	// ErrInvalidCustomer is returned when a customer has no name or a malformed mobile number.
	ErrInvalidCustomer = errors.New("invalid customer name or mobile number")
	// ErrInvalidBill is returned when a bill has no customer details.
	ErrInvalidBill = errors.New("invalid bill details")
)

// Service is the customer directory and bill ledger.
type Service struct {
	customers repository.CustomerStore
	bills     repository.BillStore
	logger    *zap.Logger
}

// NewService wires a directory service on top of the given stores.
func NewService(customers repository.CustomerStore, bills repository.BillStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{customers: customers, bills: bills, logger: logger}
}

// Search returns customers whose name contains term. A blank term matches nothing.
func (s *Service) Search(ctx context.Context, term string) ([]models.Customer, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Customer{}, nil
	}

	customers, err := s.customers.SearchCustomers(ctx, term, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	return customers, nil
}

// SaveCustomer upserts the customer keyed on its mobile number.
func (s *Service) SaveCustomer(ctx context.Context, customer models.Customer) error {
	customer.Name = strings.TrimSpace(customer.Name)
	customer.MobileNumber = strings.TrimSpace(customer.MobileNumber)
	if customer.Name == "" || len(customer.MobileNumber) != MobileNumberLength {
		return ErrInvalidCustomer
	}

	if err := s.customers.UpsertCustomer(ctx, customer); err != nil {
		return fmt.Errorf("save customer: %w", err)
	}
	return nil
}

// RecordBill stores a bill snapshot.
func (s *Service) RecordBill(ctx context.Context, bill models.BillRecord) error {
	bill.CustomerName = strings.TrimSpace(bill.CustomerName)
	bill.MobileNumber = strings.TrimSpace(bill.MobileNumber)
	if bill.CustomerName == "" || bill.MobileNumber == "" {
		return ErrInvalidBill
	}

	if err := s.bills.InsertBill(ctx, bill); err != nil {
		return fmt.Errorf("record bill: %w", err)
	}

	s.logger.Info("bill recorded",
		zap.String("mobile_number", bill.MobileNumber),
		zap.String("billing_period", bill.BillingPeriod),
		zap.Float64("total_amount", bill.TotalAmount))
	return nil
}

// BillsForPeriod lists the bills recorded under a billing period label such as "March 2024".
func (s *Service) BillsForPeriod(ctx context.Context, period string) ([]models.BillRecord, error) {
	bills, err := s.bills.ListBills(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("list bills for %s: %w", period, err)
	}
	return bills, nil
}
