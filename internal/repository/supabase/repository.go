package supabase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/milkbill/internal/domain/models"
)

const (
	customersTable = "customers"
	billsTable     = "bill_details"
	billColumns    = "customer_name,mobile_number,billing_period,milk_quantity,price_per_liter,total_amount"
)

// Repository talks to a Supabase project's PostgREST API.
type Repository struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

type customerRow struct {
	Name         string `json:"name"`
	MobileNumber string `json:"mobile_number"`
}

type billRow struct {
	CustomerName  string  `json:"customer_name"`
	MobileNumber  string  `json:"mobile_number"`
	BillingPeriod string  `json:"billing_period"`
	MilkQuantity  float64 `json:"milk_quantity"`
	PricePerLiter float64 `json:"price_per_liter"`
	TotalAmount   float64 `json:"total_amount"`
}

// apiError mirrors the PostgREST error body.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// NewRepository builds a repository for the project at baseURL authenticated with apiKey.
func NewRepository(baseURL, apiKey string, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/") + "/rest/v1").
		SetHeader("apikey", apiKey).
		SetHeader("Authorization", "Bearer "+apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Repository{httpClient: restyClient, logger: logger}
}

// SearchCustomers returns up to limit customers whose name contains term, ignoring case.
func (r *Repository) SearchCustomers(ctx context.Context, term string, limit int) ([]models.Customer, error) {
	var customers []models.Customer
	apiErr := new(apiError)

	resp, err := r.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"select": "id,name,mobile_number",
			"name":   "ilike.*" + term + "*",
			"limit":  fmt.Sprint(limit),
		}).
		SetResult(&customers).
		SetError(apiErr).
		Get("/" + customersTable)
	if err := checkResponse("search customers", resp, err, apiErr); err != nil {
		return nil, err
	}

	return customers, nil
}

// UpsertCustomer inserts the customer or overwrites the name stored for its mobile number.
func (r *Repository) UpsertCustomer(ctx context.Context, customer models.Customer) error {
	apiErr := new(apiError)

	resp, err := r.httpClient.R().
		SetContext(ctx).
		SetQueryParam("on_conflict", "mobile_number").
		SetHeader("Prefer", "resolution=merge-duplicates,return=minimal").
		SetBody([]customerRow{{Name: customer.Name, MobileNumber: customer.MobileNumber}}).
		SetError(apiErr).
		Post("/" + customersTable)
	if err := checkResponse("upsert customer", resp, err, apiErr); err != nil {
		return err
	}

	r.logger.Debug("customer upserted", zap.String("mobile_number", customer.MobileNumber))
	return nil
}

// InsertBill stores a bill record.
func (r *Repository) InsertBill(ctx context.Context, bill models.BillRecord) error {
	apiErr := new(apiError)

	resp, err := r.httpClient.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=minimal").
		SetBody([]billRow{{
			CustomerName:  bill.CustomerName,
			MobileNumber:  bill.MobileNumber,
			BillingPeriod: bill.BillingPeriod,
			MilkQuantity:  bill.MilkQuantity,
			PricePerLiter: bill.PricePerLiter,
			TotalAmount:   bill.TotalAmount,
		}}).
		SetError(apiErr).
		Post("/" + billsTable)
	if err := checkResponse("insert bill", resp, err, apiErr); err != nil {
		return err
	}

	r.logger.Debug("bill inserted", zap.String("mobile_number", bill.MobileNumber), zap.String("billing_period", bill.BillingPeriod))
	return nil
}

// ListBills returns every bill recorded for the billing period label.
func (r *Repository) ListBills(ctx context.Context, period string) ([]models.BillRecord, error) {
	var bills []models.BillRecord
	apiErr := new(apiError)

	resp, err := r.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"select":         billColumns,
			"billing_period": "eq." + period,
		}).
		SetResult(&bills).
		SetError(apiErr).
		Get("/" + billsTable)
	if err := checkResponse("list bills", resp, err, apiErr); err != nil {
		return nil, err
	}

	return bills, nil
}

// Close is a no-op; the HTTP client holds no dedicated resources.
func (r *Repository) Close(context.Context) error {
	return nil
}

func checkResponse(op string, resp *resty.Response, err error, apiErr *apiError) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("%s: supabase error: status=%d, code=%s, message=%s", op, resp.StatusCode(), apiErr.Code, apiErr.Message)
	}
	return nil
}
