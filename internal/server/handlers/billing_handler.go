package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/milkbill/internal/billing"
	"github.com/mamadbah2/milkbill/internal/domain/models"
	"github.com/mamadbah2/milkbill/internal/invoice"
	"github.com/mamadbah2/milkbill/internal/service/messaging"
	"github.com/mamadbah2/milkbill/internal/service/submission"
)

// CustomerSearcher looks customers up by name.
type CustomerSearcher interface {
	Search(ctx context.Context, term string) ([]models.Customer, error)
}

// Submitter launches the background writes of a bill.
type Submitter interface {
	Submit(ctx context.Context, bill billing.Bill) (*submission.Submission, error)
}

// Messenger prepares and sends WhatsApp bills.
type Messenger interface {
	Prepare(bill billing.Bill) (messaging.Message, error)
	Send(ctx context.Context, bill billing.Bill) (messaging.Message, error)
}

// InvoiceRenderer writes the PDF of a bill.
type InvoiceRenderer interface {
	Render(w io.Writer, bill billing.Bill) error
}

// BillingHandler exposes the billing core over JSON.
type BillingHandler struct {
	customers    CustomerSearcher
	submitter    Submitter
	messenger    Messenger
	invoices     InvoiceRenderer
	defaultPrice float64
	logger       *zap.Logger
}

// NewBillingHandler constructs the HTTP handler adapter.
func NewBillingHandler(customers CustomerSearcher, submitter Submitter, messenger Messenger, invoices InvoiceRenderer, defaultPrice float64, logger *zap.Logger) *BillingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillingHandler{
		customers:    customers,
		submitter:    submitter,
		messenger:    messenger,
		invoices:     invoices,
		defaultPrice: defaultPrice,
		logger:       logger,
	}
}

// billRequest is the JSON body shared by every /api/bills endpoint.
type billRequest struct {
	CustomerName  string             `json:"customerName"`
	MobileNumber  string             `json:"mobileNumber"`
	Year          int                `json:"year" binding:"required,min=1"`
	Month         int                `json:"month" binding:"required,min=1,max=12"`
	PricePerLiter *float64           `json:"pricePerLiter" binding:"omitempty,min=0"`
	Deliveries    map[string]float64 `json:"deliveries"`
}

type previewResponse struct {
	BillingPeriod string          `json:"billingPeriod"`
	Entries       []billing.Entry `json:"entries"`
	Totals        billing.Totals  `json:"totals"`
	Text          string          `json:"text"`
}

type whatsappResponse struct {
	messaging.Message
	Sent bool `json:"sent"`
}

// SearchCustomers handles GET /api/customers?q=.
func (h *BillingHandler) SearchCustomers(c *gin.Context) {
	customers, err := h.customers.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.Error("customer search failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": models.AlertSearchFailed})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// Preview returns the totals and the message text of a bill.
func (h *BillingHandler) Preview(c *gin.Context) {
	bill, ok := h.bindBill(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, previewResponse{
		BillingPeriod: bill.Month.Label(),
		Entries:       bill.Entries,
		Totals:        bill.Totals(),
		Text:          bill.Text(),
	})
}

// Invoice streams the PDF invoice of a bill as an attachment.
func (h *BillingHandler) Invoice(c *gin.Context) {
	bill, ok := h.bindBill(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.invoices.Render(&buf, bill); err != nil {
		if errors.Is(err, billing.ErrNoDeliveries) {
			c.JSON(http.StatusBadRequest, gin.H{"error": models.AlertNoDaysForPDF})
			return
		}
		h.logger.Error("invoice rendering failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": models.AlertInvoiceFailed})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoice.FileName(bill.CustomerName, bill.Month)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// WhatsApp returns the click-to-chat link of a bill, sending it directly when ?send=true.
func (h *BillingHandler) WhatsApp(c *gin.Context) {
	bill, ok := h.bindBill(c)
	if !ok {
		return
	}

	send := c.Query("send") == "true"

	var (
		msg messaging.Message
		err error
	)
	if send {
		msg, err = h.messenger.Send(c.Request.Context(), bill)
	} else {
		msg, err = h.messenger.Prepare(bill)
	}

	switch {
	case err == nil:
		c.JSON(http.StatusOK, whatsappResponse{Message: msg, Sent: send})
	case errors.Is(err, messaging.ErrInvalidPhone):
		c.JSON(http.StatusBadRequest, gin.H{"error": models.AlertInvalidPhone})
	case errors.Is(err, messaging.ErrNoDeliveries):
		c.JSON(http.StatusBadRequest, gin.H{"error": models.AlertNoDaysForBill})
	case errors.Is(err, messaging.ErrCloudAPIDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": models.AlertSendUnavailable})
	default:
		h.logger.Error("failed sending whatsapp bill", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": models.AlertSendFailed})
	}
}

// Submit starts the background persistence of a bill and answers immediately.
func (h *BillingHandler) Submit(c *gin.Context) {
	bill, ok := h.bindBill(c)
	if !ok {
		return
	}

	if _, err := h.submitter.Submit(c.Request.Context(), bill); err != nil {
		switch {
		case errors.Is(err, submission.ErrInvalidMobile):
			c.JSON(http.StatusBadRequest, gin.H{"error": models.AlertInvalidCustomer})
		case errors.Is(err, submission.ErrMissingCustomer), errors.Is(err, submission.ErrNoDeliveries):
			c.JSON(http.StatusBadRequest, gin.H{"error": models.AlertMissingDetails})
		default:
			h.logger.Error("submission rejected", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": models.AlertSubmitted})
}

func (h *BillingHandler) bindBill(c *gin.Context) (billing.Bill, bool) {
	var req billRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid bill payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": models.AlertInvalidBillInput})
		return billing.Bill{}, false
	}

	month := billing.Month{Year: req.Year, Month: time.Month(req.Month)}
	entries, err := billing.EntriesFromDeliveries(month, req.Deliveries)
	if err != nil {
		h.logger.Warn("invalid bill deliveries", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return billing.Bill{}, false
	}

	price := h.defaultPrice
	if req.PricePerLiter != nil {
		price = *req.PricePerLiter
	}

	return billing.Bill{
		CustomerName:  req.CustomerName,
		MobileNumber:  req.MobileNumber,
		Month:         month,
		Entries:       entries,
		PricePerLiter: price,
	}, true
}
