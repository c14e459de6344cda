package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/milkbill/internal/billing"
	"github.com/mamadbah2/milkbill/internal/domain/models"
	client "github.com/mamadbah2/milkbill/pkg/clients/whatsapp"
)

const minPhoneLength = 10

var (
	// ErrInvalidPhone is returned when the phone number is shorter than 10 digits.
	ErrInvalidPhone = errors.New("phone number must have at least 10 digits")
	// ErrNoDeliveries is returned when the bill has no delivery day.
	ErrNoDeliveries = billing.ErrNoDeliveries
	// ErrCloudAPIDisabled is returned by direct sends when no Cloud API credentials are configured.
	ErrCloudAPIDisabled = errors.New("whatsapp cloud api is not configured")
)

// Message is a bill ready to be shared over WhatsApp.
type Message struct {
	Recipient string `json:"recipient"`
	Text      string `json:"text"`
	URL       string `json:"url"`
}

// Service prepares WhatsApp bills and, when configured, sends them through the Cloud API.
type Service struct {
	countryCode string
	client      client.Client
	logger      *zap.Logger
}

// NewService wires a messaging service. A nil client leaves only deep links available.
func NewService(countryCode string, whatsClient client.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{countryCode: countryCode, client: whatsClient, logger: logger}
}

// CanSend reports whether direct sends are available.
func (s *Service) CanSend() bool {
	return s.client != nil
}

// Prepare renders the bill text and the click-to-chat link for the bill's mobile number.
func (s *Service) Prepare(bill billing.Bill) (Message, error) {
	phone := strings.TrimSpace(bill.MobileNumber)
	if len(phone) < minPhoneLength {
		return Message{}, ErrInvalidPhone
	}
	if len(bill.Entries) == 0 {
		return Message{}, ErrNoDeliveries
	}

	text := bill.Text()
	return Message{
		Recipient: s.countryCode + phone,
		Text:      text,
		URL:       client.DeepLink(s.countryCode, phone, text),
	}, nil
}

// Send prepares the bill and delivers it through the Cloud API.
func (s *Service) Send(ctx context.Context, bill billing.Bill) (Message, error) {
	msg, err := s.Prepare(bill)
	if err != nil {
		return Message{}, err
	}

	if err := s.SendOutbound(ctx, models.OutboundMessageRequest{To: msg.Recipient, Message: msg.Text}); err != nil {
		return Message{}, err
	}

	s.logger.Info("bill sent over whatsapp", zap.String("to", msg.Recipient), zap.String("billing_period", bill.Month.Label()))
	return msg, nil
}

// SendOutbound pushes a plain text message through the Cloud API.
func (s *Service) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	if s.client == nil {
		return ErrCloudAPIDisabled
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	if err != nil {
		return fmt.Errorf("send outbound message: %w", err)
	}
	return nil
}
