package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/milkbill/internal/domain/models"
)

// Client posts bill rows to the spreadsheet web app.
type Client interface {
	Post(ctx context.Context, url string, payload Payload) (int, error)
}

// Payload is the body received by the spreadsheet web app: the row plus the
// shared secret it authenticates with.
type Payload struct {
	models.SheetRow
	Secret string `json:"secret"`
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a webhook client. A zero timeout leaves resty's transport defaults in place.
func NewClient(timeout time.Duration) *APIClient {
	restyClient := resty.New().
		SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		restyClient.SetTimeout(timeout)
	}

	return &APIClient{httpClient: restyClient}
}

// Post sends payload to url and returns the HTTP status. Only transport
// failures are errors; the status is not interpreted.
func (c *APIClient) Post(ctx context.Context, url string, payload Payload) (int, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(url)
	if err != nil {
		return 0, fmt.Errorf("post sheet webhook: %w", err)
	}

	return resp.StatusCode(), nil
}
