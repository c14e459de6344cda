package forwarding

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/milkbill/internal/domain/models"
)

const addDataPath = "/api/add-data"

// Client forwards sheet rows to the billing server's /api/add-data endpoint,
// which holds the spreadsheet secret.
type Client struct {
	httpClient *resty.Client
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewClient builds a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	restyClient := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json")

	return &Client{httpClient: restyClient}
}

// Append posts row to the forwarding endpoint.
func (c *Client) Append(ctx context.Context, row models.SheetRow) error {
	apiErr := new(errorResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(row).
		SetError(apiErr).
		Post(addDataPath)
	if err != nil {
		return fmt.Errorf("forward sheet row: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("forward sheet row: status=%d, error=%s", resp.StatusCode(), apiErr.Error)
	}

	return nil
}
