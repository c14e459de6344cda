package models

// OutboundMessageRequest represents a text message pushed through the WhatsApp Cloud API.
type OutboundMessageRequest struct {
	To         string `json:"to" binding:"required"`
	Message    string `json:"message" binding:"required"`
	PreviewURL bool   `json:"preview_url"`
}
