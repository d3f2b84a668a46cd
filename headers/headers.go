// Package headers defines HTTP header constants shared between the LingoFlow
// API and its clients. This is the single source of truth for header names
// used in API requests/responses.
package headers

const (
	// RequestID is the header for request correlation / idempotency.
	// Clients can supply this header for idempotency on retries.
	RequestID = "X-Lingoflow-Request-Id"

	// Client identifies the calling client build (e.g. "lingoflow-go/0.1").
	Client = "X-Lingoflow-Client"

	// TelegramInitData carries the signed Telegram WebApp init payload when
	// exchanging it for a session token pair.
	TelegramInitData = "X-Telegram-Init-Data"
)
