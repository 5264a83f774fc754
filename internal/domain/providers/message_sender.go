package providers

import (
	"context"
)

// MessageSender sends an outbound SMS to a phone number and returns the
// provider message id
type MessageSender interface {
	SendText(ctx context.Context, to, body string) (string, error)
}
