package services

import (
	"context"
)

// ChatNotifier posts a text message to the team chat channel. Delivery is
// fire-and-forget relative to lease mutations: implementations report
// transport failures, but callers only log them. A failed notification
// never rolls back a committed lease write.
type ChatNotifier interface {
	Post(ctx context.Context, text string) error
}
