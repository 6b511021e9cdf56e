package interfaces

import "context"

// Messenger delivers one text message to one destination, best effort.
// A non-nil error means the message was not delivered for this attempt;
// the notifier never retries within the same invocation.
type Messenger interface {
	Send(ctx context.Context, number string, text string) error
}
