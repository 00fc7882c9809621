package alert

import "context"

type Handler interface {
	// Handle is responsible for taking action on the alert.
	// Failures are logged by the handler, not returned.
	Handle(ctx context.Context, a *Alert)
}
