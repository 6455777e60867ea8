package practicum

import "context"

// Client defines an interface for querying the homework review API.
// This helps in decoupling the application logic from the HTTP transport.
type Client interface {
	// HomeworkStatuses fetches homework status updates that happened at or
	// after the fromDate Unix timestamp.
	HomeworkStatuses(ctx context.Context, fromDate int64) (*StatusResponse, error)
}
