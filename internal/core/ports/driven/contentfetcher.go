package driven

import "context"

// ContentFetcher downloads the markdown body of a changelog entry.
type ContentFetcher interface {
	// Fetch performs a GET against url and returns the raw body.
	// Network failures and non-2xx responses return an error wrapping
	// domain.ErrFetchFailed.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Pacer spaces out downloads so the remote host is not overloaded.
type Pacer interface {
	// Pause blocks for the fixed inter-request delay.
	Pause(ctx context.Context) error

	// Wait blocks until another request may start. Used when downloads
	// run concurrently.
	Wait(ctx context.Context) error
}
