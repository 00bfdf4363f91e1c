package provider

import (
    "context"
    "fmt"
)

// Client fetches the raw quote payload for one symbol.
// Implementations issue at most one upstream request per call and never retry.
type Client interface {
    Name() string
    Quote(ctx context.Context, symbol string) ([]byte, error)
}

// TransportError wraps a network-level failure (DNS, connect, timeout).
type TransportError struct {
    Symbol string
    Err    error
}

func (e *TransportError) Error() string {
    return fmt.Sprintf("fetching %s: %v", e.Symbol, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError reports a non-200 response.
type HTTPError struct {
    Symbol     string
    StatusCode int
    Body       string
}

func (e *HTTPError) Error() string {
    if e.Body != "" {
        return fmt.Sprintf("fetching %s: unexpected status code %d: %s", e.Symbol, e.StatusCode, e.Body)
    }
    return fmt.Sprintf("fetching %s: unexpected status code %d", e.Symbol, e.StatusCode)
}
