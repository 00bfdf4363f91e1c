package ratelimit

import (
    "context"
    "sync"
    "time"

    "stocktracker/internal/provider"
)

// MinInterval wraps a client and enforces a minimum time between quote requests.
// A wait returns early with the context's error when it is canceled.
type MinInterval struct {
    C        provider.Client
    Interval time.Duration

    mu   sync.Mutex
    last time.Time
}

func (m *MinInterval) Name() string { return m.C.Name() }

func (m *MinInterval) Quote(ctx context.Context, symbol string) ([]byte, error) {
    if m.Interval > 0 {
        m.mu.Lock()
        wait := time.Until(m.last.Add(m.Interval))
        m.mu.Unlock()
        if wait > 0 {
            t := time.NewTimer(wait)
            defer t.Stop()
            select {
            case <-ctx.Done():
                return nil, ctx.Err()
            case <-t.C:
            }
        }
    }
    body, err := m.C.Quote(ctx, symbol)
    if m.Interval > 0 {
        m.mu.Lock()
        m.last = time.Now()
        m.mu.Unlock()
    }
    return body, err
}
