package cache

import (
    "context"
    "sync"
    "time"

    "stocktracker/internal/provider"
)

// entry stores the payload for a single symbol with expiry.
type entry struct {
    expiresAt time.Time
    body      []byte
}

// Client serves a symbol's last payload for TTL instead of asking the
// wrapped client again. Failures are never cached.
type Client struct {
    C        provider.Client
    TTL      time.Duration
    MaxItems int
    // Now defaults to time.Now.
    Now func() time.Time

    mu    sync.Mutex
    items map[string]entry
}

func (c *Client) Name() string { return c.C.Name() }

// Quote returns the cached payload when still fresh, otherwise fetches it.
func (c *Client) Quote(ctx context.Context, symbol string) ([]byte, error) {
    if c.TTL <= 0 {
        return c.C.Quote(ctx, symbol)
    }
    now := c.now()

    c.mu.Lock()
    if e, ok := c.items[symbol]; ok && now.Before(e.expiresAt) {
        c.mu.Unlock()
        return e.body, nil
    }
    c.mu.Unlock()

    body, err := c.C.Quote(ctx, symbol)
    if err != nil {
        return nil, err
    }

    c.mu.Lock()
    defer c.mu.Unlock()
    if c.items == nil { c.items = make(map[string]entry) }
    c.items[symbol] = entry{expiresAt: now.Add(c.TTL), body: body}
    if c.MaxItems > 0 && len(c.items) > c.MaxItems {
        // expired first, then arbitrary keys until under the cap
        for k, v := range c.items {
            if now.After(v.expiresAt) { delete(c.items, k) }
        }
        for k := range c.items {
            if len(c.items) <= c.MaxItems { break }
            if k != symbol { delete(c.items, k) }
        }
    }
    return body, nil
}

func (c *Client) now() time.Time {
    if c.Now != nil { return c.Now() }
    return time.Now()
}
