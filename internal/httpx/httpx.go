package httpx

import (
    "net"
    "net/http"
    "time"
)

// DefaultTimeout bounds every quote request end to end.
const DefaultTimeout = 30 * time.Second

// Client is the one network handle shared by all sequential quote requests of
// a run. The owner must call Close when the run ends.
type Client struct {
    HTTP      *http.Client
    UserAgent string
    Headers   map[string]string
}

func New(timeout time.Duration) *Client {
    if timeout <= 0 { timeout = DefaultTimeout }
    transport := &http.Transport{
        Proxy: http.ProxyFromEnvironment,
        DialContext: (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
        MaxIdleConns:          4,
        MaxIdleConnsPerHost:   2,
        ForceAttemptHTTP2:     true,
        IdleConnTimeout:       90 * time.Second,
        TLSHandshakeTimeout:   10 * time.Second,
        ExpectContinueTimeout: 1 * time.Second,
    }
    return &Client{HTTP: &http.Client{Timeout: timeout, Transport: transport}, UserAgent: "stock-tracker/1.0"}
}

// Do sends req after filling in the default headers.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
    if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
        req.Header.Set("User-Agent", c.UserAgent)
    }
    for k, v := range c.Headers {
        if req.Header.Get(k) == "" {
            req.Header.Set(k, v)
        }
    }
    return c.HTTP.Do(req)
}

// Close releases pooled connections. The client stays usable afterwards;
// new requests simply dial again.
func (c *Client) Close() {
    c.HTTP.CloseIdleConnections()
}
