package alphavantage

import (
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strings"

	"stocktracker/internal/provider"
)

// Keys of the GLOBAL_QUOTE payload:
//
//	{
//	  "Global Quote": {
//	    "01. symbol": "IBM",
//	    "03. high": "170.6900",
//	    "04. low": "168.8500",
//	    "05. price": "169.8900",
//	    "06. volume": "3265521",
//	    "08. previous close": "168.3100",
//	    "10. change percent": "0.9388%"
//	  }
//	}
//
// Rate-limited responses carry {"Note": "..."} or {"Information": "..."} instead.
const (
	GlobalQuoteKey     = "Global Quote"
	FieldHigh          = "03. high"
	FieldLow           = "04. low"
	FieldPrice         = "05. price"
	FieldVolume        = "06. volume"
	FieldPreviousClose = "08. previous close"
	FieldChangePercent = "10. change percent"
)

// maxBody caps the payload read for a single quote.
const maxBody = 1 << 20

// Quote retrieves the GLOBAL_QUOTE payload for symbol and returns the raw body.
func (c *AlphaVantageAPIClient) Quote(ctx context.Context, symbol string) ([]byte, error) {
	return c.GlobalQuote(ctx, symbol)
}

// GlobalQuote retrieves the GLOBAL_QUOTE payload for symbol.
func (c *AlphaVantageAPIClient) GlobalQuote(ctx context.Context, symbol string, opts ...AlphaVantageAPIClientOption) ([]byte, error) {
	var override = &AlphaVantageAPIClient{
		baseURL:    c.baseURL,
		httpClient: c.httpClient,
		header:     c.header.Clone(),
		query:      c.query,
	}
	for _, opt := range opts {
		opt(override)
	}

	query := maps.Clone(override.query)
	if query == nil {
		query = map[string][]string{}
	}
	query.Set("function", "GLOBAL_QUOTE")
	query.Set("symbol", symbol)

	url := fmt.Sprintf("%s?%s", override.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = override.header

	res, err := override.httpClient.Do(req)
	if err != nil {
		return nil, &provider.TransportError{Symbol: symbol, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, &provider.HTTPError{Symbol: symbol, StatusCode: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return nil, &provider.TransportError{Symbol: symbol, Err: fmt.Errorf("reading body: %w", err)}
	}
	return body, nil
}
