package stock

// Profile is the static per-symbol data used for display names and for
// synthesizing demo quotes.
type Profile struct {
    Name      string
    BasePrice float64
    // PriceSpread bounds the demo price jitter, in whole dollars either side.
    PriceSpread int
    // ChangeSpread bounds the demo percent change, in basis points either side.
    ChangeSpread int
}

// DefaultWatchlist is tracked when no symbols are configured.
var DefaultWatchlist = []string{"AAPL", "MSFT", "GOOGL", "TSLA", "AMZN", "NVDA", "META", "NFLX", "AMD", "INTC"}

var defaultProfile = Profile{Name: "Unknown Company", BasePrice: 100, PriceSpread: 10, ChangeSpread: 300}

var profiles = map[string]Profile{
    "AAPL":  {Name: "Apple Inc.", BasePrice: 175, PriceSpread: 10, ChangeSpread: 300},
    "MSFT":  {Name: "Microsoft Corporation", BasePrice: 350, PriceSpread: 10, ChangeSpread: 300},
    "GOOGL": {Name: "Alphabet Inc. (Google)", BasePrice: 140, PriceSpread: 10, ChangeSpread: 300},
    "TSLA":  {Name: "Tesla, Inc.", BasePrice: 250, PriceSpread: 25, ChangeSpread: 400},
    "AMZN":  {Name: "Amazon.com Inc.", BasePrice: 145, PriceSpread: 10, ChangeSpread: 300},
    "NVDA":  {Name: "NVIDIA Corporation", BasePrice: 450, PriceSpread: 50, ChangeSpread: 300},
    "META":  {Name: "Meta Platforms Inc.", BasePrice: 320, PriceSpread: 10, ChangeSpread: 300},
    "NFLX":  {Name: "Netflix Inc.", BasePrice: 100, PriceSpread: 10, ChangeSpread: 300},
    "AMD":   {Name: "Advanced Micro Devices", BasePrice: 100, PriceSpread: 10, ChangeSpread: 300},
    "INTC":  {Name: "Intel Corporation", BasePrice: 100, PriceSpread: 10, ChangeSpread: 300},
}

// Lookup returns the profile for symbol, or the default profile.
func Lookup(symbol string) Profile {
    if p, ok := profiles[symbol]; ok {
        return p
    }
    return defaultProfile
}

// CompanyName returns the display name for symbol.
func CompanyName(symbol string) string { return Lookup(symbol).Name }
