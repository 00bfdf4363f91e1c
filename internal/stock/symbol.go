package stock

import (
    "errors"
    "strings"
    "unicode"
    "unicode/utf8"
)

// MaxSymbolLen is the longest accepted ticker.
const MaxSymbolLen = 10

// ErrInvalidSymbol is returned for tickers that normalize to an empty or
// overlong string.
var ErrInvalidSymbol = errors.New("invalid symbol")

// ValidateSymbol strips whitespace, upper-cases the rest and checks the length.
func ValidateSymbol(raw string) (string, error) {
    clean := strings.Map(func(r rune) rune {
        if unicode.IsSpace(r) {
            return -1
        }
        return unicode.ToUpper(r)
    }, raw)
    if n := utf8.RuneCountInString(clean); n < 1 || n > MaxSymbolLen {
        return "", ErrInvalidSymbol
    }
    return clean, nil
}

// ValidateSymbols validates every entry, dropping duplicates while keeping
// first-seen order. Rejected inputs are returned separately.
func ValidateSymbols(raw []string) (valid []string, rejected []string) {
    seen := make(map[string]struct{}, len(raw))
    for _, s := range raw {
        sym, err := ValidateSymbol(s)
        if err != nil {
            rejected = append(rejected, s)
            continue
        }
        if _, dup := seen[sym]; dup { continue }
        seen[sym] = struct{}{}
        valid = append(valid, sym)
    }
    return valid, rejected
}
