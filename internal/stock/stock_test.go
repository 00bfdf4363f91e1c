package stock

import (
    "strings"
    "testing"

    "github.com/stretchr/testify/require"
)

func TestValidateSymbol_StripsSpacesAndUppercases(t *testing.T) {
    t.Parallel()

    cases := map[string]string{
        "aapl":       "AAPL",
        " ms ft ":    "MSFT",
        "g o o g l":  "GOOGL",
        "\tnvda\n":   "NVDA",
        "BRK.B":      "BRK.B",
        "abcdefghij": "ABCDEFGHIJ",
    }
    for in, want := range cases {
        got, err := ValidateSymbol(in)
        require.NoErrorf(t, err, "input %q", in)
        require.Equal(t, want, got)
        require.NotContains(t, got, " ")
        require.Equal(t, strings.ToUpper(got), got)
    }
}

func TestValidateSymbol_RejectsEmptyAndOverlong(t *testing.T) {
    t.Parallel()

    for _, in := range []string{"", "   ", "\t", "abcdefghijk", "a b c d e f g h i j k"} {
        _, err := ValidateSymbol(in)
        require.ErrorIsf(t, err, ErrInvalidSymbol, "input %q", in)
    }
}

func TestValidateSymbol_Idempotent(t *testing.T) {
    t.Parallel()

    for _, in := range []string{"aapl", " Tsla", "x", "abcdefghij"} {
        once, err := ValidateSymbol(in)
        require.NoError(t, err)
        twice, err := ValidateSymbol(once)
        require.NoError(t, err)
        require.Equal(t, once, twice)
    }
}

func TestValidateSymbols_DedupesAndReportsRejects(t *testing.T) {
    t.Parallel()

    valid, rejected := ValidateSymbols([]string{"aapl", "AAPL ", "", "msft", "waytoolongticker"})
    require.Equal(t, []string{"AAPL", "MSFT"}, valid)
    require.Equal(t, []string{"", "waytoolongticker"}, rejected)
}

func TestClassifyChange(t *testing.T) {
    cases := []struct {
        pct  float64
        want string
    }{
        {3.5, StatusStrongBullish},
        {2, StatusStrongBullish},
        {0.01, StatusBullish},
        {0, StatusNeutral},
        {-0.5, StatusBearish},
        {-2, StatusStrongBearish},
    }
    for _, c := range cases {
        if got := ClassifyChange(c.pct); got != c.want {
            t.Fatalf("ClassifyChange(%v) = %q, want %q", c.pct, got, c.want)
        }
    }
}

func TestLookup_DefaultsForUnknownSymbols(t *testing.T) {
    require.Equal(t, "Apple Inc.", CompanyName("AAPL"))
    require.Equal(t, "Unknown Company", CompanyName("ZZZZ"))
    require.Greater(t, Lookup("ZZZZ").BasePrice, 0.0)
    for _, sym := range DefaultWatchlist {
        require.NotEqual(t, "Unknown Company", CompanyName(sym), sym)
    }
}

func TestPlaceholder(t *testing.T) {
    r := Placeholder("AAPL")
    require.False(t, r.Valid())
    require.Equal(t, StatusFetching, r.Status)
    require.Equal(t, "AAPL", r.Symbol)
}
