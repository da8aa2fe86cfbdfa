// Package universe defines the configured set of tradable symbols and their
// provider/benchmark metadata. Read-only for the process lifetime.
package universe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Symbol is one entry of the universe: ticker, provider hint, category, and
// the benchmark ticker used for relative-strength scoring.
type Symbol struct {
	Ticker        string `yaml:"ticker"`
	Name          string `yaml:"name"`
	Category      string `yaml:"category"`
	Benchmark     string `yaml:"benchmark"`
	Exchange      string `yaml:"exchange"` // provider-A exchange suffix, e.g. "US"
	IsVolIndex    bool   `yaml:"is_volatility_index"`
	IsBroadMarket bool   `yaml:"is_broad_market"`
}

// Universe is the ordered collection of symbols. Order is preserved from the
// source file and is the tie-break order for rankings (spec §8 scenario 6).
type Universe struct {
	Symbols []Symbol
}

// Load reads an ordered universe definition from YAML. Ticker uniqueness is enforced.
func Load(path string) (*Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read universe %s: %w", path, err)
	}

	var raw struct {
		Symbols []Symbol `yaml:"symbols"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse universe %s: %w", path, err)
	}

	seen := make(map[string]bool, len(raw.Symbols))
	for _, s := range raw.Symbols {
		if s.Ticker == "" {
			return nil, fmt.Errorf("universe entry missing ticker")
		}
		if seen[s.Ticker] {
			return nil, fmt.Errorf("duplicate ticker in universe: %s", s.Ticker)
		}
		seen[s.Ticker] = true
	}

	return &Universe{Symbols: raw.Symbols}, nil
}

// Tickers returns the ordered ticker list.
func (u *Universe) Tickers() []string {
	out := make([]string, len(u.Symbols))
	for i, s := range u.Symbols {
		out[i] = s.Ticker
	}
	return out
}

// Get returns a symbol descriptor by ticker.
func (u *Universe) Get(ticker string) (Symbol, bool) {
	for _, s := range u.Symbols {
		if s.Ticker == ticker {
			return s, true
		}
	}
	return Symbol{}, false
}

// VolatilityIndex returns the designated volatility-index symbol, if any.
func (u *Universe) VolatilityIndex() (Symbol, bool) {
	for _, s := range u.Symbols {
		if s.IsVolIndex {
			return s, true
		}
	}
	return Symbol{}, false
}

// BroadMarket returns the designated broad-equity reference symbol, if any.
func (u *Universe) BroadMarket() (Symbol, bool) {
	for _, s := range u.Symbols {
		if s.IsBroadMarket {
			return s, true
		}
	}
	return Symbol{}, false
}
