// Package types provides type definitions for the job records that flow through the
// cleaning pipeline, from raw scraped rows to the persisted clean tables.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// Market identifies one country job market. Each market has its own persisted table and
// its own title rule table.
type Market string

const (
	// MarketEgypt is the Egyptian job market.
	MarketEgypt Market = "egypt"
	// MarketSaudiArabia is the Saudi Arabian job market.
	MarketSaudiArabia Market = "saudi-arabia"
)

// Markets lists every supported market in a stable order.
func Markets() []Market {
	return []Market{MarketEgypt, MarketSaudiArabia}
}

// ParseMarket resolves a user supplied market name. It accepts the canonical names plus
// the short aliases used in file names ("saudi", "ksa", "eg").
func ParseMarket(name string) (Market, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "egypt", "eg", "egy":
		return MarketEgypt, nil
	case "saudi-arabia", "saudi", "ksa", "sa":
		return MarketSaudiArabia, nil
	default:
		return "", fmt.Errorf("unknown market %q (expected egypt or saudi-arabia)", name)
	}
}

// Table returns the name of the persisted clean table for the market.
func (m Market) Table() string {
	switch m {
	case MarketEgypt:
		return "EGYPT"
	case MarketSaudiArabia:
		return "saudi-arabia"
	default:
		return string(m)
	}
}

// ExcludedTitleTerms returns substrings that disqualify a posting from the market because
// the title advertises a position in the other market.
func (m Market) ExcludedTitleTerms() []string {
	if m == MarketEgypt {
		return []string{"سعودية", "سعوديه", "سعوية", "saudi arabia", "saudi"}
	}
	return nil
}

func (m Market) String() string {
	return string(m)
}
