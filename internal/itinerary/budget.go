package itinerary

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

type Budget struct {
	Min                float64 `json:"min"`
	Max                float64 `json:"max"`
	Travelers          int     `json:"travelers"`
	PricedCount        int     `json:"priced_count"`
	UnpricedCount      int     `json:"unpriced_count"`
	UsesEstimates      bool    `json:"uses_estimates"`
	HasEstimatedRanges bool    `json:"has_estimated_ranges"`
}

var priceTokenRe = regexp.MustCompile(`\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?`)

var perPersonUnits = []string{
	"person", "people", "pax", "head", "entry", "guest", "adult", "traveler", "traveller",
}

// IsPerPerson reports whether a pricing unit charges each traveler.
func IsPerPerson(unit string) bool {
	u := strings.ToLower(unit)
	for _, w := range perPersonUnits {
		if strings.Contains(u, w) {
			return true
		}
	}
	return false
}

// ParsePriceEstimate extracts every numeric token from free-form price text
// such as "₱1,200 - 2,500". It returns nil when the text has no numbers,
// which covers "free", "none" and empty strings.
func ParsePriceEstimate(text string) []float64 {
	matches := priceTokenRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// toCents rounds an amount to integer minor units so totals do not depend on
// the order items are summed in.
func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// EstimateBudget sums a min/max cost over items. A positive exact price counts
// toward both bounds; otherwise the estimate text is parsed, and items with no
// usable number are excluded from both bounds rather than counted as zero.
func EstimateBudget(items []Item, travelers int) Budget {
	if travelers < 1 {
		travelers = 1
	}
	b := Budget{Travelers: travelers}
	var minCents, maxCents int64

	for _, it := range items {
		mult := 1.0
		if IsPerPerson(it.Snapshot.PriceUnit) {
			mult = float64(travelers)
		}

		if it.Snapshot.Price > 0 {
			minCents += toCents(it.Snapshot.Price * mult)
			maxCents += toCents(it.Snapshot.Price * mult)
			b.PricedCount++
			continue
		}

		tokens := ParsePriceEstimate(it.Snapshot.PriceEstimateText)
		if len(tokens) == 0 {
			b.UnpricedCount++
			continue
		}
		lo, hi := tokens[0], tokens[0]
		for _, v := range tokens[1:] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		minCents += toCents(lo * mult)
		maxCents += toCents(hi * mult)
		b.PricedCount++
		b.UsesEstimates = true
		if lo != hi {
			b.HasEstimatedRanges = true
		}
	}
	b.Min = float64(minCents) / 100
	b.Max = float64(maxCents) / 100
	return b
}
