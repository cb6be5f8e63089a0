// Package report computes dataset statistics.
package report

import (
	"sort"
	"strings"
	"time"

	"shopscan/internal/models"
	"shopscan/pkg/region"
)

// Build computes the summary of shops.
func Build(shops []models.Shop) *Summary {
	s := &Summary{
		Total:       len(shops),
		ByCountry:   make(map[string]int),
		ByState:     make(map[string]int),
		ByCategory:  make(map[string]int),
		GeneratedAt: time.Now(),
	}

	for _, shop := range shops {
		noName := strings.TrimSpace(shop.Name) == ""
		noAddress := strings.TrimSpace(shop.Address) == ""
		if noName {
			s.MissingName++
		}
		if noAddress {
			s.MissingAddress++
		}
		if !noName && !noAddress {
			s.Valid++
		}

		if shop.Country != "" {
			s.Classified++
			s.ByCountry[shop.Country]++
		}
		if !shop.ShopDetail.IsZero() {
			s.Detailed++
		}
		if shop.State != "" {
			s.ByState[shop.State]++
		}
		if shop.Category != "" {
			s.ByCategory[shop.Category]++
		}

		if isDomestic(shop.Address) {
			s.Domestic++
			if pricedInWon(shop.VeryPrice) {
				s.DomesticWithPrice++
			}
		}
	}

	s.Countries = len(s.ByCountry)
	s.Categories = len(s.ByCategory)
	return s
}

// Sorted returns the entries of m by descending count, then by key.
func Sorted(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func isDomestic(address string) bool {
	if strings.TrimSpace(address) == "" {
		return false
	}
	for _, name := range region.Regions() {
		if region.RegionMatches(address, name) {
			return true
		}
	}
	return false
}

func pricedInWon(price string) bool {
	price = strings.TrimSpace(price)
	return price != "" && price != "-" && strings.Contains(price, "원")
}
