package region

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"shopscan/internal/models"
	"shopscan/pkg/logger"
)

// Classify fills Country, State and City from the shop's address. The first domestic
// region to match wins, then the international triggers. An address nothing matches
// is returned unchanged. Classifying twice yields the same result.
func Classify(shop models.Shop) models.Shop {
	address := nfc(shop.Address)
	if strings.TrimSpace(address) == "" {
		return shop
	}

	for _, r := range cascade {
		if !RegionMatches(address, r.Name) {
			continue
		}
		shop.Country = DomesticCountry
		shop.State = r.Name
		if city := cityOf(address, r); city != "" {
			shop.City = city
		}
		return shop
	}

	lowered := strings.ToLower(address)
	for _, c := range countries {
		if !c.matches(lowered) {
			continue
		}
		shop.Country = c.Name
		if state := c.state(address); state != "" {
			shop.State = state
		}
		return shop
	}
	return shop
}

// ClassifyAll classifies every shop in place and returns how many matched.
func ClassifyAll(ctx context.Context, shops []models.Shop) int {
	log := logger.FromContext(ctx)

	matched := 0
	for i := range shops {
		shops[i] = Classify(shops[i])
		if shops[i].IsClassified() {
			matched++
		} else {
			log.Debug("Address not classified",
				zap.String("name", shops[i].Name),
				zap.String("address", shops[i].Address))
		}
	}

	log.Info("Classified addresses",
		zap.Int("total", len(shops)),
		zap.Int("matched", matched),
		zap.Int("unmatched", len(shops)-matched))
	return matched
}

func cityOf(address string, r Region) string {
	switch r.Kind {
	case Metropolitan:
		return earliest(address, r.Districts)
	case Province:
		return earliest(address, provincial)
	default:
		return ""
	}
}
