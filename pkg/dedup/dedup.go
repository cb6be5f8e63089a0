// Package dedup collapses extracted shop records to one per identity key.
package dedup

import "shopscan/internal/models"

// Unique keeps the first record for every (Name, Address) pair, preserving input
// order. Later duplicates are dropped without merging their fields.
func Unique(shops []models.Shop) []models.Shop {
	seen := make(map[models.ShopKey]struct{}, len(shops))
	out := make([]models.Shop, 0, len(shops))
	for _, s := range shops {
		k := s.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
