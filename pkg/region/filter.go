package region

import "shopscan/internal/models"

// Filter returns the shops whose address matches region and subRegion. Empty
// arguments do not filter.
func Filter(shops []models.Shop, region, subRegion string) []models.Shop {
	out := make([]models.Shop, 0, len(shops))
	for _, s := range shops {
		if region != "" && !RegionMatches(s.Address, region) {
			continue
		}
		if subRegion != "" && !SubRegionMatches(s.Address, subRegion) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// CountByRegion counts matching shops for every top-level region. A shop can be
// counted under more than one region.
func CountByRegion(shops []models.Shop) map[string]int {
	counts := make(map[string]int, len(regions))
	for _, r := range regions {
		for _, s := range shops {
			if RegionMatches(s.Address, r.Name) {
				counts[r.Name]++
			}
		}
	}
	return counts
}

// Regions returns the canonical top-level region names in display order.
func Regions() []string {
	out := make([]string, len(regions))
	for i, r := range regions {
		out[i] = r.Name
	}
	return out
}

// SubRegions returns the districts or cities of region, or nil for unknown regions
// and regions without sub-divisions.
func SubRegions(region string) []string {
	r, ok := Lookup(region)
	if !ok || len(r.Districts) == 0 {
		return nil
	}
	return append([]string(nil), r.Districts...)
}
