// Package region classifies free-text addresses into country, state and city, and
// answers the "does this address belong to region X" question for filters.
package region

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// RegionMatches reports whether address belongs to the top-level region. region may
// be a canonical name (서울특별시) or one of its aliases (서울).
func RegionMatches(address, region string) bool {
	address, region = nfc(strings.TrimSpace(address)), nfc(strings.TrimSpace(region))
	if address == "" || region == "" {
		return false
	}
	if strings.Contains(address, region) {
		return true
	}

	r, ok := Lookup(region)
	if !ok {
		return false
	}
	if strings.Contains(address, r.Name) || containsAlias(address, r.Aliases) {
		return true
	}

	parent, ok := resolveParent(address)
	return ok && parent == r.Name
}

// SubRegionMatches reports whether address contains the district or city name.
func SubRegionMatches(address, subRegion string) bool {
	subRegion = nfc(strings.TrimSpace(subRegion))
	if subRegion == "" {
		return false
	}
	return strings.Contains(nfc(address), subRegion)
}

// Lookup returns the region whose canonical name or alias equals name.
func Lookup(name string) (Region, bool) {
	name = nfc(strings.TrimSpace(name))
	if r, ok := byName[name]; ok {
		return r, true
	}
	lowered := strings.ToLower(name)
	for _, r := range regions {
		for _, a := range r.Aliases {
			if strings.ToLower(a) == lowered {
				return r, true
			}
		}
	}
	return Region{}, false
}

// containsAlias matches aliases case-insensitively. Lower-casing leaves Hangul
// untouched, so only romanizations are affected.
func containsAlias(address string, aliases []string) bool {
	lowered := strings.ToLower(address)
	for _, a := range aliases {
		if strings.Contains(lowered, strings.ToLower(a)) {
			return true
		}
	}
	return false
}

type hit struct {
	start, end int
	parent     string
}

// resolveParent finds the single region owning the districts and cities named in
// address. Names nested inside a longer hit (동구 inside 강동구) are ignored. A short
// address contained in a gazetteer name also counts as a hit. ok is false when the
// hits are empty or point at more than one region.
func resolveParent(address string) (string, bool) {
	var hits []hit
	for _, e := range gazetteer {
		for off := 0; off < len(address); {
			i := strings.Index(address[off:], e.Name)
			if i < 0 {
				break
			}
			start := off + i
			hits = append(hits, hit{start: start, end: start + len(e.Name), parent: e.Parent})
			off = start + len(e.Name)
		}
		if strings.Contains(e.Name, address) {
			hits = append(hits, hit{start: 0, end: len(address), parent: e.Parent})
		}
	}

	parents := make(map[string]struct{})
	for _, h := range hits {
		if nested(h, hits) {
			continue
		}
		parents[h.parent] = struct{}{}
	}
	if len(parents) != 1 {
		return "", false
	}
	for p := range parents {
		return p, true
	}
	return "", false
}

func nested(h hit, hits []hit) bool {
	for _, o := range hits {
		if o.start <= h.start && h.end <= o.end && o.end-o.start > h.end-h.start {
			return true
		}
	}
	return false
}

// earliest returns the name found first in address, preferring the longer name when
// two start at the same position.
func earliest(address string, names []string) string {
	best, bestAt := "", -1
	for _, n := range names {
		i := strings.Index(address, n)
		if i < 0 {
			continue
		}
		if bestAt < 0 || i < bestAt || (i == bestAt && len(n) > len(best)) {
			best, bestAt = n, i
		}
	}
	return best
}

func nfc(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}
