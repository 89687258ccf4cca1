package batfish

import (
	"sort"

	"github.com/samber/lo"
)

// UnknownRegion is the display name for slugs missing from RegionMapping.
const UnknownRegion = "Unknown"

var regionMapping = map[string]string{
	"ams1": "Amsterdam 1",
	"ams2": "Amsterdam 2",
	"ams3": "Amsterdam 3",
	"lon1": "London 1",
	"nyc1": "New York 1",
	"nyc2": "New York 2",
	"nyc3": "New York 3",
	"sfo1": "San Francisco 1",
	"sgp1": "Singapore 1",
}

// Region represents a datacenter location.
type Region struct {
	Slug      string   `json:"slug"      yaml:"slug"`
	Name      string   `json:"name"      yaml:"name"`
	Available bool     `json:"available" yaml:"available"`
	Sizes     []string `json:"sizes"     yaml:"sizes"`
	Features  []string `json:"features"  yaml:"features"`
}

func (r *Region) String() string {
	return "<Region " + r.Name + ">"
}

// RegionMapping returns a copy of the static slug to display name table.
func RegionMapping() map[string]string {
	return lo.Assign(regionMapping)
}

// RegionSlugs returns the known region slugs in sorted order.
func RegionSlugs() []string {
	slugs := lo.Keys(regionMapping)
	sort.Strings(slugs)

	return slugs
}

// RegionNameFromSlug returns the display name for slug, or UnknownRegion.
func RegionNameFromSlug(slug string) string {
	if name, ok := regionMapping[slug]; ok {
		return name
	}

	return UnknownRegion
}
