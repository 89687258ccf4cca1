package batfish

import (
	"context"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var sizeSlugs = []string{"512mb", "1gb", "2gb", "4gb", "8gb", "16gb", "32gb", "48gb", "64gb"}

// Size represents a hardware tier.
type Size struct {
	Slug         string   `json:"slug"          yaml:"slug"`
	Memory       int      `json:"memory"        yaml:"memory"`
	VCPUs        int      `json:"vcpus"         yaml:"vcpus"`
	Disk         int      `json:"disk"          yaml:"disk"`
	Transfer     int      `json:"transfer"      yaml:"transfer"`
	PriceHourly  float64  `json:"price_hourly"  yaml:"price_hourly"`
	PriceMonthly float64  `json:"price_monthly" yaml:"price_monthly"`
	RegionSlugs  []string `json:"regions"       yaml:"regions"`
}

// Price is an hourly and monthly price pair in USD.
type Price struct {
	Hourly  float64
	Monthly float64
}

func (s *Size) String() string {
	return "<Size " + strings.ToUpper(s.Slug) + ">"
}

// SizeSlugs returns the canonical size slugs, smallest first.
func SizeSlugs() []string {
	return append([]string(nil), sizeSlugs...)
}

// IsKnownSizeSlug reports whether slug is one of SizeSlugs, ignoring case.
func IsKnownSizeSlug(slug string) bool {
	return lo.Contains(sizeSlugs, strings.ToLower(slug))
}

// DiskSize returns the disk size with a GB suffix.
func (s *Size) DiskSize() string {
	return strconv.Itoa(s.Disk) + "GB"
}

// TransferAllowance returns the monthly transfer with a TB suffix.
func (s *Size) TransferAllowance() string {
	return strconv.Itoa(s.Transfer) + "TB"
}

// Price returns the price pair.
func (s *Size) Price() Price {
	return Price{Hourly: s.PriceHourly, Monthly: s.PriceMonthly}
}

// RegionNames maps the size's region slugs to display names.
func (s *Size) RegionNames() []string {
	return lo.Map(s.RegionSlugs, func(slug string, _ int) string {
		return RegionNameFromSlug(slug)
	})
}

// Regions resolves each region the size is offered in.
func (s *Size) Regions(ctx context.Context, client ResourceClients) ([]Region, error) {
	return resolveRegions(ctx, client, s.RegionSlugs)
}
