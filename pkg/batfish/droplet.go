package batfish

import (
	"context"
	"strconv"
	"strings"
)

// DropletStatus is the lifecycle state reported for a droplet.
type DropletStatus string

const (
	DropletStatusNew     DropletStatus = "new"
	DropletStatusActive  DropletStatus = "active"
	DropletStatusOff     DropletStatus = "off"
	DropletStatusArchive DropletStatus = "archive"
)

// Droplet represents a virtual machine.
type Droplet struct {
	ID          int           `json:"id"           yaml:"id"`
	Name        string        `json:"name"         yaml:"name"`
	Memory      int           `json:"memory"       yaml:"memory"`
	VCPUs       int           `json:"vcpus"        yaml:"vcpus"`
	Disk        int           `json:"disk"         yaml:"disk"`
	Locked      bool          `json:"locked"       yaml:"locked"`
	Status      DropletStatus `json:"status"       yaml:"status"`
	CreatedAt   Timestamp     `json:"created_at"   yaml:"created_at"`
	Kernel      *Kernel       `json:"kernel"       yaml:"kernel,omitempty"`
	BackupIDs   []int         `json:"backup_ids"   yaml:"backup_ids"`
	SnapshotIDs []int         `json:"snapshot_ids" yaml:"snapshot_ids"`
	Features    []string      `json:"features"     yaml:"features"`
	RegionInfo  RegionRef     `json:"region"       yaml:"region"`
	ImageInfo   ImageIDRef    `json:"image"        yaml:"image"`
	SizeInfo    DropletSize   `json:"size"         yaml:"size"`
	Networks    Networks      `json:"networks"     yaml:"networks"`
}

// Kernel describes the kernel a droplet boots.
type Kernel struct {
	ID      int    `json:"id"      yaml:"id"`
	Name    string `json:"name"    yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// RegionRef is an embedded reference to a region.
type RegionRef struct {
	Slug string `json:"slug"           yaml:"slug"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// ImageIDRef is an embedded reference to an image.
type ImageIDRef struct {
	ID int `json:"id" yaml:"id"`
}

// DropletSize is the size information embedded in a droplet.
type DropletSize struct {
	Slug         string  `json:"slug"          yaml:"slug"`
	PriceHourly  float64 `json:"price_hourly"  yaml:"price_hourly"`
	PriceMonthly float64 `json:"price_monthly" yaml:"price_monthly"`
}

// Networks holds the addresses assigned to a droplet.
type Networks struct {
	V4 []Network `json:"v4" yaml:"v4"`
	V6 []Network `json:"v6" yaml:"v6"`
}

// Network is a single IPv4 or IPv6 interface address.
type Network struct {
	IPAddress string `json:"ip_address"        yaml:"ip_address"`
	Netmask   string `json:"netmask,omitempty" yaml:"netmask,omitempty"`
	Gateway   string `json:"gateway"           yaml:"gateway"`
	Type      string `json:"type"              yaml:"type"`
}

// SizeSummary is the display summary returned by Droplet.Size.
type SizeSummary struct {
	Name    string
	Memory  string
	Disk    string
	Hourly  float64
	Monthly float64
}

// DropletID implements DropletRef.
func (d *Droplet) DropletID() int {
	return d.ID
}

// String renders the droplet for logs and the shell.
func (d *Droplet) String() string {
	return "<Droplet " + d.Name + ">"
}

// DiskSize returns the disk size with a GB suffix, e.g. "20GB".
func (d *Droplet) DiskSize() string {
	return strconv.Itoa(d.Disk) + "GB"
}

// RegionName returns the display name of the droplet's region without a
// round-trip.
func (d *Droplet) RegionName() string {
	return RegionNameFromSlug(d.RegionInfo.Slug)
}

// Size summarizes the droplet's size.
func (d *Droplet) Size() SizeSummary {
	slug := strings.ToUpper(d.SizeInfo.Slug)

	return SizeSummary{
		Name:    slug,
		Memory:  slug,
		Disk:    d.DiskSize(),
		Hourly:  d.SizeInfo.PriceHourly,
		Monthly: d.SizeInfo.PriceMonthly,
	}
}

// PublicIPv4 returns the first public IPv4 address, or "" when none is
// assigned.
func (d *Droplet) PublicIPv4() string {
	for _, network := range d.Networks.V4 {
		if network.Type == "public" {
			return network.IPAddress
		}
	}

	return ""
}

// Region fetches the droplet's region.
func (d *Droplet) Region(ctx context.Context, client ResourceClients) (*Region, error) {
	return client.Regions().FromSlug(ctx, d.RegionInfo.Slug)
}

// Image fetches the image the droplet was built from.
func (d *Droplet) Image(ctx context.Context, client ResourceClients) (*Image, error) {
	return client.Images().FromID(ctx, d.ImageInfo.ID)
}

// Actions lists the actions performed on the droplet.
func (d *Droplet) Actions(ctx context.Context, client ResourceClients) ([]Action, error) {
	return client.Droplets().Actions(ctx, d)
}
