package batfish_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fivetwenty-io/batfish/pkg/batfish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dropletJSON = `{
	"id": 19,
	"name": "kura-test",
	"memory": 512,
	"vcpus": 1,
	"disk": 20,
	"locked": false,
	"status": "active",
	"created_at": "2014-01-07T23:19:49Z",
	"kernel": {"id": 140, "name": "Debian 7.0 x64 vmlinuz-3.2.0-4-amd64", "version": "3.2.0-4-amd64"},
	"backup_ids": [123, 124],
	"snapshot_ids": [],
	"features": ["private_networking", "virtio"],
	"region": {"slug": "ams2", "name": "Amsterdam 2"},
	"image": {"id": 449676389},
	"size": {"slug": "512mb", "price_hourly": 0.00744, "price_monthly": 5.0},
	"networks": {
		"v4": [
			{"ip_address": "10.12.1.1", "netmask": "255.255.0.0", "gateway": "10.12.0.1", "type": "private"},
			{"ip_address": "95.85.62.206", "netmask": "255.255.255.0", "gateway": "95.85.62.1", "type": "public"}
		],
		"v6": []
	}
}`

func TestDroplet_FromJSON(t *testing.T) {
	t.Parallel()

	var droplet batfish.Droplet
	require.NoError(t, json.Unmarshal([]byte(dropletJSON), &droplet))

	assert.Equal(t, 19, droplet.ID)
	assert.Equal(t, 19, droplet.DropletID())
	assert.Equal(t, "kura-test", droplet.Name)
	assert.Equal(t, batfish.DropletStatusActive, droplet.Status)
	assert.Equal(t, 512, droplet.Memory)
	assert.Equal(t, 1, droplet.VCPUs)
	assert.Equal(t, "20GB", droplet.DiskSize())
	assert.False(t, droplet.Locked)
	assert.Equal(t, time.Date(2014, 1, 7, 23, 19, 49, 0, time.UTC), droplet.CreatedAt.Time)
	assert.Equal(t, []int{123, 124}, droplet.BackupIDs)
	assert.Empty(t, droplet.SnapshotIDs)
	assert.Equal(t, []string{"private_networking", "virtio"}, droplet.Features)
	assert.Equal(t, "Amsterdam 2", droplet.RegionName())
	assert.Equal(t, 449676389, droplet.ImageInfo.ID)
	assert.Equal(t, "95.85.62.206", droplet.PublicIPv4())
	assert.Len(t, droplet.Networks.V4, 2)
	assert.Empty(t, droplet.Networks.V6)

	require.NotNil(t, droplet.Kernel)
	assert.Equal(t, 140, droplet.Kernel.ID)
	assert.Equal(t, "3.2.0-4-amd64", droplet.Kernel.Version)

	size := droplet.Size()
	assert.Equal(t, "512MB", size.Name)
	assert.Equal(t, "20GB", size.Disk)
	assert.InDelta(t, 0.00744, size.Hourly, 1e-9)
	assert.InDelta(t, 5.0, size.Monthly, 1e-9)

	assert.Equal(t, "<Droplet kura-test>", droplet.String())
}

func TestDroplet_PublicIPv4_NoPublicNetwork(t *testing.T) {
	t.Parallel()

	droplet := batfish.Droplet{
		Networks: batfish.Networks{
			V4: []batfish.Network{{IPAddress: "10.0.0.2", Type: "private"}},
		},
	}

	assert.Empty(t, droplet.PublicIPv4())
}

func TestAction_CompletedAtNull(t *testing.T) {
	t.Parallel()

	var action batfish.Action
	err := json.Unmarshal([]byte(`{
		"id": 2,
		"status": "in-progress",
		"type": "rebuild",
		"started_at": "2014-01-07T23:19:49Z",
		"completed_at": null,
		"resource_id": 19,
		"resource_type": "droplet",
		"region": {"slug": "lon1"}
	}`), &action)
	require.NoError(t, err)

	assert.Nil(t, action.CompletedAt)
	assert.False(t, action.Completed())
	assert.Equal(t, batfish.ActionStatusInProgress, action.Status)
	assert.Equal(t, "London 1", action.RegionName())
	assert.Equal(t, "lon1", action.RegionSlug())
}

func TestAction_CompletedAtSet(t *testing.T) {
	t.Parallel()

	var action batfish.Action
	err := json.Unmarshal([]byte(`{
		"id": 3,
		"status": "completed",
		"type": "reboot",
		"started_at": "2014-01-07T23:19:49Z",
		"completed_at": "2014-01-07T23:20:10Z",
		"resource_id": 19,
		"resource_type": "droplet",
		"region": null
	}`), &action)
	require.NoError(t, err)

	require.NotNil(t, action.CompletedAt)
	assert.True(t, action.Completed())
	assert.Equal(t, time.Date(2014, 1, 7, 23, 20, 10, 0, time.UTC), action.CompletedAt.Time)
	assert.Empty(t, action.RegionSlug())
	assert.Equal(t, batfish.UnknownRegion, action.RegionName())
}

func TestTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "valid", input: `"2014-07-29T14:35:27Z"`, want: time.Date(2014, 7, 29, 14, 35, 27, 0, time.UTC)},
		{name: "null", input: `null`},
		{name: "empty string", input: `""`},
		{name: "wrong layout", input: `"2014/07/29 14:35"`, wantErr: true},
		{name: "not a string", input: `12345`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ts batfish.Timestamp

			err := json.Unmarshal([]byte(tt.input), &ts)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts.Time))
		})
	}
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	t.Parallel()

	ts, err := batfish.ParseTimestamp("2014-07-29T14:35:27Z")
	require.NoError(t, err)

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.JSONEq(t, `"2014-07-29T14:35:27Z"`, string(data))

	data, err = json.Marshal(batfish.Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestImage_FromJSON(t *testing.T) {
	t.Parallel()

	var image batfish.Image
	err := json.Unmarshal([]byte(`{
		"id": 449676389,
		"name": "Ubuntu 13.04",
		"distribution": "ubuntu",
		"slug": null,
		"public": false,
		"regions": ["nyc1", "zzz9"],
		"created_at": "2014-07-29T14:35:27Z"
	}`), &image)
	require.NoError(t, err)

	assert.Equal(t, 449676389, image.ImageID())
	assert.Empty(t, image.Slug)
	assert.False(t, image.Public)
	assert.Equal(t, []string{"New York 1", batfish.UnknownRegion}, image.RegionNames())
}

func TestSize_Accessors(t *testing.T) {
	t.Parallel()

	size := batfish.Size{
		Slug:         "1gb",
		Memory:       1024,
		VCPUs:        1,
		Disk:         30,
		Transfer:     2,
		PriceHourly:  0.01488,
		PriceMonthly: 10,
		RegionSlugs:  []string{"sgp1", "ams3"},
	}

	assert.Equal(t, "30GB", size.DiskSize())
	assert.Equal(t, "2TB", size.TransferAllowance())
	assert.Equal(t, batfish.Price{Hourly: 0.01488, Monthly: 10}, size.Price())
	assert.Equal(t, []string{"Singapore 1", "Amsterdam 3"}, size.RegionNames())
	assert.Equal(t, "<Size 1GB>", size.String())
}

func TestSizeSlugs(t *testing.T) {
	t.Parallel()

	slugs := batfish.SizeSlugs()
	assert.Equal(t, []string{"512mb", "1gb", "2gb", "4gb", "8gb", "16gb", "32gb", "48gb", "64gb"}, slugs)

	slugs[0] = "changed"
	assert.Equal(t, "512mb", batfish.SizeSlugs()[0])

	assert.True(t, batfish.IsKnownSizeSlug("512MB"))
	assert.False(t, batfish.IsKnownSizeSlug("3gb"))
}

func TestRegionNameFromSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		slug string
		want string
	}{
		{slug: "ams1", want: "Amsterdam 1"},
		{slug: "ams2", want: "Amsterdam 2"},
		{slug: "lon1", want: "London 1"},
		{slug: "nyc3", want: "New York 3"},
		{slug: "sfo1", want: "San Francisco 1"},
		{slug: "sgp1", want: "Singapore 1"},
		{slug: "xyz1", want: batfish.UnknownRegion},
		{slug: "", want: batfish.UnknownRegion},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, batfish.RegionNameFromSlug(tt.slug))
		})
	}
}

func TestRegionMapping_ReturnsCopy(t *testing.T) {
	t.Parallel()

	mapping := batfish.RegionMapping()
	assert.Len(t, mapping, 9)

	mapping["ams1"] = "changed"
	assert.Equal(t, "Amsterdam 1", batfish.RegionNameFromSlug("ams1"))
	assert.Len(t, batfish.RegionSlugs(), 9)
	assert.Equal(t, "ams1", batfish.RegionSlugs()[0])
}

func TestID_SatisfiesRefs(t *testing.T) {
	t.Parallel()

	var dropletRef batfish.DropletRef = batfish.ID(42)

	var imageRef batfish.ImageRef = batfish.ID(7)

	assert.Equal(t, 42, dropletRef.DropletID())
	assert.Equal(t, 7, imageRef.ImageID())

	dropletRef = &batfish.Droplet{ID: 43}
	imageRef = &batfish.Image{ID: 8}

	assert.Equal(t, 43, dropletRef.DropletID())
	assert.Equal(t, 8, imageRef.ImageID())
}
