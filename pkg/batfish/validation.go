package batfish

import (
	"regexp"
	"strconv"
	"strings"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9.-]+$`)

// ValidateName checks that name is non-empty and only uses ASCII letters,
// digits, '.' and '-'.
func ValidateName(name string) error {
	if name == "" {
		return newValidationError("name", "", ErrNameRequired)
	}

	if !namePattern.MatchString(name) {
		return newValidationError("name", name, ErrInvalidName)
	}

	return nil
}

// DropletCreateRequest is the body of a droplet create call. Image may be a
// numeric image id or a slug.
type DropletCreateRequest struct {
	Name              string
	Region            string
	Size              string
	Image             string
	SSHKeys           []int
	Backups           bool
	IPv6              bool
	PrivateNetworking bool
}

// Validate checks the request before it is sent.
func (r *DropletCreateRequest) Validate() error {
	if err := ValidateName(r.Name); err != nil {
		return err
	}

	if strings.TrimSpace(r.Size) == "" {
		return newValidationError("size", "", ErrSizeRequired)
	}

	if strings.TrimSpace(r.Image) == "" {
		return newValidationError("image", "", ErrImageRequired)
	}

	if strings.TrimSpace(r.Region) == "" {
		return newValidationError("region", "", ErrRegionRequired)
	}

	return nil
}

// Payload builds the request body. Size and image slugs are lower-cased;
// a numeric image is sent as a number.
func (r *DropletCreateRequest) Payload() map[string]interface{} {
	payload := map[string]interface{}{
		"name":   r.Name,
		"region": strings.ToLower(r.Region),
		"size":   strings.ToLower(r.Size),
	}

	if id, err := strconv.Atoi(r.Image); err == nil {
		payload["image"] = id
	} else {
		payload["image"] = strings.ToLower(r.Image)
	}

	if len(r.SSHKeys) > 0 {
		payload["ssh_keys"] = r.SSHKeys
	}

	if r.Backups {
		payload["backups"] = true
	}

	if r.IPv6 {
		payload["ipv6"] = true
	}

	if r.PrivateNetworking {
		payload["private_networking"] = true
	}

	return payload
}
