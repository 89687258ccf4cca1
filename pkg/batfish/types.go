package batfish

import (
	"bytes"
	"fmt"
	"time"
)

// TimeFormat is the wire format of every timestamp returned by the API.
const TimeFormat = "2006-01-02T15:04:05Z"

// Timestamp is a UTC, second-precision time in TimeFormat. A JSON null or an
// empty string decodes to the zero Timestamp.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses a value in TimeFormat.
func ParseTimestamp(value string) (Timestamp, error) {
	parsed, err := time.Parse(TimeFormat, value)
	if err != nil {
		return Timestamp{}, fmt.Errorf("parsing timestamp %q: %w", value, err)
	}

	return Timestamp{Time: parsed.UTC()}, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*t = Timestamp{}

		return nil
	}

	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%w: timestamp must be a string, got %s", ErrMalformedResponse, data)
	}

	parsed, err := ParseTimestamp(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return []byte(`"` + t.UTC().Format(TimeFormat) + `"`), nil
}

// MarshalYAML renders the timestamp in TimeFormat.
func (t Timestamp) MarshalYAML() (interface{}, error) {
	if t.IsZero() {
		return nil, nil
	}

	return t.UTC().Format(TimeFormat), nil
}

// String renders the timestamp in TimeFormat, or "" when zero.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(TimeFormat)
}

// DropletRef identifies a droplet either by ID or by a resolved *Droplet.
type DropletRef interface {
	DropletID() int
}

// ImageRef identifies an image either by ID or by a resolved *Image.
type ImageRef interface {
	ImageID() int
}

// ID is a bare numeric identifier usable wherever a DropletRef or ImageRef is
// accepted.
type ID int

// DropletID implements DropletRef.
func (id ID) DropletID() int {
	return int(id)
}

// ImageID implements ImageRef.
func (id ID) ImageID() int {
	return int(id)
}
