package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Destination is a confirmed delivery point. It can only be built from a
// resolved geocoding suggestion: free-typed address text never carries a
// place ID, so it can never satisfy Confirmed.
type Destination struct {
	PlaceID string  `json:"place_id"`
	Label   string  `json:"label"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Confirmed reports whether the destination originated from an accepted
// geocoding suggestion.
func (d *Destination) Confirmed() bool {
	return d != nil && strings.TrimSpace(d.PlaceID) != ""
}

// Value serializes the destination to JSONB.
func (d *Destination) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan decodes JSONB into the destination.
func (d *Destination) Scan(value interface{}) error {
	if value == nil {
		*d = Destination{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, d)
}

// StringList is a JSONB-persisted list of opaque display labels, used for the
// customization summaries carried on cart lines.
type StringList []string

// Value serializes the list to JSON.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan decodes JSONB into the list.
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded StringList
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*s = decoded
	return nil
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
