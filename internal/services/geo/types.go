package geo

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// LatLon is a (latitude, longitude) pair. Model output is loose about number
// formatting, so it unmarshals from JSON numbers or numeric strings alike.
type LatLon [2]float64

func (ll LatLon) Lat() float64 { return ll[0] }
func (ll LatLon) Lon() float64 { return ll[1] }

func (ll *LatLon) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("latlon must have exactly 2 elements, got %d", len(raw))
	}
	for i, elem := range raw {
		var f float64
		if err := json.Unmarshal(elem, &f); err != nil {
			var s string
			if err := json.Unmarshal(elem, &s); err != nil {
				return fmt.Errorf("latlon[%d] is not a number", i)
			}
			parsed, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("latlon[%d] is not a parseable float: %q", i, s)
			}
			f = parsed
		}
		ll[i] = f
	}
	return nil
}

// ParsedLocation is a geo-record as extracted from raw model output, before
// reconciliation against the source links.
type ParsedLocation struct {
	LatLon  LatLon `json:"latlon"`
	Country string `json:"country"`
}

// Location is the final geo-record returned to callers: a parsed record
// enriched with its originating link and a name derived from it.
type Location struct {
	LatLon  LatLon `json:"latlon"`
	Country string `json:"country"`
	Link    string `json:"link,omitempty"`
	Name    string `json:"name,omitempty"`
}

// ConvertRequest carries the parameters of one pipeline invocation. Model
// pins a specific completion model for every attempt when set.
type ConvertRequest struct {
	Country string `json:"country"`
	Limit   int    `json:"limit,omitempty"`
	Model   string `json:"model,omitempty"`
}
