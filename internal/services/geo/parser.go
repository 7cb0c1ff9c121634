package geo

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
)

// ResponseParser extracts geo-records from raw completion output. A nil or
// empty result means "no usable coordinates"; implementations never report
// errors past this boundary.
type ResponseParser interface {
	Parse(text string) []ParsedLocation
}

// LatLonListParser is the lenient default parser. Models are instructed to
// reply with a bare JSON array but routinely wrap it in code fences or prose;
// the parser strips the wrapping, decodes the outermost array, and drops any
// entry whose shape or coordinate range is invalid.
type LatLonListParser struct{}

func (LatLonListParser) Parse(text string) []ParsedLocation {
	cleaned := extractJSONArray(text)
	if cleaned == "" {
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		log.Debug().Err(err).Msg("Completion output is not a JSON array")
		return nil
	}

	locations := make([]ParsedLocation, 0, len(raw))
	for i, entry := range raw {
		var loc ParsedLocation
		if err := json.Unmarshal(entry, &loc); err != nil {
			log.Debug().Err(err).Int("index", i).Msg("Dropping unparsable entry")
			continue
		}
		if !validCoordinates(loc.LatLon) {
			log.Debug().
				Int("index", i).
				Float64("lat", loc.LatLon.Lat()).
				Float64("lon", loc.LatLon.Lon()).
				Msg("Dropping entry with out-of-range coordinates")
			continue
		}
		loc.Country = strings.ToLower(strings.TrimSpace(loc.Country))
		locations = append(locations, loc)
	}

	return locations
}

func validCoordinates(ll LatLon) bool {
	return ll.Lat() >= -90 && ll.Lat() <= 90 && ll.Lon() >= -180 && ll.Lon() <= 180
}

// extractJSONArray trims code fences and surrounding prose down to the
// outermost JSON array, or returns "" when no array is present.
func extractJSONArray(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}
