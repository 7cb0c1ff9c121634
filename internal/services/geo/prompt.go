package geo

import (
	"encoding/json"
	"strings"
)

// BuildPrompt renders an ordered link list into the system prompt sent to the
// completion client. The instructions pin the output contract: a bare JSON
// array, one {"latlon","country"} object per link in input order, omission
// allowed when no coordinates can be found. Building twice from the same list
// yields byte-identical text.
func BuildPrompt(links []string) string {
	if links == nil {
		links = []string{}
	}
	linksJSON, err := json.Marshal(links)
	if err != nil {
		// A []string never fails to marshal; keep the prompt well formed anyway.
		linksJSON = []byte("[]")
	}

	var b strings.Builder
	b.WriteString("You are given a JSON array of URLs (links) pointing to volunteer opportunity pages.\n")
	b.WriteString("For each URL produce a JSON object with EXACTLY these two keys:\n")
	b.WriteString("  - \"latlon\": an array [lat, lon] where lat and lon are parseable floats (latitude first),\n")
	b.WriteString("  - \"country\": the country for that lat/lon, as a lower-case English name (for example: 'japan').\n\n")
	b.WriteString("IMPORTANT:\n")
	b.WriteString(" - Output MUST be a single valid JSON array and NOTHING else (no markdown or commentary).\n")
	b.WriteString(" - Ensure lat and lon are parseable floats and in the order [latitude, longitude].\n")
	b.WriteString(" - Make sure that country is a full English name in lower case (no abbreviations).\n")
	b.WriteString(" - Return entries in the same order as the input links array. Omit any link if you cannot find coordinates.\n\n")
	b.WriteString("EXAMPLE OUTPUT FORMAT:\n")
	b.WriteString("[\n")
	b.WriteString("  {\"latlon\": [35.6897, 139.6922], \"country\": \"japan\"},\n")
	b.WriteString("  {\"latlon\": [-1.2833, 36.8167], \"country\": \"kenya\"}\n")
	b.WriteString("]\n\n")
	b.WriteString("Input links array:\n")
	b.Write(linksJSON)
	b.WriteString("\n\nReply now with ONLY the JSON array (no other text).")

	return b.String()
}
