package geo

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// LinkReconciler maps parsed geo-records back onto their originating links,
// populating the link and name fields of the result.
type LinkReconciler interface {
	Reconcile(parsed []ParsedLocation, links []string) ([]Location, error)
}

// PositionalReconciler pairs each parsed record with the link at the same
// index. This relies on the prompt's contract that the model replies in input
// order and only omits entries; it cannot recover a pairing when the model
// returns more records than links.
type PositionalReconciler struct{}

func (PositionalReconciler) Reconcile(parsed []ParsedLocation, links []string) ([]Location, error) {
	if len(parsed) > len(links) {
		return nil, fmt.Errorf("parsed %d records for %d links", len(parsed), len(links))
	}

	locations := make([]Location, len(parsed))
	for i, p := range parsed {
		locations[i] = Location{
			LatLon:  p.LatLon,
			Country: p.Country,
			Link:    links[i],
			Name:    nameFromLink(links[i]),
		}
	}
	return locations, nil
}

// nameFromLink derives a human-readable name from a URL slug: the last path
// segment with separators turned into spaces and words title-cased. Falls
// back to the host when the path carries no usable segment, and to the raw
// string when it does not parse as a URL at all.
func nameFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return link
	}

	segment := path.Base(strings.TrimSuffix(u.Path, "/"))
	if ext := path.Ext(segment); ext != "" {
		segment = strings.TrimSuffix(segment, ext)
	}
	if segment == "." || segment == "/" || segment == "" {
		return u.Host
	}

	segment = strings.NewReplacer("-", " ", "_", " ", "+", " ").Replace(segment)
	words := strings.Fields(segment)
	if len(words) == 0 {
		return u.Host
	}
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
