package nws

import (
	"encoding/xml"
	"fmt"

	"github.com/couchcryptid/nws-snapshot-etl/internal/domain"
)

// CAP/ATOM feed wire types. Tags match the CAP 1.1 extension elements by
// local name (cap:event, cap:areaDesc, and friends); the feed nests areaDesc
// under cap:geocode's sibling, but the flat local-name match is what the
// wwaatmget.php feed actually serves.

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string `xml:"id"`
	Summary   string `xml:"summary"`
	Event     string `xml:"event"`
	Effective string `xml:"effective"`
	Expires   string `xml:"expires"`
	Severity  string `xml:"severity"`
	Certainty string `xml:"certainty"`
	AreaDesc  string `xml:"areaDesc"`
}

// decodeFeed parses an ATOM alert feed document into narrow FeedEntry
// records. Absent tags become empty strings; the core never touches markup.
func decodeFeed(data []byte) ([]domain.FeedEntry, error) {
	var feed atomFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("decode alert feed: %w", err)
	}

	entries := make([]domain.FeedEntry, len(feed.Entries))
	for i, e := range feed.Entries {
		entries[i] = domain.FeedEntry{
			ID:        e.ID,
			Event:     e.Event,
			Effective: e.Effective,
			Expires:   e.Expires,
			Severity:  e.Severity,
			Certainty: e.Certainty,
			Summary:   e.Summary,
			AreaDesc:  e.AreaDesc,
		}
	}
	return entries, nil
}
