package domain

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
)

// Icons with tier-level meaning. Warn and watch tiers always display their
// canonical icon; only the catch-all tier keeps whatever the free-text
// lookup produced.
const (
	IconWarning      = "warning.svg"
	IconWatch        = "watch.svg"
	IconNotAvailable = "wi-na.svg"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// AssignIcon matches a free-text event description against the configured
// icon table (icon file → list of matching descriptions). Comparison is
// lowercased, whitespace-normalized, and exact. Unmatched descriptions get
// the "not available" icon. Icons are checked in sorted filename order so a
// description listed under two icons always resolves the same way.
func AssignIcon(description string, iconMatch map[string][]string) string {
	description = strings.ToLower(strings.TrimSpace(description))
	description = whitespaceRe.ReplaceAllString(description, " ")
	if description == "" {
		return IconNotAvailable
	}

	icons := make([]string, 0, len(iconMatch))
	for icon := range iconMatch {
		icons = append(icons, icon)
	}
	sort.Strings(icons)

	for _, icon := range icons {
		for _, name := range iconMatch[icon] {
			if description == strings.ToLower(strings.TrimSpace(name)) {
				return icon
			}
		}
	}
	return IconNotAvailable
}

// BuildAlertRecord normalizes one feed entry into an AlertRecord. The second
// return is false when the event type matched no tier list; the record is
// still classified TierAlert and kept, so configuration gaps are surfaced
// rather than dropped.
//
// The upstream feed uses literal '*' characters as in-band paragraph
// separators inside summaries; they are replaced with newlines here so the
// dashboard gets real line breaks.
func BuildAlertRecord(entry FeedEntry, tiers TierLists, iconMatch map[string][]string, logger *slog.Logger) (AlertRecord, bool) {
	if entry.Event == "" {
		logger.Warn("feed entry has no cap:event field, classifying as alert tier",
			"event_id", entry.ID)
	}

	summary := strings.ReplaceAll(entry.Summary, "*", "\n")
	tier, classified := ClassifyEvent(entry.Event, tiers)
	if !classified && entry.Event != "" {
		logger.Warn("event type matched no tier list, using alert tier",
			"event", entry.Event, "event_id", entry.ID)
	}

	icon := AssignIcon(entry.Event, iconMatch)
	switch tier {
	case TierWarn:
		icon = IconWarning
	case TierWatch:
		icon = IconWatch
	}

	rec := AlertRecord{
		EventID:   entry.ID,
		EventType: entry.Event,
		Severity:  entry.Severity,
		Certainty: entry.Certainty,
		Effective: entry.Effective,
		Expires:   entry.Expires,
		Summary:   summary,
		Tier:      tier,
		Icon:      icon,
	}
	rec.RenderedSummary = renderSummary(rec)
	return rec, classified
}

// renderSummary formats the one-paragraph human rendition written to the
// alerts text artifact, one block per alert.
func renderSummary(rec AlertRecord) string {
	return fmt.Sprintf("%s %s, %s - %s\nSummary: %s\n\n",
		rec.Severity, rec.EventType, rec.Effective, rec.Expires, rec.Summary)
}
