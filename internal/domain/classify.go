package domain

import "strings"

// TierLists holds the configured event-type names for each tier, compared
// case-insensitively and exactly. No fuzzy matching: an event name either
// appears in a list or it does not.
type TierLists struct {
	Warn  []string
	Watch []string
	Alert []string
}

// ClassifyEvent buckets a free-text event-type label into a tier. Lists are
// checked warn, then watch, then alert, so an event named in both a warn
// and a watch list is never downgraded. The second return is false when the
// event matched no list and fell through to TierAlert; callers log that as
// a tier-list configuration gap.
func ClassifyEvent(eventType string, tiers TierLists) (Tier, bool) {
	name := strings.ToLower(strings.TrimSpace(eventType))

	if containsFold(tiers.Warn, name) {
		return TierWarn, true
	}
	if containsFold(tiers.Watch, name) {
		return TierWatch, true
	}
	if containsFold(tiers.Alert, name) {
		return TierAlert, true
	}
	return TierAlert, false
}

func containsFold(list []string, lowered string) bool {
	for _, item := range list {
		if strings.ToLower(strings.TrimSpace(item)) == lowered {
			return true
		}
	}
	return false
}
