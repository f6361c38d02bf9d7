package domain

import "time"

// Tier is the three-way display bucket assigned to each alert.
// Ordering is warn > watch > alert: warn means immediate threat to life and
// property, watch means stay aware, alert is the catch-all for advisories
// and anything the tier lists do not name.
type Tier string

const (
	TierWarn  Tier = "warn"
	TierWatch Tier = "watch"
	TierAlert Tier = "alert"
)

// FeedEntry is one item from the per-county CAP/ATOM alert feed, reduced to
// the fields this pipeline consumes. It is built at the XML boundary by the
// nws adapter; absent tags arrive as empty strings, never as parse errors.
type FeedEntry struct {
	ID        string
	Event     string
	Effective string
	Expires   string
	Severity  string
	Certainty string
	Summary   string
	AreaDesc  string
}

// AlertRecord is one normalized hazard notification. Effective and Expires
// are kept as the feed-reported timestamp strings; the dashboard renders
// them verbatim and upstream occasionally omits them entirely.
type AlertRecord struct {
	EventID         string `json:"event_id"`
	EventType       string `json:"event_type"`
	Severity        string `json:"severity"`
	Certainty       string `json:"certainty"`
	Effective       string `json:"startdate"`
	Expires         string `json:"enddate"`
	Summary         string `json:"summary"`
	Tier            Tier   `json:"tier"`
	Icon            string `json:"alert_icon"`
	RenderedSummary string `json:"warning_summary"`
}

// AlertBuckets accumulates one run's alerts, split by tier and kept in
// insertion order.
type AlertBuckets struct {
	Warn  []AlertRecord `json:"warn"`
	Watch []AlertRecord `json:"watch"`
	Alert []AlertRecord `json:"alerts"`
}

// Insert appends the record to the bucket named by its tier.
func (b *AlertBuckets) Insert(rec AlertRecord) {
	switch rec.Tier {
	case TierWarn:
		b.Warn = append(b.Warn, rec)
	case TierWatch:
		b.Watch = append(b.Watch, rec)
	default:
		b.Alert = append(b.Alert, rec)
	}
}

// Total returns the number of records across all three buckets.
func (b AlertBuckets) Total() int {
	return len(b.Warn) + len(b.Watch) + len(b.Alert)
}

// All returns every stored record in insertion order, warn bucket first.
func (b AlertBuckets) All() []AlertRecord {
	out := make([]AlertRecord, 0, b.Total())
	out = append(out, b.Warn...)
	out = append(out, b.Watch...)
	out = append(out, b.Alert...)
	return out
}

// SummaryFlags are the boolean rollups the dashboard uses to decide which
// panels to draw without walking the buckets.
type SummaryFlags struct {
	HasWarnings bool `json:"has_warnings"`
	HasWatches  bool `json:"has_watches"`
	HasAlerts   bool `json:"has_alerts"`
	HasSpotter  bool `json:"has_spotter"`
}

// Snapshot is the combined structure serialized to alerts.json: the parsed
// outlook, the three tier buckets, and the summary flags.
type Snapshot struct {
	Outlook     OutlookSections `json:"hwo"`
	Warn        []AlertRecord   `json:"warn"`
	Watch       []AlertRecord   `json:"watch"`
	Alert       []AlertRecord   `json:"alerts"`
	Flags       SummaryFlags    `json:"flags"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// NewSnapshot assembles the serializable snapshot from a run's outlook and
// buckets, deriving the summary flags.
func NewSnapshot(outlook OutlookSections, buckets AlertBuckets) Snapshot {
	return Snapshot{
		Outlook: outlook,
		// Empty tiers serialize as [] rather than null; consumers iterate
		// the arrays unconditionally.
		Warn:  nonNil(buckets.Warn),
		Watch: nonNil(buckets.Watch),
		Alert: nonNil(buckets.Alert),
		Flags: SummaryFlags{
			HasWarnings: len(buckets.Warn) > 0,
			HasWatches:  len(buckets.Watch) > 0,
			HasAlerts:   len(buckets.Alert) > 0,
			HasSpotter:  outlook.HasSpotterActivation,
		},
		GeneratedAt: clock.Now().UTC(),
	}
}

func nonNil(recs []AlertRecord) []AlertRecord {
	if recs == nil {
		return []AlertRecord{}
	}
	return recs
}
