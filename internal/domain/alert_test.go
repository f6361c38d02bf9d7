package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot(t *testing.T) {
	frozen := time.Date(2019, 5, 25, 11, 9, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	t.Cleanup(func() { SetClock(nil) })

	outlook := ExtractOutlook(fullBulletin)

	var buckets AlertBuckets
	buckets.Insert(AlertRecord{EventID: "1", Tier: TierWarn, Summary: "tornado"})
	buckets.Insert(AlertRecord{EventID: "2", Tier: TierAlert, Summary: "statement"})

	snap := NewSnapshot(outlook, buckets)

	assert.True(t, snap.Flags.HasWarnings)
	assert.False(t, snap.Flags.HasWatches)
	assert.True(t, snap.Flags.HasAlerts)
	assert.False(t, snap.Flags.HasSpotter)
	assert.Equal(t, frozen, snap.GeneratedAt)
	assert.Len(t, snap.Warn, 1)
	assert.Len(t, snap.Alert, 1)
}

func TestSnapshotJSONShape(t *testing.T) {
	outlook := ExtractOutlook(fullBulletin)
	var buckets AlertBuckets
	buckets.Insert(AlertRecord{EventID: "1", Tier: TierWarn, Summary: "tornado", Icon: IconWarning})

	data, err := json.Marshal(NewSnapshot(outlook, buckets))
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Keys the dashboard front end reads directly.
	for _, key := range []string{"hwo", "warn", "watch", "alerts", "flags"} {
		assert.Contains(t, decoded, key)
	}

	var hwo map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(decoded["hwo"], &hwo))
	for _, key := range []string{"dayone", "daystwothroughseven", "spotter", "has_spotter"} {
		assert.Contains(t, hwo, key)
	}

	var warn []map[string]any
	require.NoError(t, json.Unmarshal(decoded["warn"], &warn))
	require.Len(t, warn, 1)
	assert.Equal(t, "warning.svg", warn[0]["alert_icon"])
	assert.Equal(t, "warn", warn[0]["tier"])

	// Empty tiers are arrays, never null.
	assert.Equal(t, "[]", string(decoded["watch"]))
}
