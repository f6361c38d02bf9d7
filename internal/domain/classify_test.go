package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testTierLists() TierLists {
	return TierLists{
		Warn: []string{
			"tornado warning", "severe thunderstorm warning", "flash flood warning",
			"blizzard warning", "ice storm warning", "high wind warning",
		},
		Watch: []string{
			"tornado watch", "severe thunderstorm watch", "winter storm watch",
			"flash flood watch", "heat advisory",
		},
		Alert: []string{
			"special weather statement", "air quality alert",
		},
	}
}

func TestClassifyEvent(t *testing.T) {
	tiers := testTierLists()

	tests := []struct {
		name      string
		eventType string
		tier      Tier
		matched   bool
	}{
		{"warn tier", "Tornado Warning", TierWarn, true},
		{"watch tier", "Severe Thunderstorm Watch", TierWatch, true},
		{"alert tier", "Special Weather Statement", TierAlert, true},
		{"case insensitive", "FLASH FLOOD WARNING", TierWarn, true},
		{"surrounding whitespace", "  Heat Advisory  ", TierWatch, true},
		{"unknown falls through", "Some Unknown Hazard", TierAlert, false},
		{"empty event type", "", TierAlert, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, matched := ClassifyEvent(tt.eventType, tiers)
			assert.Equal(t, tt.tier, tier)
			assert.Equal(t, tt.matched, matched)
		})
	}

	t.Run("warn beats watch for overlapping entry", func(t *testing.T) {
		overlapping := TierLists{
			Warn:  []string{"flood warning"},
			Watch: []string{"flood warning"},
			Alert: []string{"flood warning"},
		}
		tier, matched := ClassifyEvent("Flood Warning", overlapping)
		assert.Equal(t, TierWarn, tier)
		assert.True(t, matched)
	})

	t.Run("watch beats alert for overlapping entry", func(t *testing.T) {
		overlapping := TierLists{
			Watch: []string{"dense fog advisory"},
			Alert: []string{"dense fog advisory"},
		}
		tier, _ := ClassifyEvent("Dense Fog Advisory", overlapping)
		assert.Equal(t, TierWatch, tier)
	})
}
