// Command validate performs integrity checks on a deployment: the locations
// reference file, and optionally an output directory produced by a snapshot
// run. It verifies the artifact set parses, the tier buckets agree with the
// summary flags, and every record carries the fields the dashboard reads.
//
// Usage:
//
//	go run ./cmd/validate -locations locations.yaml -output-dir /tmp/weather
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/nws-snapshot-etl/internal/config"
	"github.com/couchcryptid/nws-snapshot-etl/internal/domain"
)

func main() {
	locationsFile := flag.String("locations", "locations.yaml", "locations reference file to validate")
	outputDir := flag.String("output-dir", "", "snapshot output directory to validate (optional)")
	flag.Parse()

	var failures int

	failures += checkLocations(*locationsFile)
	if *outputDir != "" {
		failures += checkArtifacts(*outputDir)
	}

	if failures > 0 {
		fmt.Printf("\nFAIL: %d check(s) failed\n", failures)
		os.Exit(1)
	}
	fmt.Println("\nOK: all checks passed")
}

func checkLocations(path string) int {
	fmt.Printf("== locations file: %s\n", path)

	locs, err := config.LoadLocations(path)
	if err != nil {
		return fail("load: %v", err)
	}

	var failures int

	zones := make(map[string][]string)
	for _, c := range locs.Counties {
		zones[c.Zone] = append(zones[c.Zone], c.Name)
		if c.FIPS == "" {
			fmt.Printf("  note: county %s has no FIPS code\n", c.Name)
		}
	}
	for zone, names := range zones {
		if len(names) > 1 {
			fmt.Printf("  note: zone %s shared by %s (fetched once per run)\n",
				zone, strings.Join(names, ", "))
		}
	}

	failures += checkTierList("warn_events", locs.WarnEvents)
	failures += checkTierList("watch_events", locs.WatchEvents)
	failures += checkTierList("alert_events", locs.AlertEvents)

	// An event type in two tier lists is classified by the higher tier; flag
	// it so the overlap is deliberate rather than a typo.
	seen := make(map[string]string)
	for _, pair := range []struct {
		tier   string
		events []string
	}{
		{"warn", locs.WarnEvents}, {"watch", locs.WatchEvents}, {"alert", locs.AlertEvents},
	} {
		for _, ev := range pair.events {
			key := strings.ToLower(strings.TrimSpace(ev))
			if prev, dup := seen[key]; dup {
				fmt.Printf("  note: %q appears in both %s and %s lists\n", ev, prev, pair.tier)
				continue
			}
			seen[key] = pair.tier
		}
	}

	if failures == 0 {
		fmt.Printf("  %d counties, %d tiered event types\n", len(locs.Counties), len(seen))
	}
	return failures
}

func checkTierList(name string, events []string) int {
	var failures int
	for _, ev := range events {
		if ev != strings.ToLower(ev) {
			failures += fail("%s entry %q is not lowercase", name, ev)
		}
	}
	return failures
}

func checkArtifacts(dir string) int {
	fmt.Printf("== output dir: %s\n", dir)

	var failures int
	snap, ok := readSnapshot(filepath.Join(dir, "alerts.json"))
	if !ok {
		return 1
	}

	failures += checkFlags(snap)
	for _, rec := range allRecords(snap) {
		failures += checkRecord(rec)
	}

	failures += checkOutlookDoc(filepath.Join(dir, "hwo.json"))
	failures += checkAlertsText(dir, snap)

	if failures == 0 {
		fmt.Printf("  %d warn, %d watch, %d alert records\n",
			len(snap.Warn), len(snap.Watch), len(snap.Alert))
	}
	return failures
}

func readSnapshot(path string) (domain.Snapshot, bool) {
	var snap domain.Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		fail("read %s: %v", path, err)
		return snap, false
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		fail("parse %s: %v", path, err)
		return snap, false
	}
	return snap, true
}

func checkFlags(snap domain.Snapshot) int {
	var failures int
	if snap.Flags.HasWarnings != (len(snap.Warn) > 0) {
		failures += fail("has_warnings=%v but %d warn records", snap.Flags.HasWarnings, len(snap.Warn))
	}
	if snap.Flags.HasWatches != (len(snap.Watch) > 0) {
		failures += fail("has_watches=%v but %d watch records", snap.Flags.HasWatches, len(snap.Watch))
	}
	if snap.Flags.HasAlerts != (len(snap.Alert) > 0) {
		failures += fail("has_alerts=%v but %d alert records", snap.Flags.HasAlerts, len(snap.Alert))
	}
	return failures
}

func checkRecord(rec domain.AlertRecord) int {
	var failures int
	if rec.Icon == "" {
		failures += fail("record %s has no icon", rec.EventID)
	}
	if rec.RenderedSummary == "" {
		failures += fail("record %s has no rendered summary", rec.EventID)
	}
	switch rec.Tier {
	case domain.TierWarn, domain.TierWatch, domain.TierAlert:
	default:
		failures += fail("record %s has unknown tier %q", rec.EventID, rec.Tier)
	}
	return failures
}

func checkOutlookDoc(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return fail("read %s: %v", path, err)
	}
	var sections domain.OutlookSections
	if err := json.Unmarshal(data, &sections); err != nil {
		return fail("parse %s: %v", path, err)
	}
	return 0
}

// checkAlertsText verifies the text artifact's presence matches the record
// count: present with content when there are alerts, absent when there are
// none.
func checkAlertsText(dir string, snap domain.Snapshot) int {
	path := filepath.Join(dir, "alerts_text.txt")
	total := len(snap.Warn) + len(snap.Watch) + len(snap.Alert)

	data, err := os.ReadFile(path)
	switch {
	case err != nil && total > 0:
		return fail("%d alert records but no alerts_text.txt", total)
	case err == nil && total == 0:
		return fail("alerts_text.txt present but snapshot has no alerts")
	case err == nil && len(data) == 0:
		return fail("alerts_text.txt is empty")
	}
	return 0
}

func allRecords(snap domain.Snapshot) []domain.AlertRecord {
	all := make([]domain.AlertRecord, 0, len(snap.Warn)+len(snap.Watch)+len(snap.Alert))
	all = append(all, snap.Warn...)
	all = append(all, snap.Watch...)
	all = append(all, snap.Alert...)
	return all
}

func fail(format string, args ...any) int {
	fmt.Printf("  FAIL: "+format+"\n", args...)
	return 1
}
