package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/couchcryptid/nws-snapshot-etl/internal/config"
	"github.com/couchcryptid/nws-snapshot-etl/internal/domain"
	"github.com/couchcryptid/nws-snapshot-etl/internal/observability"
)

// Artifact file names under the output directory.
const (
	FileAlerts     = "alerts.json"
	FileAlertsText = "alerts_text.txt"
	FileOutlook    = "hwo.json"
	FileTodayText  = "today_hwo.txt"
	FileRawOutlook = "current_hwo.txt"
	FileConditions = "conditions.json"
	FileRadarImage = "current_image.gif"
	FileRadarWorld = "current_image.gfw"
)

// Placeholder written when the outlook product cannot be fetched.
const noDataOutlook = "Hazardous Weather Outlook:\n No data"

// Remote radar product names for the configured station.
const (
	radarImageProduct = "N0R_0.gif"
	radarWorldProduct = "N0R_0.gfw"
)

// ProductFetcher retrieves weather products from the upstream service.
type ProductFetcher interface {
	FetchOutlook(ctx context.Context) (string, error)
	FetchCountyAlerts(ctx context.Context, zone string) ([]domain.FeedEntry, error)
	FetchObservation(ctx context.Context) (domain.Observation, error)
	FetchRadarImage(ctx context.Context, image string) ([]byte, error)
}

// ArtifactStore persists run output for downstream consumers.
type ArtifactStore interface {
	WriteJSON(name string, v any) error
	WriteText(name, text string) error
	WriteBytes(name string, data []byte) error
	Remove(name string) error
}

// Pipeline orchestrates one snapshot run: fetch the outlook, collect and
// classify county alerts, and write the artifact set.
type Pipeline struct {
	fetcher ProductFetcher
	store   ArtifactStore
	locs    *config.Locations
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(f ProductFetcher, s ArtifactStore, locs *config.Locations, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		fetcher: f,
		store:   s,
		locs:    locs,
		logger:  logger,
		metrics: metrics,
	}
}

// Run executes a single snapshot pass. Upstream product failures degrade to
// placeholder output and are never fatal; only artifact write failures abort
// the run.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	defer func() {
		p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	}()

	p.logger.Info("snapshot run started",
		"site", p.locs.HWOSite, "counties", len(p.locs.Counties))

	outlook, err := p.collectOutlook(ctx)
	if err != nil {
		return err
	}

	buckets := p.collectAlerts(ctx)

	snapshot := domain.NewSnapshot(outlook, buckets)
	if err := p.store.WriteJSON(FileAlerts, snapshot); err != nil {
		return err
	}
	if err := p.writeAlertsText(buckets); err != nil {
		return err
	}

	p.collectConditions(ctx)
	p.collectRadar(ctx)

	p.logger.Info("snapshot run complete",
		"alerts", buckets.Total(),
		"warn", len(buckets.Warn),
		"watch", len(buckets.Watch),
		"duration", time.Since(start))
	return nil
}

// collectOutlook fetches and splits the hazardous weather outlook, writing
// the raw bulletin, section document, and today headline artifacts. A fetch
// failure produces placeholder output.
func (p *Pipeline) collectOutlook(ctx context.Context) (domain.OutlookSections, error) {
	raw, err := p.fetcher.FetchOutlook(ctx)
	if err != nil {
		p.metrics.ProductFetches.WithLabelValues("hwo", "error").Inc()
		p.logger.Warn("outlook fetch failed, writing placeholder", "error", err)

		var empty domain.OutlookSections
		if err := p.store.WriteJSON(FileOutlook, empty); err != nil {
			return empty, err
		}
		return empty, p.store.WriteText(FileTodayText, noDataOutlook)
	}
	p.metrics.ProductFetches.WithLabelValues("hwo", "success").Inc()

	if err := p.store.WriteText(FileRawOutlook, raw); err != nil {
		return domain.OutlookSections{}, err
	}

	sections := domain.ExtractOutlook(raw)
	if err := p.store.WriteJSON(FileOutlook, sections); err != nil {
		return sections, err
	}

	today := sections.TodayText
	if today == "" {
		today = noDataOutlook
	}
	return sections, p.store.WriteText(FileTodayText, today)
}

// collectAlerts walks the configured counties in order, fetching each zone
// feed once, filtering entries to the county, and deduplicating into tier
// buckets. A failing county is logged and skipped.
func (p *Pipeline) collectAlerts(ctx context.Context) domain.AlertBuckets {
	var buckets domain.AlertBuckets

	tiers := domain.TierLists{
		Warn:  p.locs.WarnEvents,
		Watch: p.locs.WatchEvents,
		Alert: p.locs.AlertEvents,
	}

	// Counties can share a forecast zone; fetch each zone once and reuse.
	zoneEntries := make(map[string][]domain.FeedEntry)

	for _, county := range p.locs.Counties {
		entries, ok := zoneEntries[county.Zone]
		if !ok {
			var err error
			entries, err = p.fetcher.FetchCountyAlerts(ctx, county.Zone)
			if err != nil {
				p.metrics.ProductFetches.WithLabelValues("alerts", "error").Inc()
				p.logger.Warn("county alerts fetch failed, skipping",
					"county", county.Name, "zone", county.Zone, "error", err)
				zoneEntries[county.Zone] = nil
				continue
			}
			p.metrics.ProductFetches.WithLabelValues("alerts", "success").Inc()
			p.metrics.EntriesSeen.Add(float64(len(entries)))
			zoneEntries[county.Zone] = entries
		}

		for _, entry := range entries {
			if _, relevant := domain.RelevantCounty(entry.AreaDesc, []string{county.Name}); !relevant {
				continue
			}

			rec, classified := domain.BuildAlertRecord(entry, tiers, p.locs.IconMatch, p.logger)
			if !classified {
				p.metrics.TierFallbacks.Inc()
			}

			if domain.IsDuplicate(rec, buckets) {
				p.metrics.DuplicatesSkipped.Inc()
				p.logger.Debug("duplicate alert skipped",
					"event_id", rec.EventID, "county", county.Name)
				continue
			}

			buckets.Insert(rec)
			p.metrics.AlertsStored.WithLabelValues(string(rec.Tier)).Inc()
			p.logger.Info("alert stored",
				"event", rec.EventType, "tier", rec.Tier, "county", county.Name)
		}
	}

	return buckets
}

// writeAlertsText writes the rendered alert blocks in insertion order, or
// removes a stale file when the run collected no alerts.
func (p *Pipeline) writeAlertsText(buckets domain.AlertBuckets) error {
	if buckets.Total() == 0 {
		return p.store.Remove(FileAlertsText)
	}

	var b strings.Builder
	for _, rec := range buckets.All() {
		b.WriteString(rec.RenderedSummary)
	}
	return p.store.WriteText(FileAlertsText, b.String())
}

// collectConditions fetches the current station observation and writes the
// converted summary. Failures leave the previous artifact in place.
func (p *Pipeline) collectConditions(ctx context.Context) {
	obs, err := p.fetcher.FetchObservation(ctx)
	if err != nil {
		p.metrics.ProductFetches.WithLabelValues("observation", "error").Inc()
		p.logger.Warn("observation fetch failed, keeping previous conditions", "error", err)
		return
	}
	p.metrics.ProductFetches.WithLabelValues("observation", "success").Inc()

	if err := p.store.WriteJSON(FileConditions, domain.SummarizeConditions(obs)); err != nil {
		p.logger.Warn("conditions write failed", "error", err)
	}
}

// collectRadar fetches the radar raster and its world file.
func (p *Pipeline) collectRadar(ctx context.Context) {
	products := []struct {
		remote string
		local  string
	}{
		{radarImageProduct, FileRadarImage},
		{radarWorldProduct, FileRadarWorld},
	}

	for _, prod := range products {
		data, err := p.fetcher.FetchRadarImage(ctx, prod.remote)
		if err != nil {
			p.metrics.ProductFetches.WithLabelValues("radar", "error").Inc()
			p.logger.Warn("radar fetch failed, keeping previous image",
				"product", prod.remote, "error", err)
			continue
		}
		p.metrics.ProductFetches.WithLabelValues("radar", "success").Inc()

		if err := p.store.WriteBytes(prod.local, data); err != nil {
			p.logger.Warn("radar write failed", "name", prod.local, "error", err)
		}
	}
}
