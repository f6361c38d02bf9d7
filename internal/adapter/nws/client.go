// Package nws fetches public National Weather Service products: the
// Hazardous Weather Outlook text bulletin, per-county CAP/ATOM alert feeds,
// current station observations, and radar imagery.
package nws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/couchcryptid/nws-snapshot-etl/internal/config"
	"github.com/couchcryptid/nws-snapshot-etl/internal/domain"
)

// minOutlookLength filters out the stub <pre> blocks the product page also
// carries (glossary fragments, version links). A real HWO bulletin is
// always longer than this.
const minOutlookLength = 200

// Client retrieves NWS/NOAA products over HTTP. All requests share one
// per-request timeout; a slow upstream fails that product only.
type Client struct {
	httpClient   *http.Client
	hwoURL       string
	alertsURL    string
	obsBaseURL   string
	radarBaseURL string

	site         string
	issuedBy     string
	obsStation   string
	radarStation string

	logger *slog.Logger
}

// NewClient creates an NWS product client for the configured site.
func NewClient(cfg *config.Config, locs *config.Locations, logger *slog.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.RequestTimeout},
		hwoURL:       cfg.HWOURL,
		alertsURL:    cfg.AlertsURL,
		obsBaseURL:   cfg.ObsBaseURL,
		radarBaseURL: cfg.RadarBaseURL,
		site:         locs.HWOSite,
		issuedBy:     locs.NWSAbbr,
		obsStation:   locs.ObsStation,
		radarStation: locs.RadarStation,
		logger:       logger,
	}
}

// FetchOutlook retrieves the raw Hazardous Weather Outlook bulletin text.
// The product page wraps the bulletin in an HTML <pre> block; the first
// block longer than minOutlookLength is the product.
func (c *Client) FetchOutlook(ctx context.Context) (string, error) {
	params := url.Values{
		"site":     {c.site},
		"issuedby": {c.issuedBy},
		"product":  {"HWO"},
		"format":   {"txt"},
		"version":  {"1"},
		"glossary": {"0"},
	}

	body, _, err := c.get(ctx, c.hwoURL+"?"+params.Encode())
	if err != nil {
		return "", fmt.Errorf("fetch outlook: %w", err)
	}

	text := extractPreText(string(body), minOutlookLength)
	if text == "" {
		return "", errors.New("fetch outlook: no bulletin text in product page")
	}
	return text, nil
}

// FetchCountyAlerts retrieves the CAP/ATOM alert feed for one zone code.
// The feed endpoint serves text/xml; anything else is treated as an upstream
// failure rather than parsed on faith.
func (c *Client) FetchCountyAlerts(ctx context.Context, zone string) ([]domain.FeedEntry, error) {
	params := url.Values{
		"x": {zone},
		"y": {"1"},
	}

	body, contentType, err := c.get(ctx, c.alertsURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetch alerts for zone %s: %w", zone, err)
	}
	if !strings.Contains(contentType, "xml") {
		return nil, fmt.Errorf("fetch alerts for zone %s: unexpected content type %q", zone, contentType)
	}

	entries, err := decodeFeed(body)
	if err != nil {
		return nil, fmt.Errorf("fetch alerts for zone %s: %w", zone, err)
	}
	return entries, nil
}

// observationResponse mirrors the api.weather.gov station observation
// payload. Readings carry SI values that may be null.
type observationResponse struct {
	Properties struct {
		Timestamp          string  `json:"timestamp"`
		Temperature        reading `json:"temperature"`
		Dewpoint           reading `json:"dewpoint"`
		WindDirection      reading `json:"windDirection"`
		WindSpeed          reading `json:"windSpeed"`
		WindGust           reading `json:"windGust"`
		BarometricPressure reading `json:"barometricPressure"`
		RelativeHumidity   reading `json:"relativeHumidity"`
		HeatIndex          reading `json:"heatIndex"`
		PrecipLastHour     reading `json:"precipitationLastHour"`
	} `json:"properties"`
}

type reading struct {
	Value    *float64 `json:"value"`
	UnitCode string   `json:"unitCode"`
}

// FetchObservation retrieves the current observation for the configured
// station, still in the SI units the API reports.
func (c *Client) FetchObservation(ctx context.Context) (domain.Observation, error) {
	u := fmt.Sprintf("%s/stations/%s/observations/current", c.obsBaseURL, url.PathEscape(c.obsStation))

	body, _, err := c.get(ctx, u)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("fetch observation for %s: %w", c.obsStation, err)
	}

	var resp observationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Observation{}, fmt.Errorf("decode observation for %s: %w", c.obsStation, err)
	}

	p := resp.Properties
	return domain.Observation{
		Timestamp:          p.Timestamp,
		Temperature:        p.Temperature.Value,
		Dewpoint:           p.Dewpoint.Value,
		WindDirection:      p.WindDirection.Value,
		WindSpeed:          p.WindSpeed.Value,
		WindGust:           p.WindGust.Value,
		BarometricPressure: p.BarometricPressure.Value,
		RelativeHumidity:   p.RelativeHumidity.Value,
		HeatIndex:          p.HeatIndex.Value,
		PrecipLastHour:     p.PrecipLastHour.Value,
	}, nil
}

// FetchRadarImage retrieves one radar product file for the configured radar
// station, e.g. image "N0R_0.gif" or the "N0R_0.gfw" world file.
func (c *Client) FetchRadarImage(ctx context.Context, image string) ([]byte, error) {
	u := fmt.Sprintf("%s/%s_%s", c.radarBaseURL, c.radarStation, image)

	body, _, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch radar image %s: %w", image, err)
	}
	return body, nil
}

// get issues a GET request and returns the body and content type. Non-200
// responses are errors.
func (c *Client) get(ctx context.Context, fullURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}

	c.logger.Debug("fetching product", "url", fullURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// extractPreText pulls the text of the first <pre> block longer than minLen
// out of an HTML document. Returns "" when no block qualifies.
func extractPreText(page string, minLen int) string {
	rest := page
	for {
		start := strings.Index(rest, "<pre")
		if start < 0 {
			return ""
		}
		rest = rest[start:]

		open := strings.Index(rest, ">")
		if open < 0 {
			return ""
		}
		rest = rest[open+1:]

		end := strings.Index(rest, "</pre>")
		if end < 0 {
			return ""
		}

		text := html.UnescapeString(rest[:end])
		if len(strings.TrimSpace(text)) > minLen {
			return text
		}
		rest = rest[end:]
	}
}
