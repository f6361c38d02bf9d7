package nws

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	headerContentType = "Content-Type"
	contentTypeXML    = "text/xml"
)

const testFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:cap="urn:oasis:names:tc:emergency:cap:1.1">
  <id>https://alerts.weather.gov/cap/wwaatmget.php?x=TXZ103</id>
  <title>Current Watches, Warnings and Advisories</title>
  <entry>
    <id>https://alerts.weather.gov/cap/wwacapget.php?x=TX1255</id>
    <title>Tornado Warning issued May 25</title>
    <summary>At 609 AM a confirmed tornado was located near Bowie * Take shelter now</summary>
    <cap:event>Tornado Warning</cap:event>
    <cap:effective>2019-05-25T06:09:00-05:00</cap:effective>
    <cap:expires>2019-05-25T07:00:00-05:00</cap:expires>
    <cap:severity>Extreme</cap:severity>
    <cap:certainty>Observed</cap:certainty>
    <cap:areaDesc>Montague; Denton; Wise</cap:areaDesc>
  </entry>
  <entry>
    <id>https://alerts.weather.gov/cap/wwacapget.php?x=TX1256</id>
    <title>Flood Advisory issued May 25</title>
    <summary>Minor flooding is occurring along Clear Creek</summary>
    <cap:event>Flood Advisory</cap:event>
    <cap:effective>2019-05-25T06:30:00-05:00</cap:effective>
    <cap:expires>2019-05-25T09:30:00-05:00</cap:expires>
    <cap:severity>Minor</cap:severity>
    <cap:certainty>Likely</cap:certainty>
    <cap:areaDesc>Denton</cap:areaDesc>
  </entry>
</feed>`

func testClientFor(srvURL string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		hwoURL:       srvURL + "/product.php",
		alertsURL:    srvURL + "/cap/wwaatmget.php",
		obsBaseURL:   srvURL,
		radarBaseURL: srvURL + "/radar",
		site:         "DDC",
		issuedBy:     "FWD",
		obsStation:   "KDTO",
		radarStation: "FWS",
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_FetchOutlook(t *testing.T) {
	bulletin := ".DAY ONE...Today\n\n" + strings.Repeat("Severe weather is not expected today. ", 10) + "\n$$\n"

	t.Run("extracts bulletin from pre block", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "HWO", r.URL.Query().Get("product"))
			assert.Equal(t, "FWD", r.URL.Query().Get("issuedby"))
			assert.Equal(t, "DDC", r.URL.Query().Get("site"))
			assert.Equal(t, "txt", r.URL.Query().Get("format"))

			page := `<html><body><div id="local"><pre class="glossary">short stub</pre>` +
				`<pre class="glossaryProduct">` + bulletin + `</pre></div></body></html>`
			_, _ = w.Write([]byte(page))
		}))
		defer srv.Close()

		text, err := testClientFor(srv.URL).FetchOutlook(context.Background())
		require.NoError(t, err)
		assert.Equal(t, bulletin, text)
	})

	t.Run("no qualifying pre block", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html><body><pre>too short</pre></body></html>"))
		}))
		defer srv.Close()

		_, err := testClientFor(srv.URL).FetchOutlook(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no bulletin text")
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := testClientFor(srv.URL).FetchOutlook(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 502")
	})
}

func TestClient_FetchCountyAlerts(t *testing.T) {
	t.Run("decodes feed entries", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "TXZ103", r.URL.Query().Get("x"))
			assert.Equal(t, "1", r.URL.Query().Get("y"))
			w.Header().Set(headerContentType, contentTypeXML)
			_, _ = w.Write([]byte(testFeedXML))
		}))
		defer srv.Close()

		entries, err := testClientFor(srv.URL).FetchCountyAlerts(context.Background(), "TXZ103")
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, "https://alerts.weather.gov/cap/wwacapget.php?x=TX1255", entries[0].ID)
		assert.Equal(t, "Tornado Warning", entries[0].Event)
		assert.Equal(t, "2019-05-25T06:09:00-05:00", entries[0].Effective)
		assert.Equal(t, "2019-05-25T07:00:00-05:00", entries[0].Expires)
		assert.Equal(t, "Extreme", entries[0].Severity)
		assert.Equal(t, "Observed", entries[0].Certainty)
		assert.Equal(t, "Montague; Denton; Wise", entries[0].AreaDesc)
		assert.Contains(t, entries[0].Summary, "confirmed tornado")

		assert.Equal(t, "Flood Advisory", entries[1].Event)
	})

	t.Run("empty feed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set(headerContentType, contentTypeXML)
			_, _ = w.Write([]byte(`<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"></feed>`))
		}))
		defer srv.Close()

		entries, err := testClientFor(srv.URL).FetchCountyAlerts(context.Background(), "TXZ103")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("wrong content type", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set(headerContentType, "text/html")
			_, _ = w.Write([]byte("<html>maintenance page</html>"))
		}))
		defer srv.Close()

		_, err := testClientFor(srv.URL).FetchCountyAlerts(context.Background(), "TXZ103")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected content type")
	})

	t.Run("malformed xml", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set(headerContentType, contentTypeXML)
			_, _ = w.Write([]byte("<feed><entry>"))
		}))
		defer srv.Close()

		_, err := testClientFor(srv.URL).FetchCountyAlerts(context.Background(), "TXZ103")
		require.Error(t, err)
	})
}

func TestClient_FetchObservation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stations/KDTO/observations/current", r.URL.Path)
		w.Header().Set(headerContentType, "application/geo+json")
		_, _ = w.Write([]byte(`{"properties":{
			"timestamp":"2019-05-25T11:53:00+00:00",
			"temperature":{"unitCode":"wmoUnit:degC","value":25.0},
			"dewpoint":{"unitCode":"wmoUnit:degC","value":20.6},
			"windSpeed":{"unitCode":"wmoUnit:m_s-1","value":5.66},
			"windGust":{"unitCode":"wmoUnit:m_s-1","value":null},
			"barometricPressure":{"unitCode":"wmoUnit:Pa","value":101660}
		}}`))
	}))
	defer srv.Close()

	obs, err := testClientFor(srv.URL).FetchObservation(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2019-05-25T11:53:00+00:00", obs.Timestamp)
	require.NotNil(t, obs.Temperature)
	assert.Equal(t, 25.0, *obs.Temperature)
	require.NotNil(t, obs.WindSpeed)
	assert.Equal(t, 5.66, *obs.WindSpeed)
	assert.Nil(t, obs.WindGust)
	assert.Nil(t, obs.HeatIndex)
}

func TestClient_FetchRadarImage(t *testing.T) {
	gif := []byte("GIF89a fake image bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/radar/FWS_N0R_0.gif", r.URL.Path)
		_, _ = w.Write(gif)
	}))
	defer srv.Close()

	data, err := testClientFor(srv.URL).FetchRadarImage(context.Background(), "N0R_0.gif")
	require.NoError(t, err)
	assert.Equal(t, gif, data)
}

func TestExtractPreText(t *testing.T) {
	long := strings.Repeat("x", 250)

	tests := []struct {
		name string
		page string
		want string
	}{
		{"first long block wins", "<pre>short</pre><pre>" + long + "</pre>", long},
		{"attributes on tag", `<pre class="glossaryProduct">` + long + `</pre>`, long},
		{"entities unescaped", "<pre>" + long + " &amp; more</pre>", long + " & more"},
		{"no pre block", "<html><body>nothing</body></html>", ""},
		{"unclosed block", "<pre>" + long, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractPreText(tt.page, 200))
		})
	}
}
