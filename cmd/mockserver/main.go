// Command mockserver serves canned NWS product responses for local runs of
// the snapshot pipeline: the HWO product page, a per-zone CAP/ATOM alert
// feed, a station observation document, and radar imagery.
//
// Usage:
//
//	go run ./cmd/mockserver -addr :8080 -alerts 1
//
// Point the snapshot job at it with:
//
//	HWO_URL=http://localhost:8080/product.php \
//	ALERTS_URL=http://localhost:8080/cap/wwaatmget.php \
//	OBS_URL=http://localhost:8080 \
//	RADAR_URL=http://localhost:8080/radar
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
)

const mockBulletin = `000
FLUS44 KFWD 251130

Hazardous Weather Outlook
National Weather Service Fort Worth TX
630 AM CDT Sat May 25 2024

TXZ103-104-261200-
Denton-Collin-
630 AM CDT Sat May 25 2024

This Hazardous Weather Outlook is for portions of North Texas.

.DAY ONE...Today and Tonight

Severe thunderstorms are expected late this afternoon into tonight.
Very large hail and damaging winds will be the primary threats.

.DAYS TWO THROUGH SEVEN...Sunday through Friday

Additional severe storms are possible Sunday afternoon before drier
and hotter weather arrives for the work week.

.SPOTTER INFORMATION STATEMENT...

Spotter activation may be needed late this afternoon and tonight.

$$
`

const mockFeedWithAlerts = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:cap="urn:oasis:names:tc:emergency:cap:1.1">
  <id>https://alerts.weather.gov/cap/wwaatmget.php?x=TXZ103</id>
  <title>Current Watches, Warnings and Advisories</title>
  <entry>
    <id>https://alerts.weather.gov/cap/wwacapget.php?x=TX1301</id>
    <title>Severe Thunderstorm Warning issued May 25</title>
    <summary>At 440 PM a severe thunderstorm was located near Krum * Golf ball size hail and 60 mph wind gusts possible</summary>
    <cap:event>Severe Thunderstorm Warning</cap:event>
    <cap:effective>2024-05-25T16:40:00-05:00</cap:effective>
    <cap:expires>2024-05-25T17:30:00-05:00</cap:expires>
    <cap:severity>Severe</cap:severity>
    <cap:certainty>Observed</cap:certainty>
    <cap:areaDesc>Denton; Cooke</cap:areaDesc>
  </entry>
  <entry>
    <id>https://alerts.weather.gov/cap/wwacapget.php?x=TX1302</id>
    <title>Tornado Watch issued May 25</title>
    <summary>Conditions are favorable for tornadoes through 10 PM</summary>
    <cap:event>Tornado Watch</cap:event>
    <cap:effective>2024-05-25T15:00:00-05:00</cap:effective>
    <cap:expires>2024-05-25T22:00:00-05:00</cap:expires>
    <cap:severity>Severe</cap:severity>
    <cap:certainty>Possible</cap:certainty>
    <cap:areaDesc>Denton; Collin; Tarrant</cap:areaDesc>
  </entry>
</feed>`

const mockFeedEmpty = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <id>https://alerts.weather.gov/cap/wwaatmget.php?x=TXZ103</id>
  <title>Current Watches, Warnings and Advisories</title>
</feed>`

const mockObservation = `{"properties":{
  "timestamp":"2024-05-25T21:53:00+00:00",
  "temperature":{"unitCode":"wmoUnit:degC","value":31.1},
  "dewpoint":{"unitCode":"wmoUnit:degC","value":21.7},
  "windDirection":{"unitCode":"wmoUnit:degree_(angle)","value":180},
  "windSpeed":{"unitCode":"wmoUnit:m_s-1","value":8.75},
  "windGust":{"unitCode":"wmoUnit:m_s-1","value":null},
  "barometricPressure":{"unitCode":"wmoUnit:Pa","value":100910},
  "relativeHumidity":{"unitCode":"wmoUnit:percent","value":57.2}
}}`

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	withAlerts := flag.Bool("alerts", true, "serve active alerts (false serves an empty feed)")
	flag.Parse()

	mux := http.NewServeMux()

	mux.HandleFunc("/product.php", func(w http.ResponseWriter, r *http.Request) {
		logRequest(r)
		page := `<html><body><div id="local"><pre class="glossaryProduct">` +
			mockBulletin + `</pre></div></body></html>`
		_, _ = w.Write([]byte(page))
	})

	mux.HandleFunc("/cap/wwaatmget.php", func(w http.ResponseWriter, r *http.Request) {
		logRequest(r)
		w.Header().Set("Content-Type", "text/xml")
		if *withAlerts {
			_, _ = w.Write([]byte(mockFeedWithAlerts))
			return
		}
		_, _ = w.Write([]byte(mockFeedEmpty))
	})

	mux.HandleFunc("/stations/", func(w http.ResponseWriter, r *http.Request) {
		logRequest(r)
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write([]byte(mockObservation))
	})

	mux.HandleFunc("/radar/", func(w http.ResponseWriter, r *http.Request) {
		logRequest(r)
		if len(r.URL.Path) > 4 && r.URL.Path[len(r.URL.Path)-4:] == ".gfw" {
			_, _ = fmt.Fprint(w, "0.01\n0.00\n0.00\n-0.01\n-100.0\n37.0\n")
			return
		}
		w.Header().Set("Content-Type", "image/gif")
		// Minimal 1x1 GIF.
		_, _ = w.Write([]byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;"))
	})

	log.Printf("mock NWS upstream listening on %s (alerts=%v)", *addr, *withAlerts)
	log.Fatal(http.ListenAndServe(*addr, mux))
}

func logRequest(r *http.Request) {
	log.Printf("%s %s", r.Method, r.URL.String())
}
