// Package domain models National Weather Service (NWS) hazard products:
// the Hazardous Weather Outlook text bulletin and per-county CAP/ATOM alert
// feed entries.
//
// # Data Sources
//
// The Hazardous Weather Outlook (HWO) is a daily text product fetched from
// forecast.weather.gov (product=HWO, format=txt). The bulletin is a single
// text stream with period-decorated section markers:
//
//	.DAY ONE...This Afternoon and Tonight
//	<today's outlook paragraphs>
//	.DAYS TWO THROUGH SEVEN...Sunday through Friday
//	<multi-day outlook paragraphs>
//	.SPOTTER INFORMATION STATEMENT...
//	<spotter activation notice>
//	$$
//
// Any marker may be missing from a truncated bulletin; [ExtractOutlook]
// scans the stream sequentially and leaves absent sections empty rather
// than failing. The spotter boilerplate "Spotter activation is not expected
// at this time" is a negative signal: its presence means no activation.
//
// Per-county alerts come from the alerts.weather.gov CAP/ATOM feed,
// parameterized by a UGC zone code (e.g. Denton County, TX is TXZ103; its
// FIPS6 code is 048121). Each entry carries cap:event, cap:effective,
// cap:expires, cap:severity, cap:certainty, a free-text summary using '*'
// as an in-band paragraph separator, and a semicolon-delimited
// cap:areaDesc county list.
//
// # Tier Classification
//
// Every alert is bucketed into one of three display tiers: warn (immediate
// threat to life and property), watch (stay aware), and alert (everything
// else). Membership comes from configured event-name lists, compared
// case-insensitively and exactly. warn is checked before watch before
// alert so an event named in two lists is never downgraded, and an event
// named in none falls through to the alert tier with a logged
// configuration-gap warning; records are never dropped. See [ClassifyEvent].
//
// # Deduplication
//
// The same alert frequently appears in the feeds of several adjacent
// counties. [IsDuplicate] rejects a candidate when any stored record shares
// its feed identifier or its verbatim summary text; upstream feed bugs have
// produced both reused identifiers and duplicated summaries, and checking
// both catches either failure mode.
//
// # Observations
//
// Station observations from api.weather.gov arrive in SI units and are
// reduced to display units (degF, mph, inHg, inches) by
// [SummarizeConditions] for the conditions.json artifact.
package domain
