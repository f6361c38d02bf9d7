package domain

import (
	"regexp"
	"strings"
)

// spotterNotExpected is the NWS boilerplate meaning no spotter activation.
// Its presence in the spotter section means spotters are NOT needed.
const spotterNotExpected = "Spotter activation is not expected at this time"

// Section markers as they appear in the raw bulletin. Offices decorate them
// with leading and trailing runs of periods (".DAY ONE...Tonight and Sunday").
const (
	markerDayOne  = "DAY ONE"
	markerDaysTwo = "DAYS TWO THROUGH SEVEN"
	markerSpotter = "SPOTTER INFORMATION STATEMENT"
	markerEnd     = "$$"
)

// SectionText is a [lead sentence, supporting detail] pair, serialized as a
// two-element JSON array so display surfaces can show a short headline with
// optional detail.
type SectionText [2]string

// Lead returns the headline half of the section.
func (s SectionText) Lead() string { return s[0] }

// Detail returns the supporting-detail half of the section.
func (s SectionText) Detail() string { return s[1] }

// IsZero reports whether the section was never populated.
func (s SectionText) IsZero() bool { return s[0] == "" && s[1] == "" }

// OutlookSections is the parsed Hazardous Weather Outlook. Sections missing
// from a truncated bulletin stay at their zero values; extraction never fails
// one section because another is absent.
type OutlookSections struct {
	DayOne               SectionText `json:"dayone"`
	DaysTwoThroughSeven  SectionText `json:"daystwothroughseven"`
	Spotter              SectionText `json:"spotter"`
	TodayText            string      `json:"today_text"`
	HasSpotterActivation bool        `json:"has_spotter"`
}

// outlook scanner states. The bulletin is a single ordered stream of
// markers; a sequential scan keeps missing-marker behavior explicit instead
// of leaving it to regex backtracking.
type outlookState int

const (
	seekDayOne outlookState = iota
	inDayOne
	inDaysTwoThroughSeven
	inSpotter
)

var multiPeriodRe = regexp.MustCompile(`\.{2,}`)

// ExtractOutlook splits a raw Hazardous Weather Outlook bulletin into its
// three named sections and cleans each into compact text. Any marker may be
// absent; the corresponding section is simply left empty. Markers usually
// open a line of their own but some offices run the whole product together,
// so a marker is honored at any position in the stream: text before it is
// filed into the section being collected, text after it starts the next.
func ExtractOutlook(raw string) OutlookSections {
	var sections OutlookSections

	state := seekDayOne
	var dayOne, daysTwo, spotter []string

	collect := func(seg string) {
		seg = strings.TrimSpace(seg)
		// Purely decorative period runs around markers carry no text.
		if strings.Trim(seg, ".") == "" {
			return
		}
		switch state {
		case inDayOne:
			dayOne = append(dayOne, seg)
		case inDaysTwoThroughSeven:
			daysTwo = append(daysTwo, seg)
		case inSpotter:
			spotter = append(spotter, seg)
		}
	}

scan:
	for _, line := range strings.Split(raw, "\n") {
		text := line
		for {
			// Each marker is only meaningful before its section has been
			// closed, so a truncated bulletin degrades to empty sections
			// rather than misfiled text.
			idx, marker := nextMarker(text, state)
			if idx < 0 {
				collect(text)
				break
			}
			collect(text[:idx])
			if marker == markerEnd {
				break scan
			}
			switch marker {
			case markerDayOne:
				state = inDayOne
			case markerDaysTwo:
				state = inDaysTwoThroughSeven
			case markerSpotter:
				state = inSpotter
			}
			text = strings.TrimLeft(text[idx+len(marker):], ".")
		}
	}

	if len(dayOne) > 0 {
		sections.DayOne = splitLead(compactSection(dayOne))
	}
	if len(daysTwo) > 0 {
		sections.DaysTwoThroughSeven = splitLead(compactSection(daysTwo))
	}
	if len(spotter) > 0 {
		text := compactSection(spotter)
		if text != "" {
			sections.Spotter = SectionText{"Spotter Information Statement", text}
			sections.HasSpotterActivation = !strings.Contains(text, spotterNotExpected)
		}
	}

	sections.TodayText = composeTodayText(sections)
	return sections
}

// nextMarker finds the earliest occurrence in text of a marker that is
// valid for the current scanner state. The end-of-product marker is always
// valid. Returns -1 when no valid marker occurs.
func nextMarker(text string, state outlookState) (int, string) {
	best, bestMarker := -1, ""
	consider := func(marker string, valid bool) {
		if !valid {
			return
		}
		if i := strings.Index(text, marker); i >= 0 && (best < 0 || i < best) {
			best, bestMarker = i, marker
		}
	}

	consider(markerDayOne, state == seekDayOne)
	consider(markerDaysTwo, state <= inDayOne)
	consider(markerSpotter, state < inSpotter)
	consider(markerEnd, true)
	return best, bestMarker
}

// compactSection joins collected segments into one string, collapsing
// embedded newlines into spaces and stripping decorative period runs.
func compactSection(lines []string) string {
	joined := strings.Join(lines, " ")
	joined = multiPeriodRe.ReplaceAllString(joined, " ")
	joined = strings.Join(strings.Fields(joined), " ")
	return strings.TrimSpace(strings.Trim(joined, "."))
}

// splitLead divides compacted section text into a lead sentence (up to the
// first period) and the remaining supporting detail.
func splitLead(text string) SectionText {
	text = strings.TrimSpace(text)
	if text == "" {
		return SectionText{}
	}
	idx := strings.Index(text, ".")
	if idx < 0 {
		return SectionText{text, ""}
	}
	lead := strings.TrimSpace(text[:idx])
	detail := strings.TrimSpace(strings.TrimLeft(text[idx+1:], ". "))
	return SectionText{lead, detail}
}

// composeTodayText builds the compact text block written to today_hwo.txt:
// today's outlook followed by the spotter statement.
func composeTodayText(s OutlookSections) string {
	var parts []string
	if !s.DayOne.IsZero() {
		parts = append(parts, strings.TrimSpace(s.DayOne.Lead()+". "+s.DayOne.Detail()))
	}
	if !s.Spotter.IsZero() {
		parts = append(parts, s.Spotter.Detail())
	}
	return strings.Join(parts, "\n\n")
}
