package domain

import "strings"

// RelevantCounty checks a feed entry's area-description field against the
// configured counties of interest. The upstream feed packs multiple county
// names into one semicolon-delimited field; the first trimmed token equal to
// a configured county (case-insensitive) wins. Returns false when the field
// is empty or nothing overlaps.
func RelevantCounty(areaDesc string, counties []string) (string, bool) {
	if strings.TrimSpace(areaDesc) == "" {
		return "", false
	}

	for _, token := range strings.Split(areaDesc, ";") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		for _, county := range counties {
			if strings.EqualFold(token, strings.TrimSpace(county)) {
				return token, true
			}
		}
	}
	return "", false
}
