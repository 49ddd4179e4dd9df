package agent

import (
	"regexp"
	"strings"
)

// placePattern matches a place-type keyword (restaurant, pagoda, lake,
// street, ...) followed by one or two name words. Heuristic: it links
// obvious place mentions and leaves everything else alone.
var placePattern = regexp.MustCompile(`(?i)(?:quán|nhà hàng|chùa|đền|hồ|phố|đường)(?:\s+[\p{L}][\p{L}]*){1,2}`)

// FormatMapLinks appends a Google Maps markdown link after each place
// mention recognized in the text. Pure string transformation; already
// linked mentions are left untouched.
func FormatMapLinks(text string) string {
	for _, match := range placePattern.FindAllString(text, -1) {
		location := strings.TrimSpace(match)
		if location == "" {
			continue
		}
		if strings.Contains(text, location+" [Xem bản đồ]") {
			continue
		}
		mapsURL := "https://maps.google.com/maps?q=" + strings.ReplaceAll(location, " ", "+")
		text = strings.Replace(text, location, location+" [Xem bản đồ]("+mapsURL+")", 1)
	}
	return text
}
