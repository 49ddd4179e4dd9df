package agent

import "strings"

// negativeLocationTokens are model outputs meaning "no location found",
// compared case-insensitively after quote stripping
var negativeLocationTokens = map[string]bool{
	"":               true,
	"none":           true,
	"n/a":            true,
	"không có":       true,
	"không tìm thấy": true,
	"không rõ":       true,
}

// normalizeLocation cleans a raw extraction output, mapping every
// negative token to the empty string
func normalizeLocation(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Trim(cleaned, `"'“”‘’`)
	cleaned = strings.TrimSpace(cleaned)

	if negativeLocationTokens[strings.ToLower(cleaned)] {
		return ""
	}
	return cleaned
}
