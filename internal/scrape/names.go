package scrape

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	teamIDPattern = regexp.MustCompile(`/id/(\d+)`)
	innerSpace    = regexp.MustCompile(`\s+`)
)

// NormalizeName folds accents to ASCII and collapses whitespace, so
// "San José State" and "San Jose State" key the same team.
func NormalizeName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.TrimSpace(innerSpace.ReplaceAllString(folded, " "))
}

// TeamIDFromHref extracts the numeric team id from a team or schedule link.
func TeamIDFromHref(href string) string {
	m := teamIDPattern.FindStringSubmatch(href)
	if m == nil {
		return ""
	}
	return m[1]
}
