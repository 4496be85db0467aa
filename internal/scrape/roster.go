package scrape

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/matsen/beatgraph/internal/team"
)

// DefaultFBSCount is how many roster links belong to FBS teams. The teams
// page lists every FBS school before any FCS school.
const DefaultFBSCount = 128

// RosterEntry is one team link from the teams page.
type RosterEntry struct {
	Name     string
	ID       string
	Division team.Division
}

// ParseRoster extracts every team link from the teams page in page order.
// The first fbsCount entries are FBS, the remainder FCS.
func ParseRoster(body []byte, fbsCount int) ([]RosterEntry, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing roster page: %w", err)
	}

	var entries []RosterEntry
	seen := make(map[string]bool)

	doc.Find(`a[href*="football/team/_/"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		id := TeamIDFromHref(href)
		name := NormalizeName(s.Text())
		if id == "" || name == "" || seen[id] {
			return
		}
		seen[id] = true

		division := team.FCS
		if len(entries) < fbsCount {
			division = team.FBS
		}
		entries = append(entries, RosterEntry{Name: name, ID: id, Division: division})
	})

	if len(entries) == 0 {
		return nil, ErrNoRoster
	}
	return entries, nil
}

// rosterSeason seeds a season with every roster entry so that schedule pages
// can resolve opponent ids before any schedule has been read.
func rosterSeason(year int, entries []RosterEntry) *team.Season {
	season := team.NewSeason(year)
	for _, e := range entries {
		season.Add(&team.Team{
			Name:     e.Name,
			ID:       e.ID,
			Division: e.Division,
		})
	}
	return season
}

func cleanText(s string) string {
	return strings.TrimSpace(innerSpace.ReplaceAllString(s, " "))
}
