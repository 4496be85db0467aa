package scrape

import (
	"fmt"
	"strings"
)

// RosterURL is the page listing every college football team.
func RosterURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/college-football/teams"
}

// ScheduleURL is one team's schedule page for a season.
func ScheduleURL(baseURL, teamID string, year int) string {
	return fmt.Sprintf("%s/college-football/team/schedule/_/id/%s/year/%d/",
		strings.TrimRight(baseURL, "/"), teamID, year)
}
