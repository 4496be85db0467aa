package scrape

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/matsen/beatgraph/internal/team"
)

var recordPattern = regexp.MustCompile(`\d{1,2}-\d{1,2}`)

// Schedule is everything read from one team's schedule page.
type Schedule struct {
	Wins    int
	Losses  int
	LogoURL string
	Games   []team.Game
}

// Resolver maps an external team id to the canonical season name.
type Resolver func(id string) (string, bool)

// ParseSchedule reads the record, logo and games from a schedule page.
// Postponed games are dropped.
func ParseSchedule(body []byte, resolve Resolver) (*Schedule, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing schedule page: %w", err)
	}

	table := doc.Find("#showschedule")
	if table.Length() == 0 {
		return nil, ErrNoRecord
	}

	wins, losses, err := parseRecord(table)
	if err != nil {
		return nil, err
	}

	sched := &Schedule{
		Wins:    wins,
		Losses:  losses,
		LogoURL: parseLogo(doc),
	}

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		game, ok := parseGame(row, resolve)
		if ok {
			sched.Games = append(sched.Games, game)
		}
	})

	return sched, nil
}

// parseRecord takes the last text node that looks like a W-L record.
func parseRecord(table *goquery.Selection) (int, int, error) {
	var last string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode && recordPattern.MatchString(n.Data) {
			last = n.Data
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range table.Nodes {
		walk(n)
	}

	fields := strings.Fields(last)
	if len(fields) == 0 {
		return 0, 0, ErrNoRecord
	}
	m := recordPattern.FindString(fields[0])
	if m == "" {
		return 0, 0, fmt.Errorf("%w: %q", ErrNoRecord, last)
	}
	wl := strings.SplitN(m, "-", 2)
	wins, _ := strconv.Atoi(wl[0])
	losses, _ := strconv.Atoi(wl[1])
	return wins, losses, nil
}

func parseLogo(doc *goquery.Document) string {
	src, ok := doc.Find("img.teamimage").First().Attr("src")
	if !ok {
		return ""
	}
	if i := strings.Index(src, "&"); i >= 0 {
		src = src[:i]
	}
	return strings.TrimSpace(src)
}

func parseGame(row *goquery.Selection, resolve Resolver) (team.Game, bool) {
	cell := row.Find("li.team-name").First()
	if cell.Length() == 0 {
		return team.Game{}, false
	}

	href, _ := cell.Find("a").First().Attr("href")
	id := TeamIDFromHref(href)

	name := ""
	if id != "" && resolve != nil {
		name, _ = resolve(id)
	}
	if name == "" {
		name = NormalizeName(html.UnescapeString(cleanText(cell.Text())))
	}
	if name == "" {
		return team.Game{}, false
	}

	game := team.Game{Opponent: name, OpponentID: id}

	lists := row.Find(`ul[class*="game-schedule"]`)
	if lists.Length() < 2 {
		return game, true
	}
	status := cleanText(lists.Eq(1).Find("li.game-status").First().Text())
	switch {
	case status == string(team.Win):
		game.Outcome = team.Win
	case status == string(team.Loss):
		game.Outcome = team.Loss
	case strings.EqualFold(status, "postponed"):
		return team.Game{}, false
	}
	return game, true
}
