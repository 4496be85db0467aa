// Package team defines the core domain types for a scraped football season.
package team

import (
	"errors"
	"fmt"
	"sort"
)

// Division is the NCAA subdivision a team plays in.
type Division string

const (
	FBS Division = "FBS"
	FCS Division = "FCS"
)

// Valid reports whether d is a known subdivision.
func (d Division) Valid() bool {
	return d == FBS || d == FCS
}

// Outcome is the result of a game from the scheduling team's point of view.
// The zero value means the game has not produced a result yet.
type Outcome string

const (
	Win  Outcome = "W"
	Loss Outcome = "L"
)

// Game is a single entry on a team's schedule.
type Game struct {
	Opponent   string  `json:"opponent"`
	OpponentID string  `json:"opponent_id,omitempty"`
	Outcome    Outcome `json:"outcome,omitempty"`
}

// Played reports whether the game has a win or loss recorded.
func (g Game) Played() bool {
	return g.Outcome == Win || g.Outcome == Loss
}

// Team is one school's season: identity, record, logo and schedule.
type Team struct {
	Name     string   `json:"name"`
	ID       string   `json:"id"`
	Division Division `json:"division"`
	Wins     int      `json:"wins"`
	Losses   int      `json:"losses"`
	LogoURL  string   `json:"logo_url,omitempty"`
	Games    []Game   `json:"games"`
}

// Validation errors.
var (
	ErrEmptyName       = errors.New("team name is required")
	ErrEmptyID         = errors.New("team id is required")
	ErrInvalidDivision = errors.New("division must be FBS or FCS")
)

// Validate checks the fields every cached team must carry.
func (t *Team) Validate() error {
	if t.Name == "" {
		return ErrEmptyName
	}
	if t.ID == "" {
		return ErrEmptyID
	}
	if !t.Division.Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidDivision, t.Division)
	}
	return nil
}

// Results maps each opponent to the outcome against it. When an opponent
// appears twice the later game overwrites the earlier one.
func (t *Team) Results() map[string]Outcome {
	results := make(map[string]Outcome, len(t.Games))
	for _, g := range t.Games {
		if g.Played() {
			results[g.Opponent] = g.Outcome
		}
	}
	return results
}

// Record formats the season record as "W-L".
func (t *Team) Record() string {
	return fmt.Sprintf("%d-%d", t.Wins, t.Losses)
}

// Season holds every team scraped for one year.
type Season struct {
	Year  int
	teams map[string]*Team
	ids   map[string]string
}

// NewSeason creates an empty season for the given year.
func NewSeason(year int) *Season {
	return &Season{
		Year:  year,
		teams: make(map[string]*Team),
		ids:   make(map[string]string),
	}
}

// Add inserts or replaces a team, keyed by name.
func (s *Season) Add(t *Team) {
	if old, ok := s.teams[t.Name]; ok && old.ID != t.ID {
		delete(s.ids, old.ID)
	}
	s.teams[t.Name] = t
	if t.ID != "" {
		s.ids[t.ID] = t.Name
	}
}

// Get returns the team with the given name.
func (s *Season) Get(name string) (*Team, bool) {
	t, ok := s.teams[name]
	return t, ok
}

// NameForID resolves an external id to the team name used in this season.
func (s *Season) NameForID(id string) (string, bool) {
	name, ok := s.ids[id]
	return name, ok
}

// Len returns the number of teams.
func (s *Season) Len() int {
	return len(s.teams)
}

// Names returns all team names in sorted order.
func (s *Season) Names() []string {
	names := make([]string, 0, len(s.teams))
	for name := range s.teams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Teams returns all teams sorted by name.
func (s *Season) Teams() []*Team {
	names := s.Names()
	teams := make([]*Team, len(names))
	for i, name := range names {
		teams[i] = s.teams[name]
	}
	return teams
}

// InDivision returns the teams of one subdivision sorted by name.
func (s *Season) InDivision(d Division) []*Team {
	var teams []*Team
	for _, t := range s.Teams() {
		if t.Division == d {
			teams = append(teams, t)
		}
	}
	return teams
}
