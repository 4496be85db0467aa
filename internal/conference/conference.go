// Package conference decides which teams belong in a division-filtered graph.
package conference

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matsen/beatgraph/internal/team"
)

// Filter selects a subset of teams for a graph.
type Filter string

const (
	All Filter = "All"
	FBS Filter = "FBS"
	P5  Filter = "P5"
	G5  Filter = "G5"
	FCS Filter = "FCS"
)

// ValidFilters lists the accepted filter names in display order.
var ValidFilters = []Filter{All, FBS, P5, G5, FCS}

// ParseFilter converts user input to a Filter, ignoring case.
func ParseFilter(s string) (Filter, error) {
	for _, f := range ValidFilters {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid division %q: must be one of All, FBS, P5, G5, FCS", s)
}

// Upper returns the filter as it appears in chart file names.
func (f Filter) Upper() string {
	return strings.ToUpper(string(f))
}

// PowerFive is the 2014 membership of the ACC, Big 12, Big Ten, Pac-12 and SEC.
var PowerFive = []string{
	"Boston College", "Clemson", "Duke", "Florida State", "Georgia Tech",
	"Louisville", "Miami (FL)", "North Carolina", "North Carolina State",
	"Pittsburgh", "Syracuse", "Virginia", "Virginia Tech", "Wake Forest",

	"Baylor", "Iowa State", "Kansas", "Kansas State", "Oklahoma",
	"Oklahoma State", "TCU", "Texas", "Texas Tech", "West Virginia",

	"Illinois", "Indiana", "Iowa", "Maryland", "Michigan", "Michigan State",
	"Minnesota", "Nebraska", "Northwestern", "Ohio State", "Penn State",
	"Purdue", "Rutgers", "Wisconsin",

	"Arizona", "Arizona State", "California", "Colorado", "Oregon",
	"Oregon State", "Stanford", "UCLA", "USC", "Utah", "Washington",
	"Washington State",

	"Alabama", "Arkansas", "Auburn", "Florida", "Georgia", "Kentucky", "LSU",
	"Mississippi State", "Missouri", "Ole Miss", "South Carolina", "Tennessee",
	"Texas A&M", "Vanderbilt",
}

// Conferences holds the Power Five membership used for P5/G5 splits.
type Conferences struct {
	powerFive map[string]bool
}

// New builds Conferences from a Power Five membership list. An empty list
// falls back to the built-in PowerFive.
func New(powerFive []string) *Conferences {
	if len(powerFive) == 0 {
		powerFive = PowerFive
	}
	c := &Conferences{powerFive: make(map[string]bool, len(powerFive))}
	for _, name := range powerFive {
		c.powerFive[name] = true
	}
	return c
}

// Default returns Conferences with the built-in membership.
func Default() *Conferences {
	return New(nil)
}

// IsPowerFive reports whether the named school is a Power Five member.
func (c *Conferences) IsPowerFive(name string) bool {
	return c.powerFive[name]
}

// Members returns the Power Five list in sorted order.
func (c *Conferences) Members() []string {
	names := make([]string, 0, len(c.powerFive))
	for name := range c.powerFive {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Includes reports whether a team with the given name and division passes f.
func (c *Conferences) Includes(f Filter, name string, division team.Division) bool {
	switch f {
	case All:
		return true
	case P5:
		return c.powerFive[name]
	case FBS:
		return division == team.FBS
	case G5:
		return division == team.FBS && !c.powerFive[name]
	case FCS:
		return division == team.FCS
	default:
		return false
	}
}

// Tier names the chart folder group for a school: "P5" or "G5".
func (c *Conferences) Tier(name string) string {
	if c.powerFive[name] {
		return string(P5)
	}
	return string(G5)
}

// FiltersFor lists the filters a school is charted under when every
// division is requested: FBS, P5 and G5 for FBS schools, FCS for FCS schools.
func FiltersFor(division team.Division) []Filter {
	switch division {
	case team.FBS:
		return []Filter{FBS, P5, G5}
	case team.FCS:
		return []Filter{FCS}
	default:
		return nil
	}
}

// AppliesTo reports whether a filter charts schools of the given division.
func AppliesTo(f Filter, division team.Division) bool {
	switch f {
	case All:
		return true
	case FBS, P5, G5:
		return division == team.FBS
	case FCS:
		return division == team.FCS
	default:
		return false
	}
}
