// Package render turns graph requests into chart files.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matsen/beatgraph/internal/conference"
	"github.com/matsen/beatgraph/internal/team"
)

// AllSchools is the school argument that expands to every school.
const AllSchools = "all"

// ErrUnknownSchool is returned when a school is not in the season.
var ErrUnknownSchool = errors.New("unknown school")

// Job is one chart to draw: a school's tree under a filter, or the whole
// filtered graph when Full is set.
type Job struct {
	School string            `json:"school,omitempty"`
	Filter conference.Filter `json:"division"`
	Full   bool              `json:"full,omitempty"`
}

// Name is the chart name: the school, or "All" for a full graph.
func (j Job) Name() string {
	if j.Full {
		return string(conference.All)
	}
	return j.School
}

// FullJob is the job for the whole graph under f.
func FullJob(f conference.Filter) Job {
	return Job{Filter: f, Full: true}
}

// ResolveSchool finds the season's spelling of school, ignoring case.
func ResolveSchool(season *team.Season, school string) (string, error) {
	if _, ok := season.Get(school); ok {
		return school, nil
	}
	for _, name := range season.Names() {
		if strings.EqualFold(name, school) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q in %d", ErrUnknownSchool, school, season.Year)
}

// Plan expands a school and filter into jobs. With school "all", filter All
// charts every FBS school under FBS, P5 and G5 and every FCS school under
// FCS; any other filter charts every school of the division it applies to.
func Plan(season *team.Season, conf *conference.Conferences, school string, f conference.Filter) ([]Job, error) {
	if !strings.EqualFold(school, AllSchools) {
		name, err := ResolveSchool(season, school)
		if err != nil {
			return nil, err
		}
		return []Job{{School: name, Filter: f}}, nil
	}

	var jobs []Job
	for _, t := range season.Teams() {
		if f == conference.All {
			for _, sub := range conference.FiltersFor(t.Division) {
				jobs = append(jobs, Job{School: t.Name, Filter: sub})
			}
			continue
		}
		if conference.AppliesTo(f, t.Division) {
			jobs = append(jobs, Job{School: t.Name, Filter: f})
		}
	}
	return jobs, nil
}
