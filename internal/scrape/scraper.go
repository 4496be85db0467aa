package scrape

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/matsen/beatgraph/internal/team"
)

// DefaultWorkers is the default number of schedules fetched at once.
const DefaultWorkers = 4

// Scraper drives Roster Fetch and Schedule Scrape for one season.
type Scraper struct {
	fetcher  Fetcher
	logger   *zap.Logger
	baseURL  string
	fbsCount int
	workers  int
	strict   bool
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithBaseURL sets the site root.
func WithBaseURL(u string) Option {
	return func(s *Scraper) {
		if u != "" {
			s.baseURL = u
		}
	}
}

// WithLogger sets the logger used for progress.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scraper) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFBSCount sets how many roster links are FBS.
func WithFBSCount(n int) Option {
	return func(s *Scraper) {
		if n > 0 {
			s.fbsCount = n
		}
	}
}

// WithWorkers sets how many schedules are fetched concurrently.
func WithWorkers(n int) Option {
	return func(s *Scraper) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithStrict makes any failed schedule abort the whole scrape.
func WithStrict(strict bool) Option {
	return func(s *Scraper) {
		s.strict = strict
	}
}

// New creates a Scraper reading pages through f.
func New(f Fetcher, opts ...Option) *Scraper {
	s := &Scraper{
		fetcher:  f,
		logger:   zap.NewNop(),
		baseURL:  "http://espn.go.com",
		fbsCount: DefaultFBSCount,
		workers:  DefaultWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is a scraped season plus the teams whose schedules could not be read.
type Result struct {
	Season  *team.Season
	Skipped []string
}

// Roster fetches the teams page and returns its entries.
func (s *Scraper) Roster(ctx context.Context) ([]RosterEntry, error) {
	url := RosterURL(s.baseURL)
	s.logger.Info("fetching roster", zap.String("url", url))

	body, err := s.fetcher.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching roster: %w", err)
	}
	entries, err := ParseRoster(body, s.fbsCount)
	if err != nil {
		return nil, err
	}

	s.logger.Info("roster fetched", zap.Int("teams", len(entries)))
	return entries, nil
}

// Season scrapes the roster and then every team's schedule for year.
func (s *Scraper) Season(ctx context.Context, year int) (*Result, error) {
	entries, err := s.Roster(ctx)
	if err != nil {
		return nil, err
	}
	season := rosterSeason(year, entries)

	var (
		mu      sync.Mutex
		skipped []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, t := range season.Teams() {
		g.Go(func() error {
			sched, err := s.schedule(gctx, t, year, season.NameForID)
			if err != nil {
				if s.strict || gctx.Err() != nil {
					return fmt.Errorf("scraping %s: %w", t.Name, err)
				}
				s.logger.Warn("skipping team", zap.String("team", t.Name), zap.Error(err))
				mu.Lock()
				skipped = append(skipped, t.Name)
				mu.Unlock()
				return nil
			}

			t.Wins = sched.Wins
			t.Losses = sched.Losses
			t.LogoURL = sched.LogoURL
			t.Games = sched.Games
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(skipped)
	return &Result{Season: season, Skipped: skipped}, nil
}

func (s *Scraper) schedule(ctx context.Context, t *team.Team, year int, resolve Resolver) (*Schedule, error) {
	url := ScheduleURL(s.baseURL, t.ID, year)
	s.logger.Debug("fetching schedule", zap.String("team", t.Name), zap.String("url", url))

	body, err := s.fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	sched, err := ParseSchedule(body, resolve)
	if err != nil {
		return nil, err
	}

	s.logger.Info("scraped",
		zap.String("team", t.Name),
		zap.String("division", string(t.Division)),
		zap.String("record", fmt.Sprintf("%d-%d", sched.Wins, sched.Losses)),
		zap.Int("games", len(sched.Games)),
	)
	return sched, nil
}
