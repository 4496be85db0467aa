// Package logo downloads team logos and keeps them on disk for rendering.
package logo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/matsen/beatgraph/internal/team"
)

// ErrNoLogoURL is returned when a team has no logo to download.
var ErrNoLogoURL = errors.New("team has no logo url")

const downloadWorkers = 4

// Store keeps one PNG per team under a directory.
type Store struct {
	dir    string
	client *resty.Client
	logger *zap.Logger
}

// NewStore creates a Store rooted at dir. A nil logger discards output.
func NewStore(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		dir:    dir,
		client: resty.New(),
		logger: logger,
	}
}

// Dir returns the directory logos are stored in.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns where the logo for name lives, whether or not it exists.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, fileName(name))
}

// Contains reports whether a logo for name is already on disk.
func (s *Store) Contains(name string) (bool, error) {
	_, err := os.Stat(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Store writes content as the logo for name.
func (s *Store) Store(name string, content io.Reader) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating logo dir: %w", err)
	}

	// Concurrent renders may fetch the same logo; rename keeps each write whole.
	tmp, err := os.CreateTemp(s.dir, ".logo-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path(name))
}

// Ensure downloads the logo for name unless it is already stored, and
// returns its path.
func (s *Store) Ensure(ctx context.Context, name, url string) (string, error) {
	ok, err := s.Contains(name)
	if err != nil {
		return "", err
	}
	if ok {
		return s.Path(name), nil
	}
	if url == "" {
		return "", ErrNoLogoURL
	}

	res, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("downloading logo for %s: %w", name, err)
	}
	if res.IsError() {
		return "", fmt.Errorf("downloading logo for %s: HTTP %d", name, res.StatusCode())
	}

	if err := s.Store(name, bytes.NewReader(res.Body())); err != nil {
		return "", fmt.Errorf("storing logo for %s: %w", name, err)
	}
	s.logger.Debug("logo stored", zap.String("team", name))
	return s.Path(name), nil
}

// EnsureAll makes sure every team has a logo on disk. It returns the paths
// keyed by team name; teams whose logo could not be fetched are logged
// and left out.
func (s *Store) EnsureAll(ctx context.Context, teams []*team.Team) map[string]string {
	var mu sync.Mutex
	paths := make(map[string]string, len(teams))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(downloadWorkers)

	for _, t := range teams {
		g.Go(func() error {
			path, err := s.Ensure(gctx, t.Name, t.LogoURL)
			if err != nil {
				s.logger.Warn("no logo", zap.String("team", t.Name), zap.Error(err))
				return nil
			}
			mu.Lock()
			paths[t.Name] = path
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return paths
}

func fileName(name string) string {
	return strings.ReplaceAll(name, string(filepath.Separator), "-") + ".png"
}
