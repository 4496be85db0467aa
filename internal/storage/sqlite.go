package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/matsen/beatgraph/internal/team"
	_ "modernc.org/sqlite"
)

// ErrTeamNotFound is returned when a team is not in the query cache.
var ErrTeamNotFound = errors.New("team not found")

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

const selectTeamFields = `name, team_id, division, wins, losses, logo_url`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS teams (
			year INTEGER NOT NULL,
			name TEXT NOT NULL,
			team_id TEXT NOT NULL,
			division TEXT NOT NULL,
			wins INTEGER NOT NULL,
			losses INTEGER NOT NULL,
			logo_url TEXT,
			PRIMARY KEY (year, name)
		);

		-- One row per schedule entry, in schedule order
		CREATE TABLE IF NOT EXISTS games (
			year INTEGER NOT NULL,
			team TEXT NOT NULL,
			seq INTEGER NOT NULL,
			opponent TEXT NOT NULL,
			opponent_id TEXT,
			outcome TEXT,
			PRIMARY KEY (year, team, seq)
		);

		CREATE INDEX IF NOT EXISTS idx_games_opponent ON games(year, opponent);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL replaces one season's rows with the contents of a snapshot.
// It returns the number of teams loaded.
func (d *DB) RebuildFromJSONL(jsonlPath string, year int) (int, error) {
	teams, err := ReadTeams(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM teams WHERE year = ?", year); err != nil {
		return 0, fmt.Errorf("clearing teams: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM games WHERE year = ?", year); err != nil {
		return 0, fmt.Errorf("clearing games: %w", err)
	}

	teamStmt, err := tx.Prepare(`
		INSERT INTO teams (year, name, team_id, division, wins, losses, logo_url)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing team insert: %w", err)
	}
	defer teamStmt.Close()

	gameStmt, err := tx.Prepare(`
		INSERT INTO games (year, team, seq, opponent, opponent_id, outcome)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing game insert: %w", err)
	}
	defer gameStmt.Close()

	for _, t := range teams {
		_, err := teamStmt.Exec(year, t.Name, t.ID, string(t.Division), t.Wins, t.Losses,
			nullableStringValue(t.LogoURL))
		if err != nil {
			return 0, fmt.Errorf("inserting team %s: %w", t.Name, err)
		}

		for i, g := range t.Games {
			_, err := gameStmt.Exec(year, t.Name, i, g.Opponent,
				nullableStringValue(g.OpponentID), nullableStringValue(string(g.Outcome)))
			if err != nil {
				return 0, fmt.Errorf("inserting game %d for %s: %w", i, t.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(teams), nil
}

// ListTeams returns a season's standings, best record first.
// An empty division lists every team.
func (d *DB) ListTeams(year int, division team.Division) ([]team.Team, error) {
	query := `SELECT ` + selectTeamFields + ` FROM teams WHERE year = ?`
	args := []interface{}{year}
	if division != "" {
		query += ` AND division = ?`
		args = append(args, string(division))
	}
	query += ` ORDER BY wins DESC, losses ASC, name ASC`

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	var teams []team.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *t)
	}
	return teams, rows.Err()
}

// GetTeam returns one team with its full schedule. The name matches
// without regard to case; an exact match wins.
func (d *DB) GetTeam(year int, name string) (*team.Team, error) {
	row := d.db.QueryRow(`
		SELECT `+selectTeamFields+` FROM teams
		WHERE year = ? AND name = ? COLLATE NOCASE
		ORDER BY name = ? DESC
		LIMIT 1`, year, name, name)
	t, err := scanTeam(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s (%d)", ErrTeamNotFound, name, year)
		}
		return nil, err
	}

	rows, err := d.db.Query(`
		SELECT opponent, opponent_id, outcome
		FROM games
		WHERE year = ? AND team = ?
		ORDER BY seq`, year, t.Name)
	if err != nil {
		return nil, fmt.Errorf("loading games for %s: %w", t.Name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var g team.Game
		var opponentID, outcome sql.NullString
		if err := rows.Scan(&g.Opponent, &opponentID, &outcome); err != nil {
			return nil, err
		}
		g.OpponentID = opponentID.String
		g.Outcome = team.Outcome(outcome.String)
		t.Games = append(t.Games, g)
	}
	return t, rows.Err()
}

// Beaten lists the opponents name beat in a season, sorted.
func (d *DB) Beaten(year int, name string) ([]string, error) {
	return d.queryNames(`
		SELECT DISTINCT opponent FROM games
		WHERE year = ? AND team = ? AND outcome = 'W'
		ORDER BY opponent`, year, name)
}

// BeatenBy lists the teams that beat name in a season, sorted.
func (d *DB) BeatenBy(year int, name string) ([]string, error) {
	return d.queryNames(`
		SELECT DISTINCT team FROM games
		WHERE year = ? AND opponent = ? AND outcome = 'W'
		ORDER BY team`, year, name)
}

// Years lists every season present in the cache.
func (d *DB) Years() ([]int, error) {
	rows, err := d.db.Query(`SELECT DISTINCT year FROM teams ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("listing years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// Count returns the number of teams cached for a season.
func (d *DB) Count(year int) (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM teams WHERE year = ?`, year).Scan(&count)
	return count, err
}

func (d *DB) queryNames(query string, args ...interface{}) ([]string, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTeam(s scanner) (*team.Team, error) {
	var t team.Team
	var division string
	var logoURL sql.NullString

	if err := s.Scan(&t.Name, &t.ID, &division, &t.Wins, &t.Losses, &logoURL); err != nil {
		return nil, err
	}
	t.Division = team.Division(division)
	t.LogoURL = logoURL.String
	return &t, nil
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
