package storage

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matsen/beatgraph/internal/team"
)

// setupTestDB creates a test database rebuilt from a snapshot of testSeason.
func setupTestDB(t *testing.T) (*DB, string) {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "teams.db")
	jsonlPath := filepath.Join(tmpDir, "teams2013.jsonl")

	if err := WriteSeason(jsonlPath, testSeason()); err != nil {
		t.Fatalf("Failed to write test JSONL: %v", err)
	}

	db, err := OpenDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.RebuildFromJSONL(jsonlPath, 2013); err != nil {
		t.Fatalf("Failed to rebuild DB: %v", err)
	}

	return db, jsonlPath
}

func TestRebuildFromJSONL(t *testing.T) {
	db, jsonlPath := setupTestDB(t)

	count, err := db.Count(2013)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}

	// Rebuilding the same year replaces rather than duplicates.
	n, err := db.RebuildFromJSONL(jsonlPath, 2013)
	if err != nil {
		t.Fatalf("second RebuildFromJSONL() error = %v", err)
	}
	if n != 3 {
		t.Errorf("RebuildFromJSONL() = %d, want 3", n)
	}
	count, _ = db.Count(2013)
	if count != 3 {
		t.Errorf("Count() after rebuild = %d, want 3", count)
	}
}

func TestRebuildFromJSONL_KeepsOtherYears(t *testing.T) {
	db, jsonlPath := setupTestDB(t)

	if _, err := db.RebuildFromJSONL(jsonlPath, 2014); err != nil {
		t.Fatalf("RebuildFromJSONL(2014) error = %v", err)
	}

	years, err := db.Years()
	if err != nil {
		t.Fatalf("Years() error = %v", err)
	}
	if !reflect.DeepEqual(years, []int{2013, 2014}) {
		t.Errorf("Years() = %v, want [2013 2014]", years)
	}
}

func TestRebuildFromJSONL_MissingSnapshot(t *testing.T) {
	db, _ := setupTestDB(t)

	_, err := db.RebuildFromJSONL(filepath.Join(t.TempDir(), "nope.jsonl"), 2013)
	if !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("error = %v, want ErrNoSnapshot", err)
	}

	// A failed rebuild leaves the existing rows alone.
	count, _ := db.Count(2013)
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}
}

func TestListTeams(t *testing.T) {
	db, _ := setupTestDB(t)

	tests := []struct {
		name     string
		division team.Division
		want     []string
	}{
		{"all", "", []string{"Auburn", "Alabama", "Montana"}},
		{"fbs", team.FBS, []string{"Auburn", "Alabama"}},
		{"fcs", team.FCS, []string{"Montana"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teams, err := db.ListTeams(2013, tt.division)
			if err != nil {
				t.Fatalf("ListTeams() error = %v", err)
			}
			var got []string
			for _, tm := range teams {
				got = append(got, tm.Name)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ListTeams() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetTeam(t *testing.T) {
	db, _ := setupTestDB(t)

	got, err := db.GetTeam(2013, "Auburn")
	if err != nil {
		t.Fatalf("GetTeam() error = %v", err)
	}
	if got.ID != "2" || got.Division != team.FBS || got.Record() != "2-0" {
		t.Errorf("GetTeam() = %+v", got)
	}
	if got.LogoURL != "http://example.com/2.png" {
		t.Errorf("LogoURL = %q", got.LogoURL)
	}
	want := []team.Game{
		{Opponent: "Alabama", OpponentID: "333", Outcome: team.Win},
		{Opponent: "Montana", OpponentID: "149", Outcome: team.Win},
		{Opponent: "Texas A&M"},
	}
	if !reflect.DeepEqual(got.Games, want) {
		t.Errorf("Games = %+v, want %+v", got.Games, want)
	}

	folded, err := db.GetTeam(2013, "auburn")
	if err != nil {
		t.Fatalf("GetTeam(lowercase) error = %v", err)
	}
	if folded.Name != "Auburn" || len(folded.Games) != len(want) {
		t.Errorf("GetTeam(lowercase) = %q with %d games, want Auburn with %d", folded.Name, len(folded.Games), len(want))
	}

	_, err = db.GetTeam(2013, "Nowhere State")
	if !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("GetTeam(missing) error = %v, want ErrTeamNotFound", err)
	}
}

func TestBeaten(t *testing.T) {
	db, _ := setupTestDB(t)

	beaten, err := db.Beaten(2013, "Auburn")
	if err != nil {
		t.Fatalf("Beaten() error = %v", err)
	}
	if !reflect.DeepEqual(beaten, []string{"Alabama", "Montana"}) {
		t.Errorf("Beaten(Auburn) = %v", beaten)
	}

	beaten, _ = db.Beaten(2013, "Montana")
	if len(beaten) != 0 {
		t.Errorf("Beaten(Montana) = %v, want none", beaten)
	}

	by, err := db.BeatenBy(2013, "Montana")
	if err != nil {
		t.Fatalf("BeatenBy() error = %v", err)
	}
	if !reflect.DeepEqual(by, []string{"Alabama", "Auburn"}) {
		t.Errorf("BeatenBy(Montana) = %v", by)
	}
}
