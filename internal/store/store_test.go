package store

import (
	"os"
	"testing"

	"github.com/arnfaldur/robozzle-solver/internal/program"
	"github.com/arnfaldur/robozzle-solver/internal/puzzle/seed"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir, err := os.MkdirTemp("", "robozzle-solver-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp failed: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	db, err := OpenAt(dir)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveLoadSolutions(t *testing.T) {
	db := openTestStore(t)
	s := seed.Puzzle42

	want := []program.Source{s.Solution}
	if err := db.SaveSolutions(s.Name, want); err != nil {
		t.Fatalf("SaveSolutions failed: %v", err)
	}

	got, err := db.LoadSolutions(s.Name)
	if err != nil {
		t.Fatalf("LoadSolutions failed: %v", err)
	}
	if len(got) != 1 || !got[0].Equal(&want[0]) {
		t.Errorf("LoadSolutions() = %v, want %v", got, want)
	}
}

func TestLoadSolutionsMissingKey(t *testing.T) {
	db := openTestStore(t)
	got, err := db.LoadSolutions("never-saved")
	if err != nil {
		t.Fatalf("LoadSolutions on a missing key returned error: %v", err)
	}
	if got != nil {
		t.Errorf("LoadSolutions() = %v, want nil for a missing key", got)
	}
}

func TestSaveLoadPuzzle(t *testing.T) {
	db := openTestStore(t)
	s := seed.Puzzle656

	if err := db.SavePuzzle(s.Name, &s.Puzzle); err != nil {
		t.Fatalf("SavePuzzle failed: %v", err)
	}

	got, err := db.LoadPuzzle(s.Name)
	if err != nil {
		t.Fatalf("LoadPuzzle failed: %v", err)
	}
	if got == nil {
		t.Fatal("LoadPuzzle() = nil, want the saved puzzle")
	}
	if got.Stars != s.Puzzle.Stars || got.Methods != s.Puzzle.Methods {
		t.Errorf("LoadPuzzle() = %+v, want Stars=%d Methods=%v", got, s.Puzzle.Stars, s.Puzzle.Methods)
	}
}

func TestLoadPuzzleMissingKey(t *testing.T) {
	db := openTestStore(t)
	got, err := db.LoadPuzzle("never-saved")
	if err != nil {
		t.Fatalf("LoadPuzzle on a missing key returned error: %v", err)
	}
	if got != nil {
		t.Errorf("LoadPuzzle() = %v, want nil for a missing key", got)
	}
}

func TestDataDirAndDatabaseDir(t *testing.T) {
	dataDir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("DataDir() returned an empty path")
	}
	if _, err := os.Stat(dataDir); err != nil {
		t.Errorf("DataDir() was not created on disk: %v", err)
	}

	dbDir, err := DatabaseDir()
	if err != nil {
		t.Fatalf("DatabaseDir failed: %v", err)
	}
	if _, err := os.Stat(dbDir); err != nil {
		t.Errorf("DatabaseDir() was not created on disk: %v", err)
	}
}
