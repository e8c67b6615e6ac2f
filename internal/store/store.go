package store

import (
	"encoding/json"

	"github.com/dgraph-io/badger/v4"

	"github.com/arnfaldur/robozzle-solver/internal/program"
	"github.com/arnfaldur/robozzle-solver/internal/puzzle"
)

const (
	solutionPrefix = "solutions:"
	puzzlePrefix   = "puzzle:"
)

// Store wraps BadgerDB for persisting solved programs and the puzzles
// they were solved for, one key per puzzle id in each namespace.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) the on-disk database under
// DatabaseDir.
func Open() (*Store, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dir)
}

// OpenAt opens the database at an explicit directory, for tests and
// callers that don't want the platform default location.
func OpenAt(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveSolutions records every solution found for puzzle id, overwriting
// whatever was cached for it before.
func (s *Store) SaveSolutions(id string, solutions []program.Source) error {
	data, err := json.Marshal(solutions)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(solutionPrefix+id), data)
	})
}

// LoadSolutions returns the cached solutions for puzzle id, or a nil
// slice (no error) if nothing has been cached for it yet.
func (s *Store) LoadSolutions(id string) ([]program.Source, error) {
	var out []program.Source
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(solutionPrefix + id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &out)
		})
	})
	return out, err
}

// SavePuzzle caches the puzzle definition itself under id, so a
// repeated solve for the same id can skip re-deriving reachability and
// canonicalization.
func (s *Store) SavePuzzle(id string, p *puzzle.Puzzle) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(puzzlePrefix+id), data)
	})
}

// LoadPuzzle returns the cached puzzle for id, or (nil, nil) if none
// has been cached.
func (s *Store) LoadPuzzle(id string) (*puzzle.Puzzle, error) {
	var p *puzzle.Puzzle
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(puzzlePrefix + id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			p = &puzzle.Puzzle{}
			return json.Unmarshal(val, p)
		})
	})
	return p, err
}
