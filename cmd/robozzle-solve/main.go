// Command robozzle-solve runs the parallel backtracking search against
// one of the bundled seed puzzles and prints every solution found,
// encoded as a submission string. Flags follow the same flat,
// constructor-argument style as the teacher's UCI front end: parsed
// once in main, no global config object.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/arnfaldur/robozzle-solver/internal/codec"
	"github.com/arnfaldur/robozzle-solver/internal/program"
	"github.com/arnfaldur/robozzle-solver/internal/puzzle"
	"github.com/arnfaldur/robozzle-solver/internal/puzzle/seed"
	"github.com/arnfaldur/robozzle-solver/internal/search"
	"github.com/arnfaldur/robozzle-solver/internal/store"
)

var (
	seedName = flag.String("seed", "puzzle-42", "bundled seed puzzle to solve (see -list)")
	list     = flag.Bool("list", false, "list bundled seed puzzles and exit")
	workers  = flag.Int("workers", search.DefaultWorkers, "number of search worker goroutines")
	verbose  = flag.Bool("verbose", false, "log search progress")
	useCache = flag.Bool("cache", true, "read and write the on-disk solution cache")
	cacheID  = flag.String("id", "", "solution cache key (defaults to -seed)")
)

type stdLogger struct{}

func (stdLogger) Printf(format string, args ...any) { log.Printf(format, args...) }

func main() {
	flag.Parse()

	if *list {
		for _, s := range seed.All {
			fmt.Println(s.Name)
		}
		return
	}

	chosen := findSeed(*seedName)
	if chosen == nil {
		log.Fatalf("unknown seed puzzle %q (use -list)", *seedName)
	}

	id := *cacheID
	if id == "" {
		id = chosen.Name
	}

	var db *store.Store
	if *useCache {
		var err error
		db, err = store.Open()
		if err != nil {
			log.Fatalf("opening solution store: %v", err)
		}
		defer db.Close()

		cached, err := db.LoadSolutions(id)
		if err != nil {
			log.Fatalf("loading cached solutions: %v", err)
		}
		if len(cached) > 0 {
			printSolutions(cached, &chosen.Puzzle)
			return
		}
	}

	var logger search.Logger
	if *verbose {
		logger = stdLogger{}
	}

	solutions := search.Solve(&chosen.Puzzle, search.Options{Workers: *workers, Logger: logger})
	if len(solutions) == 0 {
		log.Fatalf("no solution found for %s", chosen.Name)
	}

	if db != nil {
		if err := db.SaveSolutions(id, solutions); err != nil {
			log.Printf("caching solutions: %v", err)
		}
	}

	printSolutions(solutions, &chosen.Puzzle)
}

func findSeed(name string) *seed.Seed {
	for i := range seed.All {
		if seed.All[i].Name == name {
			return &seed.All[i]
		}
	}
	return nil
}

func printSolutions(solutions []program.Source, p *puzzle.Puzzle) {
	for i := range solutions {
		s := solutions[i]
		fmt.Printf("solution %d (%d instructions): %s\n", i, s.CountIns(), codec.Encode(&s, p))
	}
}
