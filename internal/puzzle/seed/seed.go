// Package seed bundles a handful of known Robozzle puzzles with their
// hand-verified solutions, so tests and a CLI -seed flag can exercise
// the whole engine without needing a network fetch or an on-disk
// puzzle file (both out of scope for the core). Every map and solution
// here is transcribed from the original engine's bundled test
// constants (constants.rs): PUZZLE_42, PUZZLE_536, PUZZLE_656 and
// PUZZLE_1337, chosen because together they exercise single-color,
// multi-color, marking and nested-loop solutions.
package seed

import (
	"github.com/arnfaldur/robozzle-solver/internal/instr"
	"github.com/arnfaldur/robozzle-solver/internal/program"
	"github.com/arnfaldur/robozzle-solver/internal/puzzle"
	"github.com/arnfaldur/robozzle-solver/internal/tile"
)

// Named aliases for the tile shorthand used below, matching the
// original source's RE/GE/BE/RS/GS/BS/_N constants one-for-one.
const (
	n  = tile.Out
	re = tile.Red
	ge = tile.Green
	be = tile.Blue
	rs = tile.Tile(tile.RedStar)
	gs = tile.Tile(tile.GreenStar)
	bs = tile.Tile(tile.BlueStar)
)

// Seed bundles a puzzle with a solution known to clear every star.
type Seed struct {
	Name     string
	Puzzle   puzzle.Puzzle
	Solution program.Source
}

func row(tiles ...tile.Tile) [tile.Width]tile.Tile {
	var r [tile.Width]tile.Tile
	copy(r[:], tiles)
	for i := len(tiles); i < tile.Width; i++ {
		r[i] = n
	}
	return r
}

func blank() [tile.Width]tile.Tile { return row() }

func src(methods ...[]instr.Ins) program.Source {
	s := program.Empty()
	for m, method := range methods {
		for i, ins := range method {
			s[m][i] = ins
		}
	}
	return s
}

// Puzzle42 is a single-color (blue) corridor loop: a nested-call
// solution using three two-slot helper methods.
var Puzzle42 = Seed{
	Name: "puzzle-42",
	Puzzle: puzzle.New(tile.Board{
		Map: tile.Map{
			blank(), blank(), blank(), blank(), blank(),
			row(n, n, n, n, n, bs, bs, bs, bs, bs, bs, bs, bs, bs),
			row(n, n, n, n, n, bs, n, n, n, n, n, n, n, bs),
			row(n, n, n, n, n, bs, n, n, n, n, n, n, n, bs),
			row(n, n, n, n, n, bs, n, n, n, n, n, n, n, bs),
			row(n, n, n, n, n, be, bs, bs, bs, bs, bs, bs, bs, bs),
			blank(), blank(), blank(), blank(),
		},
		Direction: tile.Right,
		X:         5,
		Y:         9,
	}, [program.Methods]int{5, 2, 2, 2, 0}, [3]bool{}),
	Solution: src(
		[]instr.Ins{instr.F2, instr.Left, instr.F3, instr.Left, instr.F1},
		[]instr.Ins{instr.F3, instr.F3},
		[]instr.Ins{instr.F4, instr.F4},
		[]instr.Ins{instr.Forward, instr.Forward},
	),
}

// Puzzle536 is a three-color nested-loop map: an outer F1 recursion
// wrapped around an inner F2 that rides the blue ring until it's back
// where it started.
var Puzzle536 = Seed{
	Name: "puzzle-536",
	Puzzle: puzzle.New(tile.Board{
		Map: tile.Map{
			blank(),
			row(n, be, be, be, be, be, be, be, ge, be, be, be, be, be, be, be),
			row(n, n, n, n, n, n, n, n, n, n, n, n, n, n, n, be),
			row(n, be, be, be, be, be, be, re, be, be, be, be, be, be, n, be),
			row(n, be, n, n, n, n, n, n, n, n, n, n, n, be, n, be),
			row(n, be, n, be, be, be, be, ge, be, be, be, be, n, be, n, be),
			row(n, be, n, be, n, n, n, n, n, n, n, re, n, ge, n, re),
			row(n, re, n, ge, n, bs, be, be, be, be, be, be, n, be, n, be),
			row(n, be, n, be, n, n, n, n, n, n, n, n, n, be, n, be),
			row(n, be, n, be, be, be, be, be, re, be, be, be, be, be, n, be),
			row(n, be, n, n, n, n, n, n, n, n, n, n, n, n, n, be),
			row(n, be, be, be, be, be, be, be, ge, be, be, be, be, be, be, be),
			blank(), blank(),
		},
		Direction: tile.Right,
		X:         1,
		Y:         1,
	}, [program.Methods]int{3, 3, 0, 0, 0}, [3]bool{}),
	Solution: src(
		[]instr.Ins{instr.F2, instr.Right, instr.F1},
		[]instr.Ins{instr.Forward, instr.BlueCond | instr.F2, instr.Forward},
	),
}

// Puzzle656 is a red/blue spiral: the largest star count of the
// bundled seeds (98), solved by two five-slot methods walking the
// spiral inward and bouncing off its red corners.
var Puzzle656 = Seed{
	Name: "puzzle-656",
	Puzzle: puzzle.New(tile.Board{
		Map: tile.Map{
			blank(),
			row(n, rs, n, n, n, rs),
			row(n, bs, n, n, n, bs, n, n, n, n, n, n, n, rs),
			row(n, bs, n, n, n, bs, n, n, n, n, n, n, n, bs),
			row(n, bs, n, n, n, bs, n, n, n, n, n, n, n, bs, n, rs),
			row(n, bs, n, rs, n, bs, n, n, n, rs, n, n, n, bs, n, bs),
			row(n, bs, n, bs, n, bs, n, n, n, bs, n, rs, n, bs, n, bs),
			row(n, bs, rs, bs, n, bs, n, n, n, bs, n, bs, n, bs, n, bs),
			row(n, bs, bs, bs, n, bs, rs, n, n, bs, n, bs, n, bs, rs, bs),
			row(n, bs, bs, bs, n, bs, bs, n, n, bs, rs, bs, n, bs, bs, bs),
			row(n, bs, bs, bs, n, bs, bs, n, n, bs, bs, bs, rs, bs, bs, bs, rs),
			row(n, bs, bs, bs, rs, bs, bs, rs, rs, bs, bs, bs, bs, bs, bs, bs, bs),
			row(n, be, bs, bs, bs, bs, bs, bs, bs, bs, bs, bs, bs, bs, bs, bs, bs),
			blank(),
		},
		Direction: tile.Right,
		X:         1,
		Y:         12,
	}, [program.Methods]int{5, 5, 0, 0, 0}, [3]bool{}),
	Solution: src(
		[]instr.Ins{instr.Left, instr.F2, instr.Left, instr.Forward, instr.F1},
		[]instr.Ins{instr.Forward, instr.RedCond | instr.Right, instr.RedCond | instr.Right, instr.BlueCond | instr.F2, instr.Forward},
	),
}

// Puzzle1337 is the only seed that uses marking: concentric
// red/green/blue rings, solved by cycling the mark color one step
// ahead of the ring it's about to enter.
var Puzzle1337 = Seed{
	Name: "puzzle-1337",
	Puzzle: puzzle.New(tile.Board{
		Map: tile.Map{
			blank(),
			row(n, n, n, be, be, be, be, be, be, be, be, be, be, be, be),
			row(n, n, n, be, re, re, re, re, re, re, re, re, re, re, bs),
			row(n, n, n, be, re, ge, ge, ge, ge, ge, ge, ge, ge, re, be),
			row(n, n, n, n, re, ge, be, bs, be, re, bs, be, ge, re),
			row(n, n, n, ge, re, ge, be, be, ge, re, be, be, ge, re, ge),
			row(n, n, n, ge, re, ge, n, be, rs, gs, be, n, ge, re, ge),
			row(n, n, n, n, re, ge, n, ge, be, ge, ge, n, ge, re),
			row(n, n, n, n, re, ge, n, n, n, n, n, n, ge, re),
			row(n, n, n, n, re, ge, n, n, n, n, n, n, ge, re),
			row(n, n, n, n, re, ge, ge, ge, ge, ge, ge, ge, ge, re),
			row(n, n, n, n, re, re, re, re, re, re, re, re, re, re),
			row(n, n, n, n, bs, bs, bs, bs, be, be, bs, bs, bs, bs),
			blank(),
		},
		Direction: tile.Right,
		X:         8,
		Y:         7,
	}, [program.Methods]int{6, 2, 0, 0, 0}, [3]bool{true, true, true}),
	Solution: src(
		[]instr.Ins{
			instr.F2,
			instr.BlueCond | instr.MarkRed,
			instr.GreenCond | instr.MarkBlue,
			instr.RedCond | instr.MarkGreen,
			instr.Forward,
			instr.F1,
		},
		[]instr.Ins{instr.GreenCond | instr.Right, instr.BlueCond | instr.Left},
	),
}

// All is every bundled seed, in ascending original-puzzle-id order.
var All = []Seed{Puzzle42, Puzzle536, Puzzle656, Puzzle1337}
