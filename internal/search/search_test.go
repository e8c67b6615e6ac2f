package search

import (
	"testing"

	"github.com/arnfaldur/robozzle-solver/internal/instr"
	"github.com/arnfaldur/robozzle-solver/internal/program"
	"github.com/arnfaldur/robozzle-solver/internal/puzzle"
	"github.com/arnfaldur/robozzle-solver/internal/puzzle/seed"
	"github.com/arnfaldur/robozzle-solver/internal/tile"
)

func oneStepPuzzle() puzzle.Puzzle {
	var m tile.Map
	for y := range m {
		for x := range m[y] {
			m[y][x] = tile.Out
		}
	}
	m[0][1] = tile.Red
	m[0][2] = tile.Tile(tile.RedStar)
	board := tile.Board{Map: m, Direction: tile.Right, X: 1, Y: 0}
	// Declared length 2, not 1: a length-1 entry method would put a HALT
	// at slot 1 before slot 0 is ever resolved, which the pruning oracle's
	// single-slot heuristic (unconditionally comparing slots 0 and 1)
	// treats as a dead end regardless of what ends up in slot 0.
	return puzzle.New(board, [program.Methods]int{2, 0, 0, 0, 0}, [3]bool{})
}

// TestSolveFindsOneStepSolution exercises the whole engine end to end on
// the smallest possible puzzle: a single star one step ahead.
func TestSolveFindsOneStepSolution(t *testing.T) {
	p := oneStepPuzzle()
	solutions := Solve(&p, Options{Workers: 2})
	if len(solutions) == 0 {
		t.Fatal("Solve() found no solution for a trivial one-step puzzle")
	}
	for i := range solutions {
		s := solutions[i]
		state, err := p.Execute(&s, 1000)
		if err != nil {
			t.Errorf("solution %d: Execute() returned error %v", i, err)
		}
		if state.Stars != 0 {
			t.Errorf("solution %d: Execute() left %d stars, want 0", i, state.Stars)
		}
	}
}

// TestSolveIncumbentMonotonicity covers Testable Property 7: reported
// solutions never grow in instruction count.
func TestSolveIncumbentMonotonicity(t *testing.T) {
	p := seed.Puzzle42.Puzzle
	solutions := Solve(&p, Options{Workers: 4})
	for i := 1; i < len(solutions); i++ {
		prev, cur := solutions[i-1], solutions[i]
		if cur.CountIns() > prev.CountIns() {
			t.Errorf("solution %d has %d instructions, more than solution %d's %d", i, cur.CountIns(), i-1, prev.CountIns())
		}
	}
}

func TestSearchBranchesOnNop(t *testing.T) {
	p := oneStepPuzzle()
	frame := newSeedFrame(&p)

	var children []Frame
	search(&p, frame, func(f Frame, isNop bool) {
		if !isNop {
			t.Error("the root frame's first undecided slot is a NOP hole, branch should report isNop=true")
		}
		children = append(children, f)
	})

	if len(children) == 0 {
		t.Fatal("search() produced no children from the root frame")
	}

	var sawForward bool
	for _, c := range children {
		if c.Candidate[0][0].Vanilla().Opcode() == instr.Forward {
			sawForward = true
		}
	}
	if !sawForward {
		t.Error("search() never offered a FORWARD opcode as a child of the root NOP hole")
	}
}
