// Package puzzle holds the Puzzle model: the board a puzzle starts
// from, its declared method lengths, which colors may be used for
// marking, and which colors are actually reachable on the map.
package puzzle

import (
	"github.com/arnfaldur/robozzle-solver/internal/callstack"
	"github.com/arnfaldur/robozzle-solver/internal/instr"
	"github.com/arnfaldur/robozzle-solver/internal/program"
	"github.com/arnfaldur/robozzle-solver/internal/tile"
	"github.com/arnfaldur/robozzle-solver/internal/vm"
)

// Puzzle is the immutable input to the search: an initial board, how
// long each method is allowed to be, which colors may be marked, and
// which colors actually occur on a tile reachable from the start.
type Puzzle struct {
	Board Board

	Stars int

	// Methods is the canonicalized per-method instruction budget:
	// Methods[1..5) is sorted non-increasing (symmetry-breaking; see
	// ActualMethods for the puzzle author's original declared order).
	Methods [program.Methods]int
	// ActualMethods preserves the lengths as originally declared,
	// before canonicalization sorted them.
	ActualMethods [program.Methods]int

	// Marks says which colors the puzzle allows marking with.
	Marks [3]bool

	// Red, Green, Blue say which colors occur on some tile reachable
	// (4-connected) from the start, OR'd with any color enabled for
	// marking (Testable Property 3).
	Red, Green, Blue bool
}

// Board is the puzzle's starting map, position and facing. Distinct
// from tile.Board only in that tile.Board is the interpreter's mutable
// per-state copy; Puzzle.Board is the immutable template it is cloned
// from at the start of every execution.
type Board = tile.Board

// New constructs a Puzzle from a starting board, the author-declared
// method lengths and which colors may be marked, deriving the
// reachable-color flags and star count the way the original engine's
// make_puzzle does: a 4-connected flood fill from the start tile,
// followed by canonicalizing methods[1..5] into non-increasing order.
func New(board tile.Board, methods [program.Methods]int, marks [3]bool) Puzzle {
	red, green, blue := marks[0], marks[1], marks[2]

	_, colors := tile.CountReachable(&board.Map, board.X, board.Y)
	red = red || colors&tile.Red != 0
	green = green || colors&tile.Green != 0
	blue = blue || colors&tile.Blue != 0

	actual := methods
	canon := methods
	// Insertion sort over the four non-entry methods: non-increasing,
	// the search's symmetry-breaking canonicalization invariant.
	for i := 2; i < program.Methods; i++ {
		v := canon[i]
		j := i - 1
		for j >= 1 && canon[j] < v {
			canon[j+1] = canon[j]
			j--
		}
		canon[j+1] = v
	}

	out := board
	out.Map[board.Y][board.X] = out.Map[board.Y][board.X].ClearStar().Touch()

	stars := 0
	for y := 0; y < tile.Height; y++ {
		for x := 0; x < tile.Width; x++ {
			if out.Map[y][x].HasStar() {
				stars++
			}
		}
	}

	return Puzzle{
		Board:         out,
		Stars:         stars,
		Methods:       canon,
		ActualMethods: actual,
		Marks:         marks,
		Red:           red,
		Green:         green,
		Blue:          blue,
	}
}

// EmptySource returns the starting candidate: every declared slot a
// gray NOP hole, every undeclared slot HALT.
func (p *Puzzle) EmptySource() program.Source {
	s := program.Empty()
	for m := 0; m < program.Methods; m++ {
		for i := 0; i < p.Methods[m]; i++ {
			s[m][i] = instr.Nop
		}
	}
	return s
}

// InitialState builds the executable snapshot for src: the starting
// board, stars count, and the call stack primed by invoking F1.
func (p *Puzzle) InitialState(src *program.Source) vm.State {
	s := vm.State{
		Board: p.Board,
		Stars: p.Stars,
	}
	s.Stack = callstack.Stack{}
	_ = s.Invoke(0, p.Methods[0])
	return s
}

// CondMask returns the multi-color condition mask used to enumerate
// probe candidates: every reachable color OR'd together, or plain gray
// if at most one color is reachable (a single-color puzzle never needs
// a probe; any gray nop resolves unambiguously).
func (p *Puzzle) CondMask() instr.Ins {
	n := 0
	if p.Red {
		n++
	}
	if p.Green {
		n++
	}
	if p.Blue {
		n++
	}
	if n > 1 {
		return instr.WithConditions(p.Red, p.Green, p.Blue)
	}
	return instr.GrayCond
}

// InsSet enumerates the legal (condition, opcode) instructions for a
// NOP hole encountered on a tile whose condition is colors, optionally
// including the gray-conditioned variants as well. Order matches the
// original engine exactly: moves, then functions, then marks, for each
// condition color in gray/red/green/blue order (Testable "Ins-set
// enumeration" scenario).
func (p *Puzzle) InsSet(colors instr.Ins, gray bool) []instr.Ins {
	red := p.Red && colors.HasCond(instr.RedCond)
	green := p.Green && colors.HasCond(instr.GreenCond)
	blue := p.Blue && colors.HasCond(instr.BlueCond)

	var conditionals []instr.Ins
	if gray {
		conditionals = append(conditionals, instr.GrayCond)
	}
	if red {
		conditionals = append(conditionals, instr.RedCond)
	}
	if green {
		conditionals = append(conditionals, instr.GreenCond)
	}
	if blue {
		conditionals = append(conditionals, instr.BlueCond)
	}

	var result []instr.Ins
	for _, cond := range conditionals {
		for _, m := range instr.Moves {
			result = append(result, m|cond)
		}
		for i, f := range instr.Functions {
			if p.Methods[i] > 0 {
				result = append(result, f|cond)
			}
		}
		for _, mk := range instr.Marks {
			if p.Marks[mk.MarkSlotIndex()] && mk.MarkColor() != cond.CondToColor() {
				result = append(result, mk|cond)
			}
		}
	}
	return result
}

// Execute runs src to completion from the initial state and returns the
// final state (Testable Property 1: execution determinism; Property 6:
// solution soundness re-verification).
func (p *Puzzle) Execute(src *program.Source, maxSteps int) (vm.State, error) {
	s := p.InitialState(src)
	_, err := s.Run(src, p.Methods, maxSteps)
	return s, err
}
