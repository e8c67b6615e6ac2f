// Package vm is the interpreter: it steps a candidate program on a
// puzzle's board using a fixed-capacity call stack, following the same
// switch-dispatched, no-host-recursion style the teacher's negamax
// search keeps its explicit move/undo stacks in.
package vm

import (
	"errors"

	"github.com/arnfaldur/robozzle-solver/internal/callstack"
	"github.com/arnfaldur/robozzle-solver/internal/instr"
	"github.com/arnfaldur/robozzle-solver/internal/program"
	"github.com/arnfaldur/robozzle-solver/internal/tile"
)

// Error taxonomy for terminal, non-propagated interpreter outcomes.
// None of these abort the search: every frame that hits one is simply a
// dead branch, the same way a worker treats a failed negamax line.
var (
	// ErrStackOverflow: the call stack would exceed callstack.Capacity.
	ErrStackOverflow = errors.New("vm: call stack overflow")
	// ErrStepBudgetExceeded: the caller-supplied step budget ran out.
	ErrStepBudgetExceeded = errors.New("vm: step budget exceeded")
	// ErrVisitBudgetExceeded: a tile's visit count reached tile.MaxTouches.
	ErrVisitBudgetExceeded = errors.New("vm: visit budget exceeded")
	// ErrMapCrash: the robot stepped off the edge of the map.
	ErrMapCrash = errors.New("vm: stepped off the map")
)

// State is a search node's executable snapshot: the board, the call
// stack, and the two counters whose equality defines state equality.
type State struct {
	Board tile.Board
	Stack callstack.Stack
	Stars int
	Steps int
}

// CurrentTile returns the tile under the robot.
func (s *State) CurrentTile() tile.Tile { return s.Board.CurrentTile() }

// CurrentFrame returns the top-of-stack return pointer.
func (s *State) CurrentFrame() callstack.Frame { return s.Stack.Top() }

// CurrentIns looks up the instruction the program counter points at.
func (s *State) CurrentIns(src *program.Source) instr.Ins {
	f := s.Stack.Top()
	return src[f.Method()][f.Index()]
}

// Running reports whether execution can continue: the call stack is
// non-empty, stars remain, the robot is on the map, and the current
// tile hasn't saturated its visit budget.
func (s *State) Running() bool {
	return !s.Stack.Empty() &&
		s.Stars > 0 &&
		!s.Board.CurrentTile().IsOut() &&
		s.Board.CurrentTile().Touches() < tile.MaxTouches
}

// Invoke pushes a method's instructions as return pointers in reverse
// order, so popping the stack executes them in forward (0..length) order.
func (s *State) Invoke(method, length int) error {
	if s.Stack.Len()+length > callstack.Capacity {
		return ErrStackOverflow
	}
	for i := length - 1; i >= 0; i-- {
		s.Stack.Push(callstack.NewFrame(method, i))
	}
	return nil
}

// Step pops the instruction at the program counter and, if the
// instruction's color condition matches the current tile, performs its
// effect. lengths gives each method's declared instruction count (owned
// by the caller's puzzle value, to avoid an import cycle between vm and
// puzzle). Step returns whether execution may continue, and a non-nil
// error identifying which terminal condition stopped it (nil if the
// program simply ran out of stack or stars normally via Running()).
func (s *State) Step(src *program.Source, lengths [5]int) (bool, error) {
	f := s.Stack.Pop()
	s.Steps++
	ins := src[f.Method()][f.Index()].Vanilla()
	if s.Board.CurrentTile().Executes(ins) {
		if err := s.apply(ins, lengths); err != nil {
			return false, err
		}
	}
	if !s.Running() {
		if s.Stack.Empty() || s.Stars == 0 {
			return false, nil
		}
		if s.Board.CurrentTile().IsOut() {
			return false, ErrMapCrash
		}
		return false, ErrVisitBudgetExceeded
	}
	return true, nil
}

func (s *State) apply(ins instr.Ins, lengths [5]int) error {
	switch ins.Opcode() {
	case instr.Forward:
		s.Board.StepForward()
		if !s.Board.CurrentTile().IsOut() {
			if s.Board.CurrentTile().HasStar() {
				s.Stars--
			}
			s.Board.ClearStar()
			s.Board.Touch()
		}
	case instr.Left:
		s.Board.Direction = s.Board.Direction.TurnLeft()
		s.Board.Touch()
	case instr.Right:
		s.Board.Direction = s.Board.Direction.TurnRight()
		s.Board.Touch()
	case instr.F1, instr.F2, instr.F3, instr.F4, instr.F5:
		m := ins.FuncIndex()
		if err := s.Invoke(m, lengths[m]); err != nil {
			return err
		}
		s.Board.Touch()
	case instr.MarkRed, instr.MarkGreen, instr.MarkBlue:
		s.Board.Mark(ins)
		s.Board.Touch()
	default:
		// NOP, HALT and probes have no effect beyond the pop above.
	}
	return nil
}

// Run executes src to completion (or until maxSteps instructions have
// run), returning the stars remaining. Intended for re-verifying a
// reported solution in isolation (Testable Property 6), not for the
// hot path inside the search, which interleaves Step with branching.
func (s *State) Run(src *program.Source, lengths [5]int, maxSteps int) (starsRemaining int, err error) {
	for s.Steps < maxSteps {
		running, stepErr := s.Step(src, lengths)
		if stepErr != nil {
			return s.Stars, stepErr
		}
		if !running {
			return s.Stars, nil
		}
	}
	return s.Stars, ErrStepBudgetExceeded
}
