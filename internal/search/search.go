// Package search implements the pruned depth-first backtracking search:
// a symbolic branching rule that expands one undecided instruction slot
// at a time, and a worker pool that drives that rule in parallel across
// a shared, growing frontier of partial candidates.
package search

import (
	"github.com/arnfaldur/robozzle-solver/internal/instr"
	"github.com/arnfaldur/robozzle-solver/internal/program"
	"github.com/arnfaldur/robozzle-solver/internal/prune"
	"github.com/arnfaldur/robozzle-solver/internal/puzzle"
	"github.com/arnfaldur/robozzle-solver/internal/vm"
)

// Frame is one node of the search frontier: a partial candidate program,
// the interpreter state reached by running it up to its first
// undecided instruction, and a back-pressure counter (Inters) that
// decides whether this frame is mature enough to hand to another
// worker or should keep being expanded locally.
type Frame struct {
	Candidate program.Source
	State     vm.State
	Inters    int
}

// newSeedFrame builds the root frame: every declared slot still a gray
// NOP hole, and the call stack primed by invoking the entry method.
func newSeedFrame(p *puzzle.Puzzle) Frame {
	candidate := p.EmptySource()
	return Frame{
		Candidate: candidate,
		State:     p.InitialState(&candidate),
		Inters:    2,
	}
}

// search runs frame forward until it reaches an undecided instruction
// (a NOP hole, an unresolved color probe, or a tentatively-placed
// instruction sitting on the wrong-colored tile), enumerates every
// legal way to resolve that one slot, and calls brancher once per
// surviving child (children that the pruning oracle rejects outright
// are never handed to brancher at all). It reports whether, at the
// point it stopped (branched or ran to completion), every star had
// been collected.
//
// Grounded directly on the original engine's search(): same branch
// detection (is_nop / is_probe / loosening), same instruction lists
// per branch kind, same reverse iteration order over those lists so a
// caller that pushes children onto a LIFO expands the first-listed
// child first, and the
// same (initially surprising) choice to run Deny against the
// *original* frame's candidate rather than the freshly edited child
// on every iteration of the loop -- preserved here for fidelity even
// though it makes that particular check loop-invariant.
func search(p *puzzle.Puzzle, frame Frame, brancher func(Frame, bool)) bool {
	candidate := frame.Candidate
	state := frame.State
	inters := frame.Inters

	var preferred [program.Methods]bool
	for i := range preferred {
		preferred[i] = true
	}
	for i := 1; i < program.Methods; i++ {
		for j := i + 1; j < program.Methods; j++ {
			if candidate[i] == candidate[j] {
				preferred[j] = false
			}
		}
	}

	branched := false
	running := true
	for running {
		if !branched {
			top := state.CurrentFrame()
			methodIndex, insIndex := top.Method(), top.Index()
			ins := state.CurrentIns(&candidate)
			tile := state.CurrentTile()

			nopBranch := ins.IsNop()
			probeBranch := ins.IsProbe() && tile.Executes(ins)
			loosenBranch := !ins.IsDebug() && !ins.IsLoosened() && tile.ToCondition() != ins.Cond()

			if nopBranch || probeBranch || loosenBranch {
				var instructions []instr.Ins
				switch {
				case nopBranch:
					instructions = append(instructions, instr.Halt)
					for _, c := range p.InsSet(tile.ToCondition(), false) {
						if !c.IsFunction() || preferred[c.FuncIndex()] {
							instructions = append(instructions, c)
						}
					}
					instructions = append(instructions, instr.GetProbes(p.CondMask(), tile.ToCondition())...)
				case probeBranch:
					for _, c := range p.InsSet(tile.ToCondition(), false) {
						instructions = append(instructions, c.Loosened())
					}
					narrowed := candidate[methodIndex][insIndex].RemoveCond(tile.ToCondition())
					if narrowed.IsProbe() {
						instructions = append(instructions, narrowed)
					}
				default: // loosenBranch
					instructions = []instr.Ins{ins.Loosened(), ins.Opcode().Loosened()}
				}

				branched = true
				for k := len(instructions) - 1; k >= 0; k-- {
					temp := candidate
					temp[methodIndex][insIndex] = instructions[k]
					if !prune.SnipAround(p, &temp, methodIndex, insIndex) && !prune.Deny(p, &candidate) {
						brancher(Frame{Candidate: temp, State: state, Inters: inters}, nopBranch)
					}
				}
				return state.Stars == 0
			}
		}
		var err error
		running, err = state.Step(&candidate, p.Methods)
		_ = err
	}
	return state.Stars == 0
}
