// Package program defines Source, the fixed-shape 5x10 instruction array
// the search is producing, following the same fixed-size-array idiom the
// teacher uses for its move lists.
package program

import (
	"github.com/cespare/xxhash/v2"

	"github.com/arnfaldur/robozzle-solver/internal/instr"
)

const (
	// Methods is the number of callable methods, F1..F5.
	Methods = 5
	// Slots is the number of instruction slots per method.
	Slots = 10
)

// Source is a candidate program: five methods of ten instruction slots
// each. Method 0 (F1) is the entry point.
type Source [Methods][Slots]instr.Ins

// Empty returns a Source filled entirely with HALT.
func Empty() Source {
	var s Source
	for m := range s {
		for i := range s[m] {
			s[m][i] = instr.Halt
		}
	}
	return s
}

// CountIns returns the number of non-NOP, non-HALT instructions across
// every method: the program's size, as tracked against MAX_INS.
func (s *Source) CountIns() int {
	n := 0
	for m := range s {
		for i := range s[m] {
			ins := s[m][i]
			if !ins.IsHalt() && !ins.IsDebug() {
				n++
			}
		}
	}
	return n
}

// Shade replaces every NOP-family instruction (gray holes and probes)
// with HALT once the program's size has reached maxIns, so a program
// already at the incumbent bound stops offering further NOP branching
// opportunities in slots that could never be used. Below that bound it
// changes nothing.
func (s *Source) Shade(maxIns int) {
	used := s.CountIns()
	if used >= maxIns {
		for m := range s {
			for i := range s[m] {
				if s[m][i].IsDebug() && !s[m][i].IsHalt() {
					s[m][i] = instr.Halt
				}
			}
		}
		return
	}
}

// NonHaltCount returns the number of non-HALT slots in method m. Unlike
// CountIns this counts NOP holes too; it is the quantity the pruning
// oracle's method-length canonicalization check compares across methods
// (a still-open NOP hole still "claims" a slot for ordering purposes).
func (s *Source) NonHaltCount(m int) int {
	n := 0
	for i := range s[m] {
		if !s[m][i].IsHalt() {
			n++
		}
	}
	return n
}

// Hash returns a deterministic digest of the whole program, used by
// callers that want to deduplicate candidate programs (the search
// engine itself does not require this; it is offered as a utility,
// mirroring the teacher's hash-indexed transposition table).
func (s *Source) Hash() uint64 {
	var buf [Methods * Slots * 2]byte
	k := 0
	for m := range s {
		for i := range s[m] {
			v := s[m][i]
			buf[k] = byte(v)
			buf[k+1] = byte(v >> 8)
			k += 2
		}
	}
	return xxhash.Sum64(buf[:])
}

// Equal reports whether two sources are instruction-for-instruction identical.
func (s *Source) Equal(o *Source) bool { return *s == *o }
