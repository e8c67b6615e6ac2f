// Package tile implements the bit-packed map tile and the 14x18 board
// the interpreter walks, following the same dense-bitfield style as the
// teacher's bitboard package.
package tile

import "github.com/arnfaldur/robozzle-solver/internal/instr"

// Tile is a bitfield: bits 0-2 are independent color flags (red=1,
// green=2, blue=4; gray has none set), bit 3 is the star flag, bit 4 is
// the out-of-map sentinel, and bits 5+ hold a saturating visit count.
type Tile uint16

const (
	colorMask Tile = 0b00000111
	starBit   Tile = 0b00001000
	outOfMap  Tile = 0b00010000
	touchUnit Tile = 0b00100000
)

const (
	Red   Tile = 0b001
	Green Tile = 0b010
	Blue  Tile = 0b100
)

// Out is the sentinel tile for any cell outside the puzzle's map.
const Out Tile = outOfMap

// MaxTouches bounds a tile's saturating visit counter; the interpreter
// treats reaching it as a terminal non-solution (see vm.ErrVisitBudgetExceeded).
// Not a named constant in the original engine; chosen conservatively per
// spec's own open-question guidance.
const MaxTouches = 256

// RedStar, GreenStar, BlueStar are convenience constructors for starred tiles.
const (
	RedStar   = Red | starBit
	GreenStar = Green | starBit
	BlueStar  = Blue | starBit
)

// Color returns the color bits only (0 for gray).
func (t Tile) Color() Tile { return t & colorMask }

// HasStar reports whether the tile carries a star.
func (t Tile) HasStar() bool { return t&starBit != 0 }

// IsOut reports whether this is the out-of-map sentinel.
func (t Tile) IsOut() bool { return t&outOfMap != 0 }

// IsRed, IsGreen, IsBlue report the tile's color bit.
func (t Tile) IsRed() bool   { return t&Red != 0 }
func (t Tile) IsGreen() bool { return t&Green != 0 }
func (t Tile) IsBlue() bool  { return t&Blue != 0 }

// Touches returns the saturating visit count.
func (t Tile) Touches() int { return int(t / touchUnit) }

// ClearStar returns a copy of t with the star flag cleared. Idempotent.
func (t Tile) ClearStar() Tile { return t &^ starBit }

// Touch increments the visit counter, saturating at MaxTouches.
func (t Tile) Touch() Tile {
	if t.Touches() >= MaxTouches {
		return t
	}
	return t + touchUnit
}

// Mark overwrites the color bits with ins's mark color, preserving the
// star flag, out-of-map sentinel and visit count.
func (t Tile) Mark(ins instr.Ins) Tile {
	return (t &^ colorMask) | Tile(ins.MarkColor())
}

// ToCondition reinterprets this tile's color bits as an instruction
// condition (gray/red/green/blue), for matching against Ins.Cond().
func (t Tile) ToCondition() instr.Ins {
	switch t.Color() {
	case Red:
		return instr.RedCond
	case Green:
		return instr.GreenCond
	case Blue:
		return instr.BlueCond
	default:
		return instr.GrayCond
	}
}

// Executes reports whether ins's color condition matches this tile, i.e.
// whether the interpreter should actually perform ins's effect here.
func (t Tile) Executes(ins instr.Ins) bool {
	return ins.IsGray() || ins.HasCond(t.ToCondition())
}
