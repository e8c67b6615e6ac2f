package tile

import (
	"testing"

	"github.com/arnfaldur/robozzle-solver/internal/instr"
)

func TestColorFlags(t *testing.T) {
	tests := []struct {
		name string
		t    Tile
		red  bool
		grn  bool
		blu  bool
	}{
		{"gray", 0, false, false, false},
		{"red", Red, true, false, false},
		{"green-star", GreenStar, false, true, false},
		{"blue", Blue, false, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.t.IsRed(); got != tc.red {
				t.Errorf("IsRed() = %v, want %v", got, tc.red)
			}
			if got := tc.t.IsGreen(); got != tc.grn {
				t.Errorf("IsGreen() = %v, want %v", got, tc.grn)
			}
			if got := tc.t.IsBlue(); got != tc.blu {
				t.Errorf("IsBlue() = %v, want %v", got, tc.blu)
			}
		})
	}
}

func TestHasStarAndClearStar(t *testing.T) {
	rs := Tile(RedStar)
	if !rs.HasStar() {
		t.Fatal("RedStar.HasStar() = false")
	}
	cleared := rs.ClearStar()
	if cleared.HasStar() {
		t.Error("ClearStar() left the star bit set")
	}
	if cleared.Color() != Red {
		t.Errorf("ClearStar() changed color bits: got %v, want Red", cleared.Color())
	}
}

func TestIsOut(t *testing.T) {
	if !Out.IsOut() {
		t.Error("Out.IsOut() = false")
	}
	if Tile(Red).IsOut() {
		t.Error("a red tile reports IsOut() = true")
	}
}

func TestTouchSaturates(t *testing.T) {
	var tl Tile = Red
	for i := 0; i < MaxTouches+10; i++ {
		tl = tl.Touch()
	}
	if tl.Touches() != MaxTouches {
		t.Errorf("Touches() = %d after saturation, want %d", tl.Touches(), MaxTouches)
	}
	if tl.Color() != Red {
		t.Errorf("Touch() changed color bits: got %v, want Red", tl.Color())
	}
}

func TestMark(t *testing.T) {
	tl := Tile(RedStar)
	marked := tl.Mark(instr.MarkBlue)
	if marked.Color() != Blue {
		t.Errorf("Mark(MarkBlue).Color() = %v, want Blue", marked.Color())
	}
	if !marked.HasStar() {
		t.Error("Mark() cleared the star flag, should preserve it")
	}
}

func TestToConditionAndExecutes(t *testing.T) {
	tests := []struct {
		t    Tile
		cond instr.Ins
	}{
		{0, instr.GrayCond},
		{Red, instr.RedCond},
		{Green, instr.GreenCond},
		{Blue, instr.BlueCond},
	}
	for _, tc := range tests {
		if got := tc.t.ToCondition(); got != tc.cond {
			t.Errorf("%v.ToCondition() = %v, want %v", tc.t, got, tc.cond)
		}
	}

	redTile := Tile(Red)
	if !redTile.Executes(instr.Forward) {
		t.Error("gray instruction should execute on any tile")
	}
	if !redTile.Executes(instr.RedCond | instr.Forward) {
		t.Error("red instruction should execute on a red tile")
	}
	if redTile.Executes(instr.GreenCond | instr.Forward) {
		t.Error("green instruction should not execute on a red tile")
	}
}
