package instr

import "testing"

func TestCondAndOpcode(t *testing.T) {
	ins := RedCond | Forward
	if ins.Cond() != RedCond {
		t.Errorf("Cond() = %v, want RedCond", ins.Cond())
	}
	if ins.Opcode() != Forward {
		t.Errorf("Opcode() = %v, want Forward", ins.Opcode())
	}
	if !ins.IsCond(RedCond) {
		t.Error("IsCond(RedCond) = false, want true")
	}
	if ins.IsGray() {
		t.Error("IsGray() = true for a red-conditioned instruction")
	}
}

func TestFuncIndex(t *testing.T) {
	tests := []struct {
		ins  Ins
		want int
	}{
		{F1, 0},
		{F2, 1},
		{F3, 2},
		{F4, 3},
		{F5, 4},
		{GreenCond | F3, 2},
	}
	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			if !tc.ins.IsFunction() {
				t.Fatalf("%v.IsFunction() = false", tc.ins)
			}
			if got := tc.ins.FuncIndex(); got != tc.want {
				t.Errorf("FuncIndex() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestMarkSlotIndex(t *testing.T) {
	tests := []struct {
		ins  Ins
		want int
	}{
		{MarkRed, 0},
		{MarkGreen, 1},
		{MarkBlue, 2},
		{BlueCond | MarkGreen, 1},
	}
	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			if got := tc.ins.MarkSlotIndex(); got != tc.want {
				t.Errorf("MarkSlotIndex() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestIsNopIsHaltIsProbe(t *testing.T) {
	if !Nop.IsNop() {
		t.Error("Nop.IsNop() = false")
	}
	if Nop.IsProbe() {
		t.Error("gray Nop.IsProbe() = true, want false")
	}
	if !RedProbe.IsProbe() {
		t.Error("RedProbe.IsProbe() = false")
	}
	if RedProbe.IsNop() {
		t.Error("RedProbe.IsNop() = true, want false (IsNop is the gray hole only)")
	}
	if !Halt.IsHalt() {
		t.Error("Halt.IsHalt() = false")
	}
	if !Nop.IsDebug() || !RedProbe.IsDebug() {
		t.Error("IsDebug() should hold for both gray and colored NOPs")
	}
}

func TestLoosened(t *testing.T) {
	ins := RedCond | Forward
	if ins.IsLoosened() {
		t.Fatal("fresh instruction reports loosened")
	}
	loose := ins.Loosened()
	if !loose.IsLoosened() {
		t.Error("Loosened() did not set the sticky bit")
	}
	if loose.Vanilla() != ins {
		t.Errorf("Vanilla() = %v, want %v", loose.Vanilla(), ins)
	}
	if loose.Cond() != RedCond || loose.Opcode() != Forward {
		t.Error("Loosened() changed condition or opcode bits")
	}
}

func TestToProbeAndRemoveCond(t *testing.T) {
	ins := BlueCond | Left
	if ins.ToProbe() != BlueProbe {
		t.Errorf("ToProbe() = %v, want BlueProbe", ins.ToProbe())
	}
	multi := RedCond | GreenCond | Nop
	narrowed := multi.RemoveCond(RedCond)
	if narrowed.Cond() != GreenCond {
		t.Errorf("RemoveCond(RedCond) left cond %v, want GreenCond", narrowed.Cond())
	}
}

func TestMarkAsCondAndColorRoundTrip(t *testing.T) {
	if MarkRed.MarkAsCond() != RedCond {
		t.Errorf("MarkRed.MarkAsCond() = %v, want RedCond", MarkRed.MarkAsCond())
	}
	if MarkGreen.MarkAsCond() != GreenCond {
		t.Errorf("MarkGreen.MarkAsCond() = %v, want GreenCond", MarkGreen.MarkAsCond())
	}
	if MarkBlue.MarkAsCond() != BlueCond {
		t.Errorf("MarkBlue.MarkAsCond() = %v, want BlueCond", MarkBlue.MarkAsCond())
	}
}

func TestOtherTurn(t *testing.T) {
	if Left.OtherTurn() != Right {
		t.Errorf("Left.OtherTurn() = %v, want Right", Left.OtherTurn())
	}
	if Right.OtherTurn() != Left {
		t.Errorf("Right.OtherTurn() = %v, want Left", Right.OtherTurn())
	}
	if Forward.OtherTurn() != Halt {
		t.Errorf("Forward.OtherTurn() = %v, want Halt", Forward.OtherTurn())
	}
}

func TestWithConditions(t *testing.T) {
	got := WithConditions(true, false, true)
	if got != RedCond|BlueCond {
		t.Errorf("WithConditions(true,false,true) = %v, want RedCond|BlueCond", got)
	}
	if WithConditions(false, false, false) != 0 {
		t.Error("WithConditions(false,false,false) should be zero (gray)")
	}
}

func TestGetProbes(t *testing.T) {
	mask := RedCond | GreenCond | BlueCond
	got := GetProbes(mask, RedCond|Nop)
	want := []Ins{GreenProbe, BlueProbe}
	if len(got) != len(want) {
		t.Fatalf("GetProbes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GetProbes()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGetProbesSingleColor(t *testing.T) {
	got := GetProbes(RedCond, GrayCond|Nop)
	if len(got) != 1 || got[0] != RedProbe {
		t.Errorf("GetProbes(RedCond, gray) = %v, want [RedProbe]", got)
	}
}

func TestStringIsStable(t *testing.T) {
	cases := []Ins{Forward, RedCond | Left, GreenCond | F2, MarkBlue, Nop, Halt}
	for _, c := range cases {
		if c.String() == "" {
			t.Errorf("String() empty for %v", c)
		}
	}
}
