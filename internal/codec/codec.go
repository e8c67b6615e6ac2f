// Package codec implements the submission-string encoding for solved
// programs: a compact base-64-over-a-custom-alphabet bit packing,
// independent of the solver's own in-memory instruction layout.
//
// Grounded on the original engine's web.rs EncodingState/encode_program.
// That file only ever shipped the encoder; the decoder below is this
// module's own implementation of its exact documented inverse (the
// original repository carries nothing but a commented-out JavaScript
// sketch of one). One deliberate correction from the original encoder:
// it only ever emitted '-' for 6-bit values 62 and 63 (a collision bug
// that would make its own commented decoder disagree with it on any
// program whose bitstream produced a 62); this encoder uses the full
// four-way alphabet split so Encode and Decode actually round-trip.
package codec

import (
	"errors"
	"strings"

	"github.com/arnfaldur/robozzle-solver/internal/instr"
	"github.com/arnfaldur/robozzle-solver/internal/program"
	"github.com/arnfaldur/robozzle-solver/internal/puzzle"
)

// ErrBadVersion is returned when the encoded stream's 3-bit version field
// isn't the one this package knows how to read.
var ErrBadVersion = errors.New("codec: unsupported version")

// ErrBadChar is returned for a character outside the encoding alphabet,
// or a sub-opcode value the format doesn't define.
var ErrBadChar = errors.New("codec: invalid character or opcode in encoded program")

// ErrTruncated is returned when the stream ends before a full field
// can be read.
var ErrTruncated = errors.New("codec: truncated encoded program")

const version = 0

type encoder struct {
	out  strings.Builder
	val  int
	bits int
}

func (e *encoder) encodeBits(val, bits int) {
	for i := 0; i < bits; i++ {
		bit := 0
		if val&(1<<i) != 0 {
			bit = 1
		}
		e.val |= bit << e.bits
		e.bits++
		if e.bits == 6 {
			e.out.WriteByte(charForVal(e.val))
			e.val = 0
			e.bits = 0
		}
	}
}

func charForVal(val int) byte {
	switch {
	case val < 26:
		return byte('a' + val)
	case val < 52:
		return byte('A' + val - 26)
	case val < 62:
		return byte('0' + val - 52)
	case val == 62:
		return '_'
	default:
		return '-'
	}
}

func valForChar(c byte) (int, bool) {
	switch {
	case c >= 'a' && c < 'a'+26:
		return int(c - 'a'), true
	case c >= 'A' && c < 'A'+26:
		return int(c-'A') + 26, true
	case c >= '0' && c < '0'+10:
		return int(c-'0') + 52, true
	case c == '_':
		return 62, true
	case c == '-':
		return 63, true
	default:
		return 0, false
	}
}

func (e *encoder) encodeCommand(ins instr.Ins) {
	cond := 0
	switch ins.Cond() {
	case instr.RedCond:
		cond = 1
	case instr.GreenCond:
		cond = 2
	case instr.BlueCond:
		cond = 3
	}
	e.encodeBits(cond, 2)

	var cmd, sub, sublen int
	switch {
	case ins.IsOpcode(instr.Forward):
		cmd = 1
	case ins.IsOpcode(instr.Left):
		cmd = 2
	case ins.IsOpcode(instr.Right):
		cmd = 3
	case ins.IsFunction():
		cmd, sub, sublen = 4, ins.FuncIndex(), 3
	case ins.IsMark() && !ins.IsGray():
		cmd, sublen = 5, 2
		switch ins.MarkColor() {
		case instr.MarkRed.MarkColor():
			sub = 1
		case instr.MarkGreen.MarkColor():
			sub = 2
		default:
			sub = 3
		}
	default:
		cmd = 0 // NOP/HALT/stray mark-gray: no sub-field, matches the original's blank command.
	}
	e.encodeBits(cmd, 3)
	if sublen != 0 {
		e.encodeBits(sub, sublen)
	}
}

// Encode packs src into the submission string for puzzle p: a 3-bit
// version field, the method count, and per-method declared length plus packed
// instructions, flushed to a whole number of characters.
func Encode(src *program.Source, p *puzzle.Puzzle) string {
	e := &encoder{}
	e.encodeBits(version, 3)
	e.encodeBits(program.Methods, 3)
	for i := 0; i < program.Methods; i++ {
		e.encodeBits(p.Methods[i], 4)
		for j := 0; j < p.Methods[i]; j++ {
			e.encodeCommand(src[i][j])
		}
	}
	e.encodeBits(0, 5) // flush to a whole character
	return e.out.String()
}

type decoder struct {
	input []byte
	index int
	val   int
	bits  int
}

func (d *decoder) decodeBits(bits int) (int, error) {
	val := 0
	for i := 0; i < bits; i++ {
		if d.bits == 0 {
			if d.index >= len(d.input) {
				return 0, ErrTruncated
			}
			v, ok := valForChar(d.input[d.index])
			if !ok {
				return 0, ErrBadChar
			}
			d.index++
			d.val = v
			d.bits = 6
		}
		if d.val&(1<<(6-d.bits)) != 0 {
			val |= 1 << i
		}
		d.bits--
	}
	return val, nil
}

func (d *decoder) decodeCommand() (instr.Ins, error) {
	cond, err := d.decodeBits(2)
	if err != nil {
		return 0, err
	}
	var condIns instr.Ins
	switch cond {
	case 1:
		condIns = instr.RedCond
	case 2:
		condIns = instr.GreenCond
	case 3:
		condIns = instr.BlueCond
	default:
		condIns = instr.GrayCond
	}

	cmd, err := d.decodeBits(3)
	if err != nil {
		return 0, err
	}
	switch cmd {
	case 1:
		return instr.Forward | condIns, nil
	case 2:
		return instr.Left | condIns, nil
	case 3:
		return instr.Right | condIns, nil
	case 4:
		sub, err := d.decodeBits(3)
		if err != nil {
			return 0, err
		}
		switch sub {
		case 0:
			return instr.F1 | condIns, nil
		case 1:
			return instr.F2 | condIns, nil
		case 2:
			return instr.F3 | condIns, nil
		case 3:
			return instr.F4 | condIns, nil
		case 4:
			return instr.F5 | condIns, nil
		default:
			return 0, ErrBadChar
		}
	case 5:
		sub, err := d.decodeBits(2)
		if err != nil {
			return 0, err
		}
		switch sub {
		case 1:
			return instr.MarkRed | condIns, nil
		case 2:
			return instr.MarkGreen | condIns, nil
		case 3:
			return instr.MarkBlue | condIns, nil
		default:
			return 0, ErrBadChar
		}
	default:
		return instr.Halt, nil
	}
}

// Decode is Encode's inverse: it returns the packed program and each
// method's declared length as recorded in the stream (Testable
// "Encoder round-trip": decode(encode(P, Q)) == P for every fully
// resolved P whose method lengths match Q). The loose flag is not
// encoded, and NOP holes share HALT's blank command, so they decode as
// HALT.
func Decode(s string) (*program.Source, [program.Methods]int, error) {
	d := &decoder{input: []byte(s)}
	var lengths [program.Methods]int

	v, err := d.decodeBits(3)
	if err != nil {
		return nil, lengths, err
	}
	if v != version {
		return nil, lengths, ErrBadVersion
	}

	count, err := d.decodeBits(3)
	if err != nil {
		return nil, lengths, err
	}

	src := program.Empty()
	for i := 0; i < count && i < program.Methods; i++ {
		length, err := d.decodeBits(4)
		if err != nil {
			return nil, lengths, err
		}
		lengths[i] = length
		for j := 0; j < length && j < program.Slots; j++ {
			ins, err := d.decodeCommand()
			if err != nil {
				return nil, lengths, err
			}
			src[i][j] = ins
		}
	}
	return &src, lengths, nil
}
