// Package callstack implements the interpreter's bounded call stack: a
// LIFO of (method, instruction-index) return pointers, sized so that an
// entire State is cheap to clone per search branch, the way the
// teacher's MoveList is a fixed [256]Move array rather than a slice.
package callstack

import "github.com/cespare/xxhash/v2"

// Capacity bounds the stack at roughly 1KiB of packed frames, matching
// the original interpreter's fixed-size call stack; a program that would
// push beyond this depth is a terminal non-solution (vm.ErrStackOverflow).
const Capacity = 1024

// MixDepth is how many frames from the top participate in Hash (Equal
// always compares the full stack). Deep-equal states that differ only far below
// the top of a long recursive call chain are rare and not worth the
// cost of mixing the whole stack on every branch.
const MixDepth = 64

// Frame packs a method index (0..4) and an instruction index (0..9)
// into a single byte: bits 4-6 hold the method, bits 0-3 hold the index.
type Frame uint8

// NewFrame builds a Frame for the given method and instruction index.
func NewFrame(method, index int) Frame {
	return Frame(method<<4 | index)
}

// Method returns the method index.
func (f Frame) Method() int { return int(f>>4) & 0x7 }

// Index returns the instruction index within the method.
func (f Frame) Index() int { return int(f) & 0xF }

// Stack is a fixed-capacity LIFO, embedded by value in State so cloning
// a search branch never touches the heap.
type Stack struct {
	frames [Capacity]Frame
	count  int
}

// Empty reports whether the stack has no frames.
func (s *Stack) Empty() bool { return s.count == 0 }

// Len returns the number of frames currently on the stack.
func (s *Stack) Len() int { return s.count }

// Full reports whether the stack has reached Capacity.
func (s *Stack) Full() bool { return s.count == Capacity }

// Push adds a frame to the top. The caller must check Full first;
// pushing past Capacity is a programmer error (the interpreter always
// checks via vm.ErrStackOverflow before invoking).
func (s *Stack) Push(f Frame) {
	s.frames[s.count] = f
	s.count++
}

// Pop removes and returns the top frame.
func (s *Stack) Pop() Frame {
	s.count--
	return s.frames[s.count]
}

// Top returns the top frame without removing it.
func (s *Stack) Top() Frame { return s.frames[s.count-1] }

// Equal reports whether two stacks are identical. Comparison is over
// the full stack: equality is used for exact-state deduplication, where
// correctness matters more than the cheap top-K shortcut Hash takes.
func (s *Stack) Equal(o *Stack) bool {
	if s.count != o.count {
		return false
	}
	for i := 0; i < s.count; i++ {
		if s.frames[i] != o.frames[i] {
			return false
		}
	}
	return true
}

// Hash mixes the stack depth and only the top MixDepth frames, matching
// the original engine's STACK_MATCH-windowed hash: states that diverge
// only deep below a long, shared call prefix hash identically, which is
// an acceptable false-sharing rate in exchange for O(1) hashing cost
// independent of recursion depth.
func (s *Stack) Hash() uint64 {
	var buf [1 + MixDepth]byte
	buf[0] = byte(s.count)
	start := s.count - MixDepth
	if start < 0 {
		start = 0
	}
	n := 1
	for i := start; i < s.count; i++ {
		buf[n] = byte(s.frames[i])
		n++
	}
	return xxhash.Sum64(buf[:n])
}
