package tile

import "github.com/arnfaldur/robozzle-solver/internal/instr"

// Width and Height are the fixed map dimensions every puzzle shares.
const (
	Width  = 18
	Height = 14
)

// Direction is the robot's facing, as a quarter-turn index.
type Direction uint8

const (
	Up Direction = iota
	Left
	Down
	Right
)

// TurnLeft rotates one quarter-turn counter-clockwise.
func (d Direction) TurnLeft() Direction { return (d + 1) % 4 }

// TurnRight rotates one quarter-turn clockwise.
func (d Direction) TurnRight() Direction { return (d + 3) % 4 }

var dy = [4]int{-1, 0, 1, 0}
var dx = [4]int{0, -1, 0, 1}

// Map is the fixed 14x18 tile grid.
type Map [Height][Width]Tile

// Board is the robot's position, facing and the map it walks.
type Board struct {
	Map       Map
	Direction Direction
	X, Y      int
}

// CurrentTile returns the tile under the robot, or Out when the robot
// has stepped outside the grid.
func (b *Board) CurrentTile() Tile {
	if b.X < 0 || b.X >= Width || b.Y < 0 || b.Y >= Height {
		return Out
	}
	return b.Map[b.Y][b.X]
}

// Touch increments the visit count of the current tile.
func (b *Board) Touch() { b.Map[b.Y][b.X] = b.Map[b.Y][b.X].Touch() }

// ClearStar clears the star on the current tile.
func (b *Board) ClearStar() { b.Map[b.Y][b.X] = b.Map[b.Y][b.X].ClearStar() }

// Mark overwrites the current tile's color per ins.
func (b *Board) Mark(ins instr.Ins) { b.Map[b.Y][b.X] = b.Map[b.Y][b.X].Mark(ins) }

// StepForward moves one cell in the facing direction. It never mutates
// the map; callers inspect the new CurrentTile to detect an off-map step.
func (b *Board) StepForward() {
	b.Y += dy[b.Direction]
	b.X += dx[b.Direction]
}

// CountReachable performs a 4-connected flood fill from (x, y) over
// every on-map tile and returns the number of distinct tiles reached,
// along with the disjunction of every reached tile's color bits. The
// start tile itself contributes to neither.
//
// Grounded directly on the original engine's Board::count_tiles, which
// walks the map with an explicit frontier rather than recursion; this
// implementation keeps that shape with a slice used as a LIFO frontier instead of a
// graph-library traversal (see DESIGN.md for why no pack library fits a
// single bounded grid flood fill).
func CountReachable(m *Map, x, y int) (count int, colors Tile) {
	type cell struct{ x, y int }
	visited := make(map[cell]bool)
	frontier := []cell{{x, y}}
	visited[cell{x, y}] = true
	deltas := [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	for len(frontier) > 0 {
		c := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for _, d := range deltas {
			nx, ny := c.x+d[0], c.y+d[1]
			if nx < 0 || nx >= Width || ny < 0 || ny >= Height {
				continue
			}
			n := cell{nx, ny}
			if visited[n] {
				continue
			}
			t := m[ny][nx]
			if t.IsOut() {
				continue
			}
			visited[n] = true
			frontier = append(frontier, n)
			count++
			colors |= t.Color()
		}
	}
	return count, colors
}
