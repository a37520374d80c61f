package pathgrid

import (
	"container/heap"
	"runtime"
	"sync"

	"github.com/pdrpinto/pathgrid/internal"
)

// Step costs in fixed-point tenths: 14 approximates 10*sqrt(2) for a
// diagonal step. Height never affects cost, only feasibility.
const (
	costStraight int32 = 10
	costDiagonal int32 = 14
)

// neighborOffsets lists the 8-connected neighborhood, orthogonal moves
// first. Offsets at index >= 4 are diagonal.
var neighborOffsets = [8]struct{ dx, dy int8 }{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
}

// Options defines parameters for the engine.
type Options struct {
	// StepLimit bounds node expansions per query; 0 means unbounded.
	// A query hitting the limit degrades to the no-path result.
	StepLimit int
	// NumberOfWorkers sizes the FindPaths worker pool.
	NumberOfWorkers int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithStepLimit bounds the number of node expansions a single query may
// perform before giving up.
func WithStepLimit(limit int) Option {
	return func(options *Options) { options.StepLimit = limit }
}

// WithWorkers specifies how many worker goroutines FindPaths uses.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// Engine computes routes between tiles on the grid currently installed in
// its Grid. Queries run synchronously on the calling goroutine and are safe
// to issue concurrently with each other and with grid replacement.
type Engine struct {
	grid      *Grid
	stepLimit int
	workers   int

	scratchPool sync.Pool
}

// NewEngine creates an engine reading from grid.
func NewEngine(grid *Grid, options ...Option) *Engine {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	engine := &Engine{
		grid:      grid,
		stepLimit: searchOptions.StepLimit,
		workers:   searchOptions.NumberOfWorkers,
	}
	engine.scratchPool.New = func() any { return new(scratch) }
	return engine
}

// ApplyCollisionMap installs a new collision/height pair on the engine's
// grid. Safe to call while queries are in flight: running queries keep the
// snapshot they started with.
func (e *Engine) ApplyCollisionMap(collision [][]byte, heights [][]float32) error {
	return e.grid.Replace(collision, heights)
}

// emptyRoute is the shared no-path result. Routes are never nil.
var emptyRoute = []Coord{}

// FindPath returns the route from the tile after start through goal,
// inclusive of goal, subject to the per-step height limits: a step may
// climb at most maxJump and descend at most maxDrop. The result is empty
// (never nil) when start equals goal, either endpoint is out of bounds,
// the goal tile is blocked, or no route exists.
func (e *Engine) FindPath(start, goal Coord, maxDrop, maxJump float32) []Coord {
	route, _, _ := e.findRoute(start, goal, maxDrop, maxJump)
	return route
}

// Path is the flat-argument form of FindPath for hosts that carry raw tile
// coordinates.
func (e *Engine) Path(startX, startY, endX, endY uint8, maxDrop, maxJump float32) []Coord {
	return e.FindPath(Coord{X: startX, Y: startY}, Coord{X: endX, Y: endY}, maxDrop, maxJump)
}

// findRoute runs one query end to end and reports the route, the number of
// expanded nodes, and whether the goal was reached.
func (e *Engine) findRoute(start, goal Coord, maxDrop, maxJump float32) ([]Coord, int, bool) {
	snap := e.grid.current.Load()
	if snap == nil || start == goal || !snap.inBounds(start) || !snap.inBounds(goal) {
		return emptyRoute, 0, false
	}
	if snap.collision[snap.index(goal.X, goal.Y)] == TileBlocked {
		return emptyRoute, 0, false
	}

	s := e.scratchPool.Get().(*scratch)
	defer e.scratchPool.Put(s)
	s.grow(snap.width * snap.height)
	seedSearch(snap, s, start, goal)

	expanded := 0
	for s.open.Len() > 0 {
		goalID := s.open.min()
		if s.nodes[goalID].tile == goal {
			return buildRoute(s, goalID), expanded, true
		}
		if e.stepLimit > 0 && expanded >= e.stepLimit {
			break
		}
		expandMin(snap, s, goal, maxDrop, maxJump)
		expanded++
	}
	return emptyRoute, expanded, false
}

// seedSearch allocates the root node at start and opens it.
func seedSearch(snap *snapshot, s *scratch, start, goal Coord) {
	root := s.alloc(start, 0, 0, heuristic(start, goal))
	idx := snap.index(start.X, start.Y)
	s.state[idx] = tileOpen
	s.openID[idx] = root
	heap.Push(&s.open, root)
}

// expandMin pops the minimum-F node, closes it, and admits up to 8
// neighbors. The caller has already checked the minimum against the goal.
func expandMin(snap *snapshot, s *scratch, goal Coord, maxDrop, maxJump float32) {
	current := heap.Pop(&s.open).(int32)
	from := s.nodes[current].tile
	fromIdx := snap.index(from.X, from.Y)
	s.state[fromIdx] = tileClosed

	fromHeight := snap.heights[fromIdx]
	fromG := s.nodes[current].g

	for i, d := range neighborOffsets {
		nx := int(from.X) + int(d.dx)
		ny := int(from.Y) + int(d.dy)
		if nx < 0 || ny < 0 || nx >= snap.width || ny >= snap.height {
			continue
		}
		idx := ny*snap.width + nx
		if s.state[idx] == tileClosed {
			continue
		}
		next := Coord{X: uint8(nx), Y: uint8(ny)}
		code := snap.collision[idx]
		if code == TileBlocked || (code == TileArrival && next != goal) {
			continue
		}
		climb := snap.heights[idx] - fromHeight
		if climb > maxJump || climb < -maxDrop {
			continue
		}
		stepCost := costStraight
		if i >= 4 {
			// A diagonal step must not cut between its two orthogonal
			// corner tiles; both must be plainly walkable.
			if !cornerWalkable(snap, from, d.dx, 0) || !cornerWalkable(snap, from, 0, d.dy) {
				continue
			}
			stepCost = costDiagonal
		}

		g := fromG + stepCost
		if s.state[idx] == tileOpen {
			id := s.openID[idx]
			if g < s.nodes[id].g {
				s.nodes[id].g = g
				s.nodes[id].f = g + s.nodes[id].h
				s.nodes[id].parent = current
				heap.Fix(&s.open, int(s.nodes[id].heapPos))
			}
			continue
		}

		id := s.alloc(next, current, g, heuristic(next, goal))
		s.state[idx] = tileOpen
		s.openID[idx] = id
		heap.Push(&s.open, id)
	}
}

// cornerWalkable reports whether the orthogonal tile adjacent to a diagonal
// move is freely traversable. The corner lies between the two endpoints of
// an in-bounds diagonal step, so no bounds check is needed.
func cornerWalkable(snap *snapshot, from Coord, dx, dy int8) bool {
	x := int(from.X) + int(dx)
	y := int(from.Y) + int(dy)
	return snap.collision[y*snap.width+x] == TileWalkable
}

// heuristic is the octile distance in the step-cost unit: diagonal steps
// cover the shorter axis, orthogonal steps the remainder. It never
// overestimates the true cost, so closed nodes hold their final G and the
// returned route is shortest.
func heuristic(from, to Coord) int32 {
	dx := int32(from.X) - int32(to.X)
	if dx < 0 {
		dx = -dx
	}
	dy := int32(from.Y) - int32(to.Y)
	if dy < 0 {
		dy = -dy
	}
	if dx < dy {
		return costDiagonal*dx + costStraight*(dy-dx)
	}
	return costDiagonal*dy + costStraight*(dx-dy)
}

// buildRoute walks parent ids from the goal node back to the root, then
// reverses. The root (start) tile is not part of the route. Touches only
// query-local state.
func buildRoute(s *scratch, goalID int32) []Coord {
	route := make([]Coord, 0, 16)
	for id := goalID; s.nodes[id].parent != 0; id = s.nodes[id].parent {
		route = append(route, s.nodes[id].tile)
	}
	internal.Reverse(route)
	return route
}
