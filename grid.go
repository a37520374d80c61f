package pathgrid

import (
	"fmt"
	"sync/atomic"
)

// Collision codes stored per tile. The value domain is deliberately small:
// grids arrive as raw byte matrices from the world builder.
const (
	// TileBlocked is never traversable.
	TileBlocked byte = 0
	// TileWalkable is freely traversable.
	TileWalkable byte = 1
	// TileArrival is traversable only as a query's goal tile.
	TileArrival byte = 2
)

// MaxAxis bounds grid dimensions to 256 per axis so tile coordinates fit in
// uint8. This is a documented constraint of the engine, not an oversight:
// coordinates, node ids and cost fields are kept in small fixed-width
// integers for compactness. Widening it changes memory layout and cost-field
// headroom and should be a conscious decision.
const MaxAxis = 256

// Coord identifies one tile on the grid.
type Coord struct {
	X, Y uint8
}

// snapshot is one immutable collision/height pair. Grids are stored flat,
// row-major (idx = y*width + x). A snapshot is never mutated after install.
type snapshot struct {
	width, height int
	collision     []byte
	heights       []float32
}

func (s *snapshot) index(x, y uint8) int { return int(y)*s.width + int(x) }

func (s *snapshot) inBounds(c Coord) bool {
	return int(c.X) < s.width && int(c.Y) < s.height
}

// Grid holds the current collision and height grids and supports atomic
// wholesale replacement. Replacement swaps in a new immutable snapshot;
// a query already in progress continues to see whichever snapshot it
// acquired at query start.
type Grid struct {
	current atomic.Pointer[snapshot]
}

// NewGrid returns an empty grid. Until Replace is called every query
// reports no path.
func NewGrid() *Grid {
	return &Grid{}
}

// DimensionError reports a collision/height pair that violates the grid
// preconditions: both matrices must be non-empty, rectangular, of identical
// dimensions, and at most MaxAxis tiles per axis.
type DimensionError struct {
	Reason string
}

func (e *DimensionError) Error() string {
	return "pathgrid: invalid grid dimensions: " + e.Reason
}

// Replace validates and installs a new collision/height pair. Both matrices
// are indexed [y][x] and copied, so the caller may reuse its buffers.
// Returns a *DimensionError and leaves the current grid untouched when the
// pair is malformed.
func (g *Grid) Replace(collision [][]byte, heights [][]float32) error {
	h := len(collision)
	if h == 0 || len(collision[0]) == 0 {
		return &DimensionError{Reason: "empty collision grid"}
	}
	w := len(collision[0])
	if h > MaxAxis || w > MaxAxis {
		return &DimensionError{Reason: fmt.Sprintf("%dx%d exceeds %d tiles per axis", w, h, MaxAxis)}
	}
	if len(heights) != h {
		return &DimensionError{Reason: fmt.Sprintf("collision height %d != height-grid height %d", h, len(heights))}
	}

	next := &snapshot{
		width:     w,
		height:    h,
		collision: make([]byte, w*h),
		heights:   make([]float32, w*h),
	}
	for y := 0; y < h; y++ {
		if len(collision[y]) != w {
			return &DimensionError{Reason: fmt.Sprintf("collision row %d has %d tiles, want %d", y, len(collision[y]), w)}
		}
		if len(heights[y]) != w {
			return &DimensionError{Reason: fmt.Sprintf("height row %d has %d tiles, want %d", y, len(heights[y]), w)}
		}
		copy(next.collision[y*w:(y+1)*w], collision[y])
		copy(next.heights[y*w:(y+1)*w], heights[y])
	}

	g.current.Store(next)
	return nil
}

// Size returns the dimensions of the current grid, or (0, 0) before the
// first Replace.
func (g *Grid) Size() (width, height int) {
	s := g.current.Load()
	if s == nil {
		return 0, 0
	}
	return s.width, s.height
}

// CollisionAt returns the collision code of one tile. Out-of-bounds tiles
// report TileBlocked.
func (g *Grid) CollisionAt(c Coord) byte {
	s := g.current.Load()
	if s == nil || !s.inBounds(c) {
		return TileBlocked
	}
	return s.collision[s.index(c.X, c.Y)]
}

// HeightAt returns the elevation of one tile, or 0 out of bounds.
func (g *Grid) HeightAt(c Coord) float32 {
	s := g.current.Load()
	if s == nil || !s.inBounds(c) {
		return 0
	}
	return s.heights[s.index(c.X, c.Y)]
}
