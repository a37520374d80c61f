package pathgrid

// Per-tile search markers, scoped to one query. Distinct from the collision
// codes even though the value domain coincides.
const (
	tileUnseen byte = 0
	tileOpen   byte = 1
	tileClosed byte = 2
)

// pathNode is one ephemeral search record. Nodes live in a per-query arena
// and are identified by their allocation index; id 0 is reserved so a zero
// parent always means "root / no parent".
type pathNode struct {
	tile    Coord
	parent  int32
	g, h, f int32
	heapPos int32
}

// scratch is the working memory of one query: the node arena, the open
// heap, and the per-tile marker and open-id tables. It is private to one
// FindPath call and pooled across calls to avoid per-query allocation.
// Worst case every tile becomes a node, so everything is sized width*height
// up front.
type scratch struct {
	nodes  []pathNode
	used   int32
	state  []byte
	openID []int32
	open   openHeap
}

// grow ensures capacity for a grid of the given tile count and resets all
// per-query state.
func (s *scratch) grow(tiles int) {
	if len(s.state) < tiles {
		s.nodes = make([]pathNode, tiles+1)
		s.state = make([]byte, tiles)
		s.openID = make([]int32, tiles)
	}
	clear(s.state[:tiles])
	s.used = 0
	s.open.ids = s.open.ids[:0]
	s.open.nodes = s.nodes
}

// alloc appends a node to the arena and returns its id. Ids start at 1.
func (s *scratch) alloc(tile Coord, parent, g, h int32) int32 {
	s.used++
	id := s.used
	s.nodes[id] = pathNode{tile: tile, parent: parent, g: g, h: h, f: g + h}
	return id
}
