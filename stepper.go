package pathgrid

// StepSnapshot exposes the per-iteration state of a search.
type StepSnapshot struct {
	Current   Coord
	Open      []Coord
	Closed    []Coord
	Done      bool
	Found     bool
	Path      []Coord
	StepIndex int
}

// Stepper drives one search a single expansion at a time, for visualizers
// and debugging tools. It pins the grid snapshot current at construction;
// replacing the grid afterwards does not affect a running stepper.
type Stepper struct {
	snap    *snapshot
	scratch *scratch
	goal    Coord
	maxDrop float32
	maxJump float32

	stepCount int
	done      bool
	found     bool
	path      []Coord
}

// NewStepper prepares a step-at-a-time search with the same admission rules
// as Engine.FindPath. A degenerate query (start == goal, out-of-bounds
// endpoint, blocked goal, no grid installed) yields a stepper that is
// immediately Done without a path.
func NewStepper(engine *Engine, start, goal Coord, maxDrop, maxJump float32) *Stepper {
	s := &Stepper{
		snap:    engine.grid.current.Load(),
		goal:    goal,
		maxDrop: maxDrop,
		maxJump: maxJump,
	}
	if s.snap == nil || start == goal || !s.snap.inBounds(start) || !s.snap.inBounds(goal) ||
		s.snap.collision[s.snap.index(goal.X, goal.Y)] == TileBlocked {
		s.done = true
		return s
	}
	s.scratch = new(scratch)
	s.scratch.grow(s.snap.width * s.snap.height)
	seedSearch(s.snap, s.scratch, start, goal)
	return s
}

// Step advances the search by one node expansion and returns a snapshot.
func (s *Stepper) Step() StepSnapshot {
	if s.done {
		return s.capture(Coord{})
	}
	if s.scratch.open.Len() == 0 {
		s.done = true
		return s.capture(Coord{})
	}

	minID := s.scratch.open.min()
	current := s.scratch.nodes[minID].tile
	if current == s.goal {
		s.done = true
		s.found = true
		s.path = buildRoute(s.scratch, minID)
		return s.capture(current)
	}

	s.stepCount++
	expandMin(s.snap, s.scratch, s.goal, s.maxDrop, s.maxJump)
	return s.capture(current)
}

func (s *Stepper) capture(current Coord) StepSnapshot {
	frame := StepSnapshot{
		Current:   current,
		Done:      s.done,
		Found:     s.found,
		Path:      s.path,
		StepIndex: s.stepCount,
	}
	if s.scratch == nil {
		return frame
	}
	for idx, marker := range s.scratch.state {
		tile := Coord{X: uint8(idx % s.snap.width), Y: uint8(idx / s.snap.width)}
		switch marker {
		case tileOpen:
			frame.Open = append(frame.Open, tile)
		case tileClosed:
			frame.Closed = append(frame.Closed, tile)
		}
	}
	return frame
}
