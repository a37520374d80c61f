package pathgrid

import (
	"context"
	"sync"
)

// Request is one independent path query for FindPaths.
type Request struct {
	Start, Goal Coord
	MaxDrop     float32
	MaxJump     float32
}

// Result contains the outcome of one search.
type Result struct {
	Route         []Coord
	ExpandedNodes int
	Found         bool
}

// FindPaths fans independent queries across a worker pool and returns one
// Result per request, in request order. Each worker runs the synchronous
// search against the snapshot current when its query starts. Cancelling the
// context abandons requests that have not started; their results stay empty.
func (e *Engine) FindPaths(ctx context.Context, requests []Request) []Result {
	results := make([]Result, len(requests))
	for i := range results {
		results[i].Route = emptyRoute
	}
	if len(requests) == 0 {
		return results
	}

	workers := e.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(requests) {
		workers = len(requests)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				request := requests[index]
				route, expanded, found := e.findRoute(request.Start, request.Goal, request.MaxDrop, request.MaxJump)
				results[index] = Result{
					Route:         route,
					ExpandedNodes: expanded,
					Found:         found,
				}
			}
		}()
	}

feed:
	for i := range requests {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return results
}
