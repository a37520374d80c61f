// Package pathgrid provides A* pathfinding over a 2-D tile grid with
// per-tile passability and per-step height gating.
//
// It exposes three main entry points:
//
//   - Engine.FindPath: run one query to completion and get a route.
//   - Engine.FindPaths: fan independent queries across a worker pool.
//   - Stepper: iterate a search one expansion at a time to drive UIs or debugging tools.
//
// The grid is installed wholesale via Grid.Replace (or the ApplyCollisionMap
// alias on Engine) and swapped atomically: a query keeps the snapshot it
// acquired at query start, so replacement never mutates a search mid-flight.
package pathgrid
