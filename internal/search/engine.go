package search

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/arnfaldur/robozzle-solver/internal/program"
	"github.com/arnfaldur/robozzle-solver/internal/puzzle"
)

// Logger is the narrow seam the search engine logs progress through,
// matching the teacher's preference for small interface seams over a
// global logger singleton (internal/engine/engine.go's Logger-shaped
// dependency). A nil Logger disables progress logging entirely.
type Logger interface {
	Printf(format string, args ...any)
}

// Options configures a Solve run.
type Options struct {
	// Workers is the goroutine pool size. Zero selects DefaultWorkers.
	Workers int
	// Logger receives periodic progress lines. Nil disables logging.
	Logger Logger
}

// DefaultWorkers mirrors the original engine's fixed thread count.
const DefaultWorkers = 10

// queueCapacity bounds the shared frontier channel. The original engine
// uses a genuinely unbounded crossbeam channel and only polices it with
// the length checks below; Go's buffered channels preallocate their
// backing array eagerly, so this is sized down from the original's
// 2^20/2^24 thresholds to something that fits comfortably in memory
// while keeping the same proportions between "prefer local" and "drop
// this worker".
const (
	queueCapacity       = 1 << 16
	preferLocalAbove    = 1 << 12
	dropWorkerIfLenOver = queueCapacity - 1
	housekeepingEvery   = 1 << 14
	logEvery            = 1 << 18
	recvIdleTimeout     = 100 * time.Millisecond
)

// maxIns is the incumbent solution-size bound. Like the original
// engine's static MAX_INS, this lives at package scope with process
// lifetime: every Solve call reinitializes it up front, and a solution
// found partway through search tightens it for every worker still
// running, pruning the remaining frontier to strictly shorter programs.
var maxIns atomic.Int64

// Solve runs the parallel pruned backtracking search over p and returns
// every solution found, longest-bound-first (each solution tightens
// maxIns, so later solutions are never longer than earlier ones).
func Solve(p *puzzle.Puzzle, opts Options) []program.Source {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	total := 0
	for _, m := range p.Methods {
		total += m
	}
	maxIns.Store(int64(total))

	queue := make(chan Frame, queueCapacity)

	var wg sync.WaitGroup
	resultsCh := make(chan []program.Source, workers)
	for id := 0; id < workers; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			resultsCh <- runWorker(p, id, queue, opts.Logger)
		}(id)
	}

	// Seed the frontier from the root frame the same way the original
	// top-level backtrack() does: run the branching rule directly, and
	// only hand a child to the shared queue once it has grown past a
	// trivially small size; smaller children keep being expanded here
	// single-threaded until the fan-out is wide enough to be worth the
	// channel send.
	var seeded []program.Source
	var seeds []Frame
	seeds = append(seeds, newSeedFrame(p))
	for len(seeds) > 0 {
		branch := seeds[len(seeds)-1]
		seeds = seeds[:len(seeds)-1]
		solved := search(p, branch, func(child Frame, _ bool) {
			if child.Candidate.CountIns() >= 2 {
				queue <- child
			} else {
				seeds = append(seeds, child)
			}
		})
		if solved {
			seeded = append(seeded, branch.Candidate)
			for bound := int64(branch.Candidate.CountIns() - 1); ; {
				cur := maxIns.Load()
				if bound >= cur || maxIns.CompareAndSwap(cur, bound) {
					break
				}
			}
		}
	}

	wg.Wait()
	close(resultsCh)

	all := seeded
	for r := range resultsCh {
		all = append(all, r...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CountIns() > all[j].CountIns() })
	return all
}

// runWorker is one search thread: it pulls frames from the shared
// queue (giving up, like the original's recv_timeout, once the queue
// has gone quiet for recvIdleTimeout) and drives each one through a
// local LIFO deque so branching stays depth-first within a worker.
func runWorker(p *puzzle.Puzzle, id int, queue chan Frame, logger Logger) []program.Source {
	var result []program.Source
	var local []Frame
	var considered uint64

	for {
		var outer Frame
		select {
		case f, ok := <-queue:
			if !ok {
				return result
			}
			outer = f
		case <-time.After(recvIdleTimeout):
			return result
		}
		local = append(local, outer)

		for len(local) > 0 {
			frame := local[len(local)-1]
			local = local[:len(local)-1]
			candidate := frame.Candidate
			considered++

			if int64(candidate.CountIns()) > maxIns.Load() {
				continue
			}

			solved := search(p, frame, func(child Frame, isNop bool) {
				bound := maxIns.Load()
				if isNop && int64(child.Candidate.CountIns()) > bound {
					return
				}
				if int64(child.State.Steps) >= int64(child.Inters) && len(queue) < preferLocalAbove {
					select {
					case queue <- Frame{Candidate: child.Candidate, State: child.State, Inters: child.Inters + 1}:
						return
					default:
						// shared queue momentarily full; fall through to local routing.
					}
				}
				nextInters := child.Inters
				if int64(child.State.Steps) >= int64(child.Inters) {
					nextInters++
				}
				shaded := child.Candidate
				shaded.Shade(int(maxIns.Load()))
				local = append(local, Frame{Candidate: shaded, State: child.State, Inters: nextInters})
			})

			if considered%housekeepingEvery == 0 {
				if len(queue) == 0 || len(queue) > dropWorkerIfLenOver {
					return result
				}
			}

			if solved {
				result = append(result, candidate)
				for bound := int64(candidate.CountIns() - 1); ; {
					cur := maxIns.Load()
					if bound >= cur || maxIns.CompareAndSwap(cur, bound) {
						break
					}
				}
				if logger != nil {
					logger.Printf("worker %d: solution found, %s instructions, %s considered",
						id, humanize.Comma(int64(candidate.CountIns())), humanize.Comma(int64(considered)))
				}
			} else if considered%logEvery == 0 && logger != nil {
				logger.Printf("worker %d: considered %s, queue %s, local %d, maxIns %d",
					id, humanize.Comma(int64(considered)), humanize.Comma(int64(len(queue))), len(local), maxIns.Load())
			}
		}
	}
}
