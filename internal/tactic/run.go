// Package tactic runs a best-move test suite against a chess engine binary
// and scores the answers position by position.
package tactic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scacchista/tacticrun/internal/epd"
	"github.com/scacchista/tacticrun/internal/uci"
)

var ErrEmptySuite = errors.New("no positions found in suite")

// Config describes one suite run. SuiteName is only for display; when empty
// the suite file's base name is shown instead.
type Config struct {
	SuiteName   string
	SuitePath   string
	EnginePath  string
	Depth       int
	Threads     int
	Limit       int           // upper bound on positions; negative runs the whole suite
	Timeout     time.Duration // per query; zero lets every search run to completion
	Concurrency int           // simultaneous engine processes; values below 2 run sequentially
}

func (cfg *Config) displayName() string {
	if cfg.SuiteName != "" {
		return cfg.SuiteName
	}
	return filepath.Base(cfg.SuitePath)
}

// Mismatch is one position where the engine's answer differed from the
// suite's. Index is 1-based. Got is "" when the engine gave no move at all.
type Mismatch struct {
	Index    int
	ID       string
	Expected string
	Got      string
}

// Summary is the final score of a run.
type Summary struct {
	Suite      string
	Depth      int
	Positions  int
	Matched    int
	Duration   time.Duration
	Mismatches []Mismatch
}

// MatchRate returns the matched share as a percentage of positions run.
func (s *Summary) MatchRate() float64 {
	if s.Positions == 0 {
		return 0
	}
	return float64(s.Matched) * 100 / float64(s.Positions)
}

func (s *Summary) secondsPerPosition() float64 {
	if s.Positions == 0 {
		return 0
	}
	return s.Duration.Seconds() / float64(s.Positions)
}

type queryResult struct {
	index int // 1-based
	rec   epd.Record
	move  string
	err   error
}

// scoreboard accumulates per-position outcomes in index order. Result lines
// go to the reporter, engine failures to the logger.
type scoreboard struct {
	rep        *reporter
	logger     *log.Logger
	total      int
	matched    int
	mismatches []Mismatch
}

func (b *scoreboard) announce(index int, rec epd.Record) {
	b.rep.progress(index, b.total, rec.ID, rec.BestMove)
}

func (b *scoreboard) tally(result queryResult) {
	var got = result.move
	if result.err != nil {
		b.logger.Printf("Engine error on position %v: %v", result.index, result.err)
		got = ""
	}
	if got == result.rec.BestMove {
		b.matched++
		return
	}
	b.rep.mismatch(result.index, result.rec.BestMove, got)
	b.mismatches = append(b.mismatches, Mismatch{
		Index:    result.index,
		ID:       result.rec.ID,
		Expected: result.rec.BestMove,
		Got:      got,
	})
}

// Run loads the suite, queries the engine on every position and writes the
// report to out. Engine failures are logged and scored as misses rather
// than aborting the run; Run itself fails only on an unusable suite or a
// cancelled context.
func Run(ctx context.Context, cfg Config, out io.Writer, logger *log.Logger) (Summary, error) {
	var records, err = epd.Load(cfg.SuitePath)
	if err != nil {
		return Summary{}, err
	}
	if cfg.Limit >= 0 && len(records) > cfg.Limit {
		records = records[:cfg.Limit]
	}
	if len(records) == 0 {
		return Summary{}, fmt.Errorf("%w: %v", ErrEmptySuite, cfg.SuitePath)
	}

	var client = &uci.Client{
		EnginePath: cfg.EnginePath,
		Depth:      cfg.Depth,
		Threads:    cfg.Threads,
		Timeout:    cfg.Timeout,
	}
	var rep = &reporter{w: out}
	var board = &scoreboard{rep: rep, logger: logger, total: len(records)}

	rep.header(cfg.displayName(), len(records), cfg.Depth)
	var started = time.Now()

	if cfg.Concurrency > 1 {
		err = runParallel(ctx, cfg.Concurrency, client, board, records)
	} else {
		err = runOrdered(ctx, client, board, records)
	}
	if err != nil {
		return Summary{}, err
	}

	var summary = Summary{
		Suite:      cfg.displayName(),
		Depth:      cfg.Depth,
		Positions:  len(records),
		Matched:    board.matched,
		Duration:   time.Since(started),
		Mismatches: board.mismatches,
	}
	rep.summary(summary)
	return summary, nil
}

// runOrdered is the default mode: one engine process at a time, each
// position announced before its query starts.
func runOrdered(ctx context.Context, client *uci.Client, board *scoreboard, records []epd.Record) error {
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		board.announce(i+1, rec)
		var move, err = client.BestMove(ctx, rec.Fen)
		board.tally(queryResult{index: i + 1, rec: rec, move: move, err: err})
	}
	return nil
}

// runParallel fans the queries out over concurrency engine processes. The
// collector releases each position's lines only when all earlier positions
// have been released, so the report reads the same as a sequential run; a
// position is announced once its answer arrives.
func runParallel(ctx context.Context, concurrency int, client *uci.Client, board *scoreboard, records []epd.Record) error {
	var g, gctx = errgroup.WithContext(ctx)
	var jobs = make(chan int)
	var results = make(chan queryResult, concurrency)

	g.Go(func() error {
		defer close(jobs)
		for i := range records {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var wg = &sync.WaitGroup{}
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for i := range jobs {
				var move, err = client.BestMove(gctx, records[i].Fen)
				select {
				case results <- queryResult{index: i + 1, rec: records[i], move: move, err: err}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	g.Go(func() error {
		var pending = make(map[int]queryResult)
		var next = 1
		for result := range results {
			pending[result.index] = result
			for {
				var r, ok = pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				board.announce(r.index, r.rec)
				board.tally(r)
				next++
			}
		}
		return nil
	})

	return g.Wait()
}
