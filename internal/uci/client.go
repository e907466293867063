// Package uci asks a UCI chess engine for its best move on a single
// position. Each query runs a fresh engine process: the full command script
// is written at once, the input closed, and the answer read from the
// captured output after the process exits. Engines that misbehave on one
// position therefore cannot poison the next query.
package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Client queries an engine binary for best moves. Threads is the engine's
// own search thread count, passed through as a UCI option. A zero Timeout
// lets every search run as long as it needs.
type Client struct {
	EnginePath string
	Depth      int
	Threads    int
	Timeout    time.Duration
}

// BestMove searches fen to the configured depth and returns the move the
// engine settled on, in the engine's own notation. It returns "" without an
// error when the engine exits cleanly but never declares a best move.
func (c *Client) BestMove(ctx context.Context, fen string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var session, err = StartSession(ctx, c.EnginePath)
	if err != nil {
		return "", err
	}
	defer session.Release()

	// A write failure is not checked here: the engine may stop reading
	// before the script ends, and exit status plus captured output still
	// decide the outcome.
	_ = session.Send(c.script(fen))
	if err := session.AwaitExit(); err != nil {
		if c.Timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("engine %v gave no answer within %v: %w",
				c.EnginePath, c.Timeout, ctx.Err())
		}
		return "", err
	}
	return lastBestMove(session.Stdout()), nil
}

func (c *Client) script(fen string) []string {
	return []string{
		"uci",
		fmt.Sprintf("setoption name Threads value %v", c.Threads),
		"isready",
		"position fen " + fen,
		"isready",
		fmt.Sprintf("go depth %v", c.Depth),
		"quit",
	}
}

// lastBestMove extracts the move token from the last "bestmove" line of the
// engine's output. Engines echo intermediate info lines freely, so only the
// final declaration counts. Returns "" when no usable line is present.
func lastBestMove(output string) string {
	var move string
	var scanner = bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		var line = scanner.Text()
		if !strings.HasPrefix(line, "bestmove") {
			continue
		}
		move = ""
		var parts = strings.Fields(line)
		if len(parts) >= 2 {
			move = parts[1]
		}
	}
	return move
}
