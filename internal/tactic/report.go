package tactic

import (
	"fmt"
	"io"
)

// reporter renders the run's result lines. Downstream tooling greps these,
// so the wording is fixed.
type reporter struct {
	w io.Writer
}

func (r *reporter) header(suite string, positions, depth int) {
	fmt.Fprintf(r.w, "Running suite %v (%v positions) at depth %v\n",
		suite, positions, depth)
}

func (r *reporter) progress(index, total int, id, expected string) {
	fmt.Fprintf(r.w, "[%v/%v] id=%v expecting %v\n",
		index, total, displayID(id), expected)
}

func (r *reporter) mismatch(index int, expected, got string) {
	fmt.Fprintf(r.w, "Mismatch #%v: expected %v, got %v\n",
		index, expected, displayMove(got))
}

func (r *reporter) summary(s Summary) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "=== Summary ===")
	fmt.Fprintf(r.w, "Suite: %v\n", s.Suite)
	fmt.Fprintf(r.w, "Depth: %v\n", s.Depth)
	fmt.Fprintf(r.w, "Positions: %v\n", s.Positions)
	fmt.Fprintf(r.w, "Matched: %v/%v (%.2f%%)\n", s.Matched, s.Positions, s.MatchRate())
	fmt.Fprintf(r.w, "Duration: %.1fs (%.2fs per position)\n",
		s.Duration.Seconds(), s.secondsPerPosition())
	if len(s.Mismatches) != 0 {
		fmt.Fprintln(r.w, "Mismatches details:")
		for _, m := range s.Mismatches {
			fmt.Fprintf(r.w, "  #%v %v: expected %v, got %v\n",
				m.Index, displayID(m.ID), m.Expected, displayMove(m.Got))
		}
	}
}

func displayID(id string) string {
	if id == "" {
		return "N/A"
	}
	return id
}

func displayMove(move string) string {
	if move == "" {
		return "(none)"
	}
	return move
}
