package tactic

import (
	"strings"
	"testing"
	"time"
)

func TestReporterHeader(t *testing.T) {
	var sb strings.Builder
	var r = &reporter{w: &sb}
	r.header("wac", 300, 6)
	var want = "Running suite wac (300 positions) at depth 6\n"
	if got := sb.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReporterProgress(t *testing.T) {
	var sb strings.Builder
	var r = &reporter{w: &sb}
	r.progress(1, 10, "WAC.001", "Qg6")
	r.progress(3, 10, "", "Qxg7+")
	var want = "[1/10] id=WAC.001 expecting Qg6\n" +
		"[3/10] id=N/A expecting Qxg7+\n"
	if got := sb.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReporterMismatch(t *testing.T) {
	var sb strings.Builder
	var r = &reporter{w: &sb}
	r.mismatch(2, "Ka2", "Kb1")
	r.mismatch(7, "Ka2", "")
	var want = "Mismatch #2: expected Ka2, got Kb1\n" +
		"Mismatch #7: expected Ka2, got (none)\n"
	if got := sb.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReporterSummary(t *testing.T) {
	var sb strings.Builder
	var r = &reporter{w: &sb}
	r.summary(Summary{
		Suite:     "wac",
		Depth:     6,
		Positions: 4,
		Matched:   3,
		Duration:  6 * time.Second,
		Mismatches: []Mismatch{
			{Index: 2, ID: "WAC.002", Expected: "Rxb2", Got: "a1b1"},
		},
	})
	var want = "\n=== Summary ===\n" +
		"Suite: wac\n" +
		"Depth: 6\n" +
		"Positions: 4\n" +
		"Matched: 3/4 (75.00%)\n" +
		"Duration: 6.0s (1.50s per position)\n" +
		"Mismatches details:\n" +
		"  #2 WAC.002: expected Rxb2, got a1b1\n"
	if got := sb.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReporterSummaryPerfectRun(t *testing.T) {
	var sb strings.Builder
	var r = &reporter{w: &sb}
	r.summary(Summary{
		Suite:     "bk",
		Depth:     8,
		Positions: 2,
		Matched:   2,
		Duration:  time.Second,
	})
	var got = sb.String()
	if !strings.Contains(got, "Matched: 2/2 (100.00%)\n") {
		t.Fatalf("match line missing: %q", got)
	}
	if !strings.Contains(got, "Duration: 1.0s (0.50s per position)\n") {
		t.Fatalf("duration line missing: %q", got)
	}
	if strings.Contains(got, "Mismatches details:") {
		t.Fatalf("clean run must not list mismatches: %q", got)
	}
}

func TestSummaryUnnamedPositions(t *testing.T) {
	var sb strings.Builder
	var r = &reporter{w: &sb}
	r.summary(Summary{
		Suite:     "custom",
		Depth:     4,
		Positions: 1,
		Duration:  time.Second,
		Mismatches: []Mismatch{
			{Index: 1, Expected: "Nf3", Got: ""},
		},
	})
	if !strings.Contains(sb.String(), "  #1 N/A: expected Nf3, got (none)\n") {
		t.Fatalf("got %q", sb.String())
	}
}

func TestMatchRateEmpty(t *testing.T) {
	var s = Summary{}
	if got := s.MatchRate(); got != 0 {
		t.Fatalf("got %v, want 0", got)
	}
}
