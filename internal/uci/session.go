package uci

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ProcessError reports an engine process that exited with a non-zero
// status. It carries the captured error stream so the caller can show the
// engine's own diagnostics. Code is -1 when the process died on a signal.
type ProcessError struct {
	Path   string
	Code   int
	Stderr string
	Err    error
}

func (e *ProcessError) Error() string {
	var msg = fmt.Sprintf("engine %v exited with code %v", e.Path, e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ProcessError) Unwrap() error { return e.Err }

// Session owns one engine process from spawn to reap. The conversation is
// one-shot: the whole command script is written to the engine's input, the
// input is closed, and the output streams are inspected only after the
// process exits. A session serves a single query and is never reused.
//
// Callers must call Release on every path; after AwaitExit it is a no-op.
type Session struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  bytes.Buffer
	stderr  bytes.Buffer
	waited  bool
	waitErr error
}

// StartSession spawns the engine binary at path. Cancelling ctx kills the
// process; without cancellation the session blocks until the engine exits
// on its own.
func StartSession(ctx context.Context, path string) (*Session, error) {
	var s = &Session{}
	s.cmd = exec.CommandContext(ctx, path)
	s.cmd.Stdout = &s.stdout
	s.cmd.Stderr = &s.stderr

	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	s.stdin = stdin

	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start engine %v: %w", path, err)
	}
	return s, nil
}

// Send writes the command lines, newline-joined with a trailing newline, in
// one shot and closes the engine's input. There is no interactive
// back-and-forth after this point.
func (s *Session) Send(lines []string) error {
	defer s.stdin.Close()
	var _, err = io.WriteString(s.stdin, strings.Join(lines, "\n")+"\n")
	if err != nil {
		return fmt.Errorf("write engine input: %w", err)
	}
	return nil
}

// AwaitExit blocks until the process exits and reaps it. A non-zero exit
// status is returned as *ProcessError.
func (s *Session) AwaitExit() error {
	if !s.waited {
		s.waited = true
		s.waitErr = s.wait()
	}
	return s.waitErr
}

func (s *Session) wait() error {
	var err = s.cmd.Wait()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ProcessError{
			Path:   s.cmd.Path,
			Code:   exitErr.ExitCode(),
			Stderr: s.stderr.String(),
			Err:    err,
		}
	}
	return err
}

// Stdout returns the captured output stream. Complete only after AwaitExit.
func (s *Session) Stdout() string { return s.stdout.String() }

// Stderr returns the captured error stream. Complete only after AwaitExit.
func (s *Session) Stderr() string { return s.stderr.String() }

// Release kills and reaps the process unless it was already awaited, so no
// engine is ever left running between queries. Safe to call repeatedly.
func (s *Session) Release() {
	if s.waited {
		return
	}
	s.waited = true
	_ = s.stdin.Close()
	_ = s.cmd.Process.Kill()
	s.waitErr = s.cmd.Wait()
}
