// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/matt-FFFFFF/cmdshelf/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdshelf/internal/signalbroker"
)

const (
	maxBufferSize  = 8 * 1024 * 1024  // 8MB
	tickerInterval = 10 * time.Second // Interval for the process watchdog ticker
)

var _ Runnable = (*OSCommand)(nil)

var (
	// ErrBufferOverflow is returned when the output exceeds the max size.
	ErrBufferOverflow = fmt.Errorf("output exceeds max size of %d bytes", maxBufferSize)
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToReadBuffer is returned when the buffer from the operating system pipe could not be read.
	ErrFailedToReadBuffer = errors.New("failed to read buffer")
	// ErrTimeoutExceeded is returned when the command exceeds the context deadline.
	ErrTimeoutExceeded = errors.New("timeout exceeded")
	// ErrCancelled is returned when the context is cancelled while the command runs.
	ErrCancelled = errors.New("command cancelled")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrSignalReceived is returned when a operating system signal was forwarded to the child process.
	ErrSignalReceived = errors.New("signal received")
	// ErrDuplicateSignalReceived is returned when a duplicate signal is received, forcing process termination.
	ErrDuplicateSignalReceived = errors.New("duplicate signal received, process forcefully terminated")
)

// OSCommand runs a single operating system process.
type OSCommand struct {
	*BaseCommand
	Path             string         // The executable to run, as an absolute path or relative to Cwd.
	Args             []string       // Arguments to the command, do not include the executable name itself.
	SuccessExitCodes []int          // Exit codes that indicate success, defaults to 0.
	Stdin            *os.File       // Standard input of the child, defaults to os.Stdin.
	Stdout           io.Writer      // Optional writer that receives stdout as it is produced.
	Stderr           io.Writer      // Optional writer that receives stderr as it is produced.
	sigCh            chan os.Signal // Channel to receive signals, allows mocking in test.
}

// Run starts the process, waits for it and returns a single result.
func (c *OSCommand) Run(ctx context.Context) Results {
	label := c.GetLabel()
	logger := ctxlog.Logger(ctx).With("runnableType", "OSCommand", "label", label)

	cwd := ""
	if c.BaseCommand != nil {
		cwd = c.Cwd
	}

	logger.Debug("command info", "path", c.Path, "cwd", cwd, "args", c.Args)

	successExitCodes := c.SuccessExitCodes
	if successExitCodes == nil {
		successExitCodes = []int{0}
	}

	res := &Result{
		Label:    label,
		ExitCode: -1,
		Status:   ResultStatusError,
	}

	rOut, wOut, err := os.Pipe()
	if err != nil {
		res.Error = errors.Join(ErrFailedToCreatePipe, err)
		return Results{res}
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		_ = rOut.Close()
		_ = wOut.Close()
		res.Error = errors.Join(ErrFailedToCreatePipe, err)

		return Results{res}
	}

	defer rOut.Close() //nolint:errcheck
	defer rErr.Close() //nolint:errcheck

	stdin := c.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	args := slices.Concat([]string{filepath.Base(c.Path)}, c.Args)

	logger.Debug("starting process")

	startTime := time.Now()
	ps, err := os.StartProcess(c.Path, args, &os.ProcAttr{
		Dir:   cwd,
		Env:   c.BaseCommand.environ(),
		Files: []*os.File{stdin, wOut, wErr},
	})

	// The child holds its own copies of the write ends.
	_ = wOut.Close()
	_ = wErr.Close()

	if err != nil {
		res.Error = errors.Join(ErrCouldNotStartProcess, err)
		return Results{res}
	}

	logger.Debug("process started", "pid", ps.Pid)

	var (
		wg               sync.WaitGroup
		stdout, stderr   []byte
		outErr, errErr   error
		stdoutR, stderrR io.Reader = rOut, rErr
	)

	if c.Stdout != nil {
		stdoutR = io.TeeReader(rOut, c.Stdout)
	}

	if c.Stderr != nil {
		stderrR = io.TeeReader(rErr, c.Stderr)
	}

	wg.Add(2)

	go func() {
		defer wg.Done()

		stdout, outErr = readAllUpToMax(ctx, stdoutR, maxBufferSize)
	}()

	go func() {
		defer wg.Done()

		stderr, errErr = readAllUpToMax(ctx, stderrR, maxBufferSize)
	}()

	sigCh := c.sigCh
	if sigCh == nil {
		sigCh = signalbroker.New(ctx)
		defer signalbroker.Stop(sigCh)
	}

	done := make(chan struct{})
	reason := make(chan error, 1)

	go func() {
		reason <- watchProcess(ctx, logger, ps, sigCh, startTime, done)
	}()

	logger.Debug("waiting for process to finish")

	state, psErr := ps.Wait()

	close(done)

	killErr := <-reason

	wg.Wait()

	res.Duration = time.Since(startTime)
	if state != nil {
		res.ExitCode = state.ExitCode()
	}

	res.Error = errors.Join(psErr, killErr)
	res.StdOut = stdout
	res.StdErr = stderr

	logger.Debug("process finished", "exitCode", res.ExitCode, "duration", res.Duration)

	switch {
	case res.Error == nil && slices.Contains(successExitCodes, res.ExitCode):
		res.Status = ResultStatusSuccess
	default:
		logger.Debug("process error", "error", res.Error, "exitCode", res.ExitCode)

		if res.ExitCode == 0 {
			res.ExitCode = -1
		}

		res.Status = ResultStatusError
	}

	if outErr != nil || errErr != nil {
		logger.Debug("output capture error", "stdout", outErr, "stderr", errErr)
		res.Error = errors.Join(res.Error, outErr, errErr)
	}

	return Results{res}
}

// watchProcess forwards the first signal of each kind to ps and kills it on a
// duplicate signal or when ctx is done. It returns why the process was
// interrupted, or nil, once done is closed.
func watchProcess(
	ctx context.Context,
	logger *slog.Logger,
	ps *os.Process,
	sigCh <-chan os.Signal,
	startTime time.Time,
	done <-chan struct{},
) error {
	var interrupted error

	seen := make(map[os.Signal]struct{})

	ticker := time.NewTicker(tickerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return interrupted

		case <-ticker.C:
			logger.Debug("process still running", "elapsed", time.Since(startTime).Round(time.Second))

		case s, ok := <-sigCh:
			if !ok {
				sigCh = nil
				continue
			}

			if _, dup := seen[s]; dup {
				logger.Info("received duplicate signal, killing process", "signal", s.String())
				killPs(ctx, ps)

				return errors.Join(interrupted, ErrDuplicateSignalReceived)
			}

			seen[s] = struct{}{}

			logger.Info("received signal", "signal", s.String())

			if err := ps.Signal(s); err != nil {
				logger.Info("failed to send signal", "signal", s.String(), "error", err)
			}

			interrupted = ErrSignalReceived

		case <-ctx.Done():
			logger.Info("context done, killing process")
			killPs(ctx, ps)

			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return errors.Join(interrupted, ErrTimeoutExceeded)
			}

			return errors.Join(interrupted, ErrCancelled)
		}
	}
}

// readAllUpToMax reads r to the end, keeping at most maxBufferSize bytes.
// The remainder is discarded so the writer never blocks.
func readAllUpToMax(ctx context.Context, r io.Reader, maxBufferSize int64) ([]byte, error) {
	var buf bytes.Buffer

	n, err := io.CopyN(&buf, r, maxBufferSize+1)
	if err != nil && err != io.EOF {
		return buf.Bytes(), errors.Join(ErrFailedToReadBuffer, err)
	}

	if n > maxBufferSize {
		ctxlog.Logger(ctx).Debug(
			"buffer overflow in readAllUpToMax",
			"bytesRead", n,
			"maxBytes", maxBufferSize,
		)

		_, _ = io.Copy(io.Discard, r)

		return buf.Bytes()[:maxBufferSize], ErrBufferOverflow
	}

	return buf.Bytes(), nil
}

// killPs kills the process, ignoring a process that already exited.
func killPs(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Logger(ctx).Debug("process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Logger(ctx).Error("process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Logger(ctx).Info("process killed", "pid", ps.Pid)
}
