package wake

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/specialistvlad/sweepkit/internal/ctxlog"
)

// Modes lists the rtcwake suspend modes.
var Modes = []string{"standby", "freeze", "mem", "disk", "off", "no"}

const (
	// DefaultMode is the suspend mode used when none is given.
	DefaultMode = "mem"

	zenityTimeoutExit = 5
)

// Options configures a Scheduler.
type Options struct {
	Mode string
	// Timeout enables the confirmation dialog, in seconds. Zero skips it.
	Timeout int
	// DryRun prints the rtcwake command instead of running it.
	DryRun bool

	RTCWake string
	Zenity  string
}

// Scheduler computes the wake time, asks for confirmation and suspends.
type Scheduler struct {
	opts Options
	cmd  Commander
	out  io.Writer
	now  func() time.Time
}

// NewScheduler creates a Scheduler. out receives dry-run output.
func NewScheduler(opts Options, cmd Commander, out io.Writer) *Scheduler {
	if opts.Mode == "" {
		opts.Mode = DefaultMode
	}
	if opts.RTCWake == "" {
		opts.RTCWake = "rtcwake"
	}
	if opts.Zenity == "" {
		opts.Zenity = "zenity"
	}
	return &Scheduler{opts: opts, cmd: cmd, out: out, now: time.Now}
}

// Outcome describes what Run did.
type Outcome struct {
	WakeAt    time.Time
	Confirmed bool
	Command   []string
}

// Run parses the wake time and suspends the system until then, unless the
// confirmation dialog is declined or times out. Command failures are
// returned as is.
func (s *Scheduler) Run(ctx context.Context, tokens []string) (*Outcome, error) {
	logger := ctxlog.FromContext(ctx)

	at, err := ParseTime(tokens, s.now())
	if err != nil {
		return nil, err
	}
	outcome := &Outcome{WakeAt: at, Command: s.Command(at)}
	logger.Info("Wake time computed.", "wake_at", at.Format(Layout), "mode", s.opts.Mode)

	if s.opts.Timeout > 0 {
		ok, err := s.confirm(ctx, at)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Info("Suspend not confirmed, skipping.")
			return outcome, nil
		}
	}
	outcome.Confirmed = true

	if s.opts.DryRun {
		_, err := fmt.Fprintln(s.out, shellJoin(outcome.Command))
		return outcome, err
	}

	logger.Info("Suspending.", "command", shellJoin(outcome.Command))
	if err := s.cmd.Run(ctx, outcome.Command[0], outcome.Command[1:]...); err != nil {
		return nil, fmt.Errorf("%s failed: %w", s.opts.RTCWake, err)
	}
	return outcome, nil
}

// Command returns the rtcwake invocation for the given wake time.
func (s *Scheduler) Command(at time.Time) []string {
	return []string{s.opts.RTCWake, "-m", s.opts.Mode, "--date", at.Format(Layout)}
}

// confirm shows a zenity question dialog. Exit status 0 is yes; any other
// status, including the timeout status 5, is no.
func (s *Scheduler) confirm(ctx context.Context, at time.Time) (bool, error) {
	logger := ctxlog.FromContext(ctx)

	text := fmt.Sprintf("Suspend (%s) until %s?", s.opts.Mode, at.Format(Layout))
	err := s.cmd.Run(ctx, s.opts.Zenity, "--question", "--title=wakeat", "--text="+text, "--timeout="+strconv.Itoa(s.opts.Timeout))
	if err == nil {
		return true, nil
	}

	code, ok := exitCode(err)
	if !ok {
		return false, fmt.Errorf("%s failed: %w", s.opts.Zenity, err)
	}
	if code == zenityTimeoutExit {
		logger.Info("Confirmation dialog timed out.", "timeout_s", s.opts.Timeout)
	} else {
		logger.Debug("Confirmation dialog declined.", "exit_code", code)
	}
	return false, nil
}

func shellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\"'") {
			quoted[i] = strconv.Quote(a)
		} else {
			quoted[i] = a
		}
	}
	return strings.Join(quoted, " ")
}
