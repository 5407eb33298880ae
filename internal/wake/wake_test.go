package wake

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var zone = time.FixedZone("test", 2*60*60)

func at(s string) time.Time {
	t, err := time.ParseInLocation(Layout, s, zone)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseTime(t *testing.T) {
	now := at("2024-03-10 10:00:00")

	testCases := []struct {
		name    string
		tokens  []string
		now     time.Time
		want    time.Time
		wantErr string
	}{
		{name: "past time of day rolls to tomorrow", tokens: []string{"9:00"}, now: now, want: at("2024-03-11 09:00:00")},
		{name: "future time of day is today", tokens: []string{"10:30"}, now: now, want: at("2024-03-10 10:30:00")},
		{name: "current second is today", tokens: []string{"10:00:00"}, now: now, want: now},
		{name: "just passed rolls over", tokens: []string{"10:00"}, now: now.Add(500 * time.Millisecond), want: at("2024-03-11 10:00:00")},
		{name: "month end", tokens: []string{"00:15"}, now: at("2024-02-29 23:00:00"), want: at("2024-03-01 00:15:00")},
		{name: "literal date", tokens: []string{"2024-01-01", "09:00"}, now: now, want: at("2024-01-01 09:00:00")},
		{name: "literal date single token", tokens: []string{"2024-01-01 09:00:30"}, now: now, want: at("2024-01-01 09:00:30")},
		{name: "empty", tokens: nil, now: now, wantErr: "no wake time"},
		{name: "hour out of range", tokens: []string{"24:00"}, now: now, wantErr: "out of range"},
		{name: "garbage", tokens: []string{"soon"}, now: now, wantErr: "want HH:MM"},
		{name: "bad date", tokens: []string{"2024-13-01", "09:00"}, now: now, wantErr: "invalid wake time"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTime(tc.tokens, tc.now)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}

type exitErr int

func (e exitErr) Error() string { return fmt.Sprintf("exit status %d", int(e)) }
func (e exitErr) ExitCode() int { return int(e) }

type fakeCommander struct {
	results map[string]error
	calls   [][]string
}

func (f *fakeCommander) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.results[name]
}

func newTestScheduler(opts Options, cmd Commander, out *bytes.Buffer) *Scheduler {
	s := NewScheduler(opts, cmd, out)
	s.now = func() time.Time { return at("2024-03-10 10:00:00") }
	return s
}

func TestScheduler_SuspendsWithoutPrompt(t *testing.T) {
	cmd := &fakeCommander{}
	s := newTestScheduler(Options{Mode: "disk"}, cmd, &bytes.Buffer{})

	outcome, err := s.Run(context.Background(), []string{"9:00"})
	require.NoError(t, err)
	require.True(t, outcome.Confirmed)
	require.Equal(t, [][]string{{"rtcwake", "-m", "disk", "--date", "2024-03-11 09:00:00"}}, cmd.calls)
}

func TestScheduler_Prompt(t *testing.T) {
	testCases := []struct {
		name        string
		zenityErr   error
		wantSuspend bool
		wantErr     bool
	}{
		{name: "yes", zenityErr: nil, wantSuspend: true},
		{name: "no", zenityErr: exitErr(1)},
		{name: "timeout", zenityErr: exitErr(zenityTimeoutExit)},
		{name: "zenity missing", zenityErr: errors.New("executable file not found"), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := &fakeCommander{results: map[string]error{"zenity": tc.zenityErr}}
			s := newTestScheduler(Options{Timeout: 15}, cmd, &bytes.Buffer{})

			outcome, err := s.Run(context.Background(), []string{"11:00"})
			if tc.wantErr {
				require.Error(t, err)
				require.Len(t, cmd.calls, 1)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantSuspend, outcome.Confirmed)
			require.Contains(t, cmd.calls[0], "--timeout=15")
			if tc.wantSuspend {
				require.Len(t, cmd.calls, 2)
				require.Equal(t, "rtcwake", cmd.calls[1][0])
				require.Equal(t, DefaultMode, cmd.calls[1][2])
			} else {
				require.Len(t, cmd.calls, 1)
			}
		})
	}
}

func TestScheduler_DryRun(t *testing.T) {
	cmd := &fakeCommander{}
	var out bytes.Buffer
	s := newTestScheduler(Options{Mode: "mem", DryRun: true}, cmd, &out)

	_, err := s.Run(context.Background(), []string{"2024-01-01", "09:00"})
	require.NoError(t, err)
	require.Empty(t, cmd.calls)
	require.Equal(t, "rtcwake -m mem --date \"2024-01-01 09:00:00\"\n", out.String())
}

func TestScheduler_CommandFailure(t *testing.T) {
	cmd := &fakeCommander{results: map[string]error{"rtcwake": exitErr(1)}}
	s := newTestScheduler(Options{}, cmd, &bytes.Buffer{})

	_, err := s.Run(context.Background(), []string{"9:00"})
	require.ErrorContains(t, err, "rtcwake failed")
	require.Len(t, cmd.calls, 1)
}
