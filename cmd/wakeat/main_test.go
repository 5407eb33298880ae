package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/sweepkit/internal/cli"
	"github.com/stretchr/testify/require"
)

type fakeCommander struct {
	calls [][]string
	err   error
}

func (f *fakeCommander) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.err
}

func TestRun_Suspends(t *testing.T) {
	t.Parallel()

	cmd := &fakeCommander{}
	require.NoError(t, run(&bytes.Buffer{}, []string{"-m", "off", "2031-05-04", "06:00"}, cmd))
	require.Equal(t, [][]string{{"rtcwake", "-m", "off", "--date", "2031-05-04 06:00:00"}}, cmd.calls)
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	cmd := &fakeCommander{}
	out := &bytes.Buffer{}
	require.NoError(t, run(out, []string{"--dry-run", "2031-05-04 06:00"}, cmd))
	require.Empty(t, cmd.calls)
	require.Contains(t, out.String(), `rtcwake -m mem --date "2031-05-04 06:00:00"`)
}

func TestRun_CommandFailure(t *testing.T) {
	t.Parallel()

	cmd := &fakeCommander{err: errors.New("permission denied")}
	err := run(&bytes.Buffer{}, []string{"07:00"}, cmd)
	require.ErrorContains(t, err, "permission denied")

	var exitErr *cli.ExitError
	require.False(t, errors.As(err, &exitErr))
}

func TestRun_InvalidMode(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, []string{"-m", "sleep", "07:00"}, &fakeCommander{})

	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, cli.ExitUsage, exitErr.Code)
}
