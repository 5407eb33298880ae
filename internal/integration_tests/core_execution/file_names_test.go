package integration_tests

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/sweepkit/internal/registry"
	"github.com/specialistvlad/sweepkit/internal/sweep"
	"github.com/specialistvlad/sweepkit/internal/testutil"
	"github.com/stretchr/testify/require"
)

// TestCoreExecution_SimilarOuterValuesGetDistinctFigures checks that outer
// values which sanitize to the same text still produce one image each.
func TestCoreExecution_SimilarOuterValuesGetDistinctFigures(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"main.hcl": `
			sweep "default" {
				module     = test
				func       = labeled
				x_var      = x
				outer_vars = [label]

				x     = [1, 2]
				label = ["a b", "a_b", "a/b"]
			}
		`,
	}

	// --- Act ---
	result := testutil.RunSweepTest(t, files, "main.hcl", []registry.Module{&testutil.SimpleModule{}})

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Len(t, result.Written, 4)

	figures := result.Written[:3]
	seen := make(map[string]struct{}, len(figures))
	for _, path := range figures {
		seen[path] = struct{}{}
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Positive(t, info.Size())
	}
	require.Len(t, seen, 3, "every figure needs its own file: %v", figures)
	require.Equal(t, "sweep_labeled_label=a_b.png", filepath.Base(figures[1]))
}

// TestCoreExecution_IdenticalFigurePathsFailTheRun checks that outer values
// which convert to the same text are rejected before anything is written.
func TestCoreExecution_IdenticalFigurePathsFailTheRun(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"main.hcl": `
			sweep "default" {
				module     = test
				func       = labeled
				x_var      = x
				outer_vars = [label]

				x     = [1]
				label = [1, "1"]
			}
		`,
	}

	result := testutil.RunSweepTest(t, files, "main.hcl", []registry.Module{&testutil.SimpleModule{}})

	require.Error(t, result.Err)
	require.True(t, errors.Is(result.Err, sweep.ErrValidation), "unexpected error class: %v", result.Err)
	require.Contains(t, result.Err.Error(), "would both be written to")
	testutil.RequireNoOutputs(t, result)
}
