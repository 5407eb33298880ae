package integration_tests

import (
	"testing"

	"github.com/specialistvlad/sweepkit/internal/testutil"
	"github.com/stretchr/testify/require"
)

// TestErrorHandling_InvalidHCLIsRejected checks that a syntax error stops the
// run at load time.
func TestErrorHandling_InvalidHCLIsRejected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"main.hcl": `
			sweep "default" {
				module = waves
				func   = sine
				x_var  = t
				t      = linspace(0, 1,
			}
		`,
	}

	// --- Act ---
	result := testutil.RunSweepTest(t, files, "main.hcl", nil)

	// --- Assert ---
	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "failed to load configuration")
	testutil.RequireNoOutputs(t, result)
}

// TestErrorHandling_StartupPanicIsReported checks that a registry that fails
// validation is turned into an error by the harness rather than crashing.
func TestErrorHandling_StartupPanicIsReported(t *testing.T) {
	t.Parallel()

	files := map[string]string{"main.hcl": `sweep "default" {}`}
	result := testutil.RunSweepTest(t, files, "main.hcl", duplicateModules())

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "application startup panicked")
	require.Contains(t, result.Err.Error(), "already registered")
}
