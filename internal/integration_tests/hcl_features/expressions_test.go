package integration_tests

import (
	"errors"
	"testing"

	"github.com/specialistvlad/sweepkit/internal/expr"
	"github.com/specialistvlad/sweepkit/internal/registry"
	"github.com/specialistvlad/sweepkit/internal/testutil"
	"github.com/stretchr/testify/require"
)

// TestHclFeatures_HelperValuesFeedExpressions checks that keys which are not
// parameters can be referenced from other expressions, in any order.
func TestHclFeatures_HelperValuesFeedExpressions(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"main.hcl": `
			sweep "default" {
				module = test
				func   = linear
				x_var  = x

				x     = linspace(0, x_max, n)
				slope = 2 * gain
				n     = 3
				x_max = 4
				gain  = 1.5
			}
		`,
	}

	// --- Act ---
	result := testutil.RunSweepTest(t, files, "main.hcl", []registry.Module{&testutil.SimpleModule{}})

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Contains(t, result.LogOutput, "treating it as a helper value")

	records := testutil.ReadCSV(t, result.CSVPath())
	expected := [][]string{
		{"x", "slope", "offset", "output"},
		{"0", "3", "0", "0"},
		{"2", "3", "0", "6"},
		{"4", "3", "0", "12"},
	}
	require.Equal(t, expected, records)
}

// TestHclFeatures_OptionalParameterDefault checks that omitted parameters take
// the target's default and that configured values override it.
func TestHclFeatures_OptionalParameterDefault(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		extra    string
		expected string
	}{
		{name: "default applies", extra: "", expected: "1"},
		{name: "configured value wins", extra: `label = "abcd"`, expected: "4"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			files := map[string]string{
				"main.hcl": `
					sweep "default" {
						module = test
						func   = labeled
						x_var  = x
						x      = [1]
						` + tc.extra + `
					}
				`,
			}

			result := testutil.RunSweepTest(t, files, "main.hcl", []registry.Module{&testutil.SimpleModule{}})

			require.NoError(t, result.Err)
			records := testutil.ReadCSV(t, result.CSVPath())
			require.Len(t, records, 2)
			require.Equal(t, tc.expected, records[1][2])
		})
	}
}

// TestHclFeatures_UnknownNamesFallBackToLiterals checks both resolution modes
// for an expression that references a name nothing defines.
func TestHclFeatures_UnknownNamesFallBackToLiterals(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"main.hcl": `
			sweep "default" {
				module = test
				func   = labeled
				x_var  = x
				x      = [2]
				label  = foo
			}
		`,
	}
	modules := []registry.Module{&testutil.SimpleModule{}}

	t.Run("lenient", func(t *testing.T) {
		t.Parallel()
		result := testutil.RunSweepTest(t, files, "main.hcl", modules)

		require.NoError(t, result.Err)
		records := testutil.ReadCSV(t, result.CSVPath())
		require.Equal(t, []string{"2", "foo", "6"}, records[1])
	})

	t.Run("strict", func(t *testing.T) {
		t.Parallel()
		result := testutil.RunSweepTest(t, files, "main.hcl", modules, testutil.WithStrictExpr())

		require.Error(t, result.Err)
		require.True(t, errors.Is(result.Err, expr.ErrUnresolved))
		require.Contains(t, result.Err.Error(), "unknown name(s) foo")
		testutil.RequireNoOutputs(t, result)
	})
}
