package testutil

import (
	"encoding/csv"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// ReadCSV reads every record of a CSV file.
func ReadCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

// RequireNoOutputs asserts that a run wrote nothing.
func RequireNoOutputs(t *testing.T, result *HarnessResult) {
	t.Helper()
	require.Empty(t, result.Written)
	_, err := os.Stat(result.Dir + "/out")
	require.True(t, os.IsNotExist(err), "no output directory may be created")
}
