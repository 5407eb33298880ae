package hcl_adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/sweepkit/internal/config"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sweep.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_FullSection(t *testing.T) {
	path := writeFile(t, `
sweep "default" {
  module              = "waves"
  func                = damped_sine
  title               = "Damped sine"
  x_var               = t
  color_var           = "damping"
  row_var             = amplitude
  outer_vars          = [phase]
  label_suppress_vars = "amplitude"

  t         = linspace(0, 10, 50)
  damping   = [0.1, 0.2]
  amplitude = [1, 2]
  phase     = [0, pi]
  kind      = linear
}
`)

	file, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	section, err := file.Select("")
	require.NoError(t, err)

	require.Equal(t, "waves", section.Module)
	require.Equal(t, "damped_sine", section.Func)
	require.Equal(t, "Damped sine", section.Title)
	require.Equal(t, map[config.Role]string{
		config.RoleX:     "t",
		config.RoleColor: "damping",
		config.RoleRow:   "amplitude",
	}, section.Roles)
	require.Equal(t, []string{"phase"}, section.OuterVars)
	require.Equal(t, []string{"amplitude"}, section.LabelSuppressVars)

	names := make([]string, 0, len(section.Entries))
	for _, e := range section.Entries {
		names = append(names, e.Name)
	}
	require.Equal(t, []string{"t", "damping", "amplitude", "phase", "kind"}, names, "entries keep source order")
	require.Equal(t, "linspace(0, 10, 50)", section.Entry("t").Literal)
	require.Equal(t, "linear", section.Entry("kind").Literal)
}

func TestLoad_MultipleSections(t *testing.T) {
	path := writeFile(t, `
sweep "default" {
  module = "waves"
  func   = "sine"
}
sweep "fast" {
  module = "waves"
  func   = "beat"
}
`)
	file, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, []string{"default", "fast"}, file.SectionNames())

	section, err := file.Select("fast")
	require.NoError(t, err)
	require.Equal(t, "beat", section.Func)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "syntax error",
			content: `sweep "a" { module = `,
			errMsg:  "failed to parse HCL file",
		},
		{
			name: "duplicate section",
			content: `
sweep "a" {
  module = "waves"
  func   = "sine"
}
sweep "a" {
  module = "waves"
  func   = "sine"
}`,
			errMsg: `Duplicate "sweep" block`,
		},
		{
			name:    "missing func",
			content: `sweep "a" { module = "waves" }`,
			errMsg:  "'func' is required",
		},
		{
			name: "role is not a name",
			content: `
sweep "a" {
  module = "waves"
  func   = "sine"
  x_var  = 3
}`,
			errMsg: "Invalid name",
		},
		{
			name: "nested blocks are not allowed",
			content: `
sweep "a" {
  module = "waves"
  func   = "sine"
  inner {}
}`,
			errMsg: "in section 'a'",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().Load(context.Background(), writeFile(t, tc.content))
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	require.ErrorContains(t, err, "failed to read config file")
}
