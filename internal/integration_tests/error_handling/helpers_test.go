package integration_tests

import (
	"github.com/specialistvlad/sweepkit/internal/registry"
	"github.com/specialistvlad/sweepkit/internal/testutil"
)

// duplicateModules registers the same targets twice.
func duplicateModules() []registry.Module {
	return []registry.Module{&testutil.SimpleModule{}, &testutil.SimpleModule{}}
}
