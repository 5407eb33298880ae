package app

import (
	"github.com/specialistvlad/sweepkit/internal/registry"
	"github.com/specialistvlad/sweepkit/modules/circuits"
	"github.com/specialistvlad/sweepkit/modules/waves"
)

// coreModules is the definitive list of all target modules that are compiled
// into the sweepplot binary.
var coreModules = []registry.Module{
	&waves.Module{},
	&circuits.Module{},
}
