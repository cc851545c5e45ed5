package config

import (
	"github.com/hinderling/arcos4go/internal/arcos/cluster"
	"github.com/hinderling/arcos4go/internal/arcos/linker"
)

// ToParams converts a TuningConfig into linker.Params, applying defaults
// for every field the config left unset.
func (c *TuningConfig) ToParams() linker.Params {
	p := linker.Params{
		Eps:                  c.GetEps(),
		MinClusterSize:       c.GetMinClusterSize(),
		MinSamples:           c.GetMinSamples(),
		Method:               cluster.Method(c.GetMethod()),
		PropagationThreshold: c.GetPropagationThreshold(),
		MemoryDepth:          c.GetMemoryDepth(),
		Jobs:                 c.GetJobs(),
	}
	if c.EpsPrev != nil {
		p.EpsPrev = c.EpsPrev
	}
	return p
}
