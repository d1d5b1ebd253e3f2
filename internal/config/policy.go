package config

import (
	"time"

	"github.com/Cyclone1070/archpilot/internal/action"
	"github.com/Cyclone1070/archpilot/internal/safety"
)

// Policy builds the session's safety policy.
func (c *Config) Policy() *safety.Policy {
	return safety.NewPolicy(
		operations(c.Safety.AllowedOperations),
		operations(c.Safety.BlockedOperations),
		safety.Limits{
			MaxElements:   c.Safety.MaxElementsPerOperation,
			MaxDimensions: c.Safety.MaxDimensionsPerOperation,
			MaxTags:       c.Safety.MaxTagsPerOperation,
		},
		c.Safety.TaggableElementTypes,
	)
}

// ResolveTimeout bounds a single call to the remote model.
func (c *Config) ResolveTimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// DispatchTimeout bounds how long a caller waits for the host.
func (c *Config) DispatchTimeout() time.Duration {
	return time.Duration(c.Dispatch.TimeoutSeconds) * time.Second
}

func operations(names []string) []action.Operation {
	ops := make([]action.Operation, 0, len(names))
	for _, n := range names {
		ops = append(ops, action.Operation(n))
	}
	return ops
}

func operationNames(ops []action.Operation) []string {
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, string(op))
	}
	return names
}
