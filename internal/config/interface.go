package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
)

// Loader translates one or more configuration paths into the unified model.
// Implementations own all format-specific parsing.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*Model, error)

	// EvalContext returns the expression evaluation context loaders make
	// available to feed bodies (e.g. env variables).
	EvalContext() *hcl.EvalContext
}
