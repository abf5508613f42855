package loop

import (
	"context"

	"github.com/Cyclone1070/forge/internal/provider"
	"github.com/Cyclone1070/forge/internal/workflow/toolmanager"
)

// generator produces model turns.
type generator interface {
	Generate(ctx context.Context, prompt string, history []provider.Message) (*provider.Response, error)
}

// applier executes a call stream in order and reports every result.
type applier interface {
	Apply(ctx context.Context, stream provider.CallStream) ([]toolmanager.Result, error)
}
