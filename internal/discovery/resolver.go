package discovery

import (
	"context"
	"errors"
	"fmt"

	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/exception"
	"github.com/robgonnella/btscan/internal/stack"
)

// AdapterResolver finds the local adapter for a run and checks that it
// is powered. The selected adapter is cached until invalidated.
type AdapterResolver struct {
	capability stack.Capability
	cached     *stack.Adapter
}

// NewAdapterResolver returns a new resolver using capability
func NewAdapterResolver(capability stack.Capability) *AdapterResolver {
	return &AdapterResolver{capability: capability}
}

// Resolve returns the adapter matching requested, or the first adapter
// when requested is zero. The power state is queried on every call.
func (r *AdapterResolver) Resolve(ctx context.Context, requested bt.Address) (stack.Adapter, error) {
	if r.cached == nil {
		adapter, err := r.find(ctx, requested)

		if err != nil {
			return stack.Adapter{}, err
		}

		r.cached = &adapter
	}

	powered, err := r.capability.Powered(ctx, *r.cached)

	if err != nil {
		if ctx.Err() != nil {
			return stack.Adapter{}, ctx.Err()
		}

		if errors.Is(err, exception.ErrAdapterNotFound) {
			r.Invalidate()
			return stack.Adapter{}, err
		}

		return stack.Adapter{}, fmt.Errorf("%w: cannot read adapter power state: %w", exception.ErrIO, err)
	}

	if !powered {
		return stack.Adapter{}, fmt.Errorf("%w: %s", exception.ErrPoweredOff, r.cached.Address)
	}

	adapter := *r.cached
	adapter.Powered = true

	return adapter, nil
}

// Invalidate drops the cached adapter so the next Resolve enumerates
// adapters again
func (r *AdapterResolver) Invalidate() {
	r.cached = nil
}

func (r *AdapterResolver) find(ctx context.Context, requested bt.Address) (stack.Adapter, error) {
	adapters, err := r.capability.Adapters(ctx)

	if err != nil {
		if ctx.Err() != nil {
			return stack.Adapter{}, ctx.Err()
		}

		if errors.Is(err, exception.ErrAdapterNotFound) {
			return stack.Adapter{}, err
		}

		return stack.Adapter{}, fmt.Errorf("%w: %w", exception.ErrAdapterNotFound, err)
	}

	for _, adapter := range adapters {
		if requested.IsZero() || adapter.Address == requested {
			return adapter, nil
		}
	}

	if requested.IsZero() {
		return stack.Adapter{}, exception.ErrAdapterNotFound
	}

	return stack.Adapter{}, fmt.Errorf("%w: %s", exception.ErrAdapterNotFound, requested)
}
