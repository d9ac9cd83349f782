package tx

import (
	"context"
	"sync"
	"time"

	dErrors "voltid/pkg/domain-errors"
)

type memoryMarker struct{}

// InMemory serializes units of work with a single mutex for the in-memory
// stores. It gives isolation but not atomicity: writes made before fn fails
// are not undone.
type InMemory struct {
	mu      sync.Mutex
	timeout time.Duration
}

func NewInMemory() *InMemory {
	return &InMemory{timeout: defaultTxTimeout}
}

func (t *InMemory) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memoryMarker{}) != nil {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	return fn(context.WithValue(ctx, memoryMarker{}, true))
}
