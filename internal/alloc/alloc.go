// Package alloc bounds the buffers setup requests. Go allocation does not
// fail gracefully, so oversized or negative requests are refused up front and
// reported as allocation failures naming the routine that asked.
package alloc

import (
	"github.com/sedstack/sedinit/internal/config"
	sederr "github.com/sedstack/sedinit/internal/errors"
)

// Guard refuses requests for more than Max elements.
type Guard struct {
	Max int
}

// Default returns a guard using the default limit.
func Default() Guard {
	return Guard{Max: config.DefaultMaxAllocation}
}

// FromConfig returns a guard using the configured limit.
func FromConfig(cfg *config.Config) Guard {
	return Guard{Max: cfg.Limits.MaxAllocation}
}

// Check reports whether n elements may be allocated.
func (g Guard) Check(routine string, n int) error {
	if n < 0 || n > g.Max {
		return sederr.AllocationFailure(routine, n)
	}
	return nil
}

// Make returns a zeroed slice of n elements or an allocation failure.
func Make[T any](g Guard, routine string, n int) ([]T, error) {
	if err := g.Check(routine, n); err != nil {
		return nil, err
	}
	return make([]T, n), nil
}
