package repository

import "context"

// CounterRepository allocates monotonically increasing sequence numbers.
// Next must be atomic: two concurrent calls never observe the same value.
type CounterRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
