package repositories

import "context"

// Transactor runs fn as one unit of work. Repositories called with the ctx passed to fn
// join the unit when the store supports it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
