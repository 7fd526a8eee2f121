// Package repository persists storefront documents. The Mongo stores back the
// running service; the Memory store serves local runs without a database and
// the handler tests.
package repository

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate document")
)

// Page restricts a listing. The zero value returns everything.
type Page struct {
	Skip  int64
	Limit int64
}

// IsZero reports whether no pagination was requested.
func (p Page) IsZero() bool {
	return p.Skip == 0 && p.Limit == 0
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
