// Package repository implements persistence on top of MongoDB. Each entity
// repository wraps a typed Collection; callers see plain model structs and
// the sentinel errors below, never driver types.
package repository

import "errors"

// ErrNotFound is returned when a lookup by filter matches no document.
var ErrNotFound = errors.New("document not found")
