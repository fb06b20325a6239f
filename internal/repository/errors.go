// Package repository contains the parameterized data access layer over the
// MySQL account store. Sentinel errors defined here let the service and
// handler layers distinguish failure scenarios without inspecting driver
// error strings themselves.
package repository

import "errors"

// ErrEmailExists is returned when an insert collides with the unique email
// index. Handlers translate this into an HTTP 400 with a generic message.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a point lookup or update references an id
// that does not exist. Handlers translate this into an HTTP 404.
var ErrNotFound = errors.New("not found")
