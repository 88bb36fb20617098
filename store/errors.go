package store

import "errors"

// ErrRouteNotFound indicates a route id or (from, to) pair has no
// corresponding row.
var ErrRouteNotFound = errors.New("store: route not found")
