package mux

import "errors"

// ErrDomainNotFound is returned when the request host does not match any
// registered domain or wildcard subdomain.
var ErrDomainNotFound = errors.New("no matching domain was found")

// ErrRouteNotFound is returned when no route matches the request path.
// Triggers 404 Not Found per RFC 9110 Section 15.5.5.
var ErrRouteNotFound = errors.New("no matching route was found")

// ErrMethodNotAllowed is returned when a route matches the path but no
// handler chain is registered for the request method. Triggers 405 Method
// Not Allowed per RFC 9110 Section 15.5.6.
var ErrMethodNotAllowed = errors.New("method is not allowed")

// ErrParamConflict is returned when a route declares a parameter name at a
// path depth where a different parameter name is already registered.
var ErrParamConflict = errors.New("conflicting parameter name at the same path depth")

// ErrNoHandler is returned when a route is registered without callbacks.
var ErrNoHandler = errors.New("route requires at least one callback")

// ErrMissingBoundary is returned when a multipart/form-data request does not
// carry a boundary parameter in its Content-Type header, as required by
// RFC 2046 Section 5.1.1.
var ErrMissingBoundary = errors.New("multipart body is missing a boundary parameter")

// ErrBodyConsumed is returned when the request body cannot be read.
var ErrBodyConsumed = errors.New("request body could not be read")
