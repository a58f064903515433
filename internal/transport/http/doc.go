// Package http contains the HTTP transport layer: chi handlers for the
// access gate and the dashboard, plus the session middleware. Handlers
// depend on service interfaces defined here so they can be tested against
// mocks.
package http
