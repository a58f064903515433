package services

import "errors"

// Sentinel errors surfaced to the transport layer.
var (
	// ErrInvalidCredentials rejects a login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoDataset marks a report or export request made before any
	// spreadsheet was uploaded in the session.
	ErrNoDataset = errors.New("no dataset uploaded")
)
