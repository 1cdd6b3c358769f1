// Package service provides business-logic services for case management,
// spreadsheet import, and share-link issuance, delegating persistence to
// repository interfaces.
package service

import "errors"

var (
	// ErrValidation marks a request rejected for a missing or malformed input.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound marks an unknown case ID or share token. Unknown and stale
	// tokens are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")
	// ErrParse marks an unreadable upload; the whole import fails, no partial result.
	ErrParse = errors.New("unreadable file")
	// ErrNotifyFailed marks a share link that was persisted but whose email
	// delivery failed. The link itself still resolves.
	ErrNotifyFailed = errors.New("notification delivery failed")
)
