// Package engine implements the reservation consistency engine.  It is
// the only component allowed to create or destroy reservation entries
// and it enforces every business invariant before touching state.
// This file defines the sentinel errors surfaced to callers.  Handlers
// translate them into HTTP responses; none of them is retried
// automatically.
package engine

import "errors"

// ErrUnauthenticated is returned by Reserve when the supplied identity
// is missing its user ID or email.  Handlers translate this into a 401.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrSoldOut is returned by Reserve when the listing has no portions
// left.  This is an expected business outcome, not a fault; the UI
// shows it as a disabled action rather than an error dialog.
var ErrSoldOut = errors.New("sold out")

// ErrDuplicateSource is returned by Reserve when the identity already
// holds a reservation from the listing's source.  One reservation per
// source per user.
var ErrDuplicateSource = errors.New("already reserved from this source")

// ErrUnauthorized is returned by Cancel when the reservation belongs
// to a different identity.  A user may never cancel another user's
// reservation; the entry remains active.  Handlers translate this into
// a 403 and log it, since it indicates a bug or tampering.
var ErrUnauthorized = errors.New("unauthorized")
