// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package oadr

import (
	"errors"
	"fmt"

	"mellium.im/xmpp/stanza"
)

// Errors returned by the oadr package.
var (
	// ErrEmptyEnvelope is returned when unwrapping an envelope that does not
	// carry a decoded payload.
	ErrEmptyEnvelope = errors.New("oadr: envelope has no payload")

	// ErrTimeout is returned when no matching stanza arrives before the
	// deadline.
	// Timed out requests are never retried.
	ErrTimeout = errors.New("oadr: timed out waiting for stanza")

	// ErrClosed is returned when taking from a collector that has been closed
	// or deregistered.
	ErrClosed = errors.New("oadr: collector closed")

	// ErrNotIQ is returned by ReadStanza for elements other than IQ stanzas.
	ErrNotIQ = errors.New("oadr: not an IQ stanza")
)

// RemoteError is returned by Request when the peer answered with an error
// stanza.
type RemoteError struct {
	ID  string
	Err stanza.Error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("oadr: request %s failed: %s (%s)", e.ID, e.Err.Condition, e.Err.Type)
}

// Unwrap returns the stanza error.
func (e *RemoteError) Unwrap() error {
	return e.Err
}
