// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package attr

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDLen is the length of stanza identifiers returned by RandomID.
const IDLen = ulid.EncodedSize

var (
	entropyMu sync.Mutex
	entropy   io.Reader = ulid.Monotonic(rand.Reader, 0)
)

// RandomID returns a new time sortable identifier suitable for use as a stanza
// ID.
// IDs generated within the same millisecond are strictly increasing.
// If the entropy source fails RandomID panics.
func RandomID() string {
	return randomID(time.Now())
}

func randomID(now time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), entropy).String()
}
