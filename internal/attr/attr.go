// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package attr contains helpers for working with XML attributes on stanzas and
// payload fragments.
package attr // import "mellium.im/oadr/internal/attr"

import (
	"encoding/xml"
)

// Get returns the index and value of the first attribute with the provided
// local name and no namespace, or -1 and an empty string if no such attribute
// exists.
// Namespaced attributes such as xml:lang are never matched.
func Get(attr []xml.Attr, local string) (int, string) {
	for i, a := range attr {
		if a.Name.Space == "" && a.Name.Local == local {
			return i, a.Value
		}
	}
	return -1, ""
}

// IsNSDecl reports whether a is a namespace declaration (xmlns="…" or
// xmlns:prefix="…") as reported by an xml.Decoder.
func IsNSDecl(a xml.Attr) bool {
	return a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns")
}
