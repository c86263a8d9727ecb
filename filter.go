// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package oadr

import (
	"encoding/xml"

	"mellium.im/xmpp/stanza"
)

// Filter selects stanzas for delivery to a collector.
// Filters must not modify the stanza and must be safe for concurrent use.
type Filter interface {
	Match(s *Stanza) bool
}

// FilterFunc is an adapter to allow the use of ordinary functions as filters.
type FilterFunc func(s *Stanza) bool

// Match calls f(s).
func (f FilterFunc) Match(s *Stanza) bool {
	return f(s)
}

// Namespace returns a filter that matches stanzas carrying an envelope whose
// root element is in the namespace uri.
func Namespace(uri string) Filter {
	return FilterFunc(func(s *Stanza) bool {
		_, ok := s.Envelope(uri)
		return ok
	})
}

// Element returns a filter that matches stanzas carrying an envelope with the
// root element name.
func Element(name xml.Name) Filter {
	return FilterFunc(func(s *Stanza) bool {
		e, ok := s.Envelope(name.Space)
		return ok && e.Name().Local == name.Local
	})
}

// ReplyTo returns a filter that matches result and error stanzas with the
// provided ID.
func ReplyTo(id string) Filter {
	return FilterFunc(func(s *Stanza) bool {
		return s.ID == id && (s.Type == stanza.ResultIQ || s.Type == stanza.ErrorIQ)
	})
}

// Type returns a filter that matches stanzas of the provided type.
func Type(typ stanza.IQType) Filter {
	return FilterFunc(func(s *Stanza) bool {
		return s.Type == typ
	})
}

// All returns a filter that matches stanzas matched by every filter in f.
// If f is empty every stanza matches.
func All(f ...Filter) Filter {
	return FilterFunc(func(s *Stanza) bool {
		for _, filter := range f {
			if !filter.Match(s) {
				return false
			}
		}
		return true
	})
}

// Any returns a filter that matches stanzas matched by at least one filter in
// f.
func Any(f ...Filter) Filter {
	return FilterFunc(func(s *Stanza) bool {
		for _, filter := range f {
			if filter.Match(s) {
				return true
			}
		}
		return false
	})
}
