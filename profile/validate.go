// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package profile

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"mellium.im/oadr/internal/ns"
)

// Validator checks a serialized fragment and returns every problem found.
// A fragment is valid if the returned slice is empty.
//
// Full XML Schema validation is provided by external tooling wrapped in this
// interface; it is meant for conformance testing, not for the path that
// delivers stanzas.
type Validator interface {
	Validate(fragment []byte) []error
}

// ValidatorFunc adapts an ordinary function to the Validator interface.
type ValidatorFunc func(fragment []byte) []error

// Validate calls f(fragment).
func (f ValidatorFunc) Validate(fragment []byte) []error {
	return f(fragment)
}

// WellFormed returns a Validator that checks that a fragment is a single well
// formed element whose root is bound in c and whose elements and attributes
// only use namespaces from c's profile.
func WellFormed(c *Codec) Validator {
	return ValidatorFunc(func(fragment []byte) []error {
		var errs []error
		d := xml.NewDecoder(bytes.NewReader(fragment))
		depth := 0
		roots := 0
		for {
			tok, err := d.Token()
			if err == io.EOF {
				break
			}
			if err != nil {
				errs = append(errs, err)
				break
			}
			switch t := tok.(type) {
			case xml.StartElement:
				if depth == 0 {
					roots++
					if roots > 1 {
						errs = append(errs, fmt.Errorf("profile: more than one root element, found <%s>", t.Name.Local))
					} else if _, ok := c.byName[t.Name]; !ok {
						errs = append(errs, &MismatchError{Profile: c.id, Name: t.Name})
					}
				}
				depth++
				if _, ok := c.spaces[t.Name.Space]; !ok {
					errs = append(errs, fmt.Errorf("profile: element <%s> in namespace %q outside of profile %q", t.Name.Local, t.Name.Space, c.id))
				}
				for _, a := range t.Attr {
					switch a.Name.Space {
					case "", "xmlns", ns.XML, ns.XSI:
						continue
					}
					if _, ok := c.spaces[a.Name.Space]; !ok {
						errs = append(errs, fmt.Errorf("profile: attribute %s on <%s> in namespace %q outside of profile %q", a.Name.Local, t.Name.Local, a.Name.Space, c.id))
					}
				}
			case xml.EndElement:
				depth--
			case xml.CharData:
				if depth == 0 && len(bytes.TrimSpace(t)) != 0 {
					errs = append(errs, errors.New("profile: character data outside of root element"))
				}
			}
		}
		if roots == 0 && len(errs) == 0 {
			errs = append(errs, errors.New("profile: no root element"))
		}
		return errs
	})
}
