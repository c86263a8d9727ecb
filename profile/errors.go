// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package profile

import (
	"encoding/xml"
	"errors"
	"fmt"
	"reflect"
)

// Errors returned by the profile package.
var (
	ErrEmptyID          = errors.New("profile: empty profile identifier")
	ErrUnknownPackage   = errors.New("profile: unknown schema package")
	ErrDuplicatePackage = errors.New("profile: schema package registered twice")
)

// BindingError is returned when encoding a value whose type is not bound to a
// root element in the resolved profile.
// It is fatal to the send attempt but not to the session.
type BindingError struct {
	Profile string
	Type    reflect.Type

	// Name is set when the type was bound but encoded to a different root
	// element than its binding, which indicates a defect in the payload type.
	Name xml.Name
}

func (e *BindingError) Error() string {
	if e.Name.Local != "" {
		return fmt.Sprintf("profile: %v encoded as {%s}%s which does not match its binding in %q", e.Type, e.Name.Space, e.Name.Local, e.Profile)
	}
	return fmt.Sprintf("profile: %v is not bound in %q", e.Type, e.Profile)
}

// MalformedError is returned when an inbound fragment cannot be parsed as XML
// or as the expected schema type.
type MalformedError struct {
	Profile string
	Name    xml.Name
	Err     error
}

func (e *MalformedError) Error() string {
	if e.Name.Local == "" {
		return fmt.Sprintf("profile: malformed payload in %q: %v", e.Profile, e.Err)
	}
	return fmt.Sprintf("profile: malformed {%s}%s in %q: %v", e.Name.Space, e.Name.Local, e.Profile, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// MismatchError is returned when a fragment's root element does not resolve to
// any type bound in the profile, or resolves to a different type than the one
// requested.
type MismatchError struct {
	Profile string
	Name    xml.Name

	// Want is the binding of the requested type, if one was requested.
	Want xml.Name
}

func (e *MismatchError) Error() string {
	if e.Want.Local != "" {
		return fmt.Sprintf("profile: expected {%s}%s, got {%s}%s", e.Want.Space, e.Want.Local, e.Name.Space, e.Name.Local)
	}
	return fmt.Sprintf("profile: {%s}%s is not bound in %q", e.Name.Space, e.Name.Local, e.Profile)
}
