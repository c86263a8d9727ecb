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
	"reflect"
	"sort"

	"mellium.im/oadr/internal/tokens"
	"mellium.im/xmlstream"
)

// Encoder encodes bound values into prefixed XML fragments.
type Encoder interface {
	Encode(v interface{}) (xml.TokenReader, error)
}

// Decoder decodes namespace resolved XML fragments into bound values.
type Decoder interface {
	Decode(r xml.TokenReader) (interface{}, error)
	DecodeElement(r xml.TokenReader, v interface{}) error
}

var (
	_ Encoder = (*Codec)(nil)
	_ Decoder = (*Codec)(nil)
)

// Codec encodes and decodes the root elements bound in a single profile.
// Codecs are created by a Registry and are safe for concurrent use.
type Codec struct {
	id       string
	byName   map[xml.Name]Type
	byType   map[reflect.Type]xml.Name
	spaces   map[string]struct{}
	prefix   Prefixes
	fallback PrefixMapper
}

// ID returns the profile identifier that the codec was resolved from.
func (c *Codec) ID() string {
	return c.id
}

// Spaces returns the namespaces of the packages in the profile, sorted.
func (c *Codec) Spaces() []string {
	spaces := make([]string, 0, len(c.spaces))
	for space := range c.spaces {
		spaces = append(spaces, space)
	}
	sort.Strings(spaces)
	return spaces
}

// Lookup returns the type bound to the root element name, if any.
func (c *Codec) Lookup(name xml.Name) (Type, bool) {
	typ, ok := c.byName[name]
	return typ, ok
}

// Name returns the root element that the type of v is bound to.
// Both T and *T are accepted for a bound type *T.
func (c *Codec) Name(v interface{}) (xml.Name, error) {
	rt := reflect.TypeOf(v)
	if rt != nil && rt.Kind() != reflect.Ptr {
		rt = reflect.PtrTo(rt)
	}
	name, ok := c.byType[rt]
	if !ok {
		return xml.Name{}, &BindingError{Profile: c.id, Type: reflect.TypeOf(v)}
	}
	return name, nil
}

// Prefix returns the prefix that the codec prefers for space.
func (c *Codec) Prefix(space string) (string, bool) {
	if p, ok := c.prefix[space]; ok {
		return p, true
	}
	if c.fallback == nil {
		return "", false
	}
	return c.fallback.Prefix(space)
}

// Encode returns the fragment for v.
// The returned tokens use prefixed local names (eg. "oadr:oadrResponse") with
// every namespace declared on the root element, and are meant to be written
// to an XML encoder, not decoded directly.
// To decode the fragment again marshal it to bytes and use Unmarshal.
func (c *Codec) Encode(v interface{}) (xml.TokenReader, error) {
	toks, err := c.encode(v)
	if err != nil {
		return nil, err
	}
	return tokens.Reader(toks), nil
}

// Marshal is like Encode except that it returns the serialized fragment.
func (c *Codec) Marshal(v interface{}) ([]byte, error) {
	r, err := c.Encode(v)
	if err != nil {
		return nil, err
	}
	return marshalTokens(r)
}

func (c *Codec) encode(v interface{}) ([]xml.Token, error) {
	name, err := c.Name(v)
	if err != nil {
		return nil, err
	}
	b, err := xml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("profile: encoding {%s}%s: %w", name.Space, name.Local, err)
	}
	toks, err := tokens.ReadAll(xml.NewDecoder(bytes.NewReader(b)))
	if err != nil {
		return nil, fmt.Errorf("profile: encoding {%s}%s: %w", name.Space, name.Local, err)
	}
	for _, tok := range toks {
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name != name {
			return nil, &BindingError{Profile: c.id, Type: reflect.TypeOf(v), Name: start.Name}
		}
		break
	}
	return qualify(toks, c.Prefix), nil
}

// Qualify reads a namespace resolved fragment (for instance one captured from
// an inbound stanza) from r and returns it with the codec's prefixes applied.
func (c *Codec) Qualify(r xml.TokenReader) (xml.TokenReader, error) {
	toks, err := tokens.ReadAll(r)
	if err != nil {
		return nil, &MalformedError{Profile: c.id, Err: err}
	}
	return tokens.Reader(qualify(toks, c.Prefix)), nil
}

// Decode reads the first element from r and decodes it into a new value of
// the type bound to its name.
// The tokens read from r must have their namespaces resolved, as they do when
// read from an xml.Decoder or from an XMPP session.
//
// If the element is not bound in the profile a *MismatchError is returned.
// If the element or its contents cannot be parsed a *MalformedError is
// returned.
func (c *Codec) Decode(r xml.TokenReader) (interface{}, error) {
	d := xml.NewTokenDecoder(r)
	start, err := c.root(d)
	if err != nil {
		return nil, err
	}
	typ, ok := c.byName[start.Name]
	if !ok {
		return nil, &MismatchError{Profile: c.id, Name: start.Name}
	}
	v := typ.New()
	if err = d.DecodeElement(v, &start); err != nil {
		return nil, &MalformedError{Profile: c.id, Name: start.Name, Err: err}
	}
	return v, nil
}

// DecodeElement is like Decode except that it decodes into v, which must be a
// pointer to a bound type.
// If the root element is not the one v is bound to a *MismatchError is
// returned.
func (c *Codec) DecodeElement(r xml.TokenReader, v interface{}) error {
	want, err := c.Name(v)
	if err != nil {
		return err
	}
	d := xml.NewTokenDecoder(r)
	start, err := c.root(d)
	if err != nil {
		return err
	}
	if start.Name != want {
		return &MismatchError{Profile: c.id, Name: start.Name, Want: want}
	}
	if err = d.DecodeElement(v, &start); err != nil {
		return &MalformedError{Profile: c.id, Name: start.Name, Err: err}
	}
	return nil
}

// Unmarshal parses a serialized fragment and decodes it.
// See Decode for details.
func (c *Codec) Unmarshal(fragment []byte) (interface{}, error) {
	return c.Decode(xml.NewDecoder(bytes.NewReader(fragment)))
}

// root skips leading whitespace, comments, and processing instructions and
// returns the first start element.
func (c *Codec) root(d *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := d.Token()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return xml.StartElement{}, &MalformedError{Profile: c.id, Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, nil
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return xml.StartElement{}, &MalformedError{Profile: c.id, Err: errors.New("character data before root element")}
			}
		case xml.EndElement:
			return xml.StartElement{}, &MalformedError{Profile: c.id, Err: fmt.Errorf("unexpected end element </%s>", t.Name.Local)}
		}
	}
}

func marshalTokens(r xml.TokenReader) ([]byte, error) {
	var buf bytes.Buffer
	e := xml.NewEncoder(&buf)
	if _, err := xmlstream.Copy(e, r); err != nil {
		return nil, err
	}
	if err := e.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
