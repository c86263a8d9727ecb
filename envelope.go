// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package oadr

import (
	"bytes"
	"encoding/xml"
	"sync"

	"mellium.im/xmlstream"

	"mellium.im/oadr/internal/attr"
	"mellium.im/oadr/internal/tokens"
	"mellium.im/oadr/profile"
)

// Envelope is a single OpenADR payload and the name of its root element.
//
// Outbound envelopes are created by Wrap and hold a reference to the payload,
// which must not be modified until the envelope has been sent.
// Inbound envelopes hold the captured fragment until it is decoded with Decode
// (or by a Dispatcher configured with a codec).
// An inbound envelope is shared by every collector that matched its stanza and
// may be decoded from several goroutines at once.
type Envelope struct {
	name xml.Name
	raw  []xml.Token

	mu      sync.Mutex
	payload interface{}
	codec   *profile.Codec
	err     error
}

// Wrap returns an envelope carrying v.
// The root element name is taken from the binding of v's type in c and a
// *profile.BindingError is returned if the type is not bound in c.
func Wrap(c *profile.Codec, v interface{}) (*Envelope, error) {
	name, err := c.Name(v)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		name:    name,
		payload: v,
		codec:   c,
	}, nil
}

// newRawEnvelope returns an envelope over a captured, namespace resolved
// fragment.
func newRawEnvelope(toks []xml.Token) *Envelope {
	e := &Envelope{raw: toks}
	if len(toks) > 0 {
		if start, ok := toks[0].(xml.StartElement); ok {
			e.name = start.Name
		}
	}
	return e
}

// Name returns the root element of the envelope's fragment.
func (e *Envelope) Name() xml.Name {
	return e.name
}

// Codec returns the codec that created or decoded the envelope, if any.
func (e *Envelope) Codec() *profile.Codec {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.codec
}

// Unwrap returns the envelope's payload.
// If the payload failed to decode when the envelope was received the decoding
// error is returned.
// If the envelope has not been decoded ErrEmptyEnvelope is returned.
func (e *Envelope) Unwrap() (interface{}, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.payload != nil {
		return e.payload, nil
	}
	if e.err != nil {
		return nil, e.err
	}
	return nil, ErrEmptyEnvelope
}

// Decode decodes the captured fragment of an inbound envelope using dec and
// stores the result as the envelope's payload.
// If v is nil a new value of the type bound to the root element is allocated,
// otherwise v must be a pointer to the bound type and is decoded into.
//
// Envelopes created by Wrap are not decoded again and their payload is
// returned as is.
func (e *Envelope) Decode(dec profile.Decoder, v interface{}) (interface{}, error) {
	if e.raw == nil {
		return e.Unwrap()
	}
	payload, err := decode(tokens.Reader(e.raw), dec, v)
	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.err = err
		return nil, err
	}
	e.payload = payload
	e.err = nil
	if c, ok := dec.(*profile.Codec); ok {
		e.codec = c
	}
	return payload, nil
}

// setErr records an error encountered while decoding the envelope.
func (e *Envelope) setErr(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = err
}

// decodeErr returns the error recorded by the last attempt to decode the
// envelope.
func (e *Envelope) decodeErr() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func decode(r xml.TokenReader, dec profile.Decoder, v interface{}) (interface{}, error) {
	if v == nil {
		return dec.Decode(r)
	}
	if err := dec.DecodeElement(r, v); err != nil {
		return nil, err
	}
	return v, nil
}

// TokenReader returns a stream of tokens for the envelope's fragment.
//
// Payloads are encoded with the codec that wrapped or decoded them so that the
// profile's prefixes are used.
// Inbound fragments that were never decoded are replayed with their original
// namespaces.
func (e *Envelope) TokenReader() xml.TokenReader {
	e.mu.Lock()
	payload, codec := e.payload, e.codec
	e.mu.Unlock()
	switch {
	case payload != nil && codec != nil:
		r, err := codec.Encode(payload)
		if err != nil {
			return errReader(err)
		}
		return r
	case e.raw != nil:
		return xmlstream.RemoveAttr(func(_ xml.StartElement, a xml.Attr) bool {
			return attr.IsNSDecl(a)
		})(tokens.Reader(e.raw))
	}
	return errReader(ErrEmptyEnvelope)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (e *Envelope) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, e.TokenReader())
}

// MarshalXML satisfies the xml.Marshaler interface.
func (e *Envelope) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	_, err := e.WriteXML(enc)
	return err
}

// Serialize encodes the payload of e with enc and returns the fragment.
// The envelope must carry a payload.
func Serialize(e *Envelope, enc profile.Encoder) ([]byte, error) {
	v, err := e.Unwrap()
	if err != nil {
		return nil, err
	}
	r, err := enc.Encode(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := xml.NewEncoder(&buf)
	if _, err = xmlstream.Copy(w, r); err != nil {
		return nil, err
	}
	if err = w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Deserialize decodes a serialized fragment with dec.
// If v is nil a new value of the type bound to the root element is returned,
// otherwise v must be a pointer to the bound type and is decoded into.
func Deserialize(fragment []byte, dec profile.Decoder, v interface{}) (interface{}, error) {
	return decode(xml.NewDecoder(bytes.NewReader(fragment)), dec, v)
}

func errReader(err error) xml.TokenReader {
	return xmlstream.ReaderFunc(func() (xml.Token, error) {
		return nil, err
	})
}
