// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package oadr20b

import (
	"encoding/xml"
)

// Payload is the outermost element of a 2.0b message.
// When XML signatures are in use Signature covers SignedObject.
type Payload struct {
	XMLName      xml.Name     `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrPayload"`
	Signature    *Signature   `xml:"http://www.w3.org/2000/09/xmldsig# Signature,omitempty"`
	SignedObject SignedObject `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrSignedObject"`
}

// SignedObject carries exactly one 2.0b message.
type SignedObject struct {
	XMLName                  xml.Name                  `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrSignedObject"`
	ID                       string                    `xml:"Id,attr,omitempty"`
	DistributeEvent          *DistributeEvent          `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrDistributeEvent,omitempty"`
	CreatedEvent             *CreatedEvent             `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrCreatedEvent,omitempty"`
	RequestEvent             *RequestEvent             `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrRequestEvent,omitempty"`
	Response                 *Response                 `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrResponse,omitempty"`
	CreateReport             *CreateReport             `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrCreateReport,omitempty"`
	CreatedReport            *CreatedReport            `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrCreatedReport,omitempty"`
	CreatePartyRegistration  *CreatePartyRegistration  `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrCreatePartyRegistration,omitempty"`
	CreatedPartyRegistration *CreatedPartyRegistration `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrCreatedPartyRegistration,omitempty"`
	Poll                     *Poll                     `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrPoll,omitempty"`
}

// Message returns the message carried by the signed object, or nil if it is
// empty.
func (o SignedObject) Message() interface{} {
	switch {
	case o.DistributeEvent != nil:
		return o.DistributeEvent
	case o.CreatedEvent != nil:
		return o.CreatedEvent
	case o.RequestEvent != nil:
		return o.RequestEvent
	case o.Response != nil:
		return o.Response
	case o.CreateReport != nil:
		return o.CreateReport
	case o.CreatedReport != nil:
		return o.CreatedReport
	case o.CreatePartyRegistration != nil:
		return o.CreatePartyRegistration
	case o.CreatedPartyRegistration != nil:
		return o.CreatedPartyRegistration
	case o.Poll != nil:
		return o.Poll
	}
	return nil
}

// Signature is an enveloping XML signature.
// Producing and checking signatures is left to the caller, the types only
// carry them across the wire.
type Signature struct {
	ID         string     `xml:"Id,attr,omitempty"`
	SignedInfo SignedInfo `xml:"http://www.w3.org/2000/09/xmldsig# SignedInfo"`
	Value      string     `xml:"http://www.w3.org/2000/09/xmldsig# SignatureValue"`
	KeyInfo    *KeyInfo   `xml:"http://www.w3.org/2000/09/xmldsig# KeyInfo,omitempty"`
}

// SignedInfo lists the references covered by a signature.
type SignedInfo struct {
	Canonicalization Algorithm   `xml:"http://www.w3.org/2000/09/xmldsig# CanonicalizationMethod"`
	SignatureMethod  Algorithm   `xml:"http://www.w3.org/2000/09/xmldsig# SignatureMethod"`
	References       []Reference `xml:"http://www.w3.org/2000/09/xmldsig# Reference"`
}

// Algorithm names an algorithm by URI.
type Algorithm struct {
	Algorithm string `xml:"Algorithm,attr"`
}

// Reference is a digest of the element identified by URI.
type Reference struct {
	URI          string    `xml:"URI,attr,omitempty"`
	DigestMethod Algorithm `xml:"http://www.w3.org/2000/09/xmldsig# DigestMethod"`
	DigestValue  string    `xml:"http://www.w3.org/2000/09/xmldsig# DigestValue"`
}

// KeyInfo identifies the key used to produce a signature.
type KeyInfo struct {
	KeyName    string      `xml:"http://www.w3.org/2000/09/xmldsig# KeyName,omitempty"`
	ECKeyValue *ECKeyValue `xml:"http://www.w3.org/2009/xmldsig11# ECKeyValue,omitempty"`
}

// ECKeyValue is an elliptic curve public key.
type ECKeyValue struct {
	NamedCurve NamedCurve `xml:"http://www.w3.org/2009/xmldsig11# NamedCurve"`
	PublicKey  string     `xml:"http://www.w3.org/2009/xmldsig11# PublicKey"`
}

// NamedCurve identifies a curve by URI.
type NamedCurve struct {
	URI string `xml:"URI,attr"`
}
