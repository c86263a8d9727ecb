// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package oadr20b

import (
	"encoding/xml"
)

// CreatePartyRegistration is sent by a VEN to register with a VTN, or to
// update an existing registration.
type CreatePartyRegistration struct {
	XMLName          xml.Name      `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrCreatePartyRegistration"`
	SchemaVersion    string        `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 schemaVersion,attr,omitempty"`
	RequestID        string        `xml:"http://docs.oasis-open.org/ns/energyinterop/201110/payloads requestID"`
	RegistrationID   string        `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 registrationID,omitempty"`
	VENID            string        `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 venID,omitempty"`
	ProfileName      string        `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrProfileName"`
	TransportName    TransportName `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrTransportName"`
	TransportAddress string        `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrTransportAddress,omitempty"`
	ReportOnly       bool          `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrReportOnly"`
	XMLSignature     bool          `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrXmlSignature"`
	VENName          string        `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrVenName,omitempty"`
	HTTPPullModel    *bool         `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrHttpPullModel,omitempty"`
}

// CreatedPartyRegistration is the VTN's answer to a CreatePartyRegistration.
type CreatedPartyRegistration struct {
	XMLName        xml.Name   `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrCreatedPartyRegistration"`
	SchemaVersion  string     `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 schemaVersion,attr,omitempty"`
	Response       EIResponse `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 eiResponse"`
	RegistrationID string     `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 registrationID,omitempty"`
	VENID          string     `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 venID,omitempty"`
	VTNID          string     `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 vtnID"`
	Profiles       Profiles   `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrProfiles"`
	PollFreq       *Duration  `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrRequestedOadrPollFreq,omitempty"`
}

// Profiles lists the profiles a VTN supports.
type Profiles struct {
	Profiles []Profile `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrProfile"`
}

// Profile is a supported profile and the transports it can be used with.
type Profile struct {
	Name       string     `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrProfileName"`
	Transports Transports `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrTransports"`
}

// Transports lists transport mechanisms.
type Transports struct {
	Transports []Transport `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrTransport"`
}

// Transport is a single transport mechanism.
type Transport struct {
	Name TransportName `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrTransportName"`
}

// Poll is sent by a VEN to ask the VTN for any pending messages.
type Poll struct {
	XMLName       xml.Name `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrPoll"`
	SchemaVersion string   `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 schemaVersion,attr,omitempty"`
	VENID         string   `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 venID"`
}
