// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package oadr20a

import (
	"encoding/xml"
)

// EIResponse is the status of a request.
// Codes follow HTTP conventions, "200" indicating success.
type EIResponse struct {
	Code        string `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 responseCode"`
	Description string `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 responseDescription,omitempty"`
	RequestID   string `xml:"http://docs.oasis-open.org/ns/energyinterop/201110/payloads requestID"`
}

// CreatedEvent is sent by a VEN to opt in or out of events it received.
type CreatedEvent struct {
	XMLName xml.Name       `xml:"http://openadr.org/oadr-2.0a/2012/07 oadrCreatedEvent"`
	Created EICreatedEvent `xml:"http://docs.oasis-open.org/ns/energyinterop/201110/payloads eiCreatedEvent"`
}

// EICreatedEvent carries a VEN's responses to individual events.
type EICreatedEvent struct {
	Response       EIResponse      `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 eiResponse"`
	EventResponses *EventResponses `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 eventResponses,omitempty"`
	VENID          string          `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 venID"`
}

// EventResponses lists responses to individual events.
type EventResponses struct {
	Responses []EventResponse `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 eventResponse"`
}

// EventResponse is the opt decision for a single event.
type EventResponse struct {
	Code        string           `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 responseCode"`
	Description string           `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 responseDescription,omitempty"`
	RequestID   string           `xml:"http://docs.oasis-open.org/ns/energyinterop/201110/payloads requestID"`
	Event       QualifiedEventID `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 qualifiedEventID"`
	Opt         OptType          `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 optType"`
}

// QualifiedEventID identifies a specific revision of an event.
type QualifiedEventID struct {
	EventID            string `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 eventID"`
	ModificationNumber uint   `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 modificationNumber"`
}

// RequestEvent is sent by a VEN to poll the VTN for events.
type RequestEvent struct {
	XMLName xml.Name       `xml:"http://openadr.org/oadr-2.0a/2012/07 oadrRequestEvent"`
	Request EIRequestEvent `xml:"http://docs.oasis-open.org/ns/energyinterop/201110/payloads eiRequestEvent"`
}

// EIRequestEvent is the body of an event request.
type EIRequestEvent struct {
	RequestID  string `xml:"http://docs.oasis-open.org/ns/energyinterop/201110/payloads requestID"`
	VENID      string `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 venID"`
	ReplyLimit uint   `xml:"http://docs.oasis-open.org/ns/energyinterop/201110/payloads replyLimit,omitempty"`
}

// Response acknowledges a CreatedEvent or reports a failure to process one.
type Response struct {
	XMLName  xml.Name   `xml:"http://openadr.org/oadr-2.0a/2012/07 oadrResponse"`
	Response EIResponse `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 eiResponse"`
}
