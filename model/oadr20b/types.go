// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package oadr20b

import (
	"time"
)

// EventStatus is the state of an event relative to its active period.
type EventStatus string

// Event states.
const (
	StatusNone      EventStatus = "none"
	StatusFar       EventStatus = "far"
	StatusNear      EventStatus = "near"
	StatusActive    EventStatus = "active"
	StatusCompleted EventStatus = "completed"
	StatusCancelled EventStatus = "cancelled"
)

// SignalType describes how the values of an event signal are interpreted.
type SignalType string

// Signal types.
const (
	SignalDelta           SignalType = "delta"
	SignalLevel           SignalType = "level"
	SignalMultiplier      SignalType = "multiplier"
	SignalPrice           SignalType = "price"
	SignalPriceMultiplier SignalType = "priceMultiplier"
	SignalPriceRelative   SignalType = "priceRelative"
	SignalProduct         SignalType = "product"
	SignalSetpoint        SignalType = "setpoint"
)

// ResponseRequired indicates whether a VEN must respond to an event.
type ResponseRequired string

// Response requirements.
const (
	ResponseAlways ResponseRequired = "always"
	ResponseNever  ResponseRequired = "never"
)

// OptType is a VEN's decision to take part in an event.
type OptType string

// Opt decisions.
const (
	OptIn  OptType = "optIn"
	OptOut OptType = "optOut"
)

// ReadingType describes how a reported value was obtained.
type ReadingType string

// A selection of reading types.
const (
	ReadingDirectRead ReadingType = "Direct Read"
	ReadingNet        ReadingType = "Net"
	ReadingEstimated  ReadingType = "Estimated"
	ReadingSummed     ReadingType = "Summed"
	ReadingProjected  ReadingType = "Projected"
)

// TransportName is an OpenADR transport mechanism.
type TransportName string

// Transports.
const (
	TransportSimpleHTTP TransportName = "simpleHttp"
	TransportXMPP       TransportName = "xmpp"
)

// DateTime is an iCalendar date-time property.
type DateTime struct {
	Value time.Time `xml:"urn:ietf:params:xml:ns:icalendar-2.0 date-time"`
}

// Duration is an iCalendar duration property holding an ISO 8601 duration
// such as "PT1M".
type Duration struct {
	Value string `xml:"urn:ietf:params:xml:ns:icalendar-2.0 duration"`
}

// Tolerance bounds how late a VEN may start an event.
type Tolerance struct {
	Tolerate Tolerate `xml:"urn:ietf:params:xml:ns:icalendar-2.0 tolerate"`
}

// Tolerate holds the start tolerance as an ISO 8601 duration.
type Tolerate struct {
	StartAfter string `xml:"urn:ietf:params:xml:ns:icalendar-2.0 startafter"`
}

// UID is an iCalendar unique identifier.
type UID struct {
	Text string `xml:"urn:ietf:params:xml:ns:icalendar-2.0 text"`
}

// EIResponse is the status of a request.
type EIResponse struct {
	Code        string `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 responseCode"`
	Description string `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 responseDescription,omitempty"`
	RequestID   string `xml:"http://docs.oasis-open.org/ns/energyinterop/201110/payloads requestID"`
}
