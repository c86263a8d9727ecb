// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package oadr20a

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

// Signal types supported by the 2.0a profile.
const (
	SignalDelta      SignalType = "delta"
	SignalLevel      SignalType = "level"
	SignalMultiplier SignalType = "multiplier"
	SignalPrice      SignalType = "price"
	SignalSetpoint   SignalType = "setpoint"
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
