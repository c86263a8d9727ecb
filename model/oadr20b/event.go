// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package oadr20b

import (
	"encoding/xml"
	"time"
)

// DistributeEvent is sent by a VTN to push the current set of events to one or
// more VENs.
type DistributeEvent struct {
	XMLName       xml.Name    `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrDistributeEvent"`
	SchemaVersion string      `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 schemaVersion,attr,omitempty"`
	Response      *EIResponse `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 eiResponse,omitempty"`
	RequestID     string      `xml:"http://docs.oasis-open.org/ns/energyinterop/201110/payloads requestID"`
	VTNID         string      `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 vtnID"`
	Events        []Event     `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrEvent"`
}

// Event pairs an event with the VTN's response requirement.
type Event struct {
	EIEvent          EIEvent          `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 eiEvent"`
	ResponseRequired ResponseRequired `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrResponseRequired"`
}

// EIEvent is a single demand response event.
type EIEvent struct {
	Descriptor   EventDescriptor `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 eventDescriptor"`
	ActivePeriod ActivePeriod    `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 eiActivePeriod"`
	Signals      EventSignals    `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 eiEventSignals"`
	Target       Target          `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 eiTarget"`
}

// EventDescriptor identifies an event and carries its metadata.
type EventDescriptor struct {
	EventID            string        `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 eventID"`
	ModificationNumber uint          `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 modificationNumber"`
	Priority           uint          `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 priority,omitempty"`
	MarketContext      MarketContext `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 eiMarketContext"`
	CreatedDateTime    time.Time     `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 createdDateTime"`
	Status             EventStatus   `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 eventStatus"`
	TestEvent          string        `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 testEvent,omitempty"`
	VTNComment         string        `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 vtnComment,omitempty"`
}

// ActivePeriod is the time frame during which an event is active.
type ActivePeriod struct {
	Properties Properties `xml:"urn:ietf:params:xml:ns:icalendar-2.0 properties"`
}

// Properties holds the iCalendar properties of an active period.
type Properties struct {
	Start        DateTime   `xml:"urn:ietf:params:xml:ns:icalendar-2.0 dtstart"`
	Duration     Duration   `xml:"urn:ietf:params:xml:ns:icalendar-2.0 duration"`
	Tolerance    *Tolerance `xml:"urn:ietf:params:xml:ns:icalendar-2.0 tolerance,omitempty"`
	Notification *Duration  `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 x-eiNotification,omitempty"`
	RampUp       *Duration  `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 x-eiRampUp,omitempty"`
	Recovery     *Duration  `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 x-eiRecovery,omitempty"`
}

// MarketContext identifies the program an event belongs to.
type MarketContext struct {
	URI string `xml:"http://docs.oasis-open.org/ns/emix/2011/06 marketContext"`
}

// EventSignals lists the signals of an event.
type EventSignals struct {
	Signals []EventSignal `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 eiEventSignal"`
}

// EventSignal is one signal of an event, divided into intervals.
type EventSignal struct {
	Intervals    Intervals     `xml:"urn:ietf:params:xml:ns:icalendar-2.0:stream intervals"`
	SignalName   string        `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 signalName"`
	SignalType   SignalType    `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 signalType"`
	SignalID     string        `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 signalID"`
	CurrentValue *CurrentValue `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 currentValue,omitempty"`
}

// Intervals is the sequence of intervals of a signal.
type Intervals struct {
	Intervals []Interval `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 interval"`
}

// Interval is a single period of a signal and its value.
type Interval struct {
	Duration *Duration     `xml:"urn:ietf:params:xml:ns:icalendar-2.0 duration,omitempty"`
	UID      *UID          `xml:"urn:ietf:params:xml:ns:icalendar-2.0 uid,omitempty"`
	Payload  SignalPayload `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 signalPayload"`
}

// SignalPayload is the value of a signal during an interval.
type SignalPayload struct {
	Float PayloadFloat `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 payloadFloat"`
}

// CurrentValue is the value of a signal at the time the event was sent.
type CurrentValue struct {
	Float PayloadFloat `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 payloadFloat"`
}

// PayloadFloat is a floating point signal value.
type PayloadFloat struct {
	Value float64 `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 value"`
}

// Target selects the VENs and resources an event applies to.
type Target struct {
	GroupIDs    []string `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 groupID,omitempty"`
	ResourceIDs []string `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 resourceID,omitempty"`
	VENIDs      []string `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 venID,omitempty"`
	PartyIDs    []string `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 partyID,omitempty"`
}
