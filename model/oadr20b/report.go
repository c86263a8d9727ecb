// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package oadr20b

import (
	"encoding/xml"
)

// CreateReport requests one or more reports from the receiving party.
type CreateReport struct {
	XMLName        xml.Name        `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrCreateReport"`
	SchemaVersion  string          `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 schemaVersion,attr,omitempty"`
	RequestID      string          `xml:"http://docs.oasis-open.org/ns/energyinterop/201110/payloads requestID"`
	ReportRequests []ReportRequest `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrReportRequest"`
	VENID          string          `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 venID,omitempty"`
}

// ReportRequest asks for the data points described by its specifier.
type ReportRequest struct {
	ReportRequestID string          `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 reportRequestID"`
	Specifier       ReportSpecifier `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 reportSpecifier"`
}

// ReportSpecifier describes the sampling and delivery of a report.
type ReportSpecifier struct {
	ReportSpecifierID  string             `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 reportSpecifierID"`
	Granularity        Duration           `xml:"urn:ietf:params:xml:ns:icalendar-2.0 granularity"`
	ReportBackDuration Duration           `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 reportBackDuration"`
	Interval           *ReportInterval    `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 reportInterval,omitempty"`
	Payloads           []SpecifierPayload `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 specifierPayload"`
}

// ReportInterval bounds the time frame of a report.
type ReportInterval struct {
	Properties ReportProperties `xml:"urn:ietf:params:xml:ns:icalendar-2.0 properties"`
}

// ReportProperties are the iCalendar properties of a report interval.
type ReportProperties struct {
	Start    DateTime  `xml:"urn:ietf:params:xml:ns:icalendar-2.0 dtstart"`
	Duration *Duration `xml:"urn:ietf:params:xml:ns:icalendar-2.0 duration,omitempty"`
}

// SpecifierPayload selects a single data point of a report.
type SpecifierPayload struct {
	RID string `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 rID"`
	ItemBase
	ReadingType ReadingType `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 readingType"`
}

// ItemBase is the unit of measure of a data point.
// At most one field should be set.
type ItemBase struct {
	PulseCount *PulseCount `xml:"http://openadr.org/oadr-2.0b/2012/07 pulseCount,omitempty"`
	EnergyReal *PowerItem  `xml:"http://docs.oasis-open.org/ns/emix/2011/06/power energyReal,omitempty"`
	PowerReal  *PowerItem  `xml:"http://docs.oasis-open.org/ns/emix/2011/06/power powerReal,omitempty"`
	Voltage    *PowerItem  `xml:"http://docs.oasis-open.org/ns/emix/2011/06/power voltage,omitempty"`
	Currency   *Currency   `xml:"http://openadr.org/oadr-2.0b/2012/07 currency,omitempty"`
}

// PulseCount measures pulses from a meter.
type PulseCount struct {
	ItemDescription string  `xml:"http://openadr.org/oadr-2.0b/2012/07 itemDescription"`
	ItemUnits       string  `xml:"http://openadr.org/oadr-2.0b/2012/07 itemUnits"`
	SIScaleCode     string  `xml:"http://docs.oasis-open.org/ns/emix/2011/06/siscale siScaleCode,omitempty"`
	PulseFactor     float32 `xml:"http://openadr.org/oadr-2.0b/2012/07 pulseFactor"`
}

// PowerItem is an energy, power or voltage unit.
type PowerItem struct {
	ItemDescription string `xml:"http://docs.oasis-open.org/ns/emix/2011/06/power itemDescription"`
	ItemUnits       string `xml:"http://docs.oasis-open.org/ns/emix/2011/06/power itemUnits"`
	SIScaleCode     string `xml:"http://docs.oasis-open.org/ns/emix/2011/06/siscale siScaleCode"`
}

// Currency is a monetary unit.
type Currency struct {
	ItemDescription string `xml:"http://openadr.org/oadr-2.0b/2012/07 itemDescription"`
	ItemUnits       string `xml:"urn:un:unece:uncefact:codelist:standard:5:ISO42173A:2010-04-07 ISO3AlphaCurrencyCode"`
	SIScaleCode     string `xml:"http://docs.oasis-open.org/ns/emix/2011/06/siscale siScaleCode"`
}

// CreatedReport acknowledges a CreateReport and lists the reports that are
// pending.
type CreatedReport struct {
	XMLName        xml.Name       `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrCreatedReport"`
	SchemaVersion  string         `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 schemaVersion,attr,omitempty"`
	Response       EIResponse     `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 eiResponse"`
	PendingReports PendingReports `xml:"http://openadr.org/oadr-2.0b/2012/07 oadrPendingReports"`
	VENID          string         `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 venID,omitempty"`
}

// PendingReports lists the report requests that are still active.
type PendingReports struct {
	ReportRequestIDs []string `xml:"http://docs.oasis-open.org/ns/energyinterop/201110 reportRequestID"`
}
