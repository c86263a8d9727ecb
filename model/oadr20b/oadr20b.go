// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package oadr20b contains the payloads of the OpenADR 2.0b profile.
//
// The 2.0b profile extends 2.0a with registration, reporting, and signed
// payloads, and spans fourteen schema packages.
// All of them must be present in a registry before ProfileID can be resolved.
package oadr20b // import "mellium.im/oadr/model/oadr20b"

import (
	"mellium.im/oadr/internal/ns"
	"mellium.im/oadr/profile"
)

// Namespaces used by the 2.0b profile.
// They are provided as a convenience.
const (
	NS         = ns.OADR20b
	NSEI       = ns.EI
	NSPayloads = ns.Payloads
	NSEMIX     = ns.EMIX
	NSPower    = ns.Power
	NSSIScale  = ns.SIScale
	NSCal      = ns.Cal
	NSStream   = ns.Stream
	NSAtom     = ns.Atom
	NSCurrency = ns.Currency
	NSGML      = ns.GML
	NSESPI     = ns.ESPI
	NSDSig     = ns.DSig
	NSDSig11   = ns.DSig11
)

// Identifiers of the schema packages that make up the profile.
const (
	PackageOADR        = "openadr.model.v20b"
	PackageAtom        = "openadr.model.v20b.atom"
	PackageCurrency    = "openadr.model.v20b.currency"
	PackageEI          = "openadr.model.v20b.ei"
	PackageEMIX        = "openadr.model.v20b.emix"
	PackageGML         = "openadr.model.v20b.gml"
	PackageGreenButton = "openadr.model.v20b.greenbutton"
	PackagePower       = "openadr.model.v20b.power"
	PackagePayloads    = "openadr.model.v20b.pyld"
	PackageSIScale     = "openadr.model.v20b.siscale"
	PackageStream      = "openadr.model.v20b.strm"
	PackageCal         = "openadr.model.v20b.xcal"
	PackageDSig        = "openadr.model.v20b.xmldsig"
	PackageDSig11      = "openadr.model.v20b.xmldsig11"
)

// ProfileID identifies the 2.0b profile.
const ProfileID = PackageOADR +
	":" + PackageAtom +
	":" + PackageCurrency +
	":" + PackageEI +
	":" + PackageEMIX +
	":" + PackageGML +
	":" + PackageGreenButton +
	":" + PackagePower +
	":" + PackagePayloads +
	":" + PackageSIScale +
	":" + PackageStream +
	":" + PackageCal +
	":" + PackageDSig +
	":" + PackageDSig11

// Packages describes the schema packages of the 2.0b profile.
var Packages = []profile.Package{
	{
		ID:     PackageOADR,
		Space:  NS,
		Prefix: "oadr",
		Types: []profile.Type{
			{Local: "oadrPayload", New: func() interface{} { return new(Payload) }},
			{Local: "oadrSignedObject", New: func() interface{} { return new(SignedObject) }},
			{Local: "oadrDistributeEvent", New: func() interface{} { return new(DistributeEvent) }},
			{Local: "oadrCreatedEvent", New: func() interface{} { return new(CreatedEvent) }},
			{Local: "oadrRequestEvent", New: func() interface{} { return new(RequestEvent) }},
			{Local: "oadrResponse", New: func() interface{} { return new(Response) }},
			{Local: "oadrCreateReport", New: func() interface{} { return new(CreateReport) }},
			{Local: "oadrCreatedReport", New: func() interface{} { return new(CreatedReport) }},
			{Local: "oadrCreatePartyRegistration", New: func() interface{} { return new(CreatePartyRegistration) }},
			{Local: "oadrCreatedPartyRegistration", New: func() interface{} { return new(CreatedPartyRegistration) }},
			{Local: "oadrPoll", New: func() interface{} { return new(Poll) }},
		},
	},
	{ID: PackageAtom, Space: NSAtom, Prefix: "atom"},
	{ID: PackageCurrency, Space: NSCurrency, Prefix: "clm5ISO42173A"},
	{ID: PackageEI, Space: NSEI, Prefix: "ei"},
	{ID: PackageEMIX, Space: NSEMIX, Prefix: "emix"},
	{ID: PackageGML, Space: NSGML, Prefix: "gml"},
	{ID: PackageGreenButton, Space: NSESPI, Prefix: "espi"},
	{ID: PackagePower, Space: NSPower, Prefix: "power"},
	{ID: PackagePayloads, Space: NSPayloads, Prefix: "pyld"},
	{ID: PackageSIScale, Space: NSSIScale, Prefix: "scale"},
	{ID: PackageStream, Space: NSStream, Prefix: "strm"},
	{ID: PackageCal, Space: NSCal, Prefix: "xcal"},
	{ID: PackageDSig, Space: NSDSig, Prefix: "ds"},
	{ID: PackageDSig11, Space: NSDSig11, Prefix: "dsig11"},
}

// SchemaVersion is the value of the schemaVersion attribute on 2.0b payloads.
const SchemaVersion = "2.0b"
