// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package oadr20a contains the payloads of the OpenADR 2.0a profile.
//
// The 2.0a profile covers event distribution between a Virtual Top Node (VTN)
// and Virtual End Nodes (VENs).
// Resolve ProfileID against a registry that knows Packages to obtain a codec
// for the payloads in this package:
//
//	reg, err := profile.NewRegistry(oadr20a.Packages)
//	…
//	codec, err := reg.Resolve(oadr20a.ProfileID)
package oadr20a // import "mellium.im/oadr/model/oadr20a"

import (
	"mellium.im/oadr/internal/ns"
	"mellium.im/oadr/profile"
)

// Namespaces used by the 2.0a profile.
// They are provided as a convenience.
const (
	NS         = ns.OADR20a
	NSEI       = ns.EI
	NSPayloads = ns.Payloads
	NSEMIX     = ns.EMIX
	NSCal      = ns.Cal
	NSStream   = ns.Stream
)

// Identifiers of the schema packages that make up the profile.
const (
	PackageOADR     = "openadr.model"
	PackageEI       = "openadr.model.ei"
	PackagePayloads = "openadr.model.pyld"
	PackageEMIX     = "openadr.model.emix"
	PackageCal      = "openadr.model.xcal"
	PackageStream   = "openadr.model.strm"
)

// ProfileID identifies the 2.0a profile.
const ProfileID = PackageOADR +
	":" + PackageEI +
	":" + PackagePayloads +
	":" + PackageEMIX +
	":" + PackageCal +
	":" + PackageStream

// Packages describes the schema packages of the 2.0a profile.
var Packages = []profile.Package{
	{
		ID:     PackageOADR,
		Space:  NS,
		Prefix: "oadr",
		Types: []profile.Type{
			{Local: "oadrDistributeEvent", New: func() interface{} { return new(DistributeEvent) }},
			{Local: "oadrCreatedEvent", New: func() interface{} { return new(CreatedEvent) }},
			{Local: "oadrRequestEvent", New: func() interface{} { return new(RequestEvent) }},
			{Local: "oadrResponse", New: func() interface{} { return new(Response) }},
		},
	},
	{ID: PackageEI, Space: NSEI, Prefix: "ei"},
	{ID: PackagePayloads, Space: NSPayloads, Prefix: "pyld"},
	{ID: PackageEMIX, Space: NSEMIX, Prefix: "emix"},
	{ID: PackageCal, Space: NSCal, Prefix: "xcal"},
	{ID: PackageStream, Space: NSStream, Prefix: "strm"},
}
