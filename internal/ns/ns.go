// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package ns provides namespace constants that are used by the oadr package
// and the payload model packages.
package ns // import "mellium.im/oadr/internal/ns"

// XML namespaces used by the OpenADR 2.0 schemas.
const (
	OADR20a = "http://openadr.org/oadr-2.0a/2012/07"
	OADR20b = "http://openadr.org/oadr-2.0b/2012/07"

	EI       = "http://docs.oasis-open.org/ns/energyinterop/201110"
	Payloads = "http://docs.oasis-open.org/ns/energyinterop/201110/payloads"
	EMIX     = "http://docs.oasis-open.org/ns/emix/2011/06"
	Power    = "http://docs.oasis-open.org/ns/emix/2011/06/power"
	SIScale  = "http://docs.oasis-open.org/ns/emix/2011/06/siscale"
	Cal      = "urn:ietf:params:xml:ns:icalendar-2.0"
	Stream   = "urn:ietf:params:xml:ns:icalendar-2.0:stream"
	Atom     = "http://www.w3.org/2005/Atom"
	Currency = "urn:un:unece:uncefact:codelist:standard:5:ISO42173A:2010-04-07"
	GML      = "http://www.opengis.net/gml/3.2"
	ESPI     = "http://naesb.org/espi"
	DSig     = "http://www.w3.org/2000/09/xmldsig#"
	DSig11   = "http://www.w3.org/2009/xmldsig11#"
)

// Namespaces that are not part of any profile but may appear in fragments.
const (
	XML = "http://www.w3.org/XML/1998/namespace"
	XSI = "http://www.w3.org/2001/XMLSchema-instance"
)
