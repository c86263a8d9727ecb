// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package profile

import (
	"encoding/xml"
	"sort"
	"strconv"

	"mellium.im/oadr/internal/attr"
	"mellium.im/oadr/internal/ns"
)

// PrefixMapper maps namespaces to the prefixes used when encoding fragments.
type PrefixMapper interface {
	Prefix(space string) (prefix string, ok bool)
}

// Prefixes is a PrefixMapper backed by a map from namespace to prefix.
type Prefixes map[string]string

// Prefix implements PrefixMapper.
func (p Prefixes) Prefix(space string) (string, bool) {
	prefix, ok := p[space]
	return prefix, ok
}

// DefaultPrefixes are the conventional prefixes of the OpenADR 2.0 schemas.
// Both the 2.0a and 2.0b namespaces use "oadr" since they never appear in the
// same profile.
var DefaultPrefixes = Prefixes{
	ns.OADR20a:  "oadr",
	ns.OADR20b:  "oadr",
	ns.EI:       "ei",
	ns.Payloads: "pyld",
	ns.EMIX:     "emix",
	ns.Power:    "power",
	ns.SIScale:  "scale",
	ns.Cal:      "xcal",
	ns.Stream:   "strm",
	ns.Atom:     "atom",
	ns.Currency: "clm5ISO42173A",
	ns.GML:      "gml",
	ns.ESPI:     "espi",
	ns.DSig:     "ds",
	ns.DSig11:   "dsig11",
	ns.XSI:      "xsi",
}

// qualify rewrites namespace resolved tokens to use prefixed names.
// Every namespace used in the fragment is declared once on the root element.
// Declarations are ordered by prefix and namespaces without a usable prefix
// are assigned ns0, ns1, … in namespace order, so the output only depends on
// the set of namespaces in the fragment and not on the order they appear in.
func qualify(toks []xml.Token, lookup func(string) (string, bool)) []xml.Token {
	seen := make(map[string]struct{})
	var spaces []string
	use := func(space string) {
		if space == "" || space == ns.XML {
			return
		}
		if _, ok := seen[space]; ok {
			return
		}
		seen[space] = struct{}{}
		spaces = append(spaces, space)
	}
	for _, tok := range toks {
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		use(start.Name.Space)
		for _, a := range start.Attr {
			if !attr.IsNSDecl(a) {
				use(a.Name.Space)
			}
		}
	}
	sort.Strings(spaces)

	prefixes := make(map[string]string, len(spaces))
	taken := map[string]bool{"xml": true, "xmlns": true}
	var unmapped []string
	for _, space := range spaces {
		p, ok := lookup(space)
		if !ok || p == "" || taken[p] {
			unmapped = append(unmapped, space)
			continue
		}
		prefixes[space] = p
		taken[p] = true
	}
	n := 0
	for _, space := range unmapped {
		p := "ns" + strconv.Itoa(n)
		for taken[p] {
			n++
			p = "ns" + strconv.Itoa(n)
		}
		prefixes[space] = p
		taken[p] = true
	}

	decls := make([]xml.Attr, 0, len(prefixes))
	for space, p := range prefixes {
		decls = append(decls, xml.Attr{Name: xml.Name{Local: "xmlns:" + p}, Value: space})
	}
	sort.Slice(decls, func(i, j int) bool {
		return decls[i].Name.Local < decls[j].Name.Local
	})

	name := func(n xml.Name) xml.Name {
		switch n.Space {
		case "":
			return xml.Name{Local: n.Local}
		case ns.XML:
			return xml.Name{Local: "xml:" + n.Local}
		}
		return xml.Name{Local: prefixes[n.Space] + ":" + n.Local}
	}

	out := make([]xml.Token, 0, len(toks))
	root := true
	for _, tok := range toks {
		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make([]xml.Attr, 0, len(t.Attr))
			if root {
				attrs = append(attrs, decls...)
				root = false
			}
			for _, a := range t.Attr {
				if attr.IsNSDecl(a) {
					continue
				}
				attrs = append(attrs, xml.Attr{Name: name(a.Name), Value: a.Value})
			}
			out = append(out, xml.StartElement{Name: name(t.Name), Attr: attrs})
		case xml.EndElement:
			out = append(out, xml.EndElement{Name: name(t.Name)})
		case xml.CharData:
			out = append(out, t.Copy())
		}
	}
	return out
}
