// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package profile_test

import (
	"encoding/xml"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"mellium.im/oadr/profile"
)

const (
	nsA = "urn:example:a"
	nsB = "urn:example:b"
	nsY = "urn:example:y"
	nsZ = "urn:example:z"
)

type foo struct {
	XMLName xml.Name `xml:"urn:example:a foo"`
	Bar     string   `xml:"urn:example:b bar"`
	Baz     string   `xml:"urn:example:z baz,omitempty"`
	Qux     string   `xml:"urn:example:y qux,omitempty"`
}

type quux struct {
	XMLName xml.Name `xml:"urn:example:b quux"`
	Lang    string   `xml:"http://www.w3.org/XML/1998/namespace lang,attr,omitempty"`
	Value   string   `xml:",chardata"`
}

// misbound is registered as "misbound" but encodes as something else.
type misbound struct {
	XMLName xml.Name `xml:"urn:example:a other"`
}

type unbound struct {
	XMLName xml.Name `xml:"urn:example:a unbound"`
}

var testPackages = []profile.Package{
	{
		ID:     "a",
		Space:  nsA,
		Prefix: "a",
		Types: []profile.Type{
			{Local: "foo", New: func() interface{} { return new(foo) }},
			{Local: "misbound", New: func() interface{} { return new(misbound) }},
		},
	},
	{
		ID:     "b",
		Space:  nsB,
		Prefix: "b",
		Types: []profile.Type{
			{Local: "quux", New: func() interface{} { return new(quux) }},
		},
	},
}

const testProfile = "a:b"

func newRegistry(t *testing.T, opts ...profile.Option) *profile.Registry {
	t.Helper()
	reg, err := profile.NewRegistry(testPackages, opts...)
	if err != nil {
		t.Fatalf("error creating registry: %v", err)
	}
	return reg
}

func TestSplitJoin(t *testing.T) {
	ids := []string{"openadr.model", "openadr.model.ei"}
	id := profile.JoinID(ids...)
	if id != "openadr.model:openadr.model.ei" {
		t.Errorf("wrong profile ID: %q", id)
	}
	if split := profile.SplitID(id); len(split) != 2 || split[0] != ids[0] || split[1] != ids[1] {
		t.Errorf("wrong split: %v", split)
	}
}

var resolveTestCases = [...]struct {
	id  string
	err error
}{
	0: {id: "", err: profile.ErrEmptyID},
	1: {id: "a"},
	2: {id: "a:b"},
	3: {id: "b:a"},
	4: {id: "a:c", err: profile.ErrUnknownPackage},
	5: {id: "a::b", err: profile.ErrUnknownPackage},
}

func TestResolve(t *testing.T) {
	reg := newRegistry(t)
	for i, tc := range resolveTestCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			c, err := reg.Resolve(tc.id)
			if !errors.Is(err, tc.err) {
				t.Fatalf("unexpected error: want=%v, got=%v", tc.err, err)
			}
			if err != nil {
				return
			}
			if c.ID() != tc.id {
				t.Errorf("wrong profile ID: want=%q, got=%q", tc.id, c.ID())
			}
			again, err := reg.Resolve(tc.id)
			if err != nil {
				t.Fatalf("error resolving second time: %v", err)
			}
			if again != c {
				t.Errorf("expected cached codec to be returned")
			}
		})
	}
}

func TestResolveOrderIsSignificant(t *testing.T) {
	reg := newRegistry(t)
	ab, err := reg.Resolve("a:b")
	if err != nil {
		t.Fatalf("error resolving: %v", err)
	}
	ba, err := reg.Resolve("b:a")
	if err != nil {
		t.Fatalf("error resolving: %v", err)
	}
	if ab == ba {
		t.Errorf("expected distinct codecs for distinct profile identifiers")
	}
}

func TestResolveConcurrent(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newRegistry(t, profile.WithMetrics(reg), profile.WithLogger(zaptest.NewLogger(t)))

	const n = 32
	codecs := make([]*profile.Codec, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			c, err := r.Resolve(testProfile)
			if err != nil {
				t.Errorf("error resolving: %v", err)
				return
			}
			codecs[i] = c
		}(i)
	}
	wg.Wait()
	for i, c := range codecs {
		if c != codecs[0] {
			t.Errorf("codec %d differs from the first codec", i)
		}
	}

	const expected = `
# HELP oadr_profile_builds_total Number of codecs built, by profile identifier.
# TYPE oadr_profile_builds_total counter
oadr_profile_builds_total{profile="a:b"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "oadr_profile_builds_total"); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestMetricsRegisteredTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	r1 := newRegistry(t, profile.WithMetrics(reg))
	r2 := newRegistry(t, profile.WithMetrics(reg))
	if _, err := r1.Resolve("a"); err != nil {
		t.Fatalf("error resolving: %v", err)
	}
	if _, err := r2.Resolve("a"); err != nil {
		t.Fatalf("error resolving: %v", err)
	}
	const expected = `
# HELP oadr_profile_builds_total Number of codecs built, by profile identifier.
# TYPE oadr_profile_builds_total counter
oadr_profile_builds_total{profile="a"} 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "oadr_profile_builds_total"); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

var registerTestCases = [...]struct {
	pkgs []profile.Package
	id   string
	err  bool
}{
	0: {
		pkgs: []profile.Package{{Space: "urn:example:noid"}},
		err:  true,
	},
	1: {
		pkgs: []profile.Package{{ID: "a", Space: nsA}},
		err:  true,
	},
	2: {
		pkgs: []profile.Package{{
			ID:    "nonptr",
			Space: "urn:example:nonptr",
			Types: []profile.Type{{Local: "foo", New: func() interface{} { return foo{} }}},
		}},
		id:  "nonptr",
		err: true,
	},
	3: {
		pkgs: []profile.Package{{
			ID:    "twice",
			Space: "urn:example:twice",
			Types: []profile.Type{
				{Local: "foo", New: func() interface{} { return new(foo) }},
				{Local: "foo", New: func() interface{} { return new(quux) }},
			},
		}},
		id:  "twice",
		err: true,
	},
	4: {
		pkgs: []profile.Package{{
			ID:    "sametype",
			Space: "urn:example:sametype",
			Types: []profile.Type{
				{Local: "one", New: func() interface{} { return new(foo) }},
				{Local: "two", New: func() interface{} { return new(foo) }},
			},
		}},
		id:  "sametype",
		err: true,
	},
	5: {
		pkgs: []profile.Package{{ID: "c", Space: "urn:example:c"}},
		id:   "a:b:c",
	},
}

func TestRegister(t *testing.T) {
	for i, tc := range registerTestCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			reg := newRegistry(t, profile.WithLogger(zap.NewNop()))
			err := reg.Register(tc.pkgs...)
			if tc.id == "" {
				if tc.err != (err != nil) {
					t.Fatalf("unexpected error registering: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("error registering: %v", err)
			}
			_, err = reg.Resolve(tc.id)
			if tc.err != (err != nil) {
				t.Fatalf("unexpected error resolving: %v", err)
			}
		})
	}
}

func TestDuplicatePackage(t *testing.T) {
	_, err := profile.NewRegistry(append(testPackages, testPackages[0]))
	if !errors.Is(err, profile.ErrDuplicatePackage) {
		t.Errorf("wrong error: want=%v, got=%v", profile.ErrDuplicatePackage, err)
	}
}
