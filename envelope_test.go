// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package oadr_test

import (
	"bytes"
	"encoding/xml"
	"errors"
	"reflect"
	"strconv"
	"testing"

	"mellium.im/oadr"
	"mellium.im/oadr/model/oadr20a"
	"mellium.im/oadr/model/oadr20b"
	"mellium.im/oadr/profile"
)

const responseXML = `<oadr:oadrResponse xmlns:ei="http://docs.oasis-open.org/ns/energyinterop/201110" xmlns:oadr="http://openadr.org/oadr-2.0a/2012/07" xmlns:pyld="http://docs.oasis-open.org/ns/energyinterop/201110/payloads"><ei:eiResponse><ei:responseCode>200</ei:responseCode><pyld:requestID>test-123</pyld:requestID></ei:eiResponse></oadr:oadrResponse>`

var testResponse = &oadr20a.Response{
	XMLName: xml.Name{Space: oadr20a.NS, Local: "oadrResponse"},
	Response: oadr20a.EIResponse{
		Code:      "200",
		RequestID: "test-123",
	},
}

func newRegistry(t *testing.T) *profile.Registry {
	t.Helper()
	reg, err := profile.NewRegistry(oadr20a.Packages)
	if err != nil {
		t.Fatalf("error creating registry: %v", err)
	}
	return reg
}

func newCodec(t *testing.T) *profile.Codec {
	t.Helper()
	c, err := newRegistry(t).Resolve(oadr20a.ProfileID)
	if err != nil {
		t.Fatalf("error resolving profile: %v", err)
	}
	return c
}

func new20bCodec(t *testing.T) *profile.Codec {
	t.Helper()
	reg, err := profile.NewRegistry(oadr20b.Packages)
	if err != nil {
		t.Fatalf("error creating registry: %v", err)
	}
	c, err := reg.Resolve(oadr20b.ProfileID)
	if err != nil {
		t.Fatalf("error resolving profile: %v", err)
	}
	return c
}

func TestWrap(t *testing.T) {
	c := newCodec(t)
	e, err := oadr.Wrap(c, testResponse)
	if err != nil {
		t.Fatalf("error wrapping payload: %v", err)
	}
	if name := e.Name(); name != (xml.Name{Space: oadr20a.NS, Local: "oadrResponse"}) {
		t.Errorf("wrong name: want=oadrResponse, got=%v", name)
	}
	if e.Codec() != c {
		t.Errorf("envelope does not reference the wrapping codec")
	}
	v, err := e.Unwrap()
	if err != nil {
		t.Fatalf("error unwrapping payload: %v", err)
	}
	if v != testResponse {
		t.Errorf("unwrapped payload is not the wrapped value: %#v", v)
	}
}

func TestWrapUnbound(t *testing.T) {
	c := newCodec(t)
	_, err := oadr.Wrap(c, &oadr20b.Poll{VENID: "ven-1"})
	var bindErr *profile.BindingError
	if !errors.As(err, &bindErr) {
		t.Fatalf("wrong error: want=*profile.BindingError, got=%T(%[1]v)", err)
	}
}

func TestUnwrapEmpty(t *testing.T) {
	var e oadr.Envelope
	if _, err := e.Unwrap(); !errors.Is(err, oadr.ErrEmptyEnvelope) {
		t.Errorf("wrong error: want=%v, got=%v", oadr.ErrEmptyEnvelope, err)
	}
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	if _, err := e.WriteXML(enc); !errors.Is(err, oadr.ErrEmptyEnvelope) {
		t.Errorf("wrong error writing empty envelope: want=%v, got=%v", oadr.ErrEmptyEnvelope, err)
	}
}

func TestSerialize(t *testing.T) {
	c := newCodec(t)
	e, err := oadr.Wrap(c, testResponse)
	if err != nil {
		t.Fatalf("error wrapping payload: %v", err)
	}
	b, err := oadr.Serialize(e, c)
	if err != nil {
		t.Fatalf("error serializing: %v", err)
	}
	if s := string(b); s != responseXML {
		t.Errorf("wrong output:\nwant=%s,\n got=%s", responseXML, s)
	}

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	if err = enc.Encode(e); err != nil {
		t.Fatalf("error marshaling envelope: %v", err)
	}
	if err = enc.Flush(); err != nil {
		t.Fatalf("error flushing: %v", err)
	}
	if s := buf.String(); s != responseXML {
		t.Errorf("wrong marshal output:\nwant=%s,\n got=%s", responseXML, s)
	}
}

func TestSerializeEmpty(t *testing.T) {
	_, err := oadr.Serialize(&oadr.Envelope{}, newCodec(t))
	if !errors.Is(err, oadr.ErrEmptyEnvelope) {
		t.Errorf("wrong error: want=%v, got=%v", oadr.ErrEmptyEnvelope, err)
	}
}

var deserializeTestCases = [...]struct {
	in        string
	v         interface{}
	out       interface{}
	malformed bool
	mismatch  bool
}{
	0: {
		in:  responseXML,
		out: testResponse,
	},
	1: {
		in:  responseXML,
		v:   &oadr20a.Response{},
		out: testResponse,
	},
	2: {
		in:       `<oadrPoll xmlns="http://openadr.org/oadr-2.0b/2012/07"/>`,
		mismatch: true,
	},
	3: {
		in:        `<oadr:oadrResponse xmlns:oadr="http://openadr.org/oadr-2.0a/2012/07"><oadr:eiResponse>`,
		malformed: true,
	},
	4: {
		in:       `<oadrResponse xmlns="http://openadr.org/oadr-2.0a/2012/07"/>`,
		v:        &oadr20a.DistributeEvent{},
		mismatch: true,
	},
}

func TestDeserialize(t *testing.T) {
	c := newCodec(t)
	for i, tc := range deserializeTestCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			v, err := oadr.Deserialize([]byte(tc.in), c, tc.v)
			var mismatch *profile.MismatchError
			var malformed *profile.MalformedError
			switch {
			case tc.mismatch:
				if !errors.As(err, &mismatch) {
					t.Fatalf("wrong error: want=*profile.MismatchError, got=%T(%[1]v)", err)
				}
				return
			case tc.malformed:
				if !errors.As(err, &malformed) {
					t.Fatalf("wrong error: want=*profile.MalformedError, got=%T(%[1]v)", err)
				}
				return
			case err != nil:
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(v, tc.out) {
				t.Errorf("wrong value:\nwant=%#v,\n got=%#v", tc.out, v)
			}
		})
	}
}

func TestDistributeEventScenario(t *testing.T) {
	c := newCodec(t)
	e, err := oadr.Wrap(c, &oadr20a.DistributeEvent{
		RequestID: "test-123",
		VTNID:     "vtn-123",
	})
	if err != nil {
		t.Fatalf("error wrapping payload: %v", err)
	}
	b, err := oadr.Serialize(e, c)
	if err != nil {
		t.Fatalf("error serializing: %v", err)
	}
	if errs := profile.WellFormed(c).Validate(b); len(errs) != 0 {
		t.Fatalf("serialized event is not valid: %v", errs)
	}
	v, err := oadr.Deserialize(b, c, nil)
	if err != nil {
		t.Fatalf("error deserializing: %v", err)
	}
	ev, ok := v.(*oadr20a.DistributeEvent)
	if !ok {
		t.Fatalf("wrong type: want=*oadr20a.DistributeEvent, got=%T", v)
	}
	if ev.RequestID != "test-123" || ev.VTNID != "vtn-123" {
		t.Errorf("wrong event: want request test-123 from vtn-123, got request %s from %s", ev.RequestID, ev.VTNID)
	}
}

func TestSerializeOtherProfile(t *testing.T) {
	c20a := newCodec(t)
	c20b := new20bCodec(t)
	e, err := oadr.Wrap(c20b, &oadr20b.Poll{SchemaVersion: "2.0b", VENID: "ven-1"})
	if err != nil {
		t.Fatalf("error wrapping payload: %v", err)
	}
	_, err = oadr.Serialize(e, c20a)
	var bindErr *profile.BindingError
	if !errors.As(err, &bindErr) {
		t.Fatalf("wrong error: want=*profile.BindingError, got=%T(%[1]v)", err)
	}
}
