// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package oadr carries OpenADR 2.0 payloads inside XMPP IQ stanzas.
//
// Payloads are typed Go values from one of the model packages (for example
// mellium.im/oadr/model/oadr20b).
// A payload is encoded into a namespaced fragment by the codec of its profile,
// which is obtained from a profile.Registry:
//
//	reg, err := profile.NewRegistry(oadr20b.Packages)
//	…
//	codec, err := reg.Resolve(oadr20b.ProfileID)
//	…
//	e, err := oadr.Wrap(codec, &oadr20b.Poll{VENID: "ven-1"})
//
// The resulting Envelope is attached to a Stanza which can be sent over any
// XMPP session.
//
// Inbound stanzas are routed by a Dispatcher, which sits in a session's handler
// chain and hands every IQ to the collectors whose filters match it.
// A caller waiting for a response registers a collector before sending its
// request and then blocks on it, bounded by a timeout, without ever blocking
// the goroutine that reads from the session:
//
//	d := oadr.NewDispatcher(oadr.WithCodec(codec))
//	go session.Serve(d)
//	…
//	req := oadr.NewStanza(stanza.SetIQ, vtn, ven)
//	req.Attach(e)
//	resp, err := d.Request(ctx, session, req, nil)
//
// Request is a convenience for the register, send, take, and deregister steps
// which may also be performed individually.
package oadr // import "mellium.im/oadr"
