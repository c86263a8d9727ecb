// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package tokens buffers and replays XML token streams.
package tokens // import "mellium.im/oadr/internal/tokens"

import (
	"encoding/xml"
	"io"
)

// Reader returns a token reader that replays toks.
// Every token is copied before it is returned so several readers may replay
// the same slice concurrently and consumers may modify the tokens they read.
func Reader(toks []xml.Token) xml.TokenReader {
	return &replay{toks: toks}
}

type replay struct {
	toks []xml.Token
}

func (r *replay) Token() (xml.Token, error) {
	if len(r.toks) == 0 {
		return nil, io.EOF
	}
	t := r.toks[0]
	r.toks = r.toks[1:]
	return xml.CopyToken(t), nil
}

// ReadAll reads r to io.EOF, copying every token.
func ReadAll(r xml.TokenReader) ([]xml.Token, error) {
	var toks []xml.Token
	for {
		tok, err := r.Token()
		if tok != nil {
			toks = append(toks, xml.CopyToken(tok))
		}
		switch err {
		case nil:
		case io.EOF:
			return toks, nil
		default:
			return toks, err
		}
	}
}

// ReadElement copies start and every token up to and including its matching
// end element from r.
func ReadElement(r xml.TokenReader, start xml.StartElement) ([]xml.Token, error) {
	toks := []xml.Token{start.Copy()}
	depth := 1
	for depth > 0 {
		tok, err := r.Token()
		if tok != nil {
			switch tok.(type) {
			case xml.StartElement:
				depth++
			case xml.EndElement:
				depth--
			}
			toks = append(toks, xml.CopyToken(tok))
		}
		switch {
		case err == io.EOF && depth > 0:
			return toks, io.ErrUnexpectedEOF
		case err != nil && err != io.EOF:
			return toks, err
		case err == io.EOF:
			return toks, nil
		}
	}
	return toks, nil
}
