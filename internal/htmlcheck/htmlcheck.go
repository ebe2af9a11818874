// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package htmlcheck inspects rendered HTML fragments
// for structural problems.
package htmlcheck

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var allowedTags = map[atom.Atom]struct{}{
	atom.H1:     {},
	atom.Strong: {},
	atom.Em:     {},
	atom.A:      {},
}

// Check reports the first structural problem in an HTML fragment:
// a tag outside of the renderer's vocabulary,
// an end tag that does not match the innermost open element,
// or an element left open at the end of the fragment.
func Check(b []byte) error {
	tok := html.NewTokenizer(bytes.NewReader(b))
	var open []atom.Atom
	for {
		tt := tok.Next()
		switch tt {
		case html.ErrorToken:
			if err := tok.Err(); err != io.EOF {
				return err
			}
			if len(open) > 0 {
				return fmt.Errorf("<%v> not closed", open[len(open)-1])
			}
			return nil
		case html.StartTagToken:
			name, _ := tok.TagName()
			a := atom.Lookup(name)
			if _, ok := allowedTags[a]; !ok {
				return fmt.Errorf("unexpected <%s>", name)
			}
			open = append(open, a)
		case html.EndTagToken:
			name, _ := tok.TagName()
			a := atom.Lookup(name)
			if len(open) == 0 || open[len(open)-1] != a {
				return fmt.Errorf("unexpected </%s>", name)
			}
			open = open[:len(open)-1]
		case html.TextToken:
		default:
			return fmt.Errorf("unexpected %v %q", tt, tok.Raw())
		}
	}
}

// Text returns the character data of an HTML fragment
// with tags removed and character references decoded.
// As with any HTML parser, line breaks are normalized to "\n".
func Text(b []byte) []byte {
	tok := html.NewTokenizer(bytes.NewReader(b))
	var output []byte
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return output
		case html.TextToken:
			output = append(output, tok.Text()...)
		}
	}
}

// Attr returns the value of the named attribute
// on each start tag with the given name, in document order.
func Attr(b []byte, tag atom.Atom, key string) []string {
	tok := html.NewTokenizer(bytes.NewReader(b))
	var values []string
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return values
		case html.StartTagToken:
			name, hasAttr := tok.TagName()
			if atom.Lookup(name) != tag {
				continue
			}
			for hasAttr {
				var k, v []byte
				k, v, hasAttr = tok.TagAttr()
				if string(k) == key {
					values = append(values, string(v))
				}
			}
		}
	}
}
