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

package minimark

import (
	"go4.org/bytereplacer"
	"golang.org/x/net/html/atom"
)

// An HTMLRenderer converts resolved paragraphs into HTML.
// The zero value renders literal text exactly as it appears in the source.
// An HTMLRenderer is not modified by rendering,
// so it is safe to use from multiple goroutines.
//
// # Security considerations
//
// By default, literal text and link targets are copied to the output verbatim,
// so any HTML in the input is passed through.
// This is only appropriate for trusted input.
// Set EscapeText when rendering untrusted input,
// and consider sending the result through an HTML sanitizer
// since link targets may still use schemes like "javascript:".
type HTMLRenderer struct {
	// If EscapeText is true, the renderer escapes HTML special characters
	// in literal text and link targets.
	EscapeText bool
}

var htmlEscaper = bytereplacer.New(
	"&", "&amp;",
	`'`, "&#39;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&#34;",
)

// AppendParagraph appends the rendered HTML of a resolved paragraph to dst
// and returns the resulting byte slice.
// source must be the paragraph text the nodes were resolved from.
func (r *HTMLRenderer) AppendParagraph(dst []byte, source string, nodes []*Node) []byte {
	state := &renderState{
		HTMLRenderer: r,
		dst:          dst,
		source:       source,
	}
	Walk(nodes, &WalkOptions{
		Pre:  state.pre,
		Post: state.post,
	})
	return state.dst
}

type renderState struct {
	*HTMLRenderer
	dst    []byte
	source string
}

func (r *renderState) openTag(name atom.Atom) {
	r.dst = append(r.dst, '<')
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, '>')
}

func (r *renderState) closeTag(name atom.Atom) {
	r.dst = append(r.dst, "</"...)
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, '>')
}

func (r *renderState) text(s string) {
	if !r.EscapeText {
		r.dst = append(r.dst, s...)
		return
	}
	start := len(r.dst)
	r.dst = append(r.dst, s...)
	escaped := htmlEscaper.Replace(r.dst[start:])
	r.dst = append(r.dst[:start], escaped...)
}

func (r *renderState) pre(c *Cursor) bool {
	n := c.Node()
	switch n.Kind() {
	case TextKind, EscapeKind:
		r.text(n.Text(r.source))
	case HeaderKind, StrongKind, EmphasisKind:
		r.openTag(tagForKind(n.Kind()))
	case LinkKind:
		r.dst = append(r.dst, '<')
		r.dst = append(r.dst, atom.A.String()...)
		r.dst = append(r.dst, ` href="`...)
		r.text(n.LinkTarget().Slice(r.source))
		r.dst = append(r.dst, `">`...)
	}
	return true
}

func (r *renderState) post(c *Cursor) bool {
	if k := c.Node().Kind(); k.IsContainer() {
		r.closeTag(tagForKind(k))
	}
	return true
}

func tagForKind(kind NodeKind) atom.Atom {
	switch kind {
	case HeaderKind:
		return atom.H1
	case StrongKind:
		return atom.Strong
	case EmphasisKind:
		return atom.Em
	case LinkKind:
		return atom.A
	default:
		return 0
	}
}
