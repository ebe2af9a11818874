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

//go:generate stringer -type=TokenKind -output=tokens_string.go

package minimark

// Token is a lexical unit of a paragraph.
// Tokens returned by [Tokenize] cover the paragraph
// with no gaps and no overlaps.
type Token struct {
	Kind TokenKind
	// Text is the raw source slice covered by the token.
	Text  string
	Start int
	End   int
}

// Span returns the token's position in the paragraph.
func (tok Token) Span() Span {
	return Span{Start: tok.Start, End: tok.End}
}

// TokenKind is an enumeration of the lexical token types.
type TokenKind uint8

const (
	PlainTextToken TokenKind = 1 + iota
	EscapeToken
	ItalicMarkerToken
	BoldMarkerToken
	HeaderMarkerToken
	LinkOpenToken
	LinkDescriptionCloseToken
	LinkTargetOpenToken
	LinkTargetCloseToken
)

const headerMarker = "# "

// Tokenize splits a single paragraph into tokens.
// Marker detection is purely lexical:
// whether an emphasis marker opens or closes a span
// is decided later by [Resolve].
// Link tokens are only emitted for a complete [description](target) structure.
func Tokenize(paragraph string) []Token {
	t := &tokenizer{source: paragraph}
	pos := 0
	if len(paragraph) >= len(headerMarker) && paragraph[:len(headerMarker)] == headerMarker {
		t.emit(HeaderMarkerToken, 0, len(headerMarker))
		pos = len(headerMarker)
	}
	t.plainStart = pos
	for pos < len(paragraph) {
		switch paragraph[pos] {
		case '\\':
			n := escapeLength(paragraph, pos)
			if n == 0 {
				pos++
				continue
			}
			t.flushPlain(pos)
			t.emit(EscapeToken, pos, pos+n)
			pos += n
			t.plainStart = pos
		case '_':
			t.flushPlain(pos)
			if pos+1 < len(paragraph) && paragraph[pos+1] == '_' {
				t.emit(BoldMarkerToken, pos, pos+2)
				pos += 2
			} else {
				t.emit(ItalicMarkerToken, pos, pos+1)
				pos++
			}
			t.plainStart = pos
		case '[':
			link, ok := scanLink(paragraph, pos)
			if !ok {
				pos++
				continue
			}
			t.flushPlain(pos)
			t.emitLink(link)
			pos = link.end
			t.plainStart = pos
		default:
			pos++
		}
	}
	t.flushPlain(len(paragraph))
	return t.tokens
}

type tokenizer struct {
	source     string
	plainStart int
	tokens     []Token
}

func (t *tokenizer) emit(kind TokenKind, start, end int) {
	t.tokens = append(t.tokens, Token{
		Kind:  kind,
		Text:  t.source[start:end],
		Start: start,
		End:   end,
	})
}

// flushPlain emits any plain text accumulated before end.
func (t *tokenizer) flushPlain(end int) {
	if t.plainStart < end {
		t.emit(PlainTextToken, t.plainStart, end)
	}
	t.plainStart = end
}

func (t *tokenizer) emitLink(link linkBounds) {
	t.emit(LinkOpenToken, link.start, link.start+1)
	if link.start+1 < link.descriptionEnd {
		t.emit(PlainTextToken, link.start+1, link.descriptionEnd)
	}
	t.emit(LinkDescriptionCloseToken, link.descriptionEnd, link.descriptionEnd+1)
	t.emit(LinkTargetOpenToken, link.descriptionEnd+1, link.descriptionEnd+2)
	if link.descriptionEnd+2 < link.targetEnd {
		t.emit(PlainTextToken, link.descriptionEnd+2, link.targetEnd)
	}
	t.emit(LinkTargetCloseToken, link.targetEnd, link.end)
}

// escapeLength returns the length of the backslash escape at start
// or zero if the backslash does not escape anything.
func escapeLength(s string, start int) int {
	if start+1 >= len(s) {
		return 0
	}
	if start+2 < len(s) && s[start+1] == '_' && s[start+2] == '_' {
		// An escaped bold marker stays whole.
		return 3
	}
	if isEscapable(s[start+1]) {
		return 2
	}
	return 0
}

func isEscapable(c byte) bool {
	switch c {
	case '_', '#', '(', ')':
		return true
	default:
		return false
	}
}

type linkBounds struct {
	start          int // offset of '['
	descriptionEnd int // offset of ']'
	targetEnd      int // offset of ')'
	end            int
}

// scanLink reports whether a complete link begins at start.
// Neither part may contain whitespace.
// The description stops at the first '[' or ']'
// and the target at the first bracket or unescaped parenthesis,
// so a failed scan never looks past the next '['.
func scanLink(s string, start int) (linkBounds, bool) {
	link := linkBounds{start: start}
	i := start + 1
	for ; i < len(s) && s[i] != ']'; i++ {
		if s[i] == '[' || isSpaceByte(s[i]) {
			return linkBounds{}, false
		}
	}
	if i+1 >= len(s) || s[i+1] != '(' {
		return linkBounds{}, false
	}
	link.descriptionEnd = i
	for i += 2; i < len(s) && s[i] != ')'; i++ {
		if n := escapeLength(s, i); n > 0 {
			// An escaped marker is part of the target.
			i += n - 1
			continue
		}
		if c := s[i]; c == '(' || c == '[' || c == ']' || isSpaceByte(c) {
			return linkBounds{}, false
		}
	}
	if i >= len(s) {
		return linkBounds{}, false
	}
	link.targetEnd = i
	link.end = i + 1
	return link, true
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
