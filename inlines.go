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
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ParseParagraph tokenizes and resolves a single paragraph.
// The paragraph should not contain a paragraph separator;
// use [SplitParagraphs] or [Parser] to split a document first.
func ParseParagraph(paragraph string) []*Node {
	return Resolve(paragraph, Tokenize(paragraph))
}

// Resolve builds the node tree for a paragraph
// from the tokens returned by [Tokenize].
// Markers that do not form a valid pair are kept as [TextKind] leaves.
//
// Resolve panics if the tokens do not cover the paragraph exactly
// or contain an incomplete link,
// since that indicates a defect in the tokenizer.
func Resolve(paragraph string, tokens []Token) []*Node {
	checkTokens(paragraph, tokens)
	state := &resolveState{
		source: paragraph,
		tokens: tokens,
	}
	state.collectDelimiters()
	state.matchDelimiters()
	state.rejectCrossing()
	state.rejectStrongInEmphasis()
	return state.build()
}

type resolveState struct {
	source string
	tokens []Token
	stack  []delimiter
}

type delimiter struct {
	tok   int
	kind  NodeKind
	span  Span
	flags uint8
	// lastSpace is the offset of the last whitespace character before the delimiter
	// or -1 if there is none.
	lastSpace int
	// partner is the index of the matching delimiter in the stack
	// or -1 if the delimiter is literal text.
	partner int
}

const (
	// openerFlag is set when the delimiter is followed by a non-space character.
	openerFlag = 1 << iota
	// closerFlag is set when the delimiter is preceded by a non-space character.
	closerFlag
	// digitFlag is set when the word surrounding the delimiter contains a digit.
	digitFlag
)

// intraword reports whether the delimiter sits inside a word,
// that is, it has non-space characters on both sides.
func (d *delimiter) intraword() bool {
	return d.flags&(openerFlag|closerFlag) == openerFlag|closerFlag
}

// emphasisFlags determines whether the marker at span can open and/or close emphasis.
func emphasisFlags(source string, span Span) uint8 {
	var flags uint8
	if span.Start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(source[:span.Start])
		if !unicode.IsSpace(prev) {
			flags |= closerFlag
		}
	}
	if span.End < len(source) {
		next, _ := utf8.DecodeRuneInString(source[span.End:])
		if !unicode.IsSpace(next) {
			flags |= openerFlag
		}
	}
	return flags
}

// collectDelimiters fills the delimiter stack with every emphasis marker,
// recording its flags and the position of the nearest preceding whitespace.
// Link contents never count toward a word's digits.
func (state *resolveState) collectDelimiters() {
	lastSpace := -1
	wordStart := 0
	wordHasDigit := false
	endWord := func() {
		if wordHasDigit {
			for i := wordStart; i < len(state.stack); i++ {
				state.stack[i].flags |= digitFlag
			}
		}
		wordStart = len(state.stack)
		wordHasDigit = false
	}

	inLink := false
	for i, tok := range state.tokens {
		switch tok.Kind {
		case ItalicMarkerToken, BoldMarkerToken:
			kind := EmphasisKind
			if tok.Kind == BoldMarkerToken {
				kind = StrongKind
			}
			state.stack = append(state.stack, delimiter{
				tok:       i,
				kind:      kind,
				span:      tok.Span(),
				flags:     emphasisFlags(state.source, tok.Span()),
				lastSpace: lastSpace,
				partner:   -1,
			})
			continue
		case LinkOpenToken:
			inLink = true
			continue
		case LinkTargetCloseToken:
			inLink = false
			continue
		}
		if inLink {
			continue
		}
		for j, r := range tok.Text {
			switch {
			case unicode.IsSpace(r):
				endWord()
				lastSpace = tok.Start + j
			case unicode.IsDigit(r):
				wordHasDigit = true
			}
		}
	}
	endWord()
}

// matchDelimiters pairs openers with closers of the same kind,
// scanning left to right with one stack of open candidates per kind.
func (state *resolveState) matchDelimiters() {
	var emphasisOpeners, strongOpeners []int
	for i := range state.stack {
		d := &state.stack[i]
		if d.flags&digitFlag != 0 {
			continue
		}
		openers := &emphasisOpeners
		if d.kind == StrongKind {
			openers = &strongOpeners
		}
		if d.flags&closerFlag != 0 && state.closeDelimiter(openers, i) {
			continue
		}
		if d.flags&openerFlag != 0 {
			*openers = append(*openers, i)
		}
	}
}

// closeDelimiter attempts to pair the closer at index ci
// with the nearest opener in openers.
// A span that starts or ends inside a word may not contain whitespace.
// An intraword opener followed by whitespace can never be closed,
// so it is discarded rather than kept on the stack.
func (state *resolveState) closeDelimiter(openers *[]int, ci int) bool {
	closer := &state.stack[ci]
	for len(*openers) > 0 {
		oi := (*openers)[len(*openers)-1]
		opener := &state.stack[oi]
		if opener.span.End == closer.span.Start {
			// Empty span.
			return false
		}
		spaced := closer.lastSpace >= opener.span.End
		if spaced && closer.intraword() {
			return false
		}
		*openers = (*openers)[:len(*openers)-1]
		if spaced && opener.intraword() {
			continue
		}
		opener.partner = ci
		closer.partner = oi
		return true
	}
	return false
}

// rejectCrossing unpairs spans that overlap without one enclosing the other.
// Pairs are checked in the order their closers appear;
// both pairs of an overlap become literal text.
func (state *resolveState) rejectCrossing() {
	var open []int
	for i := range state.stack {
		d := &state.stack[i]
		switch {
		case d.partner < 0:
		case d.partner > i:
			open = append(open, i)
		default:
			crossed := false
			for open[len(open)-1] != d.partner {
				state.unpair(open[len(open)-1])
				open = open[:len(open)-1]
				crossed = true
			}
			open = open[:len(open)-1]
			if crossed {
				state.unpair(i)
			}
		}
	}
}

// rejectStrongInEmphasis unpairs strong spans enclosed by emphasis.
// It assumes that the remaining pairs nest properly.
func (state *resolveState) rejectStrongInEmphasis() {
	emphasisDepth := 0
	for i := range state.stack {
		d := &state.stack[i]
		switch {
		case d.partner < 0:
		case d.partner > i:
			if d.kind == EmphasisKind {
				emphasisDepth++
			}
		case d.kind == EmphasisKind:
			emphasisDepth--
		case emphasisDepth > 0:
			state.unpair(i)
		}
	}
}

func (state *resolveState) unpair(i int) {
	if j := state.stack[i].partner; j >= 0 {
		state.stack[j].partner = -1
	}
	state.stack[i].partner = -1
}

// build converts the tokens into a tree
// using the pairs recorded on the delimiter stack.
func (state *resolveState) build() []*Node {
	dummy := new(Node)
	containers := []*Node{dummy}
	add := func(n *Node) {
		parent := containers[len(containers)-1]
		parent.children = append(parent.children, n)
	}

	delimIndex := 0
	for i := 0; i < len(state.tokens); {
		tok := state.tokens[i]
		switch tok.Kind {
		case PlainTextToken:
			add(&Node{kind: TextKind, start: tok.Start, end: tok.End})
			i++
		case EscapeToken:
			add(&Node{kind: EscapeKind, start: tok.Start + 1, end: tok.End})
			i++
		case HeaderMarkerToken:
			if i != 0 {
				panic(fmt.Sprintf("minimark: header marker at offset %d", tok.Start))
			}
			header := &Node{
				kind:  HeaderKind,
				start: tok.End,
				end:   len(state.source),
			}
			add(header)
			containers = append(containers, header)
			i++
		case ItalicMarkerToken, BoldMarkerToken:
			d := &state.stack[delimIndex]
			switch {
			case d.partner < 0:
				add(&Node{kind: TextKind, start: tok.Start, end: tok.End})
			case d.partner > delimIndex:
				n := &Node{kind: d.kind, start: tok.End}
				add(n)
				containers = append(containers, n)
			default:
				n := containers[len(containers)-1]
				containers = containers[:len(containers)-1]
				n.end = tok.Start
			}
			delimIndex++
			i++
		case LinkOpenToken:
			var link *Node
			link, i = state.link(i)
			add(link)
		default:
			panic(fmt.Sprintf("minimark: unexpected %v at offset %d", tok.Kind, tok.Start))
		}
	}
	return dummy.children
}

// link builds a [LinkKind] node from the link token group starting at i
// and returns the index of the first token after the group.
func (state *resolveState) link(i int) (*Node, int) {
	n := &Node{
		kind:  LinkKind,
		start: state.tokens[i].End,
	}
	i++
	if state.tokenKind(i) == PlainTextToken {
		tok := state.tokens[i]
		n.children = []*Node{{kind: TextKind, start: tok.Start, end: tok.End}}
		i++
	}
	state.expect(i, LinkDescriptionCloseToken)
	n.end = state.tokens[i].Start
	i++
	state.expect(i, LinkTargetOpenToken)
	n.target.Start = state.tokens[i].End
	i++
	if state.tokenKind(i) == PlainTextToken {
		i++
	}
	state.expect(i, LinkTargetCloseToken)
	n.target.End = state.tokens[i].Start
	return n, i + 1
}

func (state *resolveState) tokenKind(i int) TokenKind {
	if i >= len(state.tokens) {
		return 0
	}
	return state.tokens[i].Kind
}

func (state *resolveState) expect(i int, kind TokenKind) {
	if got := state.tokenKind(i); got != kind {
		panic(fmt.Sprintf("minimark: incomplete link: token %d is %v; want %v", i, got, kind))
	}
}

// checkTokens panics if tokens do not cover source without gaps or overlaps.
func checkTokens(source string, tokens []Token) {
	pos := 0
	for i, tok := range tokens {
		if tok.Start != pos || tok.End <= tok.Start {
			panic(fmt.Sprintf("minimark: token %d (%v) spans [%d,%d); want start at %d", i, tok.Kind, tok.Start, tok.End, pos))
		}
		pos = tok.End
	}
	if pos != len(source) {
		panic(fmt.Sprintf("minimark: tokens end at %d; paragraph length is %d", pos, len(source)))
	}
}
