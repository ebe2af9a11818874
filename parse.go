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

// Package minimark converts a small Markdown dialect into HTML.
//
// The dialect has paragraphs separated by blank lines,
// a top-level header (a paragraph starting with "# "),
// bold (__text__), italic (_text_), links ([description](target)),
// and backslash escapes for the marker characters.
// Everything that is not a recognized marker,
// including whitespace and line breaks,
// is copied to the output unchanged.
package minimark

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MaxParagraphSize is the largest paragraph, including its separator,
// that a [Parser] will buffer.
const MaxParagraphSize = 16 << 20

// ErrParagraphTooLarge is returned by [*Parser.NextParagraph]
// when a paragraph exceeds [MaxParagraphSize].
var ErrParagraphTooLarge = errors.New("paragraph too large")

// Paragraph is a paragraph of source text
// along with the separator that follows it.
// Concatenating Text and Separator of every paragraph in a document
// reproduces the document exactly.
type Paragraph struct {
	Text string
	// Separator is the run of two or more line breaks after Text.
	// It is empty for the last paragraph.
	Separator string
	// StartLine is the 1-based line number of the first line of Text.
	StartLine int
	// StartOffset is the byte offset of Text in the document.
	StartOffset int64
}

// SplitParagraphs partitions text into paragraphs.
// A line break is "\r\n", "\n", or a lone "\r".
// A run of two or more consecutive line breaks separates paragraphs;
// a single line break stays inside the paragraph.
// The result always has at least one (possibly empty) paragraph.
func SplitParagraphs(text string) []Paragraph {
	var paragraphs []Paragraph
	start := 0
	line := 1
	startLine := 1
	for i := 0; i < len(text); {
		j := strings.IndexAny(text[i:], "\r\n")
		if j < 0 {
			break
		}
		runStart := i + j
		runEnd := runStart
		breaks := 0
		for {
			n := lineBreakLength(text, runEnd)
			if n == 0 {
				break
			}
			runEnd += n
			breaks++
		}
		line += breaks
		if breaks >= 2 {
			paragraphs = append(paragraphs, Paragraph{
				Text:        text[start:runStart],
				Separator:   text[runStart:runEnd],
				StartLine:   startLine,
				StartOffset: int64(start),
			})
			start = runEnd
			startLine = line
		}
		i = runEnd
	}
	return append(paragraphs, Paragraph{
		Text:        text[start:],
		StartLine:   startLine,
		StartOffset: int64(start),
	})
}

// lineBreakLength returns the length of the line break at s[i:]
// or zero if there is none.
func lineBreakLength[S string | []byte](s S, i int) int {
	switch {
	case i >= len(s):
		return 0
	case s[i] == '\n':
		return 1
	case s[i] == '\r':
		if i+1 < len(s) && s[i+1] == '\n' {
			return 2
		}
		return 1
	default:
		return 0
	}
}

func countLineBreaks(b []byte) int {
	n := 0
	for i := 0; i < len(b); {
		if k := lineBreakLength(b, i); k > 0 {
			n++
			i += k
		} else {
			i++
		}
	}
	return n
}

// A Parser splits a stream into paragraphs
// without reading the whole stream into memory.
// It produces the same paragraphs as [SplitParagraphs]
// does for the same bytes.
type Parser struct {
	buf      []byte // current paragraph being scanned
	offset   int64  // offset from beginning of stream to beginning of buf
	parsePos int    // parse position within buf
	lineno   int    // line number of the beginning of buf
	done     bool   // last paragraph has been returned

	r   io.Reader
	err error // non-nil indicates there is no more data after end of buf
}

// NewParser returns a parser that reads from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{
		r:      r,
		lineno: 1,
	}
}

// NextParagraph reads the next paragraph from the stream.
// It returns io.EOF after the last paragraph.
// Like [SplitParagraphs],
// a stream always yields at least one paragraph.
func (p *Parser) NextParagraph() (*Paragraph, error) {
	if p.done {
		return nil, io.EOF
	}
	runStart, runBreaks := -1, 0
	for {
		lineStart := p.parsePos
		line := p.readline()
		if len(line) == 0 {
			if runBreaks >= 2 {
				// Any error is reported on the next call.
				return p.consume(runStart, p.parsePos), nil
			}
			if p.err != io.EOF {
				return nil, p.err
			}
			p.done = true
			return p.consume(p.parsePos, p.parsePos), nil
		}
		content := trimLineBreak(line)
		if len(content) > 0 {
			if runBreaks >= 2 {
				// Rewind to the beginning of the line.
				p.parsePos = lineStart
				return p.consume(runStart, lineStart), nil
			}
			runBreaks = 0
		}
		if len(content) < len(line) {
			if runBreaks == 0 {
				runStart = lineStart + len(content)
			}
			runBreaks++
		}
	}
}

// readline reads the next line of input, growing p.buf as necessary.
// The line includes its line break, if any.
// It will return a zero-length slice if and only if it has reached the end of input.
func (p *Parser) readline() []byte {
	const chunkSize = 8 * 1024

	eolEnd := -1
	for {
		// Check if we have a line ending available.
		if i := bytes.IndexAny(p.buf[p.parsePos:], "\r\n"); i >= 0 {
			eolStart := p.parsePos + i
			if p.buf[eolStart] == '\n' {
				eolEnd = eolStart + 1
				break
			}
			if eolStart+1 < len(p.buf) {
				// Carriage return with enough buffer for 1 byte lookahead.
				eolEnd = eolStart + 1
				if p.buf[eolEnd] == '\n' {
					eolEnd++
				}
				break
			}
			if p.err != nil {
				// Carriage return right before EOF.
				eolEnd = len(p.buf)
				break
			}
		}

		// If we don't have any more line ending available,
		// but we're at EOF, return everything we have.
		if p.err != nil {
			eolEnd = len(p.buf)
			break
		}

		// If we're already at the maximum paragraph size,
		// then drop the line and stop reading.
		if len(p.buf) >= MaxParagraphSize {
			p.buf = p.buf[:p.parsePos]
			p.err = fmt.Errorf("line %d: %w", p.currentLine(), ErrParagraphTooLarge)
			return nil
		}

		// Grab more data from the reader.
		newSize := len(p.buf) + chunkSize
		if newSize > MaxParagraphSize {
			newSize = MaxParagraphSize
		}
		if cap(p.buf) < newSize {
			newbuf := make([]byte, len(p.buf), newSize)
			copy(newbuf, p.buf)
			p.buf = newbuf
		}
		var n int
		n, p.err = p.r.Read(p.buf[len(p.buf):newSize])
		p.buf = p.buf[:len(p.buf)+n]
		if p.err != nil && p.err != io.EOF {
			p.err = fmt.Errorf("line %d: %w", p.currentLine(), p.err)
		}
	}

	line := p.buf[p.parsePos:eolEnd]
	p.parsePos = eolEnd
	return line
}

// consume returns the paragraph ending at textEnd
// and discards the buffer up to sepEnd.
func (p *Parser) consume(textEnd, sepEnd int) *Paragraph {
	para := &Paragraph{
		Text:        string(p.buf[:textEnd]),
		Separator:   string(p.buf[textEnd:sepEnd]),
		StartLine:   p.lineno,
		StartOffset: p.offset,
	}
	p.lineno += countLineBreaks(p.buf[:sepEnd])
	p.offset += int64(sepEnd)
	p.buf = p.buf[sepEnd:]
	p.parsePos = 0
	return para
}

func (p *Parser) currentLine() int {
	return p.lineno + countLineBreaks(p.buf[:p.parsePos])
}

func trimLineBreak(line []byte) []byte {
	if bytes.HasSuffix(line, []byte("\r\n")) {
		return line[:len(line)-2]
	}
	if len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		return line[:len(line)-1]
	}
	return line
}
