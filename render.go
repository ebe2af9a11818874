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
	"io"
)

// Render converts Markdown text to HTML
// using the default options for [HTMLRenderer].
// Every string is valid input:
// markers that do not form a valid tag are copied as literal text.
func Render(text string) string {
	return (*HTMLRenderer)(nil).Render(text)
}

// RenderHTML writes the HTML rendering of text to w
// using the default options for [HTMLRenderer].
func RenderHTML(w io.Writer, text string) error {
	if _, err := w.Write((*HTMLRenderer)(nil).AppendHTML(nil, text)); err != nil {
		return fmt.Errorf("render markdown to html: %w", err)
	}
	return nil
}

// Render converts Markdown text to HTML.
// A nil renderer uses the default options.
func (r *HTMLRenderer) Render(text string) string {
	return string(r.AppendHTML(make([]byte, 0, len(text)+len(text)/8), text))
}

// AppendHTML appends the HTML rendering of text to dst
// and returns the resulting byte slice.
// Paragraph separators are copied unchanged.
// A nil renderer uses the default options.
func (r *HTMLRenderer) AppendHTML(dst []byte, text string) []byte {
	if r == nil {
		r = new(HTMLRenderer)
	}
	for _, para := range SplitParagraphs(text) {
		dst = r.AppendParagraph(dst, para.Text, ParseParagraph(para.Text))
		dst = append(dst, para.Separator...)
	}
	return dst
}

// RenderReader reads Markdown from src one paragraph at a time
// and writes the HTML rendering to w.
// It will return the first error encountered, if any.
// A nil renderer uses the default options.
func (r *HTMLRenderer) RenderReader(w io.Writer, src io.Reader) error {
	if r == nil {
		r = new(HTMLRenderer)
	}
	p := NewParser(src)
	var buf []byte
	for {
		para, err := p.NextParagraph()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read markdown: %w", err)
		}
		buf = r.AppendParagraph(buf[:0], para.Text, ParseParagraph(para.Text))
		buf = append(buf, para.Separator...)
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("render markdown to html: %w", err)
		}
	}
}
