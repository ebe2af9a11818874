// Copyright 2024 Ross Light
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

// Package format provides functions to write a resolved Markdown tree
// back out as Markdown source.
package format

import (
	"io"

	"zombiezen.com/go/minimark"
)

// Format writes the given paragraph nodes as Markdown to the given writer.
// source must be the paragraph text the nodes were resolved from.
// Markers that resolved to tags are written in their canonical form
// and escapes keep their backslash,
// so formatting the result of [minimark.ParseParagraph]
// reproduces the paragraph exactly.
func Format(w io.Writer, source string, nodes []*minimark.Node) error {
	ww := &errWriter{w: w}
	minimark.Walk(nodes, &minimark.WalkOptions{
		Pre: func(c *minimark.Cursor) bool {
			return pre(ww, source, c.Node())
		},
		Post: func(c *minimark.Cursor) bool {
			post(ww, c.Node())
			return ww.err == nil
		},
	})
	return ww.err
}

// FormatDocument splits text into paragraphs,
// resolves each paragraph,
// and writes it back as Markdown.
func FormatDocument(w io.Writer, text string) error {
	ww := &errWriter{w: w}
	for _, para := range minimark.SplitParagraphs(text) {
		if err := Format(ww, para.Text, minimark.ParseParagraph(para.Text)); err != nil {
			return err
		}
		ww.WriteString(para.Separator)
	}
	return ww.err
}

func pre(w *errWriter, source string, n *minimark.Node) bool {
	switch n.Kind() {
	case minimark.TextKind:
		w.WriteString(n.Text(source))
	case minimark.EscapeKind:
		w.WriteString(`\`)
		w.WriteString(n.Text(source))
	case minimark.HeaderKind:
		w.WriteString("# ")
	case minimark.StrongKind:
		w.WriteString("__")
	case minimark.EmphasisKind:
		w.WriteString("_")
	case minimark.LinkKind:
		w.WriteString("[")
		w.WriteString(n.Span().Slice(source))
		w.WriteString("](")
		w.WriteString(n.LinkTarget().Slice(source))
		w.WriteString(")")
		return false
	}
	return w.err == nil
}

func post(w *errWriter, n *minimark.Node) {
	switch n.Kind() {
	case minimark.StrongKind:
		w.WriteString("__")
	case minimark.EmphasisKind:
		w.WriteString("_")
	}
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = w.w.Write(p)
	return n, w.err
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	return n, w.err
}
