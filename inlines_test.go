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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestEmphasisFlags(t *testing.T) {
	tests := []struct {
		prefix string
		run    string
		suffix string
		want   uint8
	}{
		{"", "_", "abc", openerFlag},
		{"  ", "__", "abc", openerFlag},
		{" abc", "_", "", closerFlag},
		{"abc", "__", " ", closerFlag},
		{"abc", "_", "def", openerFlag | closerFlag},
		{"a ", "_", " b", 0},
		{"", "__", "", 0},
		{"a\t", "__", "\nb", 0},
		{"é", "_", "é", openerFlag | closerFlag},
		{"a ", "_", "　b", 0},
		{"1", "_", "2", openerFlag | closerFlag},
	}
	for _, test := range tests {
		source := test.prefix + test.run + test.suffix
		span := Span{
			Start: len(test.prefix),
			End:   len(test.prefix) + len(test.run),
		}
		got := emphasisFlags(source, span)
		if got != test.want {
			t.Errorf("emphasisFlags(%q, %v) = %#03b; want %#03b", source, span, got, test.want)
		}
	}
}

// treeNode is a comparable rendition of a [Node].
type treeNode struct {
	Kind     NodeKind
	Text     string
	Target   string
	Children []treeNode
}

func dumpTree(source string, nodes []*Node) []treeNode {
	var result []treeNode
	for _, n := range nodes {
		tn := treeNode{Kind: n.Kind()}
		switch n.Kind() {
		case TextKind, EscapeKind:
			tn.Text = n.Text(source)
		case LinkKind:
			tn.Target = n.LinkTarget().Slice(source)
		}
		children := make([]*Node, 0, n.ChildCount())
		for i := 0; i < n.ChildCount(); i++ {
			children = append(children, n.Child(i))
		}
		tn.Children = dumpTree(source, children)
		result = append(result, tn)
	}
	return result
}

func text(s string) treeNode {
	return treeNode{Kind: TextKind, Text: s}
}

func TestParseParagraph(t *testing.T) {
	tests := []struct {
		name      string
		paragraph string
		want      []treeNode
	}{
		{
			name:      "Empty",
			paragraph: "",
			want:      nil,
		},
		{
			name:      "Plain",
			paragraph: "Hello, World!",
			want:      []treeNode{text("Hello, World!")},
		},
		{
			name:      "Nested",
			paragraph: "__a _b_ c__",
			want: []treeNode{{
				Kind: StrongKind,
				Children: []treeNode{
					text("a "),
					{Kind: EmphasisKind, Children: []treeNode{text("b")}},
					text(" c"),
				},
			}},
		},
		{
			name:      "Header",
			paragraph: "# x _y_",
			want: []treeNode{{
				Kind: HeaderKind,
				Children: []treeNode{
					text("x "),
					{Kind: EmphasisKind, Children: []treeNode{text("y")}},
				},
			}},
		},
		{
			name:      "EmptyHeader",
			paragraph: "# ",
			want:      []treeNode{{Kind: HeaderKind}},
		},
		{
			name:      "Link",
			paragraph: "see [docs](http://x/__y__)",
			want: []treeNode{
				text("see "),
				{Kind: LinkKind, Target: "http://x/__y__", Children: []treeNode{text("docs")}},
			},
		},
		{
			name:      "EmptyLink",
			paragraph: "[]()",
			want:      []treeNode{{Kind: LinkKind}},
		},
		{
			name:      "Escapes",
			paragraph: `\__a\_`,
			want: []treeNode{
				{Kind: EscapeKind, Text: "__"},
				text("a"),
				{Kind: EscapeKind, Text: "_"},
			},
		},
		{
			name:      "EmptyPairs",
			paragraph: "____",
			want:      []treeNode{text("__"), text("__")},
		},
		{
			name:      "Crossing",
			paragraph: "__a _b__ c_",
			want: []treeNode{
				text("__"), text("a "), text("_"), text("b"),
				text("__"), text(" c"), text("_"),
			},
		},
		{
			name:      "StrongInEmphasis",
			paragraph: "_a __b__ c_",
			want: []treeNode{{
				Kind: EmphasisKind,
				Children: []treeNode{
					text("a "), text("__"), text("b"), text("__"), text(" c"),
				},
			}},
		},
		{
			name:      "SameKindNesting",
			paragraph: "__a __b__ c__",
			want: []treeNode{{
				Kind: StrongKind,
				Children: []treeNode{
					text("a "),
					{Kind: StrongKind, Children: []treeNode{text("b")}},
					text(" c"),
				},
			}},
		},
		{
			name:      "SpacedIntrawordOpener",
			paragraph: "_x a_b c_",
			want: []treeNode{{
				Kind:     EmphasisKind,
				Children: []treeNode{text("x a"), text("_"), text("b c")},
			}},
		},
		{
			name:      "DigitInOtherWord",
			paragraph: "1 _a_",
			want: []treeNode{
				text("1 "),
				{Kind: EmphasisKind, Children: []treeNode{text("a")}},
			},
		},
		{
			name:      "DigitInsideLinkIgnored",
			paragraph: "_a[b](1)_",
			want: []treeNode{{
				Kind: EmphasisKind,
				Children: []treeNode{
					text("a"),
					{Kind: LinkKind, Target: "1", Children: []treeNode{text("b")}},
				},
			}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := dumpTree(test.paragraph, ParseParagraph(test.paragraph))
			if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ParseParagraph(%q) (-want +got):\n%s", test.paragraph, diff)
			}
		})
	}
}

func TestNodeSpans(t *testing.T) {
	const paragraph = "# a [b](c) __d__"
	nodes := ParseParagraph(paragraph)
	Walk(nodes, &WalkOptions{
		Pre: func(c *Cursor) bool {
			n := c.Node()
			parent := c.Parent()
			if parent == nil {
				return true
			}
			if n.Start() < parent.Start() || n.End() > parent.End() {
				t.Errorf("%v node span %v exceeds parent %v span %v", n.Kind(), n.Span(), parent.Kind(), parent.Span())
			}
			return true
		},
	})
	header := nodes[0]
	if got, want := header.Span(), (Span{Start: 2, End: len(paragraph)}); got != want {
		t.Errorf("header.Span() = %v; want %v", got, want)
	}
	link := header.Child(1)
	if got, want := link.Span(), (Span{Start: 5, End: 6}); got != want {
		t.Errorf("link.Span() = %v; want %v", got, want)
	}
	if got, want := link.LinkTarget(), (Span{Start: 8, End: 9}); got != want {
		t.Errorf("link.LinkTarget() = %v; want %v", got, want)
	}
	if got := header.LinkTarget(); got.IsValid() {
		t.Errorf("header.LinkTarget() = %v; want invalid", got)
	}
}

func TestResolvePanicsOnGap(t *testing.T) {
	tests := []struct {
		name      string
		paragraph string
		tokens    []Token
	}{
		{
			name:      "Gap",
			paragraph: "ab",
			tokens:    []Token{{Kind: PlainTextToken, Text: "a", Start: 0, End: 1}},
		},
		{
			name:      "Overlap",
			paragraph: "ab",
			tokens: []Token{
				{Kind: PlainTextToken, Text: "ab", Start: 0, End: 2},
				{Kind: PlainTextToken, Text: "b", Start: 1, End: 2},
			},
		},
		{
			name:      "IncompleteLink",
			paragraph: "[a",
			tokens: []Token{
				{Kind: LinkOpenToken, Text: "[", Start: 0, End: 1},
				{Kind: PlainTextToken, Text: "a", Start: 1, End: 2},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Resolve did not panic")
				}
			}()
			Resolve(test.paragraph, test.tokens)
		})
	}
}
