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

//go:generate stringer -type=NodeKind -output=node_string.go

package minimark

// Node is an element of a resolved paragraph tree:
// either a leaf holding literal text
// or a container wrapping other nodes.
// Containers exclusively own their children
// and nodes hold no reference to their parent.
type Node struct {
	kind     NodeKind
	start    int
	end      int
	target   Span
	children []*Node
}

// Kind returns the type of node
// or zero if the node is nil.
func (n *Node) Kind() NodeKind {
	if n == nil {
		return 0
	}
	return n.kind
}

// Start returns the offset in the paragraph where the node's content starts,
// or -1 if the node is nil.
// For containers, this is just past the opening marker.
func (n *Node) Start() int {
	if n == nil {
		return -1
	}
	return n.start
}

// End returns the offset in the paragraph where the node's content ends (exclusive),
// or -1 if the node is nil.
func (n *Node) End() int {
	if n == nil {
		return -1
	}
	return n.end
}

// Span returns the node's content span
// or an invalid span if the node is nil.
func (n *Node) Span() Span {
	if n == nil {
		return NullSpan()
	}
	return Span{Start: n.start, End: n.end}
}

// LinkTarget returns the span of a [LinkKind] node's target
// or an invalid span for any other node.
func (n *Node) LinkTarget() Span {
	if n.Kind() != LinkKind {
		return NullSpan()
	}
	return n.target
}

// Text returns the literal text of a leaf node.
// Escape leaves return the escaped characters without the backslash.
// Text returns the empty string for containers.
func (n *Node) Text(source string) string {
	switch n.Kind() {
	case TextKind, EscapeKind:
		return source[n.start:n.end]
	default:
		return ""
	}
}

// ChildCount returns the number of children the node has.
// Calling ChildCount on nil returns 0.
func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// Child returns the i'th child of the node.
func (n *Node) Child(i int) *Node {
	return n.children[i]
}

// NodeKind is an enumeration of values returned by [*Node.Kind].
type NodeKind uint8

const (
	// TextKind is a leaf of literal source text,
	// including markers that did not resolve to a tag.
	TextKind NodeKind = 1 + iota
	// EscapeKind is a leaf whose span covers the escaped characters.
	EscapeKind
	HeaderKind
	StrongKind
	EmphasisKind
	// LinkKind is a container whose span covers the description.
	// Its target is available from [*Node.LinkTarget].
	LinkKind
)

// IsContainer reports whether nodes of the kind have children.
func (kind NodeKind) IsContainer() bool {
	return kind == HeaderKind || kind == StrongKind || kind == EmphasisKind || kind == LinkKind
}
