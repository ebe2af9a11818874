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

import "fmt"

// Span is a contiguous region of a paragraph's source,
// expressed as byte offsets.
type Span struct {
	Start int
	End   int
}

// NullSpan returns an invalid span.
func NullSpan() Span {
	return Span{-1, -1}
}

// IsValid reports whether the span is non-negative and ordered.
func (span Span) IsValid() bool {
	return span.Start >= 0 && span.End >= span.Start
}

// Len returns the number of bytes in the span
// or zero if the span is invalid.
func (span Span) Len() int {
	if !span.IsValid() {
		return 0
	}
	return span.End - span.Start
}

// Slice returns the portion of source the span covers.
func (span Span) Slice(source string) string {
	return source[span.Start:span.End]
}

// String formats the span as a half-open interval.
func (span Span) String() string {
	if !span.IsValid() {
		return "[invalid]"
	}
	return fmt.Sprintf("[%d,%d)", span.Start, span.End)
}
