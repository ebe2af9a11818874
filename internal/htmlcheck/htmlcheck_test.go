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

package htmlcheck

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html/atom"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		b       string
		wantErr bool
	}{
		{"", false},
		{"plain text", false},
		{"<h1>a <strong>b <em>c</em></strong></h1>", false},
		{`<a href="x">y</a>`, false},
		{"a &lt;p&gt; b", false},
		{"<p>a</p>", true},
		{"<em>a", true},
		{"a</em>", true},
		{"<strong><em>a</strong></em>", true},
		{"<br/>", true},
		{"<!-- c -->", true},
	}
	for _, test := range tests {
		if err := Check([]byte(test.b)); (err != nil) != test.wantErr {
			t.Errorf("Check(%q) = %v; want error = %t", test.b, err, test.wantErr)
		}
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		b    string
		want string
	}{
		{"", ""},
		{"<em>a</em> b", "a b"},
		{`<a href="t">d</a>`, "d"},
		{"&lt;&amp;&#34;&#39;", `<&"'`},
		{"a\r\nb", "a\nb"},
	}
	for _, test := range tests {
		if got := Text([]byte(test.b)); string(got) != test.want {
			t.Errorf("Text(%q) = %q; want %q", test.b, got, test.want)
		}
	}
}

func TestAttr(t *testing.T) {
	b := []byte(`<a href="x">1</a> <em>2</em> <a title="t" href="y&amp;z">3</a>`)
	got := Attr(b, atom.A, "href")
	want := []string{"x", "y&z"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Attr(...) (-want +got):\n%s", diff)
	}
}
