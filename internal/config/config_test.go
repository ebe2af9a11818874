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

package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    *Config
		wantErr error
	}{
		{
			name: "Empty",
			data: "",
			want: &Config{Encoding: "utf-8"},
		},
		{
			name: "Full",
			data: "escape: true\nencoding: windows-1252\noutput: out.html\n",
			want: &Config{Escape: true, Encoding: "windows-1252", Output: "out.html"},
		},
		{
			name: "Partial",
			data: "output: out.html\n",
			want: &Config{Encoding: "utf-8", Output: "out.html"},
		},
		{
			name:    "UnknownKey",
			data:    "escape: true\ncolor: blue\n",
			wantErr: ErrConfigParse,
		},
		{
			name:    "WrongType",
			data:    "escape: [1, 2]\n",
			wantErr: ErrConfigParse,
		},
		{
			name:    "Syntax",
			data:    "output: [unclosed\n",
			wantErr: ErrConfigParse,
		},
		{
			name:    "UnknownEncoding",
			data:    "encoding: klingon\n",
			wantErr: ErrUnknownEncoding,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Parse([]byte(test.data))
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Errorf("Parse(%q) error = %v; want %v", test.data, err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", test.data, err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Parse(%q) (-want +got):\n%s", test.data, diff)
			}
		})
	}
}

func TestParseTooLarge(t *testing.T) {
	data := []byte("output: " + strings.Repeat("x", MaxInputSize))
	if _, err := Parse(data); !errors.Is(err, ErrConfigParse) {
		t.Errorf("Parse(<%d bytes>) error = %v; want %v", len(data), err, ErrConfigParse)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("Found", func(t *testing.T) {
		path := filepath.Join(dir, "minimark.yaml")
		if err := os.WriteFile(path, []byte("escape: true\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatal("Load:", err)
		}
		want := &Config{Escape: true, Encoding: "utf-8"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Load(%q) (-want +got):\n%s", path, diff)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		path := filepath.Join(dir, "missing.yaml")
		if _, err := Load(path); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Load(%q) error = %v; want %v", path, err, ErrConfigNotFound)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.yaml")
		if err := os.WriteFile(path, []byte("bogus: 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("Load(%q) error = %v; want %v", path, err, ErrConfigParse)
		}
		if err != nil && !strings.Contains(err.Error(), path) {
			t.Errorf("Load(%q) error = %q; want it to mention the path", path, err)
		}
	})
}

func TestNewReader(t *testing.T) {
	tests := []struct {
		name     string
		encoding string
		input    string
		want     string
	}{
		{
			name:  "Default",
			input: "caf\xc3\xa9 \xff",
			want:  "caf\xc3\xa9 \xff",
		},
		{
			name:     "UTF8Label",
			encoding: "utf8",
			input:    "\xff",
			want:     "\xff",
		},
		{
			name:     "Windows1252",
			encoding: "windows-1252",
			input:    "caf\xe9",
			want:     "café",
		},
		{
			name:     "Latin1Label",
			encoding: "latin1",
			input:    "\xabhi\xbb",
			want:     "«hi»",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r, err := NewReader(strings.NewReader(test.input), test.encoding)
			if err != nil {
				t.Fatal("NewReader:", err)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatal("ReadAll:", err)
			}
			if diff := cmp.Diff(test.want, string(got)); diff != "" {
				t.Errorf("decoded (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := NewReader(strings.NewReader(""), "klingon"); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("NewReader(..., %q) error = %v; want %v", "klingon", err, ErrUnknownEncoding)
	}
}
