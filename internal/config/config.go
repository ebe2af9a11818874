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

// Package config loads the settings of the minimark command
// from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// MaxInputSize limits the size of a configuration file.
var MaxInputSize = 1 << 20

var (
	// ErrConfigNotFound is returned by [Load] when the file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
	// ErrConfigParse is returned when a configuration is not valid YAML,
	// has an unknown key or a value of the wrong type, or is too large.
	ErrConfigParse = errors.New("failed to parse config")
	// ErrUnknownEncoding is returned for an encoding name
	// that is not a WHATWG encoding name or label.
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// Config is the set of options read from a configuration file.
type Config struct {
	// Escape enables HTML escaping of literal text.
	Escape bool `yaml:"escape"`
	// Encoding is the WHATWG name or label of the input character set.
	Encoding string `yaml:"encoding"`
	// Output is the path of the output file.
	// An empty path means standard output.
	Output string `yaml:"output"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Encoding: "utf-8"}
}

// Load reads the configuration file at path.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a configuration from YAML.
// Unknown keys are an error.
func Parse(data []byte) (*Config, error) {
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigParse, len(data), MaxInputSize)
	}
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if _, err := LookupEncoding(cfg.Encoding); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LookupEncoding returns the encoding with the given WHATWG name or label.
// The empty string names UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		name = "utf-8"
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// NewReader returns a reader that decodes r from the named encoding to UTF-8.
// UTF-8 input is returned as-is, so invalid byte sequences pass through unchanged.
func NewReader(r io.Reader, encodingName string) (io.Reader, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
