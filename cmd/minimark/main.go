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

// minimark converts Markdown files to HTML.
//
// Usage:
//
//	minimark [flags] [inputs...]
//
// Each input file is rendered in turn.
// If no input is provided, Markdown is read from stdin.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/version"
	"zombiezen.com/go/minimark"
	"zombiezen.com/go/minimark/internal/config"
)

const programName = "minimark"

func init() {
	version.SetDefaultModule("zombiezen.com/go/minimark")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns its exit code:
// 0 on success, 1 on a runtime failure, and 2 on a usage error.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		outPath      string
		escape       bool
		encodingName string
		configPath   string
		showVersion  bool
	)
	defaults := config.Default()
	flags := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&outPath, "output", "o", defaults.Output, "Output file instead of stdout")
	flags.BoolVar(&escape, "escape", defaults.Escape, "Escape HTML special characters in literal text")
	flags.StringVar(&encodingName, "encoding", defaults.Encoding, "Character set of the input")
	flags.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	flags.BoolVar(&showVersion, "version", false, "Print version and exit")
	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: %s [flags] [inputs...]\n", programName)
		fmt.Fprintln(stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}

	cfg, err := loadConfig(configPath, defaults)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		if errors.Is(err, config.ErrConfigNotFound) {
			return 2
		}
		return 1
	}
	if flags.Changed("output") {
		cfg.Output = outPath
	}
	if flags.Changed("escape") {
		cfg.Escape = escape
	}
	if flags.Changed("encoding") {
		cfg.Encoding = encodingName
	}
	if _, err := config.LookupEncoding(cfg.Encoding); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return 2
	}

	inputs := flags.Args()
	if len(inputs) == 0 && isTerminal(stdin) {
		flags.Usage()
		return 2
	}

	writer, closeOut, err := resolveOutput(cfg.Output, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "%s: open output: %v\n", programName, err)
		return 1
	}
	r := &minimark.HTMLRenderer{EscapeText: cfg.Escape}
	err = renderInputs(r, writer, stdin, inputs, cfg.Encoding)
	if closeOut != nil {
		if closeErr := closeOut.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return 1
	}
	return 0
}

// loadConfig reads the configuration file at path
// or returns a copy of defaults if path is empty.
func loadConfig(path string, defaults *config.Config) (*config.Config, error) {
	if path == "" {
		cfg := *defaults
		return &cfg, nil
	}
	return config.Load(path)
}

// renderInputs renders each input as a separate document.
// An empty list of inputs reads from stdin.
func renderInputs(r *minimark.HTMLRenderer, w io.Writer, stdin io.Reader, inputs []string, encodingName string) error {
	if len(inputs) == 0 {
		return renderInput(r, w, stdin, encodingName)
	}
	for _, path := range inputs {
		if err := renderFile(r, w, path, encodingName); err != nil {
			return err
		}
	}
	return nil
}

func renderFile(r *minimark.HTMLRenderer, w io.Writer, path string, encodingName string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("empty input argument")
	}
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := renderInput(r, w, f, encodingName); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func renderInput(r *minimark.HTMLRenderer, w io.Writer, src io.Reader, encodingName string) error {
	decoded, err := config.NewReader(src, encodingName)
	if err != nil {
		return err
	}
	return r.RenderReader(w, decoded)
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
