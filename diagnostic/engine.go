//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diagnostic hosts the diagnostic engine, which collects the
// findings of the analyses and turns them into an order-stable,
// de-duplicated, suppression-filtered list for reporting.
package diagnostic

import (
	"cmp"
	"fmt"
	"slices"
)

// Severity classifies a diagnostic.
type Severity uint8

const (
	// SeverityError is a definite finding.
	SeverityError Severity = iota
	// SeverityWarning is a finding the analysis is less certain about.
	SeverityWarning
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one reported finding.
type Diagnostic struct {
	Path     string
	Line     int
	Column   int
	Severity Severity
	ID       string
	Message  string
}

// String renders the diagnostic in the usual path:line:column form.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: (%s) %s [%s]", d.Path, d.Line, d.Column, d.Severity, d.Message, d.ID)
}

// suppressKey identifies one suppressed (file, line, id) position.
type suppressKey struct {
	path string
	line int
	id   string
}

// Engine collects diagnostics for one analysis run. It is not safe for
// concurrent use; parallel runs each own an Engine and merge results.
type Engine struct {
	diags      []Diagnostic
	suppressed map[suppressKey]struct{}
}

// NewEngine creates an empty diagnostic engine.
func NewEngine() *Engine {
	return &Engine{suppressed: make(map[suppressKey]struct{})}
}

// Report adds a finding to the engine.
func (e *Engine) Report(d Diagnostic) {
	e.diags = append(e.diags, d)
}

// Suppress registers an inline suppression: diagnostics with the given
// id on the given line of the given file are dropped from the output.
func (e *Engine) Suppress(path string, line int, id string) {
	e.suppressed[suppressKey{path: path, line: line, id: id}] = struct{}{}
}

// Merge copies all findings and suppressions from another engine. The
// parallel driver runs one engine per file and merges them at the end.
func (e *Engine) Merge(other *Engine) {
	e.diags = append(e.diags, other.diags...)
	for k := range other.suppressed {
		e.suppressed[k] = struct{}{}
	}
}

// Diagnostics returns the collected findings sorted by file, position
// and id, with exact duplicates and suppressed findings removed. The
// result is deterministic for identical inputs, whatever the reporting
// order was.
func (e *Engine) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, 0, len(e.diags))
	for _, d := range e.diags {
		if _, ok := e.suppressed[suppressKey{path: d.Path, line: d.Line, id: d.ID}]; ok {
			continue
		}
		out = append(out, d)
	}

	slices.SortFunc(out, func(a, b Diagnostic) int {
		if n := cmp.Compare(a.Path, b.Path); n != 0 {
			return n
		}
		if n := cmp.Compare(a.Line, b.Line); n != 0 {
			return n
		}
		if n := cmp.Compare(a.Column, b.Column); n != 0 {
			return n
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return slices.Compact(out)
}
