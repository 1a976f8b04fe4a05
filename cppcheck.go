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

// Package cppcheck implements the top-level analyzer that runs the
// uninitialized-variable checks over C/C++ sources: it tokenizes a translation unit,
// resolves its declarations, and hands the result to the checks, collecting their
// findings per file.
package cppcheck

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Pooja0509/cppcheck/config"
	"github.com/Pooja0509/cppcheck/diagnostic"
	"github.com/Pooja0509/cppcheck/symtab"
	"github.com/Pooja0509/cppcheck/tokenizer"
	"github.com/Pooja0509/cppcheck/uninit"
)

// Analyzer coordinates the whole pipeline. One Analyzer serves many files; the
// transparent-function registry it carries accumulates across them when files are
// analyzed sequentially.
type Analyzer struct {
	conf     *config.Config
	logger   *zap.Logger
	registry *uninit.Registry
}

// New creates an analyzer for the given configuration. A nil configuration uses the
// defaults, a nil logger disables debug output.
func New(conf *config.Config, logger *zap.Logger) (*Analyzer, error) {
	if conf == nil {
		conf = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := uninit.NewRegistry()
	if conf.RegistryFile != "" {
		f, err := os.Open(conf.RegistryFile)
		if err != nil {
			return nil, fmt.Errorf("open registry %q: %w", conf.RegistryFile, err)
		}
		defer f.Close()
		if err := registry.Restore(f); err != nil {
			return nil, fmt.Errorf("restore registry %q: %w", conf.RegistryFile, err)
		}
	}

	return &Analyzer{conf: conf, logger: logger, registry: registry}, nil
}

// Registry exposes the transparent-function registry, for saving it after a run.
func (a *Analyzer) Registry() *uninit.Registry { return a.registry }

// AnalyzeFile runs the checks over one source file.
func (a *Analyzer) AnalyzeFile(path string) ([]diagnostic.Diagnostic, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return a.AnalyzeSource(string(source), path), nil
}

// AnalyzeSource runs the checks over one preprocessed source buffer. The returned
// diagnostics are sorted, deduplicated and already filtered by the inline suppression
// comments and the configured file filters.
func (a *Analyzer) AnalyzeSource(source, filename string) []diagnostic.Diagnostic {
	list := tokenizer.Tokenize(source, filename)
	db := symtab.Build(list)

	// Registry growth is only race-free when files are analyzed one at a time.
	if a.conf.Jobs == 1 {
		a.registry.Analyse(list)
		a.logger.Debug("transparent registry populated",
			zap.String("file", filename), zap.Int("functions", len(a.registry.Names())))
	}

	engine := diagnostic.NewEngine()
	for _, s := range list.Suppressions() {
		engine.Suppress(list.File(), s.Line, s.ID)
	}

	uninit.NewChecker(list, db, a.conf, a.registry, engine, a.logger).Check()

	if !a.conf.ReportFile(filename) {
		return nil
	}
	diags := engine.Diagnostics()
	if len(a.conf.EnabledIDs) > 0 {
		kept := diags[:0]
		for _, d := range diags {
			if a.conf.ReportID(d.ID) {
				kept = append(kept, d)
			}
		}
		diags = kept
	}
	return diags
}
