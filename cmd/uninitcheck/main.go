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

// main package builds the standalone command line checker. It analyzes the C/C++ files
// given as arguments and prints one finding per line; the exit status is 1 when any
// finding was reported.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Pooja0509/cppcheck"
	"github.com/Pooja0509/cppcheck/config"
	"github.com/Pooja0509/cppcheck/diagnostic"
	"github.com/Pooja0509/cppcheck/util/tokenhelper"
)

var (
	_configFile   = flag.String("config", "", "Path to a YAML configuration file.")
	_jobs         = flag.Int("j", 0, "Number of files analyzed concurrently. Values above 1 disable cross-file function knowledge.")
	_debug        = flag.Bool("debug", false, "Enable verbose logging of analysis decisions.")
	_includeFiles = flag.String("include-errors-in-files", "", "A comma-separated list of path substrings to report errors in. Empty reports everywhere.")
	_excludeFiles = flag.String("exclude-errors-in-files", "", "A comma-separated list of path substrings to exclude from error reporting. This takes precedence over include-errors-in-files.")
	_enable       = flag.String("enable", "", "A comma-separated list of diagnostic ids to report. Empty reports all ids.")
	_registry     = flag.String("registry", "", "Path to a saved transparent helper registry to load before analysis.")
	_saveRegistry = flag.String("save-registry", "", "Path to save the transparent helper registry to after analysis.")
)

func main() {
	flag.Parse()
	os.Exit(run(flag.Args()))
}

func run(files []string) int {
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: uninitcheck [flags] file.c ...")
		return 2
	}

	conf, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger := zap.NewNop()
	if conf.Debug {
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
			return 2
		}
		defer func() { _ = logger.Sync() }()
	}

	analyzer, err := cppcheck.New(conf, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	// Per-file results keep argument order in the output regardless of which file
	// finishes first.
	results := make([][]diagnostic.Diagnostic, len(files))
	var group errgroup.Group
	group.SetLimit(conf.Jobs)
	var mu sync.Mutex
	for i, path := range files {
		i, path := i, path
		group.Go(func() error {
			diags, err := analyzer.AnalyzeFile(path)
			if err != nil {
				return err
			}
			mu.Lock()
			results[i] = diags
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	found := false
	for _, diags := range results {
		for _, d := range diags {
			found = true
			fmt.Printf("%s: (%s) %s [%s]\n", tokenhelper.Pos(d.Path, d.Line, d.Column), d.Severity, d.Message, d.ID)
		}
	}

	if *_saveRegistry != "" {
		if err := saveRegistry(analyzer, *_saveRegistry); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
	}

	if found {
		return 1
	}
	return 0
}

// loadConfig merges the config file with the command line flags; flags win.
func loadConfig() (*config.Config, error) {
	conf := config.Default()
	if *_configFile != "" {
		var err error
		if conf, err = config.Load(*_configFile); err != nil {
			return nil, err
		}
	}
	if *_jobs > 0 {
		conf.Jobs = *_jobs
	}
	if *_debug {
		conf.Debug = true
	}
	if *_includeFiles != "" {
		conf.IncludeFiles = splitList(*_includeFiles)
	}
	if *_excludeFiles != "" {
		conf.ExcludeFiles = splitList(*_excludeFiles)
	}
	if *_enable != "" {
		conf.EnabledIDs = splitList(*_enable)
	}
	if *_registry != "" {
		conf.RegistryFile = *_registry
	}
	return conf, nil
}

func saveRegistry(analyzer *cppcheck.Analyzer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create registry %q: %w", path, err)
	}
	if err := analyzer.Registry().Save(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("save registry %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save registry %q: %w", path, err)
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
