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

// Package config hosts the user-facing configuration of the analyzer as well as the fixed
// analysis policy constants. Configuration is threaded explicitly through the analyses; no
// package in this module reads configuration from globals.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the user-facing knobs of an analysis run.
type Config struct {
	// Jobs is the number of files analyzed concurrently. Cross-file function knowledge
	// (the transparent helper registry) is only accumulated when Jobs is 1, since the
	// registry is keyed by unqualified function names and fills in source order.
	Jobs int `yaml:"jobs"`

	// Debug enables verbose logging of walker and tracker decisions.
	Debug bool `yaml:"debug"`

	// IncludeFiles restricts reported diagnostics to files whose path contains one of
	// these strings. Empty means no restriction.
	IncludeFiles []string `yaml:"include-files"`

	// ExcludeFiles drops diagnostics for files whose path contains one of these strings.
	ExcludeFiles []string `yaml:"exclude-files"`

	// EnabledIDs restricts reporting to the listed diagnostic ids, for example
	// "uninitvar". Empty enables every id.
	EnabledIDs []string `yaml:"enable"`

	// RegistryFile, if set, is a saved transparent helper registry to load before
	// analysis and to update after it.
	RegistryFile string `yaml:"registry-file"`
}

// Default returns the configuration used when no config file or flags are given.
func Default() *Config {
	return &Config{Jobs: DefaultJobs}
}

// Load reads a YAML configuration file and returns the parsed configuration, with
// defaults applied for fields the file leaves unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}
	conf := Default()
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}
	if conf.Jobs < 1 {
		conf.Jobs = DefaultJobs
	}
	return conf, nil
}

// ReportFile returns whether diagnostics for the given file path should be reported,
// honoring the include and exclude lists.
func (c *Config) ReportFile(path string) bool {
	for _, s := range c.ExcludeFiles {
		if s != "" && strings.Contains(path, s) {
			return false
		}
	}
	if len(c.IncludeFiles) == 0 {
		return true
	}
	for _, s := range c.IncludeFiles {
		if s != "" && strings.Contains(path, s) {
			return true
		}
	}
	return false
}

// ReportID returns whether diagnostics with the given id should be reported.
func (c *Config) ReportID(id string) bool {
	if len(c.EnabledIDs) == 0 {
		return true
	}
	for _, s := range c.EnabledIDs {
		if s == id {
			return true
		}
	}
	return false
}
