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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Pooja0509/cppcheck/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	conf := config.Default()
	require.Equal(t, config.DefaultJobs, conf.Jobs)
	require.False(t, conf.Debug)
	require.Empty(t, conf.IncludeFiles)
	require.Empty(t, conf.ExcludeFiles)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
jobs: 4
debug: true
include-files:
  - src/
exclude-files:
  - vendor/
enable:
  - uninitvar
registry-file: registry.bin
`)
	conf, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, conf.Jobs)
	require.True(t, conf.Debug)
	require.Equal(t, []string{"src/"}, conf.IncludeFiles)
	require.Equal(t, []string{"vendor/"}, conf.ExcludeFiles)
	require.Equal(t, []string{"uninitvar"}, conf.EnabledIDs)
	require.Equal(t, "registry.bin", conf.RegistryFile)
}

func TestLoadDefaultsForUnsetFields(t *testing.T) {
	t.Parallel()

	conf, err := config.Load(writeConfig(t, "debug: true\n"))
	require.NoError(t, err)
	require.Equal(t, config.DefaultJobs, conf.Jobs)
	require.True(t, conf.Debug)
}

func TestLoadClampsJobs(t *testing.T) {
	t.Parallel()

	conf, err := config.Load(writeConfig(t, "jobs: 0\n"))
	require.NoError(t, err)
	require.Equal(t, config.DefaultJobs, conf.Jobs)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = config.Load(writeConfig(t, "jobs: [not a number\n"))
	require.Error(t, err)
}

func TestReportFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		include, exclude []string
		path             string
		want             bool
	}{
		{name: "no filters", path: "a.c", want: true},
		{name: "include match", include: []string{"src/"}, path: "src/a.c", want: true},
		{name: "include miss", include: []string{"src/"}, path: "lib/a.c", want: false},
		{name: "exclude match", exclude: []string{"vendor/"}, path: "vendor/a.c", want: false},
		{name: "exclude wins over include", include: []string{"a.c"}, exclude: []string{"vendor/"}, path: "vendor/a.c", want: false},
		{name: "blank include entry matches nothing", include: []string{""}, exclude: []string{""}, path: "a.c", want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			conf := config.Default()
			conf.IncludeFiles = tt.include
			conf.ExcludeFiles = tt.exclude
			require.Equal(t, tt.want, conf.ReportFile(tt.path))
		})
	}
}

func TestReportID(t *testing.T) {
	t.Parallel()

	conf := config.Default()
	require.True(t, conf.ReportID("uninitvar"))

	conf.EnabledIDs = []string{"uninitvar", "uninitstring"}
	require.True(t, conf.ReportID("uninitvar"))
	require.True(t, conf.ReportID("uninitstring"))
	require.False(t, conf.ReportID("uninitdata"))
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
