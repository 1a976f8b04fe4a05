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

package cppcheck_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Pooja0509/cppcheck"
	"github.com/Pooja0509/cppcheck/config"
	"github.com/Pooja0509/cppcheck/diagnostic"
)

func analyze(t *testing.T, src, filename string) []diagnostic.Diagnostic {
	t.Helper()
	a, err := cppcheck.New(nil, nil)
	require.NoError(t, err)
	return a.AnalyzeSource(src, filename)
}

func messages(diags []diagnostic.Diagnostic) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.Message)
	}
	return out
}

func TestAnalyzeSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "scalar read before write",
			src:  "int f() {\n\tint x;\n\treturn x;\n}\n",
			want: []string{"Uninitialized variable: x"},
		},
		{
			name: "scalar initialized at declaration",
			src:  "int f() {\n\tint x = 1;\n\treturn x;\n}\n",
		},
		{
			name: "scalar assigned before read",
			src:  "int f() {\n\tint x;\n\tx = 2;\n\treturn x;\n}\n",
		},
		{
			name: "parameters are trusted",
			src:  "int f(int a) {\n\treturn a;\n}\n",
		},
		{
			name: "write through wild pointer",
			src:  "void f() {\n\tchar *p;\n\t*p = 0;\n}\n",
			want: []string{"Uninitialized variable: p"},
		},
		{
			name: "read of allocated but unwritten memory",
			src:  "void f() {\n\tchar *p;\n\tchar c;\n\tp = malloc(10);\n\tc = *p;\n}\n",
			want: []string{"Memory is allocated but not initialized: p"},
		},
		{
			name: "strncpy may not terminate",
			src:  "void f() {\n\tchar buf[8];\n\tstrncpy(buf, \"hello\", 5);\n\tprintf(\"%s\", buf);\n}\n",
			want: []string{"Dangerous usage of 'buf' (strncpy doesn't always null-terminate it)."},
		},
		{
			name: "strncpy with room for the terminator",
			src:  "void f() {\n\tchar buf[8];\n\tstrncpy(buf, \"hi\", 8);\n\tprintf(\"%s\", buf);\n}\n",
		},
		{
			name: "both branches assign",
			src:  "int f(int a) {\n\tint x;\n\tif (a) { x = 1; } else { x = 2; }\n\treturn x;\n}\n",
		},
		{
			name: "only one branch assigns",
			src:  "int f(int a) {\n\tint x;\n\tif (a) { x = 1; }\n\treturn x;\n}\n",
			want: []string{"Uninitialized variable: x"},
		},
		{
			name: "two guarded assignments settle",
			src:  "int f(int a, int b) {\n\tint x;\n\tif (a) { x = 1; }\n\tif (b) { x = 2; }\n\treturn x;\n}\n",
		},
		{
			name: "freeing a pointer twice",
			src:  "void f() {\n\tchar *p;\n\tp = malloc(10);\n\tfree(p);\n\tfree(p);\n}\n",
			want: []string{"Uninitialized variable: p"},
		},
		{
			name: "loop condition reads before any write",
			src:  "void f() {\n\tint x;\n\twhile (x < 10) { x++; }\n}\n",
			want: []string{"Uninitialized variable: x"},
		},
		{
			name: "address taken counts as initialization",
			src:  "int f() {\n\tint x;\n\tinit(&x);\n\treturn x;\n}\n",
		},
		{
			name: "unknown function call stops tracking",
			src:  "int f() {\n\tint x;\n\tg(x);\n\treturn x;\n}\n",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := analyze(t, tt.src, "test.c")
			require.Equal(t, tt.want, messages(got))
		})
	}
}

func TestDiagnosticPosition(t *testing.T) {
	t.Parallel()

	got := analyze(t, "int f() {\n\tint x;\n\treturn x;\n}\n", "sub/dir/test.c")
	require.Len(t, got, 1)
	require.Equal(t, "sub/dir/test.c", got[0].Path)
	require.Equal(t, 3, got[0].Line)
	require.Equal(t, "uninitvar", got[0].ID)
	require.Equal(t, diagnostic.SeverityError, got[0].Severity)
}

func TestInlineSuppression(t *testing.T) {
	t.Parallel()

	src := "int f() {\n\tint x;\n\t// cppcheck-suppress uninitvar\n\treturn x;\n}\n"
	require.Empty(t, analyze(t, src, "test.c"))

	// A suppression for a different id does not mute the finding.
	src = "int f() {\n\tint x;\n\t// cppcheck-suppress uninitdata\n\treturn x;\n}\n"
	require.Len(t, analyze(t, src, "test.c"), 1)
}

func TestFileFilters(t *testing.T) {
	t.Parallel()

	conf := config.Default()
	conf.ExcludeFiles = []string{"vendor/"}
	a, err := cppcheck.New(conf, nil)
	require.NoError(t, err)

	src := "int f() {\n\tint x;\n\treturn x;\n}\n"
	require.Empty(t, a.AnalyzeSource(src, "vendor/test.c"))
	require.Len(t, a.AnalyzeSource(src, "src/test.c"), 1)
}

func TestEnabledIDs(t *testing.T) {
	t.Parallel()

	src := "int f() {\n" +
		"\tint x;\n" +
		"\treturn x;\n" +
		"}\n" +
		"void g() {\n" +
		"\tchar *p;\n" +
		"\tchar c;\n" +
		"\tp = malloc(10);\n" +
		"\tc = *p;\n" +
		"}\n"

	conf := config.Default()
	conf.EnabledIDs = []string{"uninitdata"}
	a, err := cppcheck.New(conf, nil)
	require.NoError(t, err)
	got := a.AnalyzeSource(src, "test.c")
	require.Equal(t, []string{"Memory is allocated but not initialized: p"}, messages(got))
	for _, d := range got {
		require.Equal(t, "uninitdata", d.ID)
	}
}

func TestTransparentFunctionCall(t *testing.T) {
	t.Parallel()

	src := "int same(int v) { return v; }\nvoid f() {\n\tint x;\n\tsame(x);\n}\n"

	// Sequential runs learn that same() never initializes its argument,
	// so passing an uninitialized x to it is a read.
	got := analyze(t, src, "test.c")
	require.Equal(t, []string{"Uninitialized variable: x"}, messages(got))

	// Parallel runs skip registry growth and stay silent on the call.
	conf := config.Default()
	conf.Jobs = 2
	a, err := cppcheck.New(conf, nil)
	require.NoError(t, err)
	require.Empty(t, a.AnalyzeSource(src, "test.c"))
}

func TestRegistryFileRoundTrip(t *testing.T) {
	t.Parallel()

	// First run learns same() with Jobs 1 and saves the registry.
	a, err := cppcheck.New(nil, nil)
	require.NoError(t, err)
	a.AnalyzeSource("int same(int v) { return v; }", "defs.c")
	require.True(t, a.Registry().Contains("same"))

	path := filepath.Join(t.TempDir(), "registry.bin")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, a.Registry().Save(f))
	require.NoError(t, f.Close())

	// A parallel analyzer loading that registry reports the call even
	// though it never sees the definition.
	conf := config.Default()
	conf.Jobs = 2
	conf.RegistryFile = path
	b, err := cppcheck.New(conf, nil)
	require.NoError(t, err)
	got := b.AnalyzeSource("void f() {\n\tint x;\n\tsame(x);\n}\n", "test.c")
	require.Equal(t, []string{"Uninitialized variable: x"}, messages(got))

	// A missing registry file is a setup error.
	conf.RegistryFile = filepath.Join(t.TempDir(), "missing.bin")
	_, err = cppcheck.New(conf, nil)
	require.Error(t, err)
}

func TestAnalyzeFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.c")
	require.NoError(t, os.WriteFile(path, []byte("int f() {\n\tint x;\n\treturn x;\n}\n"), 0o644))

	a, err := cppcheck.New(nil, nil)
	require.NoError(t, err)
	got, err := a.AnalyzeFile(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, path, got[0].Path)

	_, err = a.AnalyzeFile(filepath.Join(t.TempDir(), "missing.c"))
	require.Error(t, err)
}

func TestAnalyzeSourceIsDeterministic(t *testing.T) {
	t.Parallel()

	src := "int f(int a) {\n\tint x;\n\tchar *p;\n\tif (a) { x = 1; }\n\t*p = 0;\n\treturn x;\n}\n"
	a, err := cppcheck.New(nil, nil)
	require.NoError(t, err)

	first := a.AnalyzeSource(src, "test.c")
	second := a.AnalyzeSource(src, "test.c")
	require.Empty(t, cmp.Diff(first, second))
	require.NotEmpty(t, first)
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
