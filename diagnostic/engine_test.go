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

package diagnostic_test

import (
	"testing"

	"github.com/Pooja0509/cppcheck/diagnostic"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestDiagnosticString(t *testing.T) {
	t.Parallel()

	d := diagnostic.Diagnostic{
		Path:     "a.c",
		Line:     3,
		Column:   9,
		Severity: diagnostic.SeverityError,
		ID:       "uninitvar",
		Message:  "Uninitialized variable: x",
	}
	require.Equal(t, "a.c:3:9: (error) Uninitialized variable: x [uninitvar]", d.String())
	require.Equal(t, "warning", diagnostic.SeverityWarning.String())
}

func TestDiagnosticsSortedAndDeduplicated(t *testing.T) {
	t.Parallel()

	e := diagnostic.NewEngine()
	d1 := diagnostic.Diagnostic{Path: "b.c", Line: 2, Column: 1, ID: "uninitvar", Message: "Uninitialized variable: y"}
	d2 := diagnostic.Diagnostic{Path: "a.c", Line: 5, Column: 1, ID: "uninitvar", Message: "Uninitialized variable: x"}
	d3 := diagnostic.Diagnostic{Path: "a.c", Line: 2, Column: 7, ID: "uninitdata", Message: "Memory is allocated but not initialized: p"}

	// Report out of order, with one exact duplicate.
	e.Report(d1)
	e.Report(d2)
	e.Report(d3)
	e.Report(d2)

	require.Equal(t, []diagnostic.Diagnostic{d3, d2, d1}, e.Diagnostics())
}

func TestDuplicatesWithDifferentMessagesKept(t *testing.T) {
	t.Parallel()

	e := diagnostic.NewEngine()
	d1 := diagnostic.Diagnostic{Path: "a.c", Line: 1, Column: 1, ID: "uninitvar", Message: "Uninitialized variable: x"}
	d2 := d1
	d2.Message = "Uninitialized variable: y"
	e.Report(d1)
	e.Report(d2)
	require.Len(t, e.Diagnostics(), 2)
}

func TestSuppress(t *testing.T) {
	t.Parallel()

	e := diagnostic.NewEngine()
	e.Suppress("a.c", 3, "uninitvar")
	e.Report(diagnostic.Diagnostic{Path: "a.c", Line: 3, Column: 1, ID: "uninitvar"})
	e.Report(diagnostic.Diagnostic{Path: "a.c", Line: 3, Column: 1, ID: "uninitdata"})
	e.Report(diagnostic.Diagnostic{Path: "a.c", Line: 4, Column: 1, ID: "uninitvar"})

	got := e.Diagnostics()
	require.Len(t, got, 2)
	require.Equal(t, "uninitdata", got[0].ID)
	require.Equal(t, 4, got[1].Line)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	a := diagnostic.NewEngine()
	a.Report(diagnostic.Diagnostic{Path: "a.c", Line: 1, ID: "uninitvar"})

	b := diagnostic.NewEngine()
	b.Report(diagnostic.Diagnostic{Path: "b.c", Line: 9, ID: "uninitvar"})
	b.Suppress("a.c", 1, "uninitvar")

	a.Merge(b)
	got := a.Diagnostics()
	require.Len(t, got, 1)
	require.Equal(t, "b.c", got[0].Path)
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
