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

package uninit

import (
	"github.com/Pooja0509/cppcheck/diagnostic"
	"github.com/Pooja0509/cppcheck/tokenizer"
)

// Error ids exposed by this check. Inline suppression comments refer to these.
const (
	ErrUninitVar    = "uninitvar"
	ErrUninitData   = "uninitdata"
	ErrUninitString = "uninitstring"
)

func (c *Checker) report(tok *tokenizer.Token, id, message string) {
	c.engine.Report(diagnostic.Diagnostic{
		Path:     tok.File(),
		Line:     tok.Line(),
		Column:   tok.Column(),
		Severity: diagnostic.SeverityError,
		ID:       id,
		Message:  message,
	})
}

// uninitVarError reports a read of a variable before any write reaches it.
func (c *Checker) uninitVarError(tok *tokenizer.Token, varname string) {
	c.report(tok, ErrUninitVar, "Uninitialized variable: "+varname)
}

// uninitDataError reports a read through an allocated pointer whose pointee
// was never written.
func (c *Checker) uninitDataError(tok *tokenizer.Token, varname string) {
	c.report(tok, ErrUninitData, "Memory is allocated but not initialized: "+varname)
}

// uninitStringError reports use of a buffer that may lack null termination.
func (c *Checker) uninitStringError(tok *tokenizer.Token, varname string, strncpy bool) {
	suffix := " (not null-terminated)."
	if strncpy {
		suffix = " (strncpy doesn't always null-terminate it)."
	}
	c.report(tok, ErrUninitString, "Dangerous usage of '"+varname+"'"+suffix)
}
