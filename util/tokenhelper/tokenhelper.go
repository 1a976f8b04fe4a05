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

// Package tokenhelper hosts helper functions around token positions and file path
// formatting for reported diagnostics.
package tokenhelper

import (
	"fmt"
	"os"
	"path/filepath"
)

var _cwd = func() string {
	cwd, err := os.Getwd()
	if err != nil {
		panic("failed to get current working directory: " + err.Error())
	}
	return cwd
}()

// RelToCwd returns the relative path of the given filename with respect to the current
// working directory (retrieved during initialization). If the filename cannot be made
// relative, it returns the filename itself.
func RelToCwd(filename string) string {
	rel, err := filepath.Rel(_cwd, filename)
	if err != nil {
		return filename
	}
	return rel
}

// Pos formats a file position the way compilers print them, with the file path made
// relative to the current working directory.
func Pos(file string, line, column int) string {
	return fmt.Sprintf("%s:%d:%d", RelToCwd(file), line, column)
}
