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

package config

// This file hosts non-user-configurable parameters --- these are for development and testing purposes only.

// PartialInitSettleLimit is the number of partially initializing if statements (without an
// else branch) after which the scalar scope walker stops tracking a variable. A chain of
// single-branch conditionals that each assign the variable usually encodes a state machine
// the linear walk cannot follow, and reporting past that point produces mostly noise.
// Setting this value too low loses true positives after a single guarded assignment, while
// setting it too high makes the walker claim certainty it does not have. A limit of 2 has
// shown a good balance between recall and false positives on real code bases.
const PartialInitSettleLimit = 2

// SuppressCommentPrefix is the inline comment prefix that suppresses a finding on the
// following line, e.g. "// cppcheck-suppress uninitvar".
const SuppressCommentPrefix = "cppcheck-suppress"

// DefaultJobs is the number of files analyzed concurrently when the user does not pass -j.
const DefaultJobs = 1
