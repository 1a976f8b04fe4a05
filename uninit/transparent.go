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
	"encoding/gob"
	"fmt"
	"io"

	"github.com/klauspost/compress/s2"

	"github.com/Pooja0509/cppcheck/tokenizer"
	"github.com/Pooja0509/cppcheck/util/orderedmap"
)

// _trustedFunctions are helpers assumed transparent without analysis: they read their
// arguments but never initialize them.
var _trustedFunctions = []string{
	"assert", "abs", "labs", "fabs", "isnan", "isinf", "isfinite", "signbit",
}

// Registry is the set of function names whose by-reference scalar parameters are known to
// be read-only. A call to such a function does not count as initializing the argument.
// The registry is threaded explicitly into each Checker; it is only written before the
// per-function analyses start.
type Registry struct {
	names *orderedmap.OrderedMap[string, struct{}]
}

// NewRegistry creates a registry pre-seeded with a small trusted set.
func NewRegistry() *Registry {
	r := &Registry{names: orderedmap.New[string, struct{}]()}
	for _, name := range _trustedFunctions {
		r.names.Store(name, struct{}{})
	}
	return r
}

// Contains reports whether the named function is registered as transparent.
func (r *Registry) Contains(name string) bool {
	_, ok := r.names.Load(name)
	return ok
}

// Add registers a function name as transparent.
func (r *Registry) Add(name string) {
	r.names.Store(name, struct{}{})
}

// Names returns the registered names in insertion order.
func (r *Registry) Names() []string {
	return r.names.Keys()
}

// Analyse scans all top-level function definitions in the token list and registers every
// function whose parameters are all read-only scalars. A "Type & name" parameter qualifies
// only if every occurrence in the body sits next to ++ or -- (a read in this heuristic) and
// is never written first. Functions with any other parameter shape are skipped.
func (r *Registry) Analyse(list *tokenizer.List) {
	for tok := list.Front(); tok != nil; tok = tok.Next() {
		if tok.Str() == "{" {
			if tok.Link() == nil {
				return
			}
			tok = tok.Link()
			continue
		}
		if tok.Str() == "::" || !tokenizer.Match(tok.Next(), "%var% ( %type%") {
			continue
		}
		if !tokenizer.Match(tok.LinkAt(2), ") [{;]") {
			continue
		}

		tok2 := tok.At(3)
		for tok2 != nil && tok2.Str() != ")" {
			if tok2.Str() == "," {
				tok2 = tok2.Next()
			}

			if tokenizer.Match(tok2, "%type% %var% ,|)") && tok2.IsStandardType() {
				tok2 = tok2.At(2)
				continue
			}

			if tok2.IsStandardType() && tokenizer.Match(tok2, "%type% & %var% ,|)") {
				if !paramIsReadOnly(tok2, tok2.At(2).VarID()) {
					break
				}
				tok2 = tok2.At(3)
				continue
			}

			if tokenizer.Match(tok2, "const %type% &|*| const| %var% ,|)") && tok2.Next().IsStandardType() {
				tok2 = tok2.At(3)
				for tok2 != nil && tok2.IsName() {
					tok2 = tok2.Next()
				}
				continue
			}

			if tokenizer.Match(tok2, "const %type% %var% [ ] ,|)") && tok2.Next().IsStandardType() {
				tok2 = tok2.At(5)
				continue
			}

			break
		}

		// The parameter scan consumed everything up to the closing parenthesis.
		if tok2 != nil && tok2.Link() == tok.At(2) {
			r.Add(tok.Next().Str())
		}
	}
}

// paramIsReadOnly scans the function body following a "Type & name" parameter and reports
// whether the parameter is only read. An occurrence counts as a read when it is adjacent
// to ++ or --; anything else counts as a write.
func paramIsReadOnly(tok *tokenizer.Token, varID int) bool {
	read := false
	depth := 0
	for tok3 := tok; tok3 != nil; tok3 = tok3.Next() {
		switch {
		case tok3.Str() == "{":
			depth++
		case tok3.Str() == "}":
			if depth <= 1 {
				return read
			}
			depth--
		case depth == 0 && tok3.Str() == ";":
			return read
		case depth >= 1 && tok3.VarID() == varID:
			if tok3.Prev().IsIncDec() || tok3.Next().IsIncDec() {
				read = true
			} else {
				return false
			}
		}
	}
	return read
}

// registrySnapshot is the serialized form of a Registry.
type registrySnapshot struct {
	Names []string
}

// Save writes the registry in compressed form so that independent analysis units can merge
// their partial registries later.
func (r *Registry) Save(w io.Writer) error {
	zw := s2.NewWriter(w)
	if err := gob.NewEncoder(zw).Encode(registrySnapshot{Names: r.names.Keys()}); err != nil {
		return fmt.Errorf("encode transparent function registry: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush transparent function registry: %w", err)
	}
	return nil
}

// Restore merges a previously saved registry into this one.
func (r *Registry) Restore(rd io.Reader) error {
	var snap registrySnapshot
	if err := gob.NewDecoder(s2.NewReader(rd)).Decode(&snap); err != nil {
		return fmt.Errorf("decode transparent function registry: %w", err)
	}
	for _, name := range snap.Names {
		r.Add(name)
	}
	return nil
}
