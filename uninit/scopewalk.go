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
	"github.com/Pooja0509/cppcheck/config"
	"github.com/Pooja0509/cppcheck/symtab"
	"github.com/Pooja0509/cppcheck/tokenizer"
)

// initResult is the outcome of walking one scope segment for one variable.
type initResult uint8

const (
	// initNone: the segment neither initialized the variable nor settled the analysis.
	initNone initResult = iota
	// initPossible: at least one conditional path may have initialized the variable.
	initPossible
	// initSettled: no further statements need to be examined for this variable. Either
	// a definite write was found, an error was reported, or the remaining control flow
	// is too uncertain to keep reasoning.
	initSettled
)

// walkScope scans a scope segment for reads of v before a write, starting at tok and
// ending at the enclosing "}". With suppress set, reads are tracked for settlement but not
// reported, used for segments that are only conditionally reached after a possible
// initialization.
func (c *Checker) walkScope(tok *tokenizer.Token, v *symtab.Variable, suppress bool) initResult {
	ret := false
	numberOfIf := 0
	childPossible := false

	// Variables known to hold a non-zero value, from a "x = -y;" assignment. A later
	// "if (x)" guard on such a variable means the branch structure contradicts the
	// straight-line reading and the walk must stop.
	notzero := make(map[int]bool)

	for ; tok != nil; tok = tok.Next() {
		// End of scope.
		if tok.Str() == "}" {
			if symtab.IsScopeNoReturn(tok) {
				return initSettled
			}
			break
		}

		// Unconditional inner scope.
		if tok.Str() == "{" && tokenizer.Match(tok.Prev(), "[;{}]") {
			switch c.walkScope(tok.Next(), v, false) {
			case initSettled:
				return initSettled
			case initPossible:
				childPossible = true
			}
			tok = tok.Link()
			if tok == nil {
				break
			}
			continue
		}

		// Assignment with a nonzero constant.
		if tokenizer.Match(tok.Prev(), "[;{}] %var% = - %var% ;") && tok.VarID() > 0 {
			notzero[tok.VarID()] = true
		}

		// Conditional inner scope.
		if tokenizer.Match(tok, "if (") {
			// Initialization / usage in the condition itself.
			if c.checkHead(tok.Next(), v, suppress, numberOfIf == 0) {
				return initSettled
			}

			// A not-zero variable tested for zero: the guard cannot be taken at
			// face value, stop analyzing.
			if tokenizer.Match(tok, "if ( %var% )") && notzero[tok.At(2).VarID()] {
				return initSettled
			}

			tok = tok.Next().Link().Next()
			if tok == nil {
				break
			}
			if tok.Str() == "{" {
				branchSuppress := numberOfIf > 0 || suppress
				thenRes := c.walkScope(tok.Next(), v, branchSuppress)

				tok = tok.Link()
				if tok == nil {
					break
				}

				if !tokenizer.Match(tok, "} else {") {
					if thenRes != initNone {
						numberOfIf++
						if numberOfIf >= config.PartialInitSettleLimit {
							return initSettled
						}
					}
				} else {
					tok = tok.At(2)

					branchSuppress = numberOfIf > 0 || suppress
					elseRes := c.walkScope(tok.Next(), v, branchSuppress)

					tok = tok.Link()
					if tok == nil {
						break
					}

					if thenRes == initSettled && elseRes == initSettled {
						return initSettled
					}
					if thenRes == initSettled || elseRes != initNone {
						numberOfIf++
					}
				}
			}
		}

		// Aggregate initializer "= { ... }".
		if tokenizer.Match(tok, "= {") {
			end := tok.Next().Link()
			if end == nil {
				return initSettled
			}
			// Taking the address inside the braces is an unknown escape.
			if tokenizer.FindMatch(tok.At(2), end, "& %varid%", v.ID()) != nil {
				return initSettled
			}
			tok = end
			continue
		}

		// Not a read of the operand.
		if tokenizer.Match(tok, "sizeof|typeof|offsetof|decltype (") {
			tok = tok.Next().Link()
			if tok == nil {
				break
			}
		}

		if tokenizer.Match(tok, "for (") {
			// Is the variable initialized in the for-head? Don't report yet.
			if c.checkHead(tok.Next(), v, true, false) {
				return initSettled
			}

			tok2 := tok.Next().Link().Next()
			if tok2 != nil && tok2.Str() == "{" {
				// Assume the loop body runs; a write there counts.
				if c.walkScope(tok2.Next(), v, true) != initNone {
					return initSettled
				}

				// The loop does not initialize it; now the head reads count.
				if !suppress {
					c.checkHead(tok.Next(), v, false, numberOfIf == 0)
				}
			}
		}

		// An unrecognized block-opening construct or inline assembly cannot be
		// analyzed past.
		if tokenizer.Match(tok, ") {") || tokenizer.Match(tok, "%var% {") {
			return initSettled
		}
		if tokenizer.Match(tok, "asm (") {
			return initSettled
		}

		if tokenizer.Match(tok, "return|break|continue|throw|goto") {
			ret = true
		} else if ret && tok.Str() == ";" {
			return initSettled
		}

		// The variable itself.
		if tok.VarID() == v.ID() {
			if !suppress && c.isVariableUsage(tok, v.IsPointer()) {
				c.uninitVarError(tok, tok.Str())
			} else {
				// Assume this occurrence assigns the variable.
				return initSettled
			}
		}
	}

	if ret {
		return initSettled
	}
	if numberOfIf > 0 || childPossible {
		return initPossible
	}
	return initNone
}

// checkHead scans an if/for condition between its parentheses. It returns true when the
// caller's branch analysis must stop: the tracked variable occurred in a way that is not a
// plain read, or a read was reported. With certainUninit unset, reads after a "&&" are not
// reported since short-circuit evaluation may skip them.
func (c *Checker) checkHead(startParen *tokenizer.Token, v *symtab.Variable, suppress, certainUninit bool) bool {
	endParen := startParen.Link()
	for tok := startParen.Next(); tok != nil && tok != endParen; tok = tok.Next() {
		if tok.VarID() == v.ID() {
			if c.isVariableUsage(tok, v.IsPointer()) {
				if suppress {
					continue
				}
				c.uninitVarError(tok, tok.Str())
			}
			return true
		}
		if tokenizer.Match(tok, "sizeof|decltype|offsetof (") {
			tok = tok.Next().Link()
			if tok == nil {
				return false
			}
		}
		if !certainUninit && tok.Str() == "&&" {
			suppress = true
		}
	}
	return false
}
