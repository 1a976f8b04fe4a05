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

package execution

import (
	"go.uber.org/zap"

	"github.com/Pooja0509/cppcheck/tokenizer"
)

// Check is one flow analysis plugged into the walk driver. The driver owns control flow
// (branches, loops, unreachable code); the check owns what each statement means for the
// states in the arena.
type Check interface {
	// Parse inspects the statement at tok, updating arena states. It returns the token
	// the walk should continue from: tok itself for single-token effects, or a later
	// token when the check consumed a larger construct. The driver resumes at the
	// returned token's successor.
	Parse(tok *tokenizer.Token, a *Arena) *tokenizer.Token

	// ParseCondition inspects the condition of an if/while, starting at the first token
	// inside the parentheses. It returns true when the condition does something the
	// whole walk cannot survive, in which case the driver drops all states.
	ParseCondition(tok *tokenizer.Token, a *Arena) bool

	// ParseLoopBody summarizes reads inside a loop body the driver is about to skip.
	ParseLoopBody(tok *tokenizer.Token, a *Arena)
}

// Walker drives a Check over function bodies.
type Walker struct {
	check  Check
	logger *zap.Logger
}

// NewWalker creates a walk driver for the given check. A nil logger disables debug output.
func NewWalker(check Check, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{check: check, logger: logger}
}

// Walk runs the check over one block, from the first token after the opening "{" to the
// matching "}". It returns true when every path through the block leaves the function,
// meaning code after the block is unreachable.
func (w *Walker) Walk(tok *tokenizer.Token, a *Arena) (terminated bool) {
	for ; tok != nil; tok = tok.Next() {
		switch {
		case tok.Str() == "}":
			return false

		case tok.Str() == "{":
			if p := tok.Prev(); p != nil && !tokenizer.Match(p, "[;{}]") && p.Str() != "do" {
				// Expression braces (an initializer list, usually). Contents are
				// not statements, skip them whole.
				if tok.Link() == nil {
					a.BailOutAll()
					return false
				}
				tok = tok.Link()
				break
			}
			// Unconditional nested block. A return inside it makes everything
			// after unreachable.
			if w.Walk(tok.Next(), a) {
				return true
			}
			tok = tok.Link()
			if tok == nil {
				return false
			}

		case tokenizer.Match(tok, "if ("):
			next, term := w.walkIf(tok, a)
			if next == nil {
				return false
			}
			if term {
				// Both branches left the function.
				return true
			}
			tok = next

		case tokenizer.Match(tok, "for|while ("):
			next := w.walkLoop(tok, a)
			if next == nil {
				return false
			}
			tok = next

		case tokenizer.Match(tok, "return|throw"):
			w.check.Parse(tok, a)
			return true

		case tokenizer.Match(tok, "break|continue"):
			return true

		case tokenizer.Match(tok, "goto|setjmp|longjmp|switch|try"):
			w.logger.Debug("bailing out on unstructured control flow",
				zap.String("token", tok.Str()), zap.Int("line", tok.Line()))
			a.BailOutAll()
			return false

		default:
			tok = w.check.Parse(tok, a)
			if tok == nil {
				return false
			}
		}
	}
	return false
}

// walkIf handles an if statement (with its optional else) starting at the "if" token. It
// returns the token the outer walk should continue from (nil abandons the walk) and
// whether both branches leave the function, making the code after unreachable.
func (w *Walker) walkIf(tok *tokenizer.Token, a *Arena) (*tokenizer.Token, bool) {
	if w.check.ParseCondition(tok.At(2), a) {
		w.logger.Debug("bailing out on condition", zap.Int("line", tok.Line()))
		a.BailOutAll()
		return nil, false
	}

	parenEnd := tok.Next().Link()
	if parenEnd == nil || !tokenizer.Match(parenEnd, ") {") {
		a.BailOutAll()
		return nil, false
	}

	thenArena := a.Fork()
	thenTerm := w.Walk(parenEnd.At(2), thenArena)
	thenEnd := parenEnd.Next().Link()
	if thenEnd == nil {
		a.BailOutAll()
		return nil, false
	}

	if !tokenizer.Match(thenEnd, "} else {") {
		// No else branch: the fall-through path keeps the pre-branch states.
		if thenTerm {
			return thenEnd, false
		}
		a.MergeBranches(thenArena, a.Fork())
		return thenEnd, false
	}

	elseArena := a.Fork()
	elseTerm := w.Walk(thenEnd.At(3), elseArena)
	elseEnd := thenEnd.At(2).Link()
	if elseEnd == nil {
		a.BailOutAll()
		return nil, false
	}

	switch {
	case thenTerm && elseTerm:
		a.BailOutAll()
		return elseEnd, true
	case thenTerm:
		a.ReplaceWith(elseArena)
	case elseTerm:
		a.ReplaceWith(thenArena)
	default:
		a.MergeBranches(thenArena, elseArena)
	}
	return elseEnd, false
}

// walkLoop handles a for/while statement starting at its keyword. Loop bodies are not
// walked; instead variables written inside are dropped and the check summarizes the reads.
// It returns the token the outer walk should continue from, or nil to abandon the walk.
func (w *Walker) walkLoop(tok *tokenizer.Token, a *Arena) *tokenizer.Token {
	if tok.Str() == "for" {
		w.check.Parse(tok, a)
	} else if w.check.ParseCondition(tok.At(2), a) {
		w.logger.Debug("bailing out on loop condition", zap.Int("line", tok.Line()))
		a.BailOutAll()
		return nil
	}

	parenEnd := tok.Next().Link()
	if parenEnd == nil || parenEnd.Next() == nil {
		a.BailOutAll()
		return nil
	}

	next := parenEnd.Next()
	if next.Str() == ";" {
		// Tail of a do-while; the body was already walked inline.
		return next
	}
	if next.Str() != "{" || next.Link() == nil {
		a.BailOutAll()
		return nil
	}

	for t := next.Next(); t != nil && t != next.Link(); t = t.Next() {
		if t.VarID() == 0 {
			continue
		}
		if tokenizer.Match(t, "%var% =") || (t.Next() != nil && t.Next().IsIncDec()) ||
			(t.Prev() != nil && t.Prev().IsIncDec()) {
			w.logger.Debug("bailing out variable written in loop body",
				zap.String("var", t.Str()), zap.Int("line", t.Line()))
			a.BailOut(t.VarID())
		}
	}

	w.check.ParseLoopBody(next.Next(), a)
	return next.Link()
}
