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

// Package uninit detects reads of uninitialized local variables. Two analyses cooperate:
// a per-variable scope walk that follows one scalar or pointer from its declaration, and
// a per-function execution walk that tracks pointer/array fill states (allocated but
// unwritten memory, bounded copies without null termination) across all locals at once.
// Both run over the same token list; duplicate findings collapse in the diagnostic
// engine.
package uninit

import (
	"go.uber.org/zap"

	"github.com/Pooja0509/cppcheck/config"
	"github.com/Pooja0509/cppcheck/diagnostic"
	"github.com/Pooja0509/cppcheck/execution"
	"github.com/Pooja0509/cppcheck/symtab"
	"github.com/Pooja0509/cppcheck/tokenizer"
)

// Checker runs the uninitialized-variable analyses over one translation unit.
type Checker struct {
	list     *tokenizer.List
	db       *symtab.Database
	conf     *config.Config
	registry *Registry
	engine   *diagnostic.Engine
	logger   *zap.Logger
	isC      bool
}

// NewChecker wires a checker to its inputs. A nil logger disables debug output.
func NewChecker(list *tokenizer.List, db *symtab.Database, conf *config.Config,
	registry *Registry, engine *diagnostic.Engine, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		conf = config.Default()
	}
	if registry == nil {
		registry = NewRegistry()
	}
	return &Checker{
		list:     list,
		db:       db,
		conf:     conf,
		registry: registry,
		engine:   engine,
		logger:   logger,
		isC:      list.IsC(),
	}
}

// Check runs both analyses and reports through the diagnostic engine.
func (c *Checker) Check() {
	for _, fs := range c.db.Functions() {
		c.checkScalars(fs)
	}
	c.executionPaths()
}

// checkScalars follows each plain scalar or pointer local of the scope from its
// declaration, then recurses into nested blocks for their own declarations.
func (c *Checker) checkScalars(scope *symtab.Scope) {
	for _, v := range scope.VarList {
		if v.IsArgument() || v.IsStatic() || v.IsExtern() || v.IsConst() ||
			v.IsArray() || v.IsReference() || v.HasInit() {
			continue
		}
		nameTok := v.NameToken()
		if nameTok == nil || nameTok.StrAt(1) == "(" {
			continue
		}
		if declaredInLoopHead(v) {
			continue
		}

		// In C every scalar type is uninitialized without an initializer; in C++ only
		// standard types are, a class type may have a default constructor.
		stdtype := c.isC
		tok := v.TypeStartToken()
		for ; tok != nil && tok.Str() != ";" && tok.Str() != "<"; tok = tok.Next() {
			if tok.IsStandardType() {
				stdtype = true
			}
		}
		for tok != nil && tok.Str() != ";" {
			tok = tok.Next()
		}
		if tok == nil {
			continue
		}

		if stdtype || v.IsPointer() {
			c.logger.Debug("following variable",
				zap.String("var", v.Name()), zap.Int("line", nameTok.Line()))
			c.walkScope(tok, v, false)
		}
	}

	for _, nested := range scope.NestedList {
		if !nested.IsClassOrStruct() {
			c.checkScalars(nested)
		}
	}
}

// declaredInLoopHead reports whether the declaration sits inside an unclosed "(",
// meaning a for-statement head. Those declarations are assigned by the loop setup.
func declaredInLoopHead(v *symtab.Variable) bool {
	for tok := v.TypeStartToken().Prev(); tok != nil; tok = tok.Prev() {
		if tokenizer.Match(tok, "[;{}]") {
			return false
		}
		if tok.Str() == ")" {
			tok = tok.Link()
			if tok == nil {
				return false
			}
			continue
		}
		if tok.Str() == "(" {
			return true
		}
	}
	return false
}

// executionPaths runs the pointer/array fill tracker over every function body.
func (c *Checker) executionPaths() {
	walker := execution.NewWalker(&pointerTracker{c: c}, c.logger)
	for _, fs := range c.db.Functions() {
		if fs.BodyStart == nil {
			continue
		}
		a := execution.NewArena()
		walker.Walk(fs.BodyStart.Next(), a)
	}
}
