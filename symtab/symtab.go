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

// Package symtab resolves declarations in a token list into variable and
// scope records, and stamps a unique variable id onto every occurrence of
// every resolved variable. The analyses treat these records as read-only
// facts.
package symtab

import "github.com/Pooja0509/cppcheck/tokenizer"

// ScopeType distinguishes the scope kinds the analyses care about.
type ScopeType uint8

const (
	// ScopeGlobal is the file scope.
	ScopeGlobal ScopeType = iota
	// ScopeFunction is a function definition's body.
	ScopeFunction
	// ScopeBlock is any braced block nested in a function.
	ScopeBlock
	// ScopeClass is a class/struct/union body; the uninitialized-variable
	// driver never descends into these.
	ScopeClass
)

// Scope is a node of the scope tree.
type Scope struct {
	Type ScopeType
	// Name is the function or class name, empty for blocks.
	Name string
	// BodyStart and BodyEnd are the { and } tokens delimiting the scope,
	// nil for the global scope.
	BodyStart *tokenizer.Token
	BodyEnd   *tokenizer.Token
	// NestedIn points to the enclosing scope; nil for the global scope.
	NestedIn   *Scope
	NestedList []*Scope
	// VarList holds the variables declared directly in this scope,
	// function parameters included (flagged as arguments).
	VarList []*Variable
}

// IsClassOrStruct reports whether this is a class/struct/union scope.
func (s *Scope) IsClassOrStruct() bool { return s.Type == ScopeClass }

// Variable is one resolved declaration.
type Variable struct {
	name      string
	id        int
	nameTok   *tokenizer.Token
	typeStart *tokenizer.Token
	typeEnd   *tokenizer.Token
	scope     *Scope

	isPointer   bool
	isArray     bool
	isReference bool
	isConst     bool
	isStatic    bool
	isExtern    bool
	isArgument  bool
	hasInit     bool
}

// Name returns the variable's declared name.
func (v *Variable) Name() string { return v.name }

// ID returns the unique variable id, also stamped onto every occurrence
// token.
func (v *Variable) ID() int { return v.id }

// NameToken returns the declaration's name token.
func (v *Variable) NameToken() *tokenizer.Token { return v.nameTok }

// TypeStartToken returns the first token of the declared type.
func (v *Variable) TypeStartToken() *tokenizer.Token { return v.typeStart }

// TypeEndToken returns the last token of the declared type (the token
// before the name).
func (v *Variable) TypeEndToken() *tokenizer.Token { return v.typeEnd }

// Scope returns the scope the variable is declared in.
func (v *Variable) Scope() *Scope { return v.scope }

// IsPointer reports whether the declarator carries at least one *.
func (v *Variable) IsPointer() bool { return v.isPointer }

// IsArray reports whether the declarator carries [ ].
func (v *Variable) IsArray() bool { return v.isArray }

// IsReference reports whether the declarator carries &.
func (v *Variable) IsReference() bool { return v.isReference }

// IsConst reports whether the declaration is const-qualified.
func (v *Variable) IsConst() bool { return v.isConst }

// IsStatic reports whether the declaration has static storage.
func (v *Variable) IsStatic() bool { return v.isStatic }

// IsExtern reports whether the declaration is extern.
func (v *Variable) IsExtern() bool { return v.isExtern }

// IsArgument reports whether the variable is a function parameter.
func (v *Variable) IsArgument() bool { return v.isArgument }

// HasInit reports whether the declaration carries an in-place
// initializer.
func (v *Variable) HasInit() bool { return v.hasInit }

// Database holds the scope tree and the variable id index for one
// translation unit.
type Database struct {
	Global *Scope

	vars   map[int]*Variable
	nextID int
}

// VariableForID returns the variable with the given id, or nil.
func (db *Database) VariableForID(id int) *Variable { return db.vars[id] }

// Functions returns every function scope in the tree, in source order.
func (db *Database) Functions() []*Scope {
	var out []*Scope
	var walk func(s *Scope)
	walk = func(s *Scope) {
		if s.Type == ScopeFunction {
			out = append(out, s)
		}
		for _, n := range s.NestedList {
			walk(n)
		}
	}
	walk(db.Global)
	return out
}

// IsScopeNoReturn reports whether the block ending at the given } token
// provably never returns control: its last statement is a call to a
// known non-returning function, or an infinite loop without a break.
func IsScopeNoReturn(endBrace *tokenizer.Token) bool {
	if endBrace == nil || endBrace.Str() != "}" {
		return false
	}
	last := endBrace.Prev()
	if last == nil {
		return false
	}

	if last.Str() == ";" {
		close := last.Prev()
		if close == nil || close.Str() != ")" || close.Link() == nil {
			return false
		}
		name := close.Link().Prev()
		if name == nil {
			return false
		}
		switch name.Str() {
		case "exit", "_exit", "abort", "_abort":
			return true
		}
		return false
	}

	if last.Str() == "}" {
		bodyOpen := last.Link()
		if bodyOpen == nil {
			return false
		}
		head := bodyOpen.Prev()
		if head == nil || head.Str() != ")" || head.Link() == nil {
			return false
		}
		kw := head.Link().Prev()
		if !tokenizer.Match(kw, "for ( ; ; )") && !tokenizer.Match(kw, "while ( 1|true )") {
			return false
		}
		for t := bodyOpen.Next(); t != nil && t != last; t = t.Next() {
			if t.Str() == "break" {
				return false
			}
		}
		return true
	}

	return false
}
