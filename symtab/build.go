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

package symtab

import "github.com/Pooja0509/cppcheck/tokenizer"

// statement keywords that can never start a declaration.
var nonTypeKeywords = map[string]bool{
	"return": true, "if": true, "else": true, "for": true, "while": true,
	"do": true, "switch": true, "case": true, "default": true, "break": true,
	"continue": true, "goto": true, "delete": true, "new": true, "throw": true,
	"try": true, "catch": true, "typedef": true, "using": true, "namespace": true,
	"sizeof": true, "typeof": true, "decltype": true, "offsetof": true,
	"public": true, "private": true, "protected": true, "template": true,
	"asm": true, "operator": true,
}

// qualifiers may precede the type but are not the type itself.
var typeQualifiers = map[string]bool{
	"const": true, "static": true, "extern": true, "volatile": true,
	"register": true, "struct": true, "union": true, "enum": true,
	"class": true, "inline": true, "mutable": true,
}

// Build constructs the scope tree for one tokenized translation unit and
// stamps variable ids onto every resolved occurrence. Unresolvable names
// keep variable id 0; the analyses treat those as opaque.
func Build(list *tokenizer.List) *Database {
	db := &Database{
		Global: &Scope{Type: ScopeGlobal},
		vars:   make(map[int]*Variable),
	}
	b := &builder{db: db}
	b.parseBody(list.Front(), nil, db.Global, &names{})
	return db
}

type builder struct {
	db *Database
}

// names is one level of the lexical name-resolution stack.
type names struct {
	parent *names
	byName map[string]*Variable
}

func (n *names) push() *names { return &names{parent: n} }

func (n *names) declare(v *Variable) {
	if n.byName == nil {
		n.byName = make(map[string]*Variable)
	}
	n.byName[v.name] = v
}

func (n *names) lookup(name string) *Variable {
	for s := n; s != nil; s = s.parent {
		if v, ok := s.byName[name]; ok {
			return v
		}
	}
	return nil
}

// isContainer reports whether scope can directly hold type and function
// definitions (as opposed to statements).
func isContainer(s *Scope) bool {
	return s.Type == ScopeGlobal || s.Type == ScopeClass
}

// parseBody walks the tokens of one scope body, creating nested scopes,
// resolving declarations, and stamping variable ids by innermost-wins
// lookup everywhere else. start is the first token inside the scope and
// end its closing brace (nil for the global scope).
func (b *builder) parseBody(start, end *tokenizer.Token, scope *Scope, nm *names) {
	for tok := start; tok != nil && tok != end; tok = tok.Next() {
		if isContainer(scope) {
			if next := b.parseClass(tok, scope, nm); next != nil {
				tok = next
				continue
			}
			if next := b.parseFunction(tok, scope, nm); next != nil {
				tok = next
				continue
			}
			if tok.Str() == "{" && tok.Link() != nil {
				// namespace or extern "C" block; contents are still
				// top-level definitions.
				nested := &Scope{Type: ScopeGlobal, BodyStart: tok, BodyEnd: tok.Link(), NestedIn: scope}
				scope.NestedList = append(scope.NestedList, nested)
				b.parseBody(tok.Next(), tok.Link(), nested, nm.push())
				tok = tok.Link()
			}
			continue
		}

		if tok.Str() == "{" {
			if tok.Link() == nil {
				return
			}
			nested := &Scope{Type: ScopeBlock, BodyStart: tok, BodyEnd: tok.Link(), NestedIn: scope}
			scope.NestedList = append(scope.NestedList, nested)
			b.parseBody(tok.Next(), tok.Link(), nested, nm.push())
			tok = tok.Link()
			continue
		}

		if atStatementStart(tok) && isDeclStart(tok) {
			if resume := b.parseDecl(tok, scope, nm, false); resume != nil {
				tok = resume
				continue
			}
		}
		b.stamp(tok, nm)
	}
}

// stamp resolves one name token against the lexical stack.
func (b *builder) stamp(tok *tokenizer.Token, nm *names) {
	if !tok.IsName() {
		return
	}
	if v := nm.lookup(tok.Str()); v != nil {
		tok.SetVarID(v.id)
	}
}

func atStatementStart(tok *tokenizer.Token) bool {
	prev := tok.Prev()
	if prev == nil {
		return true
	}
	switch prev.Str() {
	case ";", "{", "}":
		return true
	case "(":
		// Only a for-header opens a declaration context inside parens;
		// treating ordinary call arguments as declarations would misread
		// "f(a * b)" as a pointer declarator.
		return prev.Prev() != nil && prev.Prev().Str() == "for"
	}
	return false
}

// isDeclStart is a cheap pre-filter; parseDecl does the real validation.
func isDeclStart(tok *tokenizer.Token) bool {
	return tok.IsName() && !nonTypeKeywords[tok.Str()]
}

// parseDecl parses one declaration statement starting at tok. It creates
// a Variable per declarator, stamps the name tokens and registers them in
// scope and nm. It returns the first declarator's name token (the caller
// resumes after it, so initializer expressions still get stamped), or nil
// when tok turns out not to start a declaration. With isArg set it parses
// a single function parameter, terminated by , or ).
func (b *builder) parseDecl(tok *tokenizer.Token, scope *Scope, nm *names, isArg bool) *tokenizer.Token {
	var (
		nameToks  []*tokenizer.Token
		stars     int
		isRef     bool
		isConst   bool
		isStatic  bool
		isExtern  bool
		typeNames int
	)

	t := tok
scan:
	for t != nil {
		switch {
		case t.IsName():
			s := t.Str()
			if nonTypeKeywords[s] {
				return nil
			}
			switch {
			case s == "const":
				isConst = true
			case s == "static":
				isStatic = true
			case s == "extern":
				isExtern = true
			case typeQualifiers[s]:
				// volatile, struct, ... contribute nothing beyond being
				// part of the type text.
			default:
				typeNames++
			}
			nameToks = append(nameToks, t)
		case t.Str() == "*":
			stars++
		case t.Str() == "&":
			isRef = true
		case t.Str() == "::":
			// qualified type name; keep scanning.
		default:
			break scan
		}
		t = t.Next()
	}
	// At least one real type name must precede the declarator name.
	if t == nil || typeNames < 2 {
		return nil
	}

	// The last name is the declarator; everything before it is the type.
	nameTok := nameToks[len(nameToks)-1]
	if typeQualifiers[nameTok.Str()] || nameTok.IsStandardType() {
		return nil
	}
	switch t.Str() {
	case ";", "=", "[", ",":
	case ")":
		if !isArg {
			return nil
		}
	default:
		return nil
	}

	first := nameTok
	for {
		v := b.newVariable(nameTok, tok, scope, stars > 0, isRef, isConst, isStatic, isExtern, isArg)
		after := nameTok.Next()
		for after != nil && after.Str() == "[" {
			v.isArray = true
			if after.Link() == nil {
				return first
			}
			after = after.Link().Next()
		}
		if after == nil {
			nm.declare(v)
			break
		}
		if after.Str() == "=" || after.Str() == "{" {
			v.hasInit = true
		}
		if after.Str() == "(" {
			// Function declaration, not a variable; undo this declarator.
			b.dropVariable(v, scope, nm)
			if nameTok == first {
				return nil
			}
			break
		}
		nm.declare(v)

		// Multi-declarator: "int a, b;". Skip the initializer to find a
		// comma at declaration level.
		if isArg {
			break
		}
		comma := after
		for comma != nil && comma.Str() != "," && comma.Str() != ";" {
			if comma.Link() != nil && (comma.Str() == "(" || comma.Str() == "[" || comma.Str() == "{") {
				comma = comma.Link()
			}
			comma = comma.Next()
		}
		if comma == nil || comma.Str() != "," || comma.Next() == nil {
			break
		}
		next := comma.Next()
		stars = 0
		for next != nil && (next.Str() == "*" || next.Str() == "&") {
			if next.Str() == "*" {
				stars++
			} else {
				isRef = true
			}
			next = next.Next()
		}
		if next == nil || !next.IsName() {
			break
		}
		nameTok = next
	}
	return first
}

func (b *builder) newVariable(nameTok, typeStart *tokenizer.Token, scope *Scope, isPtr, isRef, isConst, isStatic, isExtern, isArg bool) *Variable {
	b.db.nextID++
	v := &Variable{
		name:        nameTok.Str(),
		id:          b.db.nextID,
		nameTok:     nameTok,
		typeStart:   typeStart,
		typeEnd:     nameTok.Prev(),
		scope:       scope,
		isPointer:   isPtr,
		isReference: isRef,
		isConst:     isConst,
		isStatic:    isStatic,
		isExtern:    isExtern,
		isArgument:  isArg,
	}
	b.db.vars[v.id] = v
	scope.VarList = append(scope.VarList, v)
	nameTok.SetVarID(v.id)
	return v
}

func (b *builder) dropVariable(v *Variable, scope *Scope, nm *names) {
	delete(b.db.vars, v.id)
	if n := len(scope.VarList); n > 0 && scope.VarList[n-1] == v {
		scope.VarList = scope.VarList[:n-1]
	}
	v.nameTok.SetVarID(0)
}

// parseClass recognizes "class|struct|union Name ... {", creates the
// class scope and returns its closing brace, or nil when tok does not
// start a type definition (e.g. "struct Foo x;").
func (b *builder) parseClass(tok *tokenizer.Token, scope *Scope, nm *names) *tokenizer.Token {
	switch tok.Str() {
	case "class", "struct", "union":
	default:
		return nil
	}
	name := tok.Next()
	if !name.IsName() {
		return nil
	}
	t := name.Next()
	for t != nil {
		switch {
		case t.Str() == "{":
			cls := &Scope{Type: ScopeClass, Name: name.Str(), BodyStart: t, BodyEnd: t.Link(), NestedIn: scope}
			if t.Link() == nil {
				return nil
			}
			scope.NestedList = append(scope.NestedList, cls)
			b.parseBody(t.Next(), t.Link(), cls, nm.push())
			return t.Link()
		case t.IsName() || t.Str() == ":" || t.Str() == ",":
			t = t.Next()
		default:
			return nil
		}
	}
	return nil
}

// parseFunction recognizes "name ( params ) const? {", creates the
// function scope, declares its parameters and parses its body. It
// returns the body's closing brace, or nil when tok does not start a
// function definition.
func (b *builder) parseFunction(tok *tokenizer.Token, scope *Scope, nm *names) *tokenizer.Token {
	if !tok.IsName() || nonTypeKeywords[tok.Str()] {
		return nil
	}
	open := tok.Next()
	if open == nil || open.Str() != "(" || open.Link() == nil {
		return nil
	}
	body := open.Link().Next()
	if body != nil && body.Str() == "const" {
		body = body.Next()
	}
	if body == nil || body.Str() != "{" || body.Link() == nil {
		return nil
	}

	fn := &Scope{Type: ScopeFunction, Name: tok.Str(), BodyStart: body, BodyEnd: body.Link(), NestedIn: scope}
	scope.NestedList = append(scope.NestedList, fn)
	fnNames := nm.push()

	p := open.Next()
	for p != nil && p != open.Link() {
		if isDeclStart(p) {
			b.parseDecl(p, fn, fnNames, true)
		}
		// Skip to the next parameter.
		for p != nil && p != open.Link() && p.Str() != "," {
			if (p.Str() == "(" || p.Str() == "[") && p.Link() != nil {
				p = p.Link()
			}
			p = p.Next()
		}
		if p != nil && p.Str() == "," {
			p = p.Next()
		}
	}

	b.parseBody(body.Next(), body.Link(), fn, fnNames)
	return body.Link()
}
