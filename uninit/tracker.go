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
	"strconv"
	"strings"

	"github.com/Pooja0509/cppcheck/execution"
	"github.com/Pooja0509/cppcheck/symtab"
	"github.com/Pooja0509/cppcheck/tokenizer"
)

// trackedVar is the state of one pointer/array/scalar local followed through a function
// body. It is created at the declaration and retired when the variable is proven
// initialized, reported, or bailed out.
type trackedVar struct {
	v *symtab.Variable

	// allocated: the pointer holds heap memory with unknown contents.
	allocated bool
	// unsafeString: the buffer was filled by a bounded copy that may not null-terminate.
	unsafeString bool
	// nonZeroFill: the buffer was filled with a fixed non-zero byte.
	nonZeroFill bool
}

func (t *trackedVar) VarID() int { return t.v.ID() }

func (t *trackedVar) Equal(other execution.State) bool {
	o, ok := other.(*trackedVar)
	return ok && t.v == o.v && t.allocated == o.allocated &&
		t.unsafeString == o.unsafeString && t.nonZeroFill == o.nonZeroFill
}

func (t *trackedVar) Copy() execution.State {
	c := *t
	return &c
}

// Use modes. Each mode reflects the syntactic context of an occurrence and exempts the
// states for which that context is harmless.
const (
	// useDirect: plain value read, ".. = var;". Reading the address of an
	// uninitialized array or of allocated memory is fine.
	useDirect = iota
	// useArrayElem: reading array elements.
	useArrayElem
	// useArrayMem: reading array data with a mem* function, fine without termination.
	useArrayMem
	// usePtr: dereferencing the pointer value, "ptr->foo()". Harmless for non-pointers.
	usePtr
	// useDeadPtr: using a pointer value that was never set or was freed.
	useDeadPtr
	// useArrayData: reading uninitialized array or pointer data, "= x[0];".
	useArrayData
)

// pointerTracker drives trackedVar states over a function body. It implements
// execution.Check; the execution walker owns control flow and feeds it tokens.
type pointerTracker struct {
	c *Checker
}

func tracked(a *execution.Arena, varID int) *trackedVar {
	st, _ := a.State(varID).(*trackedVar)
	return st
}

// useMode checks one occurrence under the given mode, reports the appropriate error and
// retires the state. It returns true when an error was reported.
func (p *pointerTracker) useMode(a *execution.Arena, tok *tokenizer.Token, mode int) bool {
	st := tracked(a, tok.VarID())
	if st == nil {
		return false
	}
	v := st.v

	switch mode {
	case useDirect:
		if v.IsArray() || (v.IsPointer() && st.allocated) {
			return false
		}
	case useArrayMem:
		if st.unsafeString {
			return false
		}
	case usePtr:
		if !v.IsPointer() || v.IsArray() {
			return false
		}
	case useDeadPtr:
		if !v.IsPointer() || v.IsArray() || st.allocated {
			return false
		}
	case useArrayData:
		if !v.IsArray() && !v.IsPointer() {
			return false
		}
	}

	switch {
	case st.unsafeString || st.nonZeroFill:
		p.c.uninitStringError(tok, v.Name(), st.unsafeString)
	case v.IsPointer() && !v.IsArray() && st.allocated:
		p.c.uninitDataError(tok, v.Name())
	default:
		p.c.uninitVarError(tok, v.Name())
	}

	// Report once per root cause.
	a.Remove(v.ID())
	return true
}

func (p *pointerTracker) use(a *execution.Arena, tok *tokenizer.Token) bool {
	return p.useMode(a, tok, useDirect)
}

func (p *pointerTracker) useArray(a *execution.Arena, tok *tokenizer.Token) {
	p.useMode(a, tok, useArrayElem)
}

func (p *pointerTracker) useArrayMem(a *execution.Arena, tok *tokenizer.Token) {
	p.useMode(a, tok, useArrayMem)
}

func (p *pointerTracker) usePointer(a *execution.Arena, tok *tokenizer.Token) bool {
	return p.useMode(a, tok, usePtr)
}

func (p *pointerTracker) useDeadPointer(a *execution.Arena, tok *tokenizer.Token) bool {
	return p.useMode(a, tok, useDeadPtr)
}

func (p *pointerTracker) useData(a *execution.Arena, tok *tokenizer.Token) bool {
	return p.useMode(a, tok, useArrayData)
}

// allocPointer handles "p = malloc(..)". Allocation of anything but a plain pointer is
// beyond this analysis.
func (p *pointerTracker) allocPointer(a *execution.Arena, varID int) {
	st := tracked(a, varID)
	if st == nil {
		return
	}
	if st.v.IsPointer() && !st.v.IsArray() {
		st.allocated = true
	} else {
		a.BailOut(varID)
	}
}

// initPointer handles a write through the pointer, "*p = ..". For allocated pointers and
// arrays the pointee is now (partially) initialized and tracking stops; writing through
// an unset pointer value is itself a use of that value.
func (p *pointerTracker) initPointer(a *execution.Arena, tok *tokenizer.Token) {
	st := tracked(a, tok.VarID())
	if st == nil {
		return
	}
	if st.allocated || st.v.IsArray() {
		a.Remove(tok.VarID())
		return
	}
	p.usePointer(a, tok)
}

// deallocPointer handles free/realloc/fclose of the variable. Releasing a pointer that
// never held an allocation reads its (uninitialized) value.
func (p *pointerTracker) deallocPointer(a *execution.Arena, tok *tokenizer.Token) {
	st := tracked(a, tok.VarID())
	if st == nil {
		return
	}
	if st.v.IsPointer() && !st.v.IsArray() && !st.allocated {
		p.c.uninitVarError(tok, st.v.Name())
		a.Remove(tok.VarID())
		return
	}
	st.allocated = false
}

// pointerAssignment handles "p = q;". Aliasing defeats both trackers.
func (p *pointerTracker) pointerAssignment(a *execution.Arena, tok1, tok2 *tokenizer.Token) {
	if tok1.VarID() == 0 || tok2.VarID() == 0 {
		return
	}
	if st := tracked(a, tok1.VarID()); st != nil && st.v.IsPointer() && !st.v.IsArray() {
		a.BailOut(tok1.VarID())
	}
	if st := tracked(a, tok2.VarID()); st != nil && (st.v.IsPointer() || st.v.IsArray()) {
		a.BailOut(tok2.VarID())
	}
}

func (p *pointerTracker) initStrncpy(a *execution.Arena, tok *tokenizer.Token) {
	if st := tracked(a, tok.VarID()); st != nil {
		st.unsafeString = true
	}
}

func (p *pointerTracker) initMemsetNonZero(a *execution.Arena, tok *tokenizer.Token) {
	if st := tracked(a, tok.VarID()); st != nil {
		st.nonZeroFill = true
	}
}

// skipBrackets steps over consecutive "[ .. ]" groups.
func skipBrackets(tok *tokenizer.Token) *tokenizer.Token {
	for tok != nil && tok.Str() == "[" {
		if tok.Link() == nil {
			return nil
		}
		tok = tok.Link().Next()
	}
	return tok
}

// parserhs checks variable reads in the right hand side of an assignment or in an index
// expression starting after tok2.
func (p *pointerTracker) parserhs(tok2 *tokenizer.Token, a *execution.Arena) {
	for tok2 = tok2.Next(); tok2 != nil; tok2 = tok2.Next() {
		if tokenizer.Match(tok2, "[;)=]") {
			break
		}
		if tokenizer.Match(tok2, "%var% (") {
			break
		}
		if tok2.VarID() == 0 ||
			tokenizer.Match(tok2.Prev(), "&|::") ||
			tokenizer.Match(tok2.At(-2), "& (") ||
			tok2.StrAt(1) == "=" {
			continue
		}

		// Chained member/index access ending in "=" is a write, not a read.
		if tokenizer.Match(tok2.Next(), ".|[") {
			tok3 := tok2
			for tok3 != nil {
				if tokenizer.Match(tok3.Next(), ". %var%") {
					tok3 = tok3.At(2)
				} else if tok3.StrAt(1) == "[" {
					tok3 = tok3.Next().Link()
				} else {
					break
				}
			}
			if tok3 != nil && tok3.StrAt(1) == "=" {
				continue
			}
		}

		var found bool
		if tok2.StrAt(-1) == "*" || tok2.StrAt(1) == "[" {
			found = p.useData(a, tok2)
		} else {
			found = p.use(a, tok2)
		}
		if found {
			a.BailOut(tok2.VarID())
		}
	}
}

// Parse implements execution.Check. It inspects the statement at tok against the
// transition patterns and returns the token the walk continues from.
func (p *pointerTracker) Parse(tok *tokenizer.Token, a *execution.Arena) *tokenizer.Token {
	// Variable declaration: start tracking.
	if tok.VarID() != 0 && tokenizer.Match(tok, "%var% [[;]") {
		if v := p.c.db.VariableForID(tok.VarID()); v != nil && v.NameToken() == tok &&
			!v.IsStatic() && !v.IsExtern() && !v.IsConst() {
			p.parseDeclaration(tok, v, a)
			return tok
		}
	}

	if tok.Str() == "return" {
		p.parseReturn(tok, a)
	}

	if tok.VarID() != 0 {
		if next, done := p.parseVarOccurrence(tok, a); done {
			return next
		}
	}

	if tokenizer.Match(tok, "%var% (") && !p.c.registry.Contains(tok.Str()) {
		if next, done := p.parseCall(tok, a); done {
			return next
		}
	}

	// Call through a function pointer or a method: any argument may be initialized.
	if tokenizer.Match(tok, "( * %var% ) (") ||
		(tokenizer.Match(tok, "( *| %var% .|::") && tokenizer.Match(tok.Link().At(-2), ".|:: %var% ) (")) {
		if tok.Link() != nil {
			tok2 := tok.Link().Next()
			end2 := tok2.Link()
			for ; tok2 != nil && tok2 != end2; tok2 = tok2.Next() {
				if tok2.VarID() != 0 {
					a.BailOut(tok2.VarID())
				}
			}
		}
	}

	if tok.Str() == "return" {
		if tokenizer.Match(tok.Next(), "%var% ;") {
			p.use(a, tok.Next())
		} else if tokenizer.Match(tok.Next(), "%var% [") {
			p.useData(a, tok.Next())
		}
	}

	if tok.VarID() != 0 {
		if next, done := p.parseVarContext(tok, a); done {
			return next
		}
	}

	if tokenizer.Match(tok, "for (") {
		p.parseFor(tok, a)
	}

	return tok
}

// parseDeclaration starts tracking a local at its name token when the declaration shape
// qualifies: a pointer, or a standard-type scalar or array without initializer.
func (p *pointerTracker) parseDeclaration(tok *tokenizer.Token, v *symtab.Variable, a *execution.Arena) {
	if tok.LinkAt(1) != nil { // array
		endtok := tok.Next()
		for endtok != nil && endtok.Link() != nil {
			endtok = endtok.Link().Next()
		}
		if endtok == nil || endtok.Str() != ";" {
			return
		}
	}

	// A same-named variable in an enclosing scope could be the one an unexpanded macro
	// actually refers to; stop tracking it.
	for parent := v.Scope().NestedIn; parent != nil; parent = parent.NestedIn {
		for _, other := range parent.VarList {
			if other.Name() == v.Name() {
				a.BailOut(other.ID())
				break
			}
		}
	}

	if v.IsPointer() {
		a.Insert(&trackedVar{v: v})
		return
	}
	if v.TypeEndToken().Str() == ">" { // unexpanded template type
		return
	}
	stdtype := false
	for t := v.TypeStartToken(); t != nil && t != v.NameToken(); t = t.Next() {
		if t.IsStandardType() {
			stdtype = true
			break
		}
	}
	if stdtype && (!v.IsArray() || v.NameToken().LinkAt(1).StrAt(1) == ";") {
		a.Insert(&trackedVar{v: v})
	}
}

// parseReturn checks reads in a return expression. Assignments and address-of arguments
// inside the expression mean variables may be written there instead.
func (p *pointerTracker) parseReturn(tok *tokenizer.Token, a *execution.Arena) {
	assignment := false
	for tok2 := tok.Next(); tok2 != nil && tok2.Str() != ";"; tok2 = tok2.Next() {
		if tok2.Str() == "=" || (!p.c.isC && tok2.Str() == ">>") || tokenizer.Match(tok2, "(|, &") {
			assignment = true
			break
		}
		if tokenizer.Match(tok2, "[(,] &| %var% [,)]") {
			tok2 = tok2.Next()
			if !tok2.IsName() {
				tok2 = tok2.Next()
			}
			a.BailOut(tok2.VarID())
		}
	}
	if assignment {
		return
	}
	for tok2 := tok.Next(); tok2 != nil && tok2.Str() != ";"; tok2 = tok2.Next() {
		if tok2.IsName() && tok2.StrAt(1) == "(" {
			tok2 = tok2.Next().Link()
			if tok2 == nil {
				return
			}
		} else if tok2.VarID() != 0 {
			p.use(a, tok2)
		}
	}
}

// parseVarOccurrence handles the occurrence contexts that decide between read, write and
// bail-out for the variable at tok. done reports that Parse should return next.
func (p *pointerTracker) parseVarOccurrence(tok *tokenizer.Token, a *execution.Arena) (next *tokenizer.Token, done bool) {
	// Passed as a function argument.
	if tokenizer.Match(tok.Prev(), "[(,] %var% [+-,)]") {
		tok2 := tok.Next()
		for tok2 != nil && tok2.Str() == ")" {
			tok2 = tok2.Next()
		}

		// "( var ) = ..": the parentheses hide an assignment.
		if tokenizer.Match(tok.Prev(), "( %var% )") && tok2 != nil && tok2.Str() == "=" {
			a.BailOut(tok.VarID())
		} else if tok.StrAt(-2) != ">" || tok.LinkAt(-2) == nil {
			p.use(a, tok)
		}
		return tok, true
	}

	// Operand of an expression.
	if tokenizer.Match(tok.Prev(), "[[(,+-*/|=] %var% ]|)|,|;|%op%") {
		// Taking the address of an array is always fine; stop tracking it.
		if st := tracked(a, tok.VarID()); st != nil && st.v.IsArray() {
			a.BailOut(tok.VarID())
		}

		if tokenizer.Match(tok.At(-3), "& %var% =") {
			// Initializing a reference variable.
			a.BailOut(tok.VarID())
		} else {
			p.use(a, tok)
		}
		return tok, true
	}

	if tok.Prev().IsIncDec() || tok.Next().IsIncDec() {
		p.use(a, tok)
		return tok, true
	}

	// Statement-initial assignment, index write or member access.
	if tokenizer.Match(tok.Prev(), "[;{}] %var% [=[.]") {
		if tok.StrAt(1) == "." {
			if p.useDeadPointer(a, tok) {
				return tok, true
			}
		} else {
			tok2 := tok.Next()
			if tok2.Str() == "[" {
				tok3 := tok2.Link()
				for tokenizer.Match(tok3, "] [") {
					tok3 = tok3.Next().Link()
				}

				// "x[..] >>" may initialize the element.
				if tokenizer.Match(tok3, "] >>") {
					return tok, true
				}

				if tokenizer.Match(tok3, "] =") {
					if p.useDeadPointer(a, tok) {
						return tok, true
					}
					p.parserhs(tok2, a)
					tok2 = tok3.Next()
				}
			}
			if tok2 != nil {
				p.parserhs(tok2, a)
			}
		}

		// Pointer aliasing "p = q;".
		if tokenizer.Match(tok.At(2), "%var% ;") {
			p.pointerAssignment(a, tok, tok.At(2))
		}
	}

	if tok.StrAt(1) == "(" {
		p.usePointer(a, tok)
	}

	// Write through the pointer: "*p = ..".
	if tokenizer.Match(tok.At(-2), "[;{}] *") {
		if tok.StrAt(1) != "=" {
			p.usePointer(a, tok)
			return tok, true
		}
		// Is the pointer value itself read on the right hand side?
		used := false
		for tok2 := tok.At(2); tok2 != nil; tok2 = tok2.Next() {
			if tokenizer.Match(tok2, "[,;=(]") {
				break
			}
			if tokenizer.Match(tok2, "* %varid%", tok.VarID()) {
				used = true
				break
			}
		}
		if used {
			p.usePointer(a, tok)
		} else {
			p.initPointer(a, tok)
		}
		return tok, true
	}

	if tokenizer.Match(tok.Next(), "= malloc|kmalloc") || tokenizer.Match(tok.Next(), "= new char [") {
		p.allocPointer(a, tok.VarID())
		if tok.StrAt(3) == "(" {
			return tok.At(3), true
		}
	} else if (!p.c.isC && tokenizer.Match(tok.Prev(), "<<|>>")) || tok.StrAt(1) == "=" {
		// Stream operations and assignments with shapes not recognized above.
		a.BailOut(tok.VarID())
		return tok, true
	}

	// "x[..] = ..": the index expression was not recognized above.
	if tok.StrAt(1) == "[" {
		tok2 := tok.Next().Link()
		if tok2 != nil && tok2.StrAt(1) == "=" {
			a.BailOut(tok.VarID())
			return tok, true
		}
	}

	if tok.StrAt(-1) == "delete" || tokenizer.Match(tok.At(-3), "delete [ ]") {
		p.deallocPointer(a, tok)
		return tok, true
	}

	return nil, false
}

// parseCall handles a call to a named function that is not in the transparent registry.
// done reports that Parse should return next.
func (p *pointerTracker) parseCall(tok *tokenizer.Token, a *execution.Arena) (next *tokenizer.Token, done bool) {
	// sizeof/typeof do not evaluate their operand. An all-uppercase name might be an
	// unexpanded macro doing the same.
	if tokenizer.Match(tok, "sizeof|typeof (") {
		if l := tok.Next().Link(); l != nil {
			return l, true
		}
		return tok, true
	}

	if tokenizer.Match(tok, "free|kfree|fclose ( %var% )") || tokenizer.Match(tok, "realloc ( %var%") {
		p.deallocPointer(a, tok.At(2))
		return tok.At(3), true
	}

	// Arguments whose pointed-to data the callee reads.
	readArgs := parseFunctionCall(tok, true)
	for _, t := range readArgs {
		firstPar := t == tok.At(2)
		switch {
		case strings.HasPrefix(tok.Str(), "mem"):
			p.useArrayMem(a, t)
		case !firstPar && strings.HasPrefix(tok.Str(), "strn"):
			p.useArrayMem(a, t)
		default:
			p.useArray(a, t)
		}
		p.useDeadPointer(a, t)
	}

	// Arguments that must at least hold a valid pointer.
	for _, t := range parseFunctionCall(tok, false) {
		if !containsToken(readArgs, t) {
			p.useDeadPointer(a, t)
		}
	}

	// strncpy does not null-terminate the destination when the copy length does not
	// cover the source including its terminator.
	if tokenizer.Match(tok, "strncpy ( %var% ,") {
		if tokenizer.Match(tok.At(4), "%str% ,") {
			if tokenizer.Match(tok.At(6), "%num% )") {
				length := tok.At(4).StrLength()
				if sz, err := strconv.Atoi(tok.StrAt(6)); err == nil && sz >= 0 && length >= sz {
					p.initStrncpy(a, tok.At(2))
					if l := tok.Next().Link(); l != nil {
						return l, true
					}
				}
			}
		} else {
			p.initStrncpy(a, tok.At(2))
			if l := tok.Next().Link(); l != nil {
				return l, true
			}
		}
	}

	// memset with a non-zero byte leaves the buffer without termination.
	if tokenizer.Match(tok, "memset ( %var% , !!0 , %num% )") {
		p.initMemsetNonZero(a, tok.At(2))
		if l := tok.Next().Link(); l != nil {
			return l, true
		}
	}

	if tokenizer.Match(tok, "asm ( %str% )") {
		a.BailOutAll()
		return tok, true
	}

	p.parseCallArgs(tok, a)
	return nil, false
}

// parseCallArgs scans the arguments of an unknown call. A variable passed bare or by
// address may be initialized by the callee, so its tracking stops after read checks.
func (p *pointerTracker) parseCallArgs(tok *tokenizer.Token, a *execution.Arena) {
	parlevel := 0
	var bailouts []int
	queued := make(map[int]bool)
	queue := func(id int) {
		if !queued[id] {
			queued[id] = true
			bailouts = append(bailouts, id)
		}
	}

scan:
	for tok2 := tok.Next(); tok2 != nil; tok2 = tok2.Next() {
		switch tok2.Str() {
		case "(":
			parlevel++
			continue
		case ")":
			if parlevel <= 1 {
				break scan
			}
			parlevel--
			continue
		}

		if tokenizer.Match(tok2, "sizeof|typeof (") ||
			(tokenizer.Match(tok2, "%type% (") && tok2.IsUpperCaseName()) {
			tok2 = tok2.Next().Link()
			if tok2 == nil {
				break
			}
			continue
		}

		if tok2.VarID() == 0 {
			continue
		}

		// "f(*p)" or "f(p->x)" dereferences the pointer inside the call.
		if tokenizer.Match(tok2.At(-2), "[(,] *") || tokenizer.Match(tok2.Next(), ". %var%") {
			fc := tok2.Prev()
			for fc != nil && fc.Str() != "(" {
				if fc.Str() == ")" {
					fc = fc.Link()
					if fc == nil {
						break
					}
				}
				fc = fc.Prev()
			}
			fc = fc.Prev()
			if fc != nil && fc.IsName() && !fc.IsUpperCaseName() && p.useDeadPointer(a, tok2) {
				a.BailOut(tok2.VarID())
			}
		}

		// The callee may initialize a bare argument.
		if tokenizer.Match(tok2.Prev(), "[(,] %var% [,)]") {
			queue(tok2.VarID())
		}

		// Array arithmetic argument, "f(arr + 1)".
		if tokenizer.Match(tok2.Prev(), "[,(] %var% [+-]") {
			if st := tracked(a, tok2.VarID()); st != nil &&
				(st.v.IsArray() || (st.v.IsPointer() && st.allocated)) {
				queue(tok2.VarID())
			}
		}
	}

	for _, id := range bailouts {
		a.BailOut(id)
	}
}

// parseVarContext handles the remaining occurrence shapes checked after call parsing.
// done reports that Parse should return next.
func (p *pointerTracker) parseVarContext(tok *tokenizer.Token, a *execution.Arena) (next *tokenizer.Token, done bool) {
	if tok.StrAt(-1) == "=" {
		if tokenizer.Match(tok.At(-3), "& %var% =") {
			a.BailOut(tok.VarID())
			return tok, true
		}
		if !tokenizer.Match(tok.At(-3), ". %var% =") {
			if !tokenizer.Match(tok.At(-3), "[;{}] %var% =") {
				p.use(a, tok)
				return tok, true
			}
			if tok.At(-2).VarID() != 0 {
				p.use(a, tok)
				return tok, true
			}
		}
	}

	if tok.StrAt(1) == "." || tok.StrAt(1) == "[" {
		a.BailOut(tok.VarID())
		return tok, true
	}

	if tokenizer.Match(tok.At(-2), "[,(=] *") {
		p.usePointer(a, tok)
		return tok, true
	}

	if tok.StrAt(-1) == "&" {
		a.BailOut(tok.VarID())
	}
	return nil, false
}

// parseFor inspects a for-loop head: variables assigned in the setup clause, read in the
// condition, or stepped without other uses in the body.
func (p *pointerTracker) parseFor(tok *tokenizer.Token, a *execution.Arena) {
	setup := map[int]bool{0: true}

	tok2 := tok.At(2)
	for ; tok2 != nil && tok2.Str() != ";"; tok2 = tok2.Next() {
		if tok2.VarID() != 0 {
			setup[tok2.VarID()] = true
		}
	}
	if tok2 == nil {
		return
	}

	// Condition: "; i < n ;" reads i unless the setup assigned it.
	if tokenizer.Match(tok2, "; %var% <|<=|>=|> %num% ;") && !setup[tok2.Next().VarID()] {
		p.use(a, tok2.Next())
	}

	// Step clause.
	tok2 = tok2.Next()
	for tok2 != nil && tok2.Str() != ";" {
		tok2 = tok2.Next()
	}
	if tokenizer.Match(tok2, "; ++|-- %var% ) {") || tokenizer.Match(tok2, "; %var% ++|-- ) {") {
		varID := tok2.Next().VarID()
		if varID == 0 {
			varID = tok2.At(2).VarID()
		}
		if varID == 0 || setup[varID] {
			return
		}

		// Any use in the body might initialize it first.
		for tok3 := tok2.At(5); tok3 != nil && tok3 != tok2.LinkAt(4); tok3 = tok3.Next() {
			if tok3.VarID() == varID {
				return
			}
		}

		vt := tok2.Next()
		if vt.VarID() == 0 {
			vt = vt.Next()
		}
		p.use(a, vt)
	}
}

// ParseCondition implements execution.Check for if/while conditions.
func (p *pointerTracker) ParseCondition(tok *tokenizer.Token, a *execution.Arena) bool {
	if tok == nil {
		return false
	}

	switch {
	case tok.VarID() != 0 && tokenizer.Match(tok, "%var% <|<=|==|!=|)"):
		p.use(a, tok)

	case tokenizer.Match(tok, "!| %var% ["):
		if sb := skipBrackets(tok.Next()); sb == nil || sb.Str() != "=" {
			vt := tok
			if tok.Str() == "!" {
				vt = tok.Next()
			}
			p.useData(a, vt)
		}

	case tokenizer.Match(tok, "!| %var% ("):
		ftok := tok
		if tok.Str() == "!" {
			ftok = tok.Next()
		}
		for _, t := range parseFunctionCall(ftok, true) {
			if strings.HasPrefix(ftok.Str(), "mem") {
				p.useArrayMem(a, t)
			} else {
				p.useArray(a, t)
			}
		}

	case tokenizer.Match(tok, "! %var% )"):
		// A null check of the pointer value reads nothing we track.
		return false
	}

	// Writes inside the condition cannot be followed along the linear walk.
	depth := 0
	for tok2 := tok; tok2 != nil; tok2 = tok2.Next() {
		switch tok2.Str() {
		case "(":
			depth++
		case ")":
			if depth == 0 {
				return false
			}
			depth--
		case ";", "{", "}":
			return false
		}
		if tok2.VarID() != 0 &&
			(tok2.Next().IsAssignmentOp() || tok2.Next().IsIncDec() || tok2.Prev().IsIncDec()) {
			a.BailOut(tok2.VarID())
		}
	}
	return false
}

// ParseLoopBody implements execution.Check for loop bodies the walker skips: reads are
// still checked, anything conditional stops the scan conservatively.
func (p *pointerTracker) ParseLoopBody(tok *tokenizer.Token, a *execution.Arena) {
	for tok != nil {
		if tok.Str() == "{" || tok.Str() == "}" || tok.Str() == "for" {
			return
		}
		if tokenizer.Match(tok, "if (") {
			// Variables in the condition steer paths the linear scan cannot see.
			end := tok.LinkAt(1)
			for tok2 := tok.At(2); tok2 != nil && tok2 != end; tok2 = tok2.Next() {
				if tok2.VarID() != 0 {
					a.BailOut(tok2.VarID())
				}
			}
		}
		tok = p.Parse(tok, a).Next()
	}
}

func containsToken(list []*tokenizer.Token, tok *tokenizer.Token) bool {
	for _, t := range list {
		if t == tok {
			return true
		}
	}
	return false
}
