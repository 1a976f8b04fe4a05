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

package symtab_test

import (
	"testing"

	"github.com/Pooja0509/cppcheck/symtab"
	"github.com/Pooja0509/cppcheck/tokenizer"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func build(t *testing.T, src, filename string) (*tokenizer.List, *symtab.Database) {
	t.Helper()
	list := tokenizer.Tokenize(src, filename)
	return list, symtab.Build(list)
}

// varByName finds a variable declared directly in scope.
func varByName(s *symtab.Scope, name string) *symtab.Variable {
	for _, v := range s.VarList {
		if v.Name() == name {
			return v
		}
	}
	return nil
}

func TestFunctionScopeAndParameters(t *testing.T) {
	t.Parallel()

	_, db := build(t, "int f(int a, char *p) { int x; x = a; return x; }", "test.c")
	fns := db.Functions()
	require.Len(t, fns, 1)
	fn := fns[0]
	require.Equal(t, "f", fn.Name)
	require.Equal(t, symtab.ScopeFunction, fn.Type)
	require.Equal(t, "{", fn.BodyStart.Str())
	require.Equal(t, fn.BodyStart.Link(), fn.BodyEnd)
	require.Equal(t, db.Global, fn.NestedIn)

	a := varByName(fn, "a")
	require.NotNil(t, a)
	require.True(t, a.IsArgument())
	require.False(t, a.IsPointer())

	p := varByName(fn, "p")
	require.NotNil(t, p)
	require.True(t, p.IsArgument())
	require.True(t, p.IsPointer())

	x := varByName(fn, "x")
	require.NotNil(t, x)
	require.False(t, x.IsArgument())
	require.Equal(t, x, db.VariableForID(x.ID()))

	// Every occurrence of x is stamped with its id.
	use := tokenizer.FindMatch(fn.BodyStart, fn.BodyEnd, "%varid% = %var%", x.ID())
	require.NotNil(t, use)
	require.Equal(t, "x", use.Str())
	ret := tokenizer.FindMatch(fn.BodyStart, fn.BodyEnd, "return %varid% ;", x.ID())
	require.NotNil(t, ret)
}

func TestDeclaratorFlags(t *testing.T) {
	t.Parallel()

	src := `
void f(int &r) {
	int plain;
	int init = 0;
	char buf[16];
	char *ptr;
	const int c = 1;
	static int st;
	extern int ext;
}
`
	_, db := build(t, src, "test.cpp")
	fn := db.Functions()[0]

	r := varByName(fn, "r")
	require.NotNil(t, r)
	require.True(t, r.IsReference())

	require.False(t, varByName(fn, "plain").HasInit())
	require.True(t, varByName(fn, "init").HasInit())
	require.True(t, varByName(fn, "buf").IsArray())
	require.True(t, varByName(fn, "ptr").IsPointer())
	require.True(t, varByName(fn, "c").IsConst())
	require.True(t, varByName(fn, "st").IsStatic())
	require.True(t, varByName(fn, "ext").IsExtern())
}

func TestMultiDeclarator(t *testing.T) {
	t.Parallel()

	_, db := build(t, "void f() { int a, *b, c = 1; }", "test.c")
	fn := db.Functions()[0]

	a := varByName(fn, "a")
	b := varByName(fn, "b")
	c := varByName(fn, "c")
	require.NotNil(t, a)
	require.NotNil(t, b)
	require.NotNil(t, c)
	require.False(t, a.IsPointer())
	require.True(t, b.IsPointer())
	require.True(t, c.HasInit())
	require.NotEqual(t, a.ID(), b.ID())
	require.NotEqual(t, b.ID(), c.ID())
}

func TestShadowing(t *testing.T) {
	t.Parallel()

	list, db := build(t, "void f() { int x; { int x; x = 1; } x = 2; }", "test.c")
	fn := db.Functions()[0]
	outer := varByName(fn, "x")
	require.NotNil(t, outer)
	require.Len(t, fn.NestedList, 1)
	block := fn.NestedList[0]
	require.Equal(t, symtab.ScopeBlock, block.Type)
	inner := varByName(block, "x")
	require.NotNil(t, inner)
	require.NotEqual(t, outer.ID(), inner.ID())

	// The write inside the block resolves to the inner x, the one after
	// it to the outer x.
	require.NotNil(t, tokenizer.FindMatch(list.Front(), nil, "%varid% = 1", inner.ID()))
	require.Nil(t, tokenizer.FindMatch(list.Front(), nil, "%varid% = 1", outer.ID()))
	require.NotNil(t, tokenizer.FindMatch(list.Front(), nil, "%varid% = 2", outer.ID()))
}

func TestFunctionDeclarationIsNotVariable(t *testing.T) {
	t.Parallel()

	_, db := build(t, "void f() { int g(); int x; }", "test.c")
	fn := db.Functions()[0]
	require.Nil(t, varByName(fn, "g"))
	require.NotNil(t, varByName(fn, "x"))
}

func TestForHeaderDeclaration(t *testing.T) {
	t.Parallel()

	list, db := build(t, "void f() { for (int i = 0; i < 10; i++) { g(i); } }", "test.c")
	fn := db.Functions()[0]
	i := varByName(fn, "i")
	require.NotNil(t, i)
	require.True(t, i.HasInit())
	require.NotNil(t, tokenizer.FindMatch(list.Front(), nil, "( %varid% )", i.ID()))
}

func TestClassScopeNotAFunction(t *testing.T) {
	t.Parallel()

	_, db := build(t, "struct S { int m; }; void f() { int x; }", "test.cpp")
	require.Len(t, db.Functions(), 1)
	require.Equal(t, "f", db.Functions()[0].Name)

	var class *symtab.Scope
	for _, s := range db.Global.NestedList {
		if s.IsClassOrStruct() {
			class = s
		}
	}
	require.NotNil(t, class)
	require.Equal(t, "S", class.Name)
}

func TestIsScopeNoReturn(t *testing.T) {
	t.Parallel()

	_, db := build(t, "void f() { exit(1); }", "test.c")
	require.True(t, symtab.IsScopeNoReturn(db.Functions()[0].BodyEnd))

	_, db = build(t, "void f() { return; }", "test.c")
	require.False(t, symtab.IsScopeNoReturn(db.Functions()[0].BodyEnd))

	_, db = build(t, "void f() { for (;;) { poll(); } }", "test.c")
	require.True(t, symtab.IsScopeNoReturn(db.Functions()[0].BodyEnd))

	_, db = build(t, "void f() { while (1) { poll(); } }", "test.c")
	require.True(t, symtab.IsScopeNoReturn(db.Functions()[0].BodyEnd))

	_, db = build(t, "void f() { while (1) { if (done()) { break; } } }", "test.c")
	require.False(t, symtab.IsScopeNoReturn(db.Functions()[0].BodyEnd))

	_, db = build(t, "void f() { while (more()) { poll(); } }", "test.c")
	require.False(t, symtab.IsScopeNoReturn(db.Functions()[0].BodyEnd))

	require.False(t, symtab.IsScopeNoReturn(nil))
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
