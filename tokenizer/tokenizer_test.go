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

package tokenizer_test

import (
	"testing"

	"github.com/Pooja0509/cppcheck/tokenizer"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// strs collects the token texts of a list, for comparing whole tokenizations.
func strs(list *tokenizer.List) []string {
	var out []string
	for tok := list.Front(); tok != nil; tok = tok.Next() {
		out = append(out, tok.Str())
	}
	return out
}

func TestTokenizeBasics(t *testing.T) {
	t.Parallel()

	list := tokenizer.Tokenize("int x = 10;", "test.c")
	require.True(t, list.IsC())
	require.Equal(t, []string{"int", "x", "=", "10", ";"}, strs(list))

	front := list.Front()
	require.True(t, front.IsName())
	require.True(t, front.IsStandardType())
	require.Equal(t, 1, front.Line())
	require.Equal(t, 1, front.Column())
	require.Equal(t, "test.c", front.File())

	require.True(t, tokenizer.Tokenize("", "test.cpp").Front() == nil)
	require.False(t, tokenizer.Tokenize("", "test.cpp").IsC())
}

func TestArrowBecomesDot(t *testing.T) {
	t.Parallel()

	list := tokenizer.Tokenize("p->next = p->prev;", "test.c")
	require.Equal(t, []string{"p", ".", "next", "=", "p", ".", "prev", ";"}, strs(list))
}

func TestBracketLinks(t *testing.T) {
	t.Parallel()

	list := tokenizer.Tokenize("f(a[i], (b));", "test.c")
	open := list.Front().Next()
	require.Equal(t, "(", open.Str())
	require.Equal(t, ";", open.Link().Next().Str())
	require.Equal(t, open, open.Link().Link())

	sq := open.Next().Next()
	require.Equal(t, "[", sq.Str())
	require.Equal(t, "]", sq.Link().Str())
}

func TestBraceInsertion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, in string
		want     []string
	}{
		{
			name: "if body",
			in:   "void f() { if (x) y = 1; }",
			want: []string{"void", "f", "(", ")", "{", "if", "(", "x", ")", "{", "y", "=", "1", ";", "}", "}"},
		},
		{
			name: "if else",
			in:   "void f() { if (x) y = 1; else y = 2; }",
			want: []string{"void", "f", "(", ")", "{", "if", "(", "x", ")", "{", "y", "=", "1", ";", "}",
				"else", "{", "y", "=", "2", ";", "}", "}"},
		},
		{
			name: "while body",
			in:   "void f() { while (x) g(); }",
			want: []string{"void", "f", "(", ")", "{", "while", "(", "x", ")", "{", "g", "(", ")", ";", "}", "}"},
		},
		{
			name: "already braced",
			in:   "void f() { if (x) { y = 1; } }",
			want: []string{"void", "f", "(", ")", "{", "if", "(", "x", ")", "{", "y", "=", "1", ";", "}", "}"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, strs(tokenizer.Tokenize(tt.in, "test.c")))
		})
	}
}

func TestPreprocessorLinesSkipped(t *testing.T) {
	t.Parallel()

	list := tokenizer.Tokenize("#include <stdio.h>\nint x;\n", "test.c")
	require.Equal(t, []string{"int", "x", ";"}, strs(list))
	require.Equal(t, 2, list.Front().Line())
}

func TestSuppressions(t *testing.T) {
	t.Parallel()

	src := "// cppcheck-suppress uninitvar\nint x;\n/* cppcheck-suppress uninitdata */\nint y;\n"
	list := tokenizer.Tokenize(src, "test.c")
	require.Equal(t, []tokenizer.Suppression{
		{ID: "uninitvar", Line: 2},
		{ID: "uninitdata", Line: 4},
	}, list.Suppressions())
}

func TestMatch(t *testing.T) {
	t.Parallel()

	list := tokenizer.Tokenize("x[0] = y;", "test.c")
	x := list.Front()

	require.True(t, tokenizer.Match(x, "%var% ["))
	require.True(t, tokenizer.Match(x, "%var% [ %num% ] ="))
	require.True(t, tokenizer.Match(x.At(5), "%var% ;"))
	require.False(t, tokenizer.Match(x, "%num% ["))
	require.False(t, tokenizer.Match(nil, "%var%"))

	// Pattern running past the end of the list.
	require.False(t, tokenizer.Match(x.At(5), "%var% ; %var%"))

	// Character classes match single-character tokens only.
	require.True(t, tokenizer.Match(x.Next(), "[[({]"))
	require.False(t, tokenizer.Match(x, "[[({]"))

	// Negation.
	require.True(t, tokenizer.Match(x, "!!y"))
	require.False(t, tokenizer.Match(x, "!!x"))

	// Alternation.
	require.True(t, tokenizer.Match(x.At(4), "=|+=|-="))
}

func TestMatchOptionalElement(t *testing.T) {
	t.Parallel()

	with := tokenizer.Tokenize("( & x )", "test.c")
	without := tokenizer.Tokenize("( x )", "test.c")
	require.True(t, tokenizer.Match(with.Front(), "( &| %var% )"))
	require.True(t, tokenizer.Match(without.Front(), "( &| %var% )"))
}

func TestMatchVarID(t *testing.T) {
	t.Parallel()

	list := tokenizer.Tokenize("x = x + 1;", "test.c")
	x := list.Front()
	x.SetVarID(7)
	x.At(2).SetVarID(7)

	require.True(t, tokenizer.Match(x, "%varid% =", 7))
	require.False(t, tokenizer.Match(x, "%varid% =", 8))
	// Variable id zero never matches.
	require.False(t, tokenizer.Match(x.At(4), "%varid%", 0))

	found := tokenizer.FindMatch(x.Next(), nil, "%varid% + %num%", 7)
	require.NotNil(t, found)
	require.Equal(t, x.At(2), found)
	require.Nil(t, tokenizer.FindMatch(x.Next(), nil, "%varid% - %num%", 7))
}

func TestMatchOperators(t *testing.T) {
	t.Parallel()

	list := tokenizer.Tokenize("a + b == c && d = e;", "test.c")
	require.True(t, tokenizer.Match(list.Front(), "%var% %op% %var% %op% %var% %op% %var%"))
	// Assignment is not a value-producing operator.
	require.False(t, tokenizer.Match(list.Front().At(7), "%op%"))
	require.True(t, list.Front().At(7).IsAssignmentOp())
}

func TestStrLength(t *testing.T) {
	t.Parallel()

	list := tokenizer.Tokenize(`s = "a\nb";`, "test.c")
	str := list.Front().At(2)
	require.True(t, str.IsString())
	require.Equal(t, 3, str.StrLength())
	require.Equal(t, 0, list.Front().StrLength())
}

func TestUpperCaseName(t *testing.T) {
	t.Parallel()

	list := tokenizer.Tokenize("FOO_1(Bar);", "test.c")
	require.True(t, list.Front().IsUpperCaseName())
	require.False(t, list.Front().At(2).IsUpperCaseName())
}

func TestNilSafeNavigation(t *testing.T) {
	t.Parallel()

	list := tokenizer.Tokenize("x", "test.c")
	x := list.Front()
	require.Nil(t, x.Next())
	require.Nil(t, x.Next().Next())
	require.Nil(t, x.At(5))
	require.Equal(t, "", x.StrAt(5))
	require.Equal(t, 0, x.Next().VarID())
	require.False(t, x.Next().IsName())
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
