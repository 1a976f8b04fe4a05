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
	"strings"

	"github.com/Pooja0509/cppcheck/tokenizer"
)

// derefArg1Funcs are standard functions that read the data behind their first argument.
var derefArg1Funcs = map[string]struct{}{
	"memchr": {}, "memcmp": {},
	"strcat": {}, "strncat": {}, "strchr": {}, "strrchr": {},
	"strcmp": {}, "strncmp": {}, "strlen": {}, "strstr": {},
	"strcoll": {}, "strspn": {}, "strcspn": {}, "strpbrk": {},
	"strtol": {}, "strtoul": {}, "strtod": {},
	"fclose": {}, "feof": {}, "fputs": {},
}

// validArg1Funcs are functions whose first argument must be a valid pointer even though
// its current contents are not read.
var validArg1Funcs = map[string]struct{}{
	"memcpy": {}, "memmove": {}, "memset": {},
	"strcpy": {}, "strncpy": {},
	"sprintf": {}, "fread": {}, "fgets": {},
}

// derefArg2Funcs are functions that read the data behind their second argument.
var derefArg2Funcs = map[string]struct{}{
	"memcmp": {}, "memcpy": {}, "memmove": {},
	"strcat": {}, "strncat": {}, "strcmp": {}, "strncmp": {},
	"strcpy": {}, "strncpy": {}, "strstr": {},
}

// printfFormatArg maps printf-family function names to the argument index (from the
// function name token) of the format string.
var printfFormatArg = map[string]int{
	"printf":   2,
	"fprintf":  4,
	"sprintf":  4,
	"snprintf": 6,
}

// parseFunctionCall returns the argument tokens of the call starting at tok that the
// callee dereferences. With pointeeRead the result holds arguments whose pointed-to data
// is read; without, arguments that merely must be valid pointers.
func parseFunctionCall(tok *tokenizer.Token, pointeeRead bool) []*tokenizer.Token {
	var out []*tokenizer.Token
	if !tokenizer.Match(tok, "%var% (") {
		return out
	}
	name := tok.Str()

	// First argument.
	if tokenizer.Match(tok.At(2), "%var% ,|)") && tok.At(2).VarID() != 0 {
		if _, ok := derefArg1Funcs[name]; ok {
			out = append(out, tok.At(2))
		} else if _, ok := validArg1Funcs[name]; ok && !pointeeRead {
			out = append(out, tok.At(2))
		}
	}

	// Second argument.
	if tokenizer.Match(tok.At(2), "%var%|%num%|%str% , %var% ,|)") && tok.At(4).VarID() != 0 {
		if _, ok := derefArg2Funcs[name]; ok {
			out = append(out, tok.At(4))
		}
	}

	// Format string arguments of the printf family: a %s directive reads the
	// corresponding argument as a null-terminated string.
	if fmtIdx, ok := printfFormatArg[name]; ok {
		if fmtTok := tok.At(fmtIdx); fmtTok.IsString() {
			out = append(out, formatStringReads(fmtTok)...)
		}
	}
	return out
}

// formatStringReads pairs the conversion directives of a printf format literal with the
// following arguments and returns the argument tokens read through %s.
func formatStringReads(fmtTok *tokenizer.Token) []*tokenizer.Token {
	var out []*tokenizer.Token
	arg := fmtTok.Next() // "," before the first variadic argument, or ")"
	format := fmtTok.Str()

	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		// Locate the conversion character, skipping flags, width and precision.
		j := i + 1
		for j < len(format) && !isConversionChar(format[j]) && format[j] != '%' {
			j++
		}
		if j >= len(format) {
			break
		}
		if format[j] == '%' { // literal %%
			i = j
			continue
		}

		if arg == nil || arg.Str() != "," {
			break
		}
		argTok := arg.Next()
		if format[j] == 's' && tokenizer.Match(argTok, "%var% ,|)") && argTok.VarID() != 0 {
			out = append(out, argTok)
		}
		arg = skipArgument(argTok)
		i = j
	}
	return out
}

func isConversionChar(ch byte) bool {
	return strings.IndexByte("diouxXeEfgGcspn", ch) >= 0
}

// skipArgument advances from the first token of a call argument to the "," or ")" that
// follows it, honoring nested brackets.
func skipArgument(tok *tokenizer.Token) *tokenizer.Token {
	for ; tok != nil; tok = tok.Next() {
		switch tok.Str() {
		case "(", "[":
			if tok.Link() == nil {
				return nil
			}
			tok = tok.Link()
		case ",", ")":
			return tok
		}
	}
	return nil
}

// isPointerDeRef reports whether the variable occurrence at tok reads through the pointer
// value. unknown is set when the shape could be a dereference but cannot be classified,
// typically a member function call.
func isPointerDeRef(tok *tokenizer.Token) (deref, unknown bool) {
	// *p
	if tok.StrAt(-1) == "*" &&
		tokenizer.Match(tok.At(-2), "return|throw|;|{|}|:|[|(|,|=|%op%") &&
		!tokenizer.Match(tok.At(-3), "sizeof|decltype (") {
		return true, false
	}

	// p.member (the tokenizer rewrites -> to .)
	if tokenizer.Match(tok.Next(), ". %var%") &&
		tok.StrAt(-1) != "&" && tok.StrAt(-1) != "&&" &&
		!tokenizer.Match(tok.At(-2), "& (") &&
		!tokenizer.Match(tok.At(-2), "sizeof|decltype (") {
		if tok.StrAt(3) != "(" {
			return true, false
		}
		return false, true
	}

	// p[i]
	if tok.StrAt(1) == "[" && tok.StrAt(-1) != "&" {
		return true, false
	}

	return false, false
}

// isVariableUsage decides whether the variable occurrence at vartok reads the variable's
// value. It returns false for writes and for occurrences too ambiguous to judge; callers
// treat false as "assume assigned".
func (c *Checker) isVariableUsage(vartok *tokenizer.Token, pointer bool) bool {
	if vartok.StrAt(-1) == "return" {
		return true
	}

	prev := vartok.Prev()
	if prev.IsIncDec() || prev.IsConstOp() {
		if prev.Str() == ">>" && !c.isC {
			// Stream extraction may write the variable.
			return false
		}

		// "*((&var ... = ..." stores the address for a later assignment.
		if prev.Str() == "&" {
			tok2 := vartok.At(-2)
			if tok2 != nil && tok2.Str() == ")" {
				tok2 = tok2.Link().Prev()
			}
			for tok2 != nil && tok2.Str() == "(" {
				tok2 = tok2.Prev()
			}
			for tok2 != nil && tok2.Str() == "*" {
				tok2 = tok2.Prev()
			}
			if tokenizer.Match(tok2, "[;{}] *") {
				for tok3 := vartok; tok3 != nil; tok3 = tok3.Next() {
					if tokenizer.Match(tok3, "[;{}]") {
						break
					}
					if tok3.Str() == "=" {
						return false
					}
				}
			}
		}

		if prev.Str() != "&" || !tokenizer.Match(vartok.At(-2), "[(,=?:]") {
			return true
		}
	}

	if pointer {
		if deref, _ := isPointerDeRef(vartok); deref {
			// In parameter position the callee may only store the pointer value.
			functionParameter := tokenizer.Match(vartok.At(-2), "%var% (") || vartok.StrAt(-1) == ","
			if !functionParameter {
				return true
			}
		}
	}

	if !c.isC && tokenizer.Match(vartok.Next(), "<<|>>") {
		// Stream operators read PODs; user-defined operator semantics are unknown.
		v := c.db.VariableForID(vartok.VarID())
		return v != nil && v.TypeStartToken().IsStandardType()
	}

	if vartok.Next().IsIncDec() || vartok.Next().IsConstOp() {
		return true
	}

	if vartok.StrAt(1) == "]" {
		return true
	}

	return false
}
