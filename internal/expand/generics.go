package expand

import "displaystr/internal/token"

// implGenerics derives the impl's parameter list and the type's argument
// list from the enum's generics: `<'a, T: Clone = u8, const N: usize>`
// gives `<'a, T: Clone, const N: usize>` and `<'a, T, N>`. Both are empty
// when the enum has no parameters.
func implGenerics(generics []token.Token) (params, args []token.Token) {
	if len(generics) < 2 {
		return nil, nil
	}
	inner := generics[1 : len(generics)-1]
	for _, param := range splitTopLevel(inner) {
		param = stripAttrs(param)
		name := paramName(param)
		if name == nil {
			continue
		}
		if len(params) > 0 {
			params = append(params, token.NewPunct(',', token.Alone))
			args = append(args, token.NewPunct(',', token.Alone))
		}
		params = append(params, bare(cutDefault(param))...)
		args = append(args, name...)
	}
	if len(params) == 0 {
		return nil, nil
	}
	return angled(params), angled(args)
}

func angled(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks)+2)
	out = append(out, token.NewPunct('<', token.Alone))
	out = append(out, toks...)
	return append(out, token.NewPunct('>', token.Alone))
}

// splitTopLevel cuts toks at commas outside angle brackets. A trailing
// comma does not produce an empty part.
func splitTopLevel(toks []token.Token) [][]token.Token {
	var (
		parts [][]token.Token
		start int
		depth angleDepth
	)
	for i, tok := range toks {
		if tok.IsPunct(',') && depth.top() {
			parts = append(parts, toks[start:i])
			start = i + 1
		}
		depth.step(tok)
	}
	if start < len(toks) {
		parts = append(parts, toks[start:])
	}
	return parts
}

func stripAttrs(param []token.Token) []token.Token {
	for len(param) >= 2 && param[0].IsPunct('#') && param[1].IsGroup(token.Bracket) {
		param = param[2:]
	}
	return param
}

// cutDefault drops `= default` from a parameter.
func cutDefault(param []token.Token) []token.Token {
	var depth angleDepth
	for i, tok := range param {
		if tok.IsPunct('=') && depth.top() && !gluedEq(param, i) {
			return param[:i]
		}
		depth.step(tok)
	}
	return param
}

// gluedEq reports whether the `=` at i is part of `==`, `=>`, `<=` and the
// like rather than a default.
func gluedEq(toks []token.Token, i int) bool {
	if i > 0 && toks[i-1].Kind == token.Punct && toks[i-1].Spacing == token.Joint {
		return true
	}
	if toks[i].Spacing == token.Joint && i+1 < len(toks) {
		next := toks[i+1]
		return next.IsPunct('=') || next.IsPunct('>')
	}
	return false
}

// paramName is the argument that refers to a parameter: the lifetime,
// the name after `const`, or the type parameter's identifier.
func paramName(param []token.Token) []token.Token {
	if len(param) == 0 {
		return nil
	}
	first := param[0]
	switch {
	case first.Kind == token.Lifetime:
		return bare(param[:1])
	case first.IsIdent("const") && len(param) > 1 && param[1].Kind == token.Ident:
		return bare(param[1:2])
	case first.Kind == token.Ident:
		return bare(param[:1])
	}
	return nil
}

// bare deep-copies toks without trivia, for tokens re-used in generated
// code.
func bare(toks []token.Token) []token.Token {
	out := make([]token.Token, len(toks))
	for i, tok := range toks {
		tok.Leading = nil
		if tok.Kind == token.Group {
			tok.Children = bare(tok.Children)
			tok.Trailing = nil
		}
		out[i] = tok
	}
	return out
}
