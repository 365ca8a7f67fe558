package expand

import (
	"strconv"

	"displaystr/internal/diag"
	"displaystr/internal/token"
)

// emitDeclaration rebuilds the enum with templates removed. Copied tokens
// keep their trivia so the printer can lay them out like the source.
func emitDeclaration(h Header, variants []Variant, mods Modifiers) []token.Token {
	out := make([]token.Token, 0, len(h.Prefix)+len(h.Generics)+len(h.Where)+2)
	out = append(out, h.Prefix...)
	out = append(out, h.Name)
	out = append(out, h.Generics...)
	out = append(out, h.Where...)

	var body []token.Token
	for _, v := range variants {
		body = append(body, v.Attrs...)
		head := append(append([]token.Token(nil), v.Vis...), v.Ident)
		if mods.Doc && v.Err == nil {
			doc := docAttr(v.Template.Literal)
			if len(v.Attrs) == 0 {
				// комментарии варианта остаются над #[doc]
				doc[0].Leading = head[0].Leading
				head[0].Leading = nil
			}
			body = append(body, doc...)
		}
		body = append(body, head...)
		if v.Fields != nil {
			body = append(body, *v.Fields)
		}
		if v.Comma != nil {
			body = append(body, *v.Comma)
		}
	}
	group := h.Body
	group.Children = body
	return append(out, group)
}

// docAttr builds `#[doc = <literal>]`.
func docAttr(lit token.Token) []token.Token {
	lit.Leading = nil
	return []token.Token{
		token.NewPunct('#', token.Alone),
		token.NewGroup(token.Bracket, false,
			token.NewIdent("doc"),
			token.NewPunct('=', token.Alone),
			lit,
		),
	}
}

// emitError builds `compile_error! { "message" }` located at the
// diagnostic.
func emitError(d diag.Diagnostic) []token.Token {
	return []token.Token{
		token.NewIdent("compile_error").WithSpan(d.Primary),
		token.NewPunct('!', token.Alone).WithSpan(d.Primary),
		token.NewGroup(token.Brace, false, token.NewString(d.Message).WithSpan(d.Primary)).WithSpan(d.Primary),
	}
}

// emitImpl builds the Display impl with one match arm per variant.
func emitImpl(h Header, variants []Variant) []token.Token {
	var arms []token.Token
	for _, v := range variants {
		arms = append(arms, emitArm(v)...)
	}

	params, args := implGenerics(h.Generics)
	name := h.Name
	name.Leading = nil

	var out []token.Token
	out = append(out, token.NewIdent("impl"))
	out = append(out, params...)
	out = append(out, corePath("fmt", "Display")...)
	out = append(out, token.NewIdent("for"), name)
	out = append(out, args...)
	out = append(out, bare(h.Where)...)

	recv := []token.Token{
		token.NewPunct('&', token.Alone),
		token.NewIdent("self"),
		token.NewPunct(',', token.Alone),
		token.NewIdent("f"),
		token.NewPunct(':', token.Alone),
		token.NewPunct('&', token.Alone),
		token.NewIdent("mut"),
	}
	recv = append(recv, corePath("fmt", "Formatter")...)

	sig := []token.Token{
		token.NewIdent("fn"),
		token.NewIdent("fmt"),
		token.NewGroup(token.Paren, false, recv...),
	}
	sig = append(sig, token.NewPuncts("->")...)
	sig = append(sig, corePath("fmt", "Result")...)
	sig = append(sig, token.NewGroup(token.Brace, true,
		token.NewIdent("match"),
		token.NewIdent("self"),
		token.NewGroup(token.Brace, true, arms...),
	))

	return append(out, token.NewGroup(token.Brace, true, sig...))
}

// emitArm builds `Self::V <bindings> => f.write_fmt(::core::format_args!(<lit> <extras>)),`.
// A variant whose template failed formats as the empty string.
func emitArm(v Variant) []token.Token {
	lit, extra := v.Template.Literal, v.Template.Extra
	if v.Err != nil {
		lit, extra = token.NewString(""), nil
	}
	lit.Leading = nil
	ident := v.Ident
	ident.Leading = nil

	call := append(corePath("format_args"), token.NewPunct('!', token.Alone))
	call = append(call, token.NewGroup(token.Paren, false, append([]token.Token{lit}, bare(extra)...)...))

	var out []token.Token
	out = append(out, token.NewIdent("Self"))
	out = append(out, token.NewPuncts("::")...)
	out = append(out, ident, bindings(v.Shape))
	out = append(out, token.NewPuncts("=>")...)
	out = append(out,
		token.NewIdent("f"),
		token.NewPunct('.', token.Alone),
		token.NewIdent("write_fmt"),
		token.NewGroup(token.Paren, false, call...),
		token.NewPunct(',', token.Alone),
	)
	return out
}

// bindings destructures a variant: `{}` for units, `(_0, _1,)` for tuples
// and `{a, b,}` for structs.
func bindings(shape Shape) token.Token {
	switch s := shape.(type) {
	case Positional:
		var names []token.Token
		for i := range s.N {
			names = append(names, token.NewIdent("_"+strconv.Itoa(i)), token.NewPunct(',', token.Alone))
		}
		return token.NewGroup(token.Paren, false, names...)
	case Named:
		var names []token.Token
		for _, f := range s.Fields {
			names = append(names, f, token.NewPunct(',', token.Alone))
		}
		return token.NewGroup(token.Brace, false, names...)
	default:
		return token.NewGroup(token.Brace, false)
	}
}

// corePath builds `::core::seg::seg`.
func corePath(segs ...string) []token.Token {
	out := append(token.NewPuncts("::"), token.NewIdent("core"))
	for _, s := range segs {
		out = append(out, token.NewPuncts("::")...)
		out = append(out, token.NewIdent(s))
	}
	return out
}
