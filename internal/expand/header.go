package expand

import (
	"displaystr/internal/diag"
	"displaystr/internal/token"
)

// parseHeader consumes everything up to and including the variant body.
// The second result is false when the item cannot be expanded at all; the
// fatal diagnostic has already been reported.
func (p *parser) parseHeader(c *Cursor) (Header, *diag.Diagnostic) {
	var h Header
	for {
		tok, ok := c.Next()
		if !ok {
			return h, p.report(diag.ExpExpectEnum, p.callSite, msgExpectedEnum)
		}
		h.Prefix = append(h.Prefix, tok)
		if tok.IsPunct('#') {
			// `#` и следующая за ним группа идут одной парой
			if next, ok := c.Next(); ok {
				h.Prefix = append(h.Prefix, next)
			}
			continue
		}
		if tok.IsIdent("enum") {
			break
		}
	}

	name, ok := c.Peek()
	if !ok || name.Kind != token.Ident {
		sp := lastSpan(h.Prefix).Tail()
		if ok {
			sp = name.Span
		}
		return h, p.report(diag.ExpExpectEnumNameOrBody, sp, msgExpectedEnumName)
	}
	c.Next()
	h.Name = name

	if c.PeekPunct('<') {
		h.Generics = collectGenerics(c)
	}
	if c.PeekIdent("where") {
		for !c.Done() && !c.PeekGroup(token.Brace) {
			tok, _ := c.Next()
			h.Where = append(h.Where, tok)
		}
	}

	body, ok := c.Peek()
	if !ok || !body.IsGroup(token.Brace) {
		sp := h.Name.Span.Tail()
		if ok {
			sp = body.Span
		}
		return h, p.report(diag.ExpExpectEnumNameOrBody, sp, msgExpectedEnumBody)
	}
	c.Next()
	h.Body = body
	return h, nil
}

// collectGenerics takes tokens from the opening `<` to its matching `>`.
// Unbalanced input runs to the end of the cursor.
func collectGenerics(c *Cursor) []token.Token {
	var (
		out   []token.Token
		depth angleDepth
	)
	for {
		tok, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
		depth.step(tok)
		if depth.top() {
			return out
		}
	}
}
