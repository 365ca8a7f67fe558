package expand

import (
	"displaystr/internal/diag"
	"displaystr/internal/token"
)

// parseVariants walks the children of the enum body. Every variant that
// has an identifier is returned, whether or not its template was readable.
func (p *parser) parseVariants(body []token.Token) []Variant {
	var variants []Variant
	c := NewCursor(body)
	for !c.Done() {
		var v Variant
		for c.PeekPunct('#') {
			hash, _ := c.Next()
			v.Attrs = append(v.Attrs, hash)
			if g, ok := c.Next(); ok {
				v.Attrs = append(v.Attrs, g)
			}
		}
		if c.PeekIdent("pub") {
			kw, _ := c.Next()
			v.Vis = append(v.Vis, kw)
			if g, ok := c.Peek(); ok && g.IsGroup(token.Paren) {
				c.Next()
				v.Vis = append(v.Vis, g)
			}
		}

		ident, ok := c.Peek()
		if !ok || ident.Kind != token.Ident {
			sp := lastSpan(append(v.Attrs, v.Vis...)).Tail()
			if ok {
				sp = ident.Span
			}
			p.report(diag.ExpExpectVariantIdent, sp, msgExpectedVariantIdent)
			skipToComma(c)
			c.Next()
			continue
		}
		c.Next()
		v.Ident = ident

		next, ok := c.Peek()
		switch {
		case ok && next.IsGroup(token.Paren):
			c.Next()
			v.Fields = &next
			v.Shape = Positional{N: countPositional(next.Children)}
			p.parseDiscriminant(c, &v)
		case ok && next.IsGroup(token.Brace):
			c.Next()
			v.Fields = &next
			v.Shape = Named{Fields: namedFields(next.Children)}
			p.parseDiscriminant(c, &v)
		case ok && !next.IsPunct('=') && !next.IsPunct(','):
			v.Shape = Unit{}
			v.Err = p.report(diag.ExpUnexpectedVariantTok, next.Span, msgUnexpectedToken)
			skipToComma(c)
		default:
			v.Shape = Unit{}
			p.parseDiscriminant(c, &v)
		}

		if comma, ok := c.Peek(); ok && comma.IsPunct(',') {
			c.Next()
			v.Comma = &comma
		}
		variants = append(variants, v)
	}
	return variants
}

// parseDiscriminant expects `= template` after the variant's name and
// fields. Without `=` the rest of the variant up to its comma is dropped.
func (p *parser) parseDiscriminant(c *Cursor, v *Variant) {
	eq, ok := c.Peek()
	if !ok || !eq.IsPunct('=') {
		end := v.Ident.Span
		if v.Fields != nil {
			end = v.Fields.Span
		}
		b := diag.ReportError(p.reporter, diag.ExpMissingDiscriminant, v.Ident.Span, msgMissingDiscriminant).
			WithFix("add a display string", diag.FixEdit{Span: end.Tail(), NewText: ` = ""`})
		b.Emit()
		d := b.Diagnostic()
		v.Err = &d
		skipToComma(c)
		return
	}
	c.Next()
	v.Template, v.Err = p.parseTemplate(c, eq)

	// хвост после шаблона отбрасывается; сам шаблон остаётся в силе
	if tok, ok := c.Peek(); ok && !tok.IsPunct(',') {
		if v.Err == nil {
			p.report(diag.ExpUnexpectedVariantTok, tok.Span, msgUnexpectedToken)
		}
		skipToComma(c)
	}
}

// skipToComma drops tokens up to, not including, the next `,`.
func skipToComma(c *Cursor) {
	for !c.Done() && !c.PeekPunct(',') {
		c.Next()
	}
}
