package expand

import (
	"displaystr/internal/diag"
	"displaystr/internal/token"
)

// parseTemplate reads what follows a variant's `=`: either a string
// literal, or a parenthesised group starting with one. The offending
// token is consumed on failure.
func (p *parser) parseTemplate(c *Cursor, eq token.Token) (Template, *diag.Diagnostic) {
	tok, ok := c.Next()
	if !ok {
		return Template{}, p.report(diag.ExpExpectStringLiteral, eq.Span, msgExpectedString)
	}
	switch {
	case tok.IsStringLit():
		return Template{Literal: tok}, nil
	case tok.IsGroup(token.Paren):
		if len(tok.Children) == 0 {
			return Template{}, p.report(diag.ExpExpectStringLiteral, tok.Span, msgExpectedString)
		}
		first := tok.Children[0]
		if !first.IsStringLit() {
			return Template{}, p.report(diag.ExpExpectStringLiteral, first.Span, msgExpectedString)
		}
		return Template{Literal: first, Extra: tok.Children[1:]}, nil
	default:
		return Template{}, p.report(diag.ExpExpectStringLiteral, tok.Span, msgExpectedString)
	}
}
