package expand

import (
	"displaystr/internal/diag"
	"displaystr/internal/token"
)

// parseModifiers reads the attribute arguments. `doc` is the only
// recognised flag; anything else is reported and ignored.
func (p *parser) parseModifiers(args []token.Token) Modifiers {
	c := NewCursor(args)
	first, ok := c.Next()
	if !ok {
		return Modifiers{}
	}
	if !first.IsIdent("doc") {
		p.report(diag.ExpUnexpectedModifier, first.Span, msgUnexpectedToken)
		return Modifiers{}
	}
	if extra, ok := c.Next(); ok {
		// флаг остаётся включённым
		p.report(diag.ExpUnexpectedModifier, extra.Span, msgUnexpectedToken)
	}
	return Modifiers{Doc: true}
}
