package expand

import "displaystr/internal/token"

// Cursor is an index-based, peekable view over a token slice.
type Cursor struct {
	toks []token.Token
	pos  int
}

func NewCursor(toks []token.Token) *Cursor {
	return &Cursor{toks: toks}
}

// Peek returns the next token without consuming it.
func (c *Cursor) Peek() (token.Token, bool) {
	return c.PeekN(0)
}

// PeekN looks n tokens past the current one.
func (c *Cursor) PeekN(n int) (token.Token, bool) {
	if c.pos+n >= len(c.toks) {
		return token.Token{}, false
	}
	return c.toks[c.pos+n], true
}

// Next consumes and returns the next token.
func (c *Cursor) Next() (token.Token, bool) {
	tok, ok := c.Peek()
	if ok {
		c.pos++
	}
	return tok, ok
}

// Done reports whether every token was consumed.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.toks)
}

// Rest returns the unconsumed tokens without consuming them.
func (c *Cursor) Rest() []token.Token {
	return c.toks[min(c.pos, len(c.toks)):]
}

// PeekPunct reports whether the next token is the punctuation ch.
func (c *Cursor) PeekPunct(ch byte) bool {
	tok, ok := c.Peek()
	return ok && tok.IsPunct(ch)
}

// PeekIdent reports whether the next token is the identifier name.
func (c *Cursor) PeekIdent(name string) bool {
	tok, ok := c.Peek()
	return ok && tok.IsIdent(name)
}

// PeekGroup reports whether the next token is a group delimited by d.
func (c *Cursor) PeekGroup(d token.Delimiter) bool {
	tok, ok := c.Peek()
	return ok && tok.IsGroup(d)
}

// Enter consumes a group delimited by d and returns a cursor over its
// children. The outer cursor moves past the whole group.
func (c *Cursor) Enter(d token.Delimiter) (*Cursor, token.Token, bool) {
	if !c.PeekGroup(d) {
		return nil, token.Token{}, false
	}
	g, _ := c.Next()
	return NewCursor(g.Children), g, true
}
