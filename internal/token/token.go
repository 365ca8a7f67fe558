package token

import (
	"strconv"
	"strings"
	"unicode"

	"displaystr/internal/source"
)

// Token is one node of a token tree.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia

	// Punct only.
	Spacing Spacing

	// Group only.
	// Span covers the whole group, delimiters included.
	Delim     Delimiter
	Children  []Token
	Trailing  []Trivia    // trivia between the last child and the close delimiter
	Close     source.Span // closing delimiter only; empty when auto-closed
	Multiline bool        // open and close were on different source lines
}

// IsIdent reports whether t is the identifier name. An empty name matches
// any identifier.
func (t Token) IsIdent(name string) bool {
	return t.Kind == Ident && (name == "" || t.Text == name)
}

// IsPunct reports whether t is the punctuation character ch.
func (t Token) IsPunct(ch byte) bool {
	return t.Kind == Punct && len(t.Text) == 1 && t.Text[0] == ch
}

// IsGroup reports whether t is a group with delimiter d.
func (t Token) IsGroup(d Delimiter) bool {
	return t.Kind == Group && t.Delim == d
}

// IsStringLit reports whether t is a string-valued literal usable as a
// format string.
func (t Token) IsStringLit() bool {
	return t.Kind == StringLit
}

// IsLiteral reports whether t is any literal.
func (t Token) IsLiteral() bool {
	return t.Kind.IsLiteral()
}

// String renders the token roughly as it was written. It is meant for
// debugging output; use the format package to print streams.
func (t Token) String() string {
	if t.Kind != Group {
		return t.Text
	}
	var b strings.Builder
	b.WriteString(t.Delim.Open())
	for i, c := range t.Children {
		if i > 0 && !(t.Children[i-1].Kind == Punct && t.Children[i-1].Spacing == Joint) {
			b.WriteByte(' ')
		}
		b.WriteString(c.String())
	}
	b.WriteString(t.Delim.Close())
	return b.String()
}

// NewIdent builds a synthetic identifier.
func NewIdent(name string) Token {
	return Token{Kind: Ident, Text: name}
}

// NewPunct builds a synthetic punctuation token.
func NewPunct(ch byte, spacing Spacing) Token {
	return Token{Kind: Punct, Text: string(ch), Spacing: spacing}
}

// NewPuncts splits op ("::", "=>") into joint punctuation tokens; the last
// one is Alone.
func NewPuncts(op string) []Token {
	out := make([]Token, 0, len(op))
	for i := 0; i < len(op); i++ {
		sp := Joint
		if i == len(op)-1 {
			sp = Alone
		}
		out = append(out, NewPunct(op[i], sp))
	}
	return out
}

// NewGroup builds a synthetic group. multiline is a layout hint for printers.
func NewGroup(d Delimiter, multiline bool, children ...Token) Token {
	return Token{Kind: Group, Delim: d, Children: children, Multiline: multiline}
}

// NewString builds a synthetic string literal whose value is s.
func NewString(s string) Token {
	return Token{Kind: StringLit, Text: QuoteString(s)}
}

// WithSpan returns a copy of t located at sp; children are left alone.
func (t Token) WithSpan(sp source.Span) Token {
	t.Span = sp
	return t
}

// QuoteString renders s as a double-quoted literal using the escapes the
// target language accepts (\n, \t, \u{..}, ...).
func QuoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if unicode.IsPrint(r) {
				b.WriteRune(r)
			} else {
				b.WriteString(`\u{`)
				b.WriteString(strconv.FormatInt(int64(r), 16))
				b.WriteByte('}')
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
