package token

// Kind is the lexical category of a token.
type Kind uint8

const (
	// Invalid marks a token the lexer could not classify.
	Invalid Kind = iota
	// EOF terminates a flat token stream. Trees never contain it.
	EOF
	// Ident is an identifier or keyword, including raw identifiers (r#type).
	Ident
	// Lifetime is a tick followed by an identifier ('a, 'static).
	Lifetime
	// Punct is a single punctuation character.
	Punct
	// StringLit is "..." or a raw string r"..." / r#"..."#.
	StringLit
	// ByteStringLit is b"..." or br"...".
	ByteStringLit
	// CharLit is 'x'.
	CharLit
	// ByteLit is b'x'.
	ByteLit
	// NumberLit is an integer or float literal with an optional suffix.
	NumberLit
	// Group is a delimited sub-stream: (..), {..} or [..].
	Group
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	Lifetime:      "Lifetime",
	Punct:         "Punct",
	StringLit:     "StringLit",
	ByteStringLit: "ByteStringLit",
	CharLit:       "CharLit",
	ByteLit:       "ByteLit",
	NumberLit:     "NumberLit",
	Group:         "Group",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsLiteral reports whether k is one of the literal kinds.
func (k Kind) IsLiteral() bool {
	switch k {
	case StringLit, ByteStringLit, CharLit, ByteLit, NumberLit:
		return true
	default:
		return false
	}
}

// Delimiter identifies the bracket pair of a Group.
type Delimiter uint8

const (
	// DelimNone is used for non-group tokens.
	DelimNone Delimiter = iota
	// Paren is ( ).
	Paren
	// Brace is { }.
	Brace
	// Bracket is [ ].
	Bracket
)

// Open returns the opening character of d.
func (d Delimiter) Open() string {
	switch d {
	case Paren:
		return "("
	case Brace:
		return "{"
	case Bracket:
		return "["
	}
	return ""
}

// Close returns the closing character of d.
func (d Delimiter) Close() string {
	switch d {
	case Paren:
		return ")"
	case Brace:
		return "}"
	case Bracket:
		return "]"
	}
	return ""
}

func (d Delimiter) String() string {
	switch d {
	case Paren:
		return "Paren"
	case Brace:
		return "Brace"
	case Bracket:
		return "Bracket"
	}
	return "None"
}

// DelimiterFor maps an opening or closing character to its Delimiter.
func DelimiterFor(ch byte) (d Delimiter, open bool) {
	switch ch {
	case '(':
		return Paren, true
	case ')':
		return Paren, false
	case '{':
		return Brace, true
	case '}':
		return Brace, false
	case '[':
		return Bracket, true
	case ']':
		return Bracket, false
	}
	return DelimNone, false
}

// Spacing tells whether a Punct is immediately followed by another Punct.
type Spacing uint8

const (
	// Alone: followed by whitespace, a non-punct token or the end of input.
	Alone Spacing = iota
	// Joint: glued to the next punctuation character (`:` in `::`).
	Joint
)

func (s Spacing) String() string {
	if s == Joint {
		return "Joint"
	}
	return "Alone"
}
