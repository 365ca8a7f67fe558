package expand

import "displaystr/internal/token"

// countPositional returns the number of fields in a tuple variant's
// parenthesised group: zero when empty, otherwise one more than the
// separators that are neither trailing nor nested in angle brackets.
func countPositional(children []token.Token) int {
	if len(children) == 0 {
		return 0
	}
	n := 1
	var depth angleDepth
	for i, tok := range children {
		if tok.IsPunct(',') && depth.top() && i < len(children)-1 {
			n++
		}
		depth.step(tok)
	}
	return n
}

type fieldState uint8

const (
	beforeColon fieldState = iota
	insideType
)

// namedFields extracts field names from a struct variant's brace group.
// A name is the identifier right before a lone `:`; inside the type that
// follows, colons and commas nested in angle brackets are ignored until a
// top-level `,` ends the field.
func namedFields(children []token.Token) []token.Token {
	var (
		fields []token.Token
		state  = beforeColon
		depth  angleDepth
	)
	for i, tok := range children {
		switch state {
		case beforeColon:
			if i > 0 && isFieldColon(children, i) && children[i-1].Kind == token.Ident {
				name := children[i-1]
				name.Leading = nil
				fields = append(fields, name)
				state = insideType
				depth = angleDepth{}
			}
		case insideType:
			if tok.IsPunct(',') && depth.top() {
				state = beforeColon
			}
			depth.step(tok)
		}
	}
	return fields
}

// isFieldColon reports whether toks[i] is a single `:`, not half of `::`.
func isFieldColon(toks []token.Token, i int) bool {
	if !toks[i].IsPunct(':') {
		return false
	}
	if toks[i].Spacing == token.Joint && i+1 < len(toks) && toks[i+1].IsPunct(':') {
		return false
	}
	return !(i > 0 && toks[i-1].IsPunct(':') && toks[i-1].Spacing == token.Joint)
}
