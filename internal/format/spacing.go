package format

import "displaystr/internal/token"

// keywords that keep a space before `::`, `(` and `[`.
var keywords = map[string]bool{
	"as": true, "async": true, "break": true, "const": true, "continue": true,
	"dyn": true, "else": true, "enum": true, "extern": true, "fn": true,
	"for": true, "if": true, "impl": true, "in": true, "let": true,
	"loop": true, "match": true, "mod": true, "move": true, "mut": true,
	"ref": true, "return": true, "static": true, "struct": true, "trait": true,
	"type": true, "unsafe": true, "use": true, "where": true, "while": true,
	"yield": true,
}

func isKeyword(t token.Token) bool {
	return t.Kind == token.Ident && keywords[t.Text]
}

// spacer decides whether a space goes between two sibling tokens. It tracks
// the last two tokens and the depth of generic angle brackets.
type spacer struct {
	prev, prev2     token.Token
	n               int
	angle           int
	prevUnary       bool
	prevGenericOpen bool
	prevGenericEnd  bool
	prevIsAttr      bool
	forceSpace      bool

	// afterKw[i] is set when angle bracket i opened right after a keyword
	// (impl<..>, for<..>); the path after such a `>` is a new path.
	afterKw []bool
}

func (s *spacer) want(cur token.Token) bool {
	if s.forceSpace {
		s.forceSpace = false
		return true
	}
	if s.n == 0 {
		return false
	}
	prev := s.prev

	switch {
	case prev.Kind == token.Punct && prev.Spacing == token.Joint && cur.Kind == token.Punct:
		return false
	case cur.IsPunct(',') || cur.IsPunct(';') || cur.IsPunct('.') || prev.IsPunct('.'):
		return false
	case cur.IsPunct(':') && cur.Spacing == token.Alone:
		return false
	case cur.IsPunct(':'):
		// начало `::`
		return !(prev.Kind == token.Ident && !isKeyword(prev)) && !s.prevGenericEnd
	case s.afterPathSep():
		return false
	case prev.IsPunct('#') || prev.IsPunct('$'):
		return false
	case cur.IsPunct('!') && cur.Spacing == token.Alone && prev.Kind == token.Ident:
		return false
	case s.afterBang():
		return cur.IsGroup(token.Brace)
	case (cur.IsGroup(token.Paren) || cur.IsGroup(token.Bracket)) && prev.Kind == token.Ident && !isKeyword(prev):
		return false
	case cur.IsPunct('<') && (prev.Kind == token.Ident || s.afterPathSep()):
		return false
	case s.prevGenericOpen:
		return false
	case cur.IsPunct('>') && s.angle > 0 && !s.arrowAhead():
		return false
	case s.prevUnary:
		return false
	case cur.IsPunct('?') && prev.Kind != token.Punct:
		return false
	}
	return true
}

func (s *spacer) push(cur token.Token) {
	prev := s.prev
	hasPrev := s.n > 0

	genericOpen := cur.IsPunct('<') && (s.opensType() || (hasPrev && (prev.Kind == token.Ident || s.afterPathSep())))
	if genericOpen {
		s.angle++
		s.afterKw = append(s.afterKw, hasPrev && isKeyword(prev))
	}
	genericEnd := false
	if cur.IsPunct('>') && s.angle > 0 && !s.arrowAhead() {
		s.angle--
		genericEnd = !s.afterKw[len(s.afterKw)-1]
		s.afterKw = s.afterKw[:len(s.afterKw)-1]
	}

	unary := false
	if isUnaryOp(cur) {
		switch {
		case hasPrev && prev.Kind == token.Punct && prev.Spacing == token.Joint && isUnaryOp(prev):
			unary = s.prevUnary
		case !hasPrev, prev.Kind == token.Punct && !prev.IsPunct('>'), isKeyword(prev):
			unary = !(cur.IsPunct('!') && hasPrev && prev.Kind == token.Ident)
		}
	}

	s.prevIsAttr = cur.IsGroup(token.Bracket) && hasPrev &&
		(prev.IsPunct('#') || (prev.IsPunct('!') && s.prev2.IsPunct('#')))
	s.forceSpace = false
	s.prevUnary = unary
	s.prevGenericOpen = genericOpen
	s.prevGenericEnd = genericEnd
	s.prev2 = s.prev
	s.prev = cur
	s.n++
}

// afterPathSep: the previous token is the second colon of `::`.
func (s *spacer) afterPathSep() bool {
	return s.n >= 2 && s.prev.IsPunct(':') && s.prev.Spacing == token.Alone &&
		s.prev2.IsPunct(':') && s.prev2.Spacing == token.Joint
}

// opensType: a `<` here starts a qualified path such as `<T as Trait>::X`,
// at the start of a group or right after a lone `:` or a `,`.
func (s *spacer) opensType() bool {
	if s.n == 0 {
		return true
	}
	return s.prev.IsPunct(',') || (s.prev.IsPunct(':') && s.prev.Spacing == token.Alone && !s.afterPathSep())
}

// afterBang: the previous token is the `!` of a macro call or inner attribute.
func (s *spacer) afterBang() bool {
	return s.n >= 2 && s.prev.IsPunct('!') && s.prev.Spacing == token.Alone &&
		(s.prev2.Kind == token.Ident || s.prev2.IsPunct('#'))
}

// arrowAhead: the previous token glues with the current `>` into -> or =>.
func (s *spacer) arrowAhead() bool {
	return s.n > 0 && s.prev.Spacing == token.Joint && (s.prev.IsPunct('-') || s.prev.IsPunct('='))
}

func isUnaryOp(t token.Token) bool {
	return t.IsPunct('&') || t.IsPunct('*') || t.IsPunct('-') || t.IsPunct('!') || t.IsPunct('?')
}
