package expand

import "displaystr/internal/token"

// angleDepth tracks `<`/`>` nesting over a flat token run. Groups are
// already folded, so only angle brackets need counting. The `>` of `->`
// and `=>` never closes anything.
type angleDepth struct {
	depth int
	prev  token.Token
}

func (a *angleDepth) step(tok token.Token) {
	switch {
	case tok.IsPunct('<'):
		a.depth++
	case tok.IsPunct('>') && a.depth > 0 && !isArrowHead(a.prev):
		a.depth--
	}
	a.prev = tok
}

// top reports whether the tracker is outside any angle brackets.
func (a *angleDepth) top() bool {
	return a.depth == 0
}

func isArrowHead(prev token.Token) bool {
	return prev.Spacing == token.Joint && (prev.IsPunct('-') || prev.IsPunct('='))
}
