package format

import "displaystr/internal/token"

// comments prints the comment trivia of a token. Whitespace trivia is
// dropped except that, in block mode, blank lines between siblings collapse
// to a single one.
func (p *printer) comments(trivia []token.Trivia, block bool, sp *spacer) {
	w := p.writer
	newlines := 0
	for _, tr := range trivia {
		switch {
		case tr.Kind == token.TriviaNewline:
			newlines += len(tr.Text)
			if block && newlines > 1 && w.AtLineStart() && sp.n > 0 {
				w.BlankLine()
			}
		case tr.Kind.EndsLine():
			newlines = 0
			w.Space()
			w.WriteString(tr.Text)
			w.Newline()
		case tr.Kind.IsComment():
			newlines = 0
			w.Space()
			w.WriteString(tr.Text)
			sp.forceSpace = true
		}
	}
}

// sameLineComments prints a line comment that sits on the same source line
// before next, so it stays at the end of the current line. It returns how
// many leading trivia of next were consumed.
func (p *printer) sameLineComments(next token.Token) int {
	for i, tr := range next.Leading {
		switch {
		case tr.Kind == token.TriviaSpace:
			continue
		case tr.Kind.EndsLine():
			p.writer.Space()
			p.writer.WriteString(tr.Text)
			return i + 1
		}
		return 0
	}
	return 0
}

func hasComments(trivia []token.Trivia) bool {
	for _, tr := range trivia {
		if tr.Kind.IsComment() {
			return true
		}
	}
	return false
}
