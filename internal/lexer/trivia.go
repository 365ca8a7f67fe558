package lexer

import (
	"displaystr/internal/diag"
	"displaystr/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - ' ', '\t', '\r' коалесцируются в один Space
//   - последовательные '\n' коалесцируются в один Newline
//   - //... до \n -> LineComment; /// и //! -> DocLine (но не ////)
//   - /* ... */ -> BlockComment с вложенностью; /** и /*! -> DocBlock
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\r':
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue

		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue

		case b == '/' && lx.cursor.PeekAt(1) == '/':
			lx.scanLineComment(start)
			continue

		case b == '/' && lx.cursor.PeekAt(1) == '*':
			lx.scanBlockComment(start)
			continue
		}
		return
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

func (lx *Lexer) scanLineComment(start Mark) {
	kind := token.TriviaLineComment
	third, fourth := lx.cursor.PeekAt(2), lx.cursor.PeekAt(3)
	if (third == '/' && fourth != '/') || third == '!' {
		kind = token.TriviaDocLine
	}
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	lx.pushTrivia(kind, start)
}

func (lx *Lexer) scanBlockComment(start Mark) {
	kind := token.TriviaBlockComment
	third, fourth := lx.cursor.PeekAt(2), lx.cursor.PeekAt(3)
	if (third == '*' && fourth != '*' && fourth != '/') || third == '!' {
		kind = token.TriviaDocBlock
	}
	lx.cursor.Advance(2)
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		switch {
		case lx.cursor.HasPrefix("/*"):
			lx.cursor.Advance(2)
			depth++
		case lx.cursor.HasPrefix("*/"):
			lx.cursor.Advance(2)
			depth--
		default:
			lx.cursor.Bump()
		}
	}
	if depth > 0 {
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	}
	lx.pushTrivia(kind, start)
}
