package lexer

import (
	"displaystr/internal/diag"
	"displaystr/internal/token"
)

// scanPunct выдаёт один символ пунктуации за раз. Составные операторы
// (::, =>, ->) собираются из нескольких Punct со Spacing=Joint.
// Скобки тоже выходят как Punct; BuildTree превращает их в группы.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()

	if isPunctByte(b) || isDelimByte(b) {
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		tok := token.Token{Kind: token.Punct, Span: sp, Text: string(b), Spacing: token.Alone}
		if isPunctByte(b) && lx.joinsNext() {
			tok.Spacing = token.Joint
		}
		return tok
	}

	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character "+quoteChar(lx.text(sp)))
	return lx.invalid(sp)
}

// joinsNext: следующий байт: пунктуация вплотную (и не начало комментария).
func (lx *Lexer) joinsNext() bool {
	n := lx.cursor.Peek()
	if !isPunctByte(n) {
		return false
	}
	if n == '/' {
		if next := lx.cursor.PeekAt(1); next == '/' || next == '*' {
			return false
		}
	}
	return true
}

func quoteChar(s string) string {
	return "`" + s + "`"
}
