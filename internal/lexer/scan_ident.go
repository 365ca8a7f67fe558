package lexer

import (
	"displaystr/internal/token"

	"golang.org/x/text/unicode/norm"
)

// scanIdent сканирует идентификатор, включая raw-форму r#name.
// Ключевых слов здесь нет: `enum`, `pub` и прочие остаются Ident, как в
// proc-macro токенах. Не-ASCII имена приводятся к NFC.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.HasPrefix("r#") && lx.isIdentStartAt(2) {
		lx.cursor.Advance(2)
	}

	r, sz := lx.peekRuneAt(0)
	if sz == 0 || !isIdentStartRune(r) {
		lx.cursor.Reset(start)
		return lx.scanPunct()
	}
	lx.bumpRune()
	lx.bumpIdentContinue()

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8RuneSelf {
			text = norm.NFC.String(text)
			break
		}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
