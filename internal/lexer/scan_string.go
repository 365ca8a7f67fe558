package lexer

import (
	"displaystr/internal/diag"
	"displaystr/internal/source"
	"displaystr/internal/token"
)

// scanQuoted сканирует "..." или '...' начиная с открывающей кавычки.
// start может указывать раньше кавычки (префикс b). Escape-последовательности
// не разбираются: Text: ровно исходный срез, как его увидит компилятор.
// Строки могут быть многострочными, символьные литералы: нет.
func (lx *Lexer) scanQuoted(start Mark, quote byte, kind token.Kind) token.Token {
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == quote:
			lx.cursor.Bump()
			lx.bumpIdentContinue() // суффикс литерала
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		case b == '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.bumpRune()
		case b == '\n' && quote == '\'':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		default:
			lx.bumpRune()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	if quote == '\'' {
		lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	} else {
		lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	}
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanRawString сканирует r#"..."# / br#"..."#; prefix: длина r или br.
func (lx *Lexer) scanRawString(kind token.Kind, prefix uint32) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Advance(prefix)
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	if hashes > 255 {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadRawString, sp, "too many `#` symbols in raw string")
	}
	lx.cursor.Bump() // '"'
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		if lx.closesRaw(hashes) {
			lx.cursor.Advance(uint32(hashes))
			lx.bumpIdentContinue()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated raw string")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) closesRaw(hashes int) bool {
	for i := 0; i < hashes; i++ {
		if lx.cursor.PeekAt(uint32(i)) != '#' {
			return false
		}
	}
	return true
}

// scanCharOrLifetime различает 'a' (символ) и 'a (lifetime / label).
func (lx *Lexer) scanCharOrLifetime() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.PeekAt(1) == '\\' {
		return lx.scanQuoted(start, '\'', token.CharLit)
	}
	r, sz := lx.peekRuneAt(1)
	if sz > 0 && r != '\'' && lx.cursor.PeekAt(1+uint32(sz)) == '\'' {
		return lx.scanQuoted(start, '\'', token.CharLit)
	}
	if sz > 0 && isIdentStartRune(r) {
		lx.cursor.Bump() // '
		lx.bumpRune()
		lx.bumpIdentContinue()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Lifetime, Span: sp, Text: lx.text(sp)}
	}
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	return lx.invalid(sp)
}

func (lx *Lexer) invalid(sp source.Span) token.Token {
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
