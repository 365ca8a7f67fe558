package lexer

import (
	"displaystr/internal/diag"
	"displaystr/internal/token"
)

// scanNumber: 0, 123, 1_000, 0b..., 0o..., 0x..., 1.0, 1e-3, 2.5E+10 и
// суффиксы (1u8, 2.0f32). Значение не вычисляется, Text: исходный срез.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		var digit func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		case 'o', 'O':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'x', 'X':
			digit = isHex
		}
		if digit != nil {
			lx.cursor.Advance(2)
			n := 0
			for digit(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
				n++
			}
			if n == 0 {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "missing digits after integer base prefix")
			}
			return lx.finishNumber(start)
		}
	}

	lx.bumpDecDigits()

	// дробная часть: "1.5" и "1.": да; "1..2", "1.foo", "1.0.0": точка не наша
	if lx.cursor.Peek() == '.' {
		next := lx.cursor.PeekAt(1)
		if next != '.' && !isIdentStartByte(next) && next < utf8RuneSelf {
			lx.cursor.Bump()
			lx.bumpDecDigits()
		}
	}

	// экспонента: только если за ней действительно цифры, иначе это суффикс
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		n := uint32(1)
		if s := lx.cursor.PeekAt(1); s == '+' || s == '-' {
			n = 2
		}
		if isDec(lx.cursor.PeekAt(n)) {
			lx.cursor.Advance(n)
			lx.bumpDecDigits()
		}
	}

	return lx.finishNumber(start)
}

func (lx *Lexer) bumpDecDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) finishNumber(start Mark) token.Token {
	lx.bumpIdentContinue()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: lx.text(sp)}
}
