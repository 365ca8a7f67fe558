package lexer

import (
	"displaystr/internal/diag"
	"displaystr/internal/source"
	"displaystr/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// Скобки приходят как одиночные Punct; группы собирает BuildTree.
// После EOF всегда возвращает EOF; trivia в конце файла висят на EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()
	leading := lx.takeHold()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: leading}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == 'r' && lx.isRawStringStart(1):
		tok = lx.scanRawString(token.StringLit, 1)
	case ch == 'b' && lx.cursor.PeekAt(1) == 'r' && lx.isRawStringStart(2):
		tok = lx.scanRawString(token.ByteStringLit, 2)
	case ch == 'b' && lx.cursor.PeekAt(1) == '"':
		lx.cursor.Bump()
		tok = lx.scanQuoted(lx.cursor.Mark()-1, '"', token.ByteStringLit)
	case ch == 'b' && lx.cursor.PeekAt(1) == '\'':
		lx.cursor.Bump()
		tok = lx.scanQuoted(lx.cursor.Mark()-1, '\'', token.ByteLit)
	case ch == 'r' && lx.cursor.PeekAt(1) == '#' && lx.isIdentStartAt(2):
		tok = lx.scanIdent()
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdent()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanQuoted(lx.cursor.Mark(), '"', token.StringLit)
	case ch == '\'':
		tok = lx.scanCharOrLifetime()
	default:
		tok = lx.scanPunct()
	}

	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, "token is too long")
		lx.cursor.Off = lx.cursor.Limit
		tok = token.Token{Kind: token.Invalid, Span: tok.Span}
	}

	tok.Leading = leading
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All drains the lexer, EOF included.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	out := make([]token.Trivia, len(lx.hold))
	copy(out, lx.hold)
	return out
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
