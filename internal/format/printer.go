package format

import (
	"fmt"

	"displaystr/internal/token"
)

// Layout selects how token trees are laid out.
type Layout uint8

const (
	// LayoutPretty breaks multiline brace groups into indented blocks.
	LayoutPretty Layout = iota
	// LayoutCompact prints everything on one line (line comments excepted).
	LayoutCompact
)

func (l Layout) String() string {
	if l == LayoutCompact {
		return "compact"
	}
	return "pretty"
}

// ParseLayout maps "pretty" / "compact" to a Layout.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "", "pretty":
		return LayoutPretty, nil
	case "compact":
		return LayoutCompact, nil
	}
	return LayoutPretty, fmt.Errorf("unknown layout %q (want pretty or compact)", s)
}

type Options struct {
	Layout      Layout
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

type printer struct {
	writer *Writer
	opt    Options
}

// Print renders toks. The output has no trailing newline.
func Print(toks []token.Token, opt Options) []byte {
	opt = opt.withDefaults()
	p := printer{writer: NewWriter(opt), opt: opt}
	p.stream(toks, p.opt.Layout == LayoutPretty, true)
	p.writer.trimTrailingSpace()
	return p.writer.Bytes()
}

// String is Print for callers that want a string.
func String(toks []token.Token, opt Options) string {
	return string(Print(toks, opt))
}

// stream prints a sequence of sibling tokens. In block mode line breaks go
// after separators, attributes and brace groups.
func (p *printer) stream(toks []token.Token, block, top bool) {
	var sp spacer
	skip := 0
	for i, tok := range toks {
		p.comments(tok.Leading[skip:], block, &sp)
		skip = 0

		if !p.writer.AtLineStart() && sp.want(tok) {
			p.writer.Space()
		}
		p.token(tok)
		sp.push(tok)

		if !block || i == len(toks)-1 {
			continue
		}
		next := toks[i+1]
		if !p.breaksAfter(tok, next, &sp, top) {
			continue
		}
		skip = p.sameLineComments(next)
		if top && tok.IsGroup(token.Brace) && tok.Multiline {
			p.writer.BlankLine()
		} else {
			p.writer.Newline()
		}
	}
}

// breaksAfter: commas split lines only between items of a block; at the
// top level they belong to generics or a where clause.
func (p *printer) breaksAfter(tok, next token.Token, sp *spacer, top bool) bool {
	switch {
	case tok.IsPunct(','):
		return !top && sp.angle == 0
	case tok.IsPunct(';'):
		return true
	case tok.IsGroup(token.Bracket) && sp.prevIsAttr:
		return true
	case tok.IsGroup(token.Brace):
		return next.Kind != token.Punct
	}
	return false
}

func (p *printer) token(tok token.Token) {
	if tok.Kind != token.Group {
		p.writer.WriteString(tok.Text)
		return
	}
	p.group(tok)
}

func (p *printer) group(tok token.Token) {
	if tok.Delim == token.DelimNone {
		p.stream(tok.Children, false, false)
		return
	}
	w := p.writer
	w.WriteString(tok.Delim.Open())

	if p.opt.Layout == LayoutPretty && tok.Delim == token.Brace && tok.Multiline {
		w.IndentPush()
		w.Newline()
		p.stream(tok.Children, true, false)
		var sp spacer
		p.comments(tok.Trailing, true, &sp)
		w.IndentPop()
		w.Newline()
		w.WriteString(tok.Delim.Close())
		return
	}

	if len(tok.Children) == 0 && !hasComments(tok.Trailing) {
		w.WriteString(tok.Delim.Close())
		return
	}
	if tok.Delim == token.Brace {
		w.Space()
	}
	p.stream(tok.Children, false, false)
	var sp spacer
	sp.n = len(tok.Children)
	p.comments(tok.Trailing, false, &sp)
	if tok.Delim == token.Brace {
		w.Space()
	}
	w.WriteString(tok.Delim.Close())
}
