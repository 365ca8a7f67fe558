package lexer

import (
	"bytes"
	"fmt"

	"displaystr/internal/diag"
	"displaystr/internal/source"
	"displaystr/internal/token"
)

// Tree is a file folded into token trees.
type Tree struct {
	Tokens token.Stream
	// EOF carries the trivia after the last token.
	EOF token.Token
}

type frame struct {
	open     token.Token
	delim    token.Delimiter
	children []token.Token
}

// BuildTree drains lx and folds (), [] and {} into group tokens.
//
// Recovery: an unclosed group is closed at end of input; a closing
// delimiter that matches an outer group closes every group in between;
// a closing delimiter that matches nothing is dropped. Each case reports
// a SYN diagnostic through the lexer's reporter.
func BuildTree(lx *Lexer) *Tree {
	stack := []frame{{}}
	for {
		tok := lx.Next()

		switch {
		case tok.Kind == token.EOF:
			for len(stack) > 1 {
				top := stack[len(stack)-1]
				lx.reportSyn(diag.SynUnclosedDelimiter, top.open.Span,
					fmt.Sprintf("unclosed delimiter `%s`", top.delim.Open()), nil)
				stack = lx.closeTop(stack, token.Token{Span: tok.Span})
			}
			return &Tree{Tokens: stack[0].children, EOF: tok}

		case tok.Kind == token.Punct && isDelimByte(tok.Text[0]):
			d, open := token.DelimiterFor(tok.Text[0])
			if open {
				stack = append(stack, frame{open: tok, delim: d})
				continue
			}
			idx := matchingFrame(stack, d)
			if idx < 0 {
				lx.reportSyn(diag.SynStrayCloseDelimiter, tok.Span,
					fmt.Sprintf("unexpected closing delimiter `%s`", tok.Text), nil)
				continue
			}
			for len(stack)-1 > idx {
				top := stack[len(stack)-1]
				lx.reportSyn(diag.SynMismatchedDelimiter, tok.Span,
					fmt.Sprintf("mismatched closing delimiter `%s`", tok.Text),
					[]diag.Note{{Span: top.open.Span, Msg: fmt.Sprintf("unclosed delimiter `%s`", top.delim.Open())}})
				stack = lx.closeTop(stack, token.Token{Span: tok.Span.Head()})
			}
			stack = lx.closeTop(stack, tok)

		default:
			top := &stack[len(stack)-1]
			top.children = append(top.children, tok)
		}
	}
}

func matchingFrame(stack []frame, d token.Delimiter) int {
	for i := len(stack) - 1; i > 0; i-- {
		if stack[i].delim == d {
			return i
		}
	}
	return -1
}

// closeTop pops the innermost frame into a group; closer may be an empty
// span when the group is auto-closed.
func (lx *Lexer) closeTop(stack []frame, closer token.Token) []frame {
	top := stack[len(stack)-1]
	stack = stack[:len(stack)-1]

	openSp := top.open.Span
	closeSp := closer.Span
	if closeSp.Empty() {
		closeSp = source.Span{}
	}
	full := openSp
	end := closer.Span.End
	if end > full.End {
		full.End = end
	}
	group := token.Token{
		Kind:      token.Group,
		Span:      full,
		Leading:   top.open.Leading,
		Delim:     top.delim,
		Children:  top.children,
		Trailing:  closer.Leading,
		Close:     closeSp,
		Multiline: bytes.IndexByte(lx.file.Content[openSp.End:max(openSp.End, closer.Span.Start)], '\n') >= 0,
	}
	parent := &stack[len(stack)-1]
	parent.children = append(parent.children, group)
	return stack
}

func (lx *Lexer) reportSyn(code diag.Code, sp source.Span, msg string, notes []diag.Note) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, notes, nil)
	}
}

// Tokenize lexes file and builds its token tree in one step.
func Tokenize(file *source.File, opts Options) *Tree {
	return BuildTree(New(file, opts))
}
