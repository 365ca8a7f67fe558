package token

import "displaystr/internal/source"

// TriviaKind classifies whitespace and comments attached to a token.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine  // ///
	TriviaDocBlock // /** */
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaDocLine:
		return "DocLine"
	case TriviaDocBlock:
		return "DocBlock"
	}
	return "TriviaKind(?)"
}

// IsComment reports whether the trivia carries text worth preserving.
func (k TriviaKind) IsComment() bool {
	return k >= TriviaLineComment
}

// EndsLine reports whether the trivia must be followed by a line break.
func (k TriviaKind) EndsLine() bool {
	return k == TriviaLineComment || k == TriviaDocLine
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
