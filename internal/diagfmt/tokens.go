package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"displaystr/internal/source"
	"displaystr/internal/token"
)

type TokenOutput struct {
	Kind     string        `json:"kind"`
	Text     string        `json:"text,omitempty"`
	Delim    string        `json:"delim,omitempty"`
	Spacing  string        `json:"spacing,omitempty"`
	Span     source.Span   `json:"span"`
	Leading  []string      `json:"leading,omitempty"`
	Children []TokenOutput `json:"children,omitempty"`
}

// FormatTokensPretty выводит плоский поток токенов в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		if err := writeTokenLine(w, fmt.Sprintf("%3d: ", i+1), tok, fs); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokenTree выводит дерево токенов; дети группы идут с отступом.
func FormatTokenTree(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	return formatTree(w, tokens, fs, 0)
}

func formatTree(w io.Writer, tokens []token.Token, fs *source.FileSet, depth int) error {
	indent := strings.Repeat("  ", depth)
	for _, tok := range tokens {
		if err := writeTokenLine(w, indent, tok, fs); err != nil {
			return err
		}
		if tok.Kind == token.Group {
			if err := formatTree(w, tok.Children, fs, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTokenLine(w io.Writer, prefix string, tok token.Token, fs *source.FileSet) error {
	startPos, endPos := fs.Resolve(tok.Span)

	var b strings.Builder
	b.WriteString(prefix)
	fmt.Fprintf(&b, "%-13s", tok.Kind.String())
	switch tok.Kind {
	case token.Group:
		fmt.Fprintf(&b, " %s", tok.Delim.Open()+tok.Delim.Close())
	case token.Punct:
		fmt.Fprintf(&b, " %q %s", tok.Text, tok.Spacing)
	default:
		if tok.Text != "" {
			fmt.Fprintf(&b, " %q", tok.Text)
		}
	}
	fmt.Fprintf(&b, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
	if leading := triviaKinds(tok.Leading); len(leading) > 0 {
		fmt.Fprintf(&b, " (leading: %s)", strings.Join(leading, ", "))
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func triviaKinds(trivia []token.Trivia) []string {
	var out []string
	for _, tr := range trivia {
		out = append(out, tr.Kind.String())
	}
	return out
}

// FormatTokensJSON выводит токены в JSON формате; группы вкладывают детей.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokensOutput(tokens))
}

func tokensOutput(tokens []token.Token) []TokenOutput {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Span:    tok.Span,
			Leading: triviaKinds(tok.Leading),
		}
		switch tok.Kind {
		case token.Group:
			out.Delim = tok.Delim.String()
			out.Children = tokensOutput(tok.Children)
		case token.Punct:
			out.Spacing = tok.Spacing.String()
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}
	return output
}
