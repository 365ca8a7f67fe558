// Package token defines the token-tree model shared by the lexer, the
// expander and the printer.
// Invariants:
//   - Token.Text of a source token is a copy of the original source slice;
//     Span matches it exactly.
//   - Punctuation is one character per token. Multi-character operators
//     (`::`, `=>`, `->`) are sequences of Punct tokens where every token but
//     the last has Spacing == Joint.
//   - A Group owns its children; the open and close delimiters are not
//     separate tokens once a stream has been folded into a tree.
//   - Tokens are values: the expander copies, filters and reorders them but
//     never mutates a token it received.
//   - Tokens built by constructors (NewIdent, NewGroup, ...) carry a zero Span.
package token
