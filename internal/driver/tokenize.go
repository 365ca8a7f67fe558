package driver

import (
	"displaystr/internal/diag"
	"displaystr/internal/lexer"
	"displaystr/internal/source"
	"displaystr/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Tokens is the flat token list (EOF included), or the top level of
	// the tree when Tree was requested.
	Tokens []token.Token
	Tree   bool
	Bag    *diag.Bag
}

// Tokenize lexes path ("-" for stdin). With tree set, delimiters are
// folded into groups.
func Tokenize(path string, maxDiagnostics int, tree bool) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := LoadInput(fs, path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	opts := lexer.Options{Reporter: diag.BagReporter{Bag: bag}}

	var tokens []token.Token
	if tree {
		t := lexer.Tokenize(file, opts)
		tokens = append(t.Tokens, t.EOF)
	} else {
		tokens = lexer.New(file, opts).All()
	}
	bag.Sort()

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Tree:    tree,
		Bag:     bag,
	}, nil
}
