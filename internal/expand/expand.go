package expand

import (
	"displaystr/internal/diag"
	"displaystr/internal/source"
	"displaystr/internal/token"
)

// Options tune one expansion.
type Options struct {
	// CallSite locates the attribute; structural errors point here.
	CallSite source.Span
	// Doc forces doc annotations as if `doc` had been passed.
	Doc bool
}

// Result is the outcome of one expansion. Tokens is what replaces the
// annotated item: Declaration, then Errors, then Impl. When Fatal is set
// Tokens holds a single compile_error! and the other streams are empty.
type Result struct {
	Tokens      token.Stream
	Declaration token.Stream
	Errors      token.Stream
	Impl        token.Stream

	Diagnostics []diag.Diagnostic
	Fatal       bool

	Modifiers Modifiers
	Header    Header
	Variants  []Variant
}

// HasErrors reports whether any diagnostic was produced.
func (r *Result) HasErrors() bool {
	return len(r.Diagnostics) > 0
}

// Expand runs the whole pipeline over the attribute arguments and the
// annotated item. It never fails: problems become diagnostics and
// compile_error! invocations in the output.
func Expand(args, item []token.Token, opts Options) *Result {
	bag := diag.NewBag(0)
	p := &parser{
		reporter: diag.BagReporter{Bag: bag},
		callSite: opts.CallSite,
	}

	mods := p.parseModifiers(args)
	mods.Doc = mods.Doc || opts.Doc

	c := NewCursor(item)
	header, fatal := p.parseHeader(c)
	if fatal != nil {
		// ошибки модификаторов в этом случае не выводятся
		errs := emitError(*fatal)
		return &Result{
			Tokens:      errs,
			Errors:      errs,
			Diagnostics: []diag.Diagnostic{*fatal},
			Fatal:       true,
			Modifiers:   mods,
			Header:      header,
		}
	}

	variants := p.parseVariants(header.Body.Children)

	res := &Result{
		Declaration: emitDeclaration(header, variants, mods),
		Impl:        emitImpl(header, variants),
		Diagnostics: bag.Items(),
		Modifiers:   mods,
		Header:      header,
		Variants:    variants,
	}
	for _, d := range res.Diagnostics {
		res.Errors = append(res.Errors, emitError(d)...)
	}
	res.Tokens = make(token.Stream, 0, len(res.Declaration)+len(res.Errors)+len(res.Impl))
	res.Tokens = append(res.Tokens, res.Declaration...)
	res.Tokens = append(res.Tokens, res.Errors...)
	res.Tokens = append(res.Tokens, res.Impl...)
	return res
}
