package expand

import (
	"displaystr/internal/diag"
	"displaystr/internal/source"
	"displaystr/internal/token"
)

const (
	msgUnexpectedToken      = "unexpected token"
	msgExpectedEnum         = "expected an `enum` item"
	msgMissingDiscriminant  = "expected this variant to have a string discriminant: `= \"...\"`"
	msgExpectedString       = "expected string literal"
	msgExpectedVariantIdent = "expected variant identifier"
	msgExpectedEnumName     = "expected enum name"
	msgExpectedEnumBody     = "expected enum body"
)

// parser carries the per-invocation state: where diagnostics go and
// which span stands for the attribute itself.
type parser struct {
	reporter diag.Reporter
	callSite source.Span
}

// report emits an error and hands it back so the caller can attach it to a
// variant.
func (p *parser) report(code diag.Code, sp source.Span, msg string) *diag.Diagnostic {
	b := diag.ReportError(p.reporter, code, sp, msg)
	b.Emit()
	d := b.Diagnostic()
	return &d
}

// lastSpan is the span of the last token in toks, or the empty span.
func lastSpan(toks []token.Token) source.Span {
	if len(toks) == 0 {
		return source.Span{}
	}
	return toks[len(toks)-1].Span
}
