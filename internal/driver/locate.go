package driver

import (
	"fmt"

	"displaystr/internal/diag"
	"displaystr/internal/source"
	"displaystr/internal/token"
)

// Site is one macro attribute and the item it annotates.
type Site struct {
	// Attr covers `#` through `]`.
	Attr source.Span
	// Args are the tokens inside `display(...)`; nil for the bare form.
	Args []token.Token
	Item []token.Token
	// Start and End delimit the bytes replaced by the expansion.
	Start, End uint32
}

// FindSites scans the top level of toks for `#[name]`, `#[name(..)]` and
// the same forms prefixed with `displaystr::`. The item runs up to and
// including the first brace group or `;`, or to the end of input. An
// attribute with nothing after it is reported and skipped. Attributes
// inside other items (`mod m { .. }`, function bodies) get a warning.
func FindSites(toks []token.Token, name string, r diag.Reporter) []Site {
	var sites []Site
	for i := 0; i < len(toks); i++ {
		if toks[i].Kind == token.Group {
			warnNested(toks[i].Children, name, r)
			continue
		}
		if !toks[i].IsPunct('#') || i+1 >= len(toks) || !toks[i+1].IsGroup(token.Bracket) {
			continue
		}
		args, ok := matchAttribute(toks[i+1].Children, name)
		if !ok {
			continue
		}
		attr := toks[i].Span.Cover(toks[i+1].Span)

		start := i + 2
		end := start
		for end < len(toks) {
			tok := toks[end]
			end++
			if tok.IsGroup(token.Brace) || tok.IsPunct(';') {
				break
			}
		}
		if end == start {
			diag.ReportError(r, diag.ExpAttributeWithoutItem, attr,
				fmt.Sprintf("`#[%s]` must be placed on an enum", name)).Emit()
			i++
			continue
		}

		item := toks[start:end]
		sites = append(sites, Site{
			Attr:  attr,
			Args:  args,
			Item:  item,
			Start: attr.Start,
			End:   item[len(item)-1].Span.End,
		})
		i = end - 1
	}
	return sites
}

// warnNested reports every matching attribute below the top level.
func warnNested(toks []token.Token, name string, r diag.Reporter) {
	for i, tok := range toks {
		if tok.Kind != token.Group {
			continue
		}
		if i > 0 && toks[i-1].IsPunct('#') && tok.IsGroup(token.Bracket) {
			if _, ok := matchAttribute(tok.Children, name); ok {
				diag.ReportWarning(r, diag.ExpNestedAttribute, toks[i-1].Span.Cover(tok.Span),
					fmt.Sprintf("`#[%s]` is only expanded on top-level items", name)).Emit()
			}
			continue
		}
		warnNested(tok.Children, name, r)
	}
}

// matchAttribute checks the contents of an attribute's brackets.
func matchAttribute(toks []token.Token, name string) ([]token.Token, bool) {
	k := 0
	if len(toks) >= 3 && toks[0].IsIdent("displaystr") && toks[1].IsPunct(':') && toks[2].IsPunct(':') {
		k = 3
	}
	if k >= len(toks) || !toks[k].IsIdent(name) {
		return nil, false
	}
	k++
	switch {
	case k == len(toks):
		return nil, true
	case k+1 == len(toks) && toks[k].IsGroup(token.Paren):
		return toks[k].Children, true
	}
	return nil, false
}
