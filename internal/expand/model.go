package expand

import (
	"displaystr/internal/diag"
	"displaystr/internal/token"
)

// Modifiers is what the attribute arguments asked for.
type Modifiers struct {
	// Doc adds #[doc = <template>] to every variant with a readable template.
	Doc bool
}

// Header is everything of the item outside the variant list.
type Header struct {
	Prefix   []token.Token // outer attributes, visibility, `enum`
	Name     token.Token
	Generics []token.Token // `<` .. `>` inclusive, or empty
	Where    []token.Token // `where` .. up to the body, or empty
	Body     token.Token   // the brace group of variants
}

// Shape is the field layout of a variant: Unit, Positional or Named.
type Shape interface {
	shape()
}

// Unit has no field group (or a template right after the name).
type Unit struct{}

// Positional is a tuple variant with N fields.
type Positional struct {
	N int
}

// Named is a struct variant; Fields are the field identifiers in order.
type Named struct {
	Fields []token.Token
}

func (Unit) shape()       {}
func (Positional) shape() {}
func (Named) shape()      {}

// Template is the format string of a variant and the extra arguments that
// follow it, separators included.
type Template struct {
	Literal token.Token
	Extra   []token.Token
}

// Variant is one parsed variant. Err is set when the template could not
// be read; the emitter then falls back to an empty template.
type Variant struct {
	Attrs    []token.Token
	Vis      []token.Token
	Ident    token.Token
	Shape    Shape
	Fields   *token.Token // the original (..) or {..} group
	Template Template
	Err      *diag.Diagnostic
	Comma    *token.Token
}
