package expand_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"displaystr/internal/diag"
	"displaystr/internal/expand"
	"displaystr/internal/format"
	"displaystr/internal/lexer"
	"displaystr/internal/source"
	"displaystr/internal/token"
)

func lex(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("input.rs", []byte(src)))
	bag := diag.NewBag(0)
	tree := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() > 0 {
		t.Fatalf("lexing %q: unexpected diagnostics: %v", src, bag.Items())
	}
	return tree.Tokens
}

func compact(toks []token.Token) string {
	return format.String(toks, format.Options{Layout: format.LayoutCompact})
}

func pretty(toks []token.Token) string {
	return format.String(toks, format.Options{Layout: format.LayoutPretty})
}

func run(t *testing.T, args, item string) *expand.Result {
	t.Helper()
	return expand.Expand(lex(t, args), lex(t, item), expand.Options{})
}

func codes(diags []diag.Diagnostic) []diag.Code {
	var out []diag.Code
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func errorCall(msg string) string {
	return "compile_error! { " + token.QuoteString(msg) + " }"
}

const missingDiscriminant = "expected this variant to have a string discriminant: `= \"...\"`"

const dataStoreError = `#[derive(Debug)]
pub enum DataStoreError {
    Disconnect(std::io::Error) = "data store disconnected",
    Redaction(String, Vec<String>) = ("the data for key ` + "`{_0}`" + ` is not available, but we recovered: {}", _1.join("+")),
    InvalidHeader { expected: String, found: String } = "invalid header (expected {expected:?}, found {found:?})",
    Unknown,
}`

func TestExpandDataStoreError(t *testing.T) {
	res := run(t, "", dataStoreError)
	if res.Fatal {
		t.Fatalf("unexpected fatal result: %v", res.Diagnostics)
	}

	wantDecl := "#[derive(Debug)] pub enum DataStoreError { Disconnect(std::io::Error), Redaction(String, Vec<String>), " +
		"InvalidHeader { expected: String, found: String }, Unknown, }"
	if diff := cmp.Diff(wantDecl, compact(res.Declaration)); diff != "" {
		t.Errorf("declaration mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(errorCall(missingDiscriminant), compact(res.Errors)); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}

	wantImpl := "impl ::core::fmt::Display for DataStoreError { " +
		"fn fmt(&self, f: &mut ::core::fmt::Formatter) -> ::core::fmt::Result { match self { " +
		`Self::Disconnect(_0,) => f.write_fmt(::core::format_args!("data store disconnected")), ` +
		"Self::Redaction(_0, _1,) => f.write_fmt(::core::format_args!(\"the data for key `{_0}` is not available, but we recovered: {}\", _1.join(\"+\"))), " +
		`Self::InvalidHeader { expected, found, } => f.write_fmt(::core::format_args!("invalid header (expected {expected:?}, found {found:?})")), ` +
		`Self::Unknown {} => f.write_fmt(::core::format_args!("")), ` +
		"} } }"
	if diff := cmp.Diff(wantImpl, compact(res.Impl)); diff != "" {
		t.Errorf("impl mismatch (-want +got):\n%s", diff)
	}

	want := wantDecl + " " + errorCall(missingDiscriminant) + " " + wantImpl
	if diff := cmp.Diff(want, compact(res.Tokens)); diff != "" {
		t.Errorf("full output mismatch (-want +got):\n%s", diff)
	}

	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(res.Diagnostics))
	}
	d := res.Diagnostics[0]
	if d.Code != diag.ExpMissingDiscriminant || d.Message != missingDiscriminant {
		t.Errorf("unexpected diagnostic: %v %q", d.Code, d.Message)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != ` = ""` {
		t.Errorf("expected an insert fix, got %+v", d.Fixes)
	}
}

func TestExpandPrettyLayout(t *testing.T) {
	src := "enum E {\n    // first\n    A = \"a\",\n    B(u8) = (\"b {}\", _0 + 1),\n}"
	res := run(t, "doc", src)

	wantDecl := `enum E {
    // first
    #[doc = "a"]
    A,
    #[doc = "b {}"]
    B(u8),
}`
	if diff := cmp.Diff(wantDecl, pretty(res.Declaration)); diff != "" {
		t.Errorf("declaration mismatch (-want +got):\n%s", diff)
	}

	wantImpl := `impl ::core::fmt::Display for E {
    fn fmt(&self, f: &mut ::core::fmt::Formatter) -> ::core::fmt::Result {
        match self {
            Self::A {} => f.write_fmt(::core::format_args!("a")),
            Self::B(_0,) => f.write_fmt(::core::format_args!("b {}", _0 + 1)),
        }
    }
}`
	if diff := cmp.Diff(wantImpl, pretty(res.Impl)); diff != "" {
		t.Errorf("impl mismatch (-want +got):\n%s", diff)
	}
}

func TestModifiers(t *testing.T) {
	tests := []struct {
		args  string
		doc   bool
		codes []diag.Code
	}{
		{"", false, nil},
		{"doc", true, nil},
		{"doc, x", true, []diag.Code{diag.ExpUnexpectedModifier}},
		{"doc(x)", true, []diag.Code{diag.ExpUnexpectedModifier}},
		{"nodoc", false, []diag.Code{diag.ExpUnexpectedModifier}},
		{`"doc"`, false, []diag.Code{diag.ExpUnexpectedModifier}},
	}
	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			res := run(t, tt.args, `enum E { A = "a" }`)
			if res.Modifiers.Doc != tt.doc {
				t.Errorf("Doc = %v, want %v", res.Modifiers.Doc, tt.doc)
			}
			if diff := cmp.Diff(tt.codes, codes(res.Diagnostics)); diff != "" {
				t.Errorf("codes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestModifierErrorKeepsExpansion(t *testing.T) {
	res := run(t, "nodoc", `enum E { A = "a" }`)
	want := `enum E { A } ` + errorCall("unexpected token") + ` impl ::core::fmt::Display for E { ` +
		`fn fmt(&self, f: &mut ::core::fmt::Formatter) -> ::core::fmt::Result { match self { ` +
		`Self::A {} => f.write_fmt(::core::format_args!("a")), } } }`
	if diff := cmp.Diff(want, compact(res.Tokens)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestDocAnnotations(t *testing.T) {
	src := `enum E { #[allow(x)] pub(crate) A = "a", B(u8) = ("b {}", _0), C = r#"raw "q""#, D = 5, E }`
	res := run(t, "doc", src)
	want := `enum E { #[allow(x)] #[doc = "a"] pub(crate) A, #[doc = "b {}"] B(u8), #[doc = r#"raw "q""#] C, D, E }`
	if diff := cmp.Diff(want, compact(res.Declaration)); diff != "" {
		t.Errorf("declaration mismatch (-want +got):\n%s", diff)
	}

	forced := expand.Expand(nil, lex(t, `enum E { A = "a" }`), expand.Options{Doc: true})
	if got := compact(forced.Declaration); got != `enum E { #[doc = "a"] A }` {
		t.Errorf("forced doc: got %q", got)
	}
}

func TestPositionalCounts(t *testing.T) {
	tests := []struct {
		fields string
		want   int
	}{
		{"()", 0},
		{"(u8)", 1},
		{"(u8,)", 1},
		{"(u8, String)", 2},
		{"(HashMap<K, V>, u8)", 2},
		{"(Box<dyn Fn(u8, u8) -> Vec<u8>>, u8, [u8; 4])", 3},
		{"(Result<Vec<u8>, Box<dyn Error>>,)", 1},
		{"(#[source] io::Error, &'static str)", 2},
	}
	for _, tt := range tests {
		t.Run(tt.fields, func(t *testing.T) {
			res := run(t, "", "enum E { A"+tt.fields+` = "x" }`)
			if len(res.Variants) != 1 {
				t.Fatalf("expected one variant, got %d", len(res.Variants))
			}
			got, ok := res.Variants[0].Shape.(expand.Positional)
			if !ok {
				t.Fatalf("expected positional shape, got %T", res.Variants[0].Shape)
			}
			if got.N != tt.want {
				t.Errorf("N = %d, want %d", got.N, tt.want)
			}
			if len(res.Diagnostics) != 0 {
				t.Errorf("unexpected diagnostics: %v", res.Diagnostics)
			}
		})
	}
}

func TestPositionalBindings(t *testing.T) {
	res := run(t, "", `enum E { A(u8, u8, u8) = "{_2}{_1}{_0}" }`)
	want := `Self::A(_0, _1, _2,) => f.write_fmt(::core::format_args!("{_2}{_1}{_0}")),`
	impl := compact(res.Impl)
	if !strings.Contains(impl, want) {
		t.Errorf("impl %q does not contain %q", impl, want)
	}
}

func TestNamedFields(t *testing.T) {
	tests := []struct {
		name, fields string
		want         []string
	}{
		{"plain", "{ a: u8, b: String }", []string{"a", "b"}},
		{"trailing", "{ a: u8, b: String, }", []string{"a", "b"}},
		{"empty", "{}", nil},
		{"nested commas", "{ a: HashMap<K, V>, b: u8 }", []string{"a", "b"}},
		{"paths", "{ a: std::vec::Vec<u8>, b: ::core::num::NonZeroU8 }", []string{"a", "b"}},
		{"bounds in type", "{ a: Box<dyn for<'x> Fn(&'x u8) -> u8>, b: u8 }", []string{"a", "b"}},
		{"colon in generics", "{ a: Foo<T: Clone, U>, b: u8 }", []string{"a", "b"}},
		{"qualified path", "{ a: <T as Trait>::Out, b: u8 }", []string{"a", "b"}},
		{"attrs and vis", "{ #[serde(skip)] pub a: u8, pub(crate) b: u8 }", []string{"a", "b"}},
		{"raw ident", "{ r#type: u8 }", []string{"r#type"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "", "enum E { A "+tt.fields+` = "x" }`)
			if len(res.Variants) != 1 {
				t.Fatalf("expected one variant, got %d", len(res.Variants))
			}
			named, ok := res.Variants[0].Shape.(expand.Named)
			if !ok {
				t.Fatalf("expected named shape, got %T", res.Variants[0].Shape)
			}
			var got []string
			for _, f := range named.Fields {
				got = append(got, f.Text)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVariantErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		codes []diag.Code
		decl  string
		arms  string
	}{
		{
			name:  "number template",
			body:  `A = 5, B = "b"`,
			codes: []diag.Code{diag.ExpExpectStringLiteral},
			decl:  "enum E { A, B }",
			arms:  `Self::A {} => f.write_fmt(::core::format_args!("")), Self::B {} => f.write_fmt(::core::format_args!("b")),`,
		},
		{
			name:  "empty group",
			body:  `A = (),`,
			codes: []diag.Code{diag.ExpExpectStringLiteral},
			decl:  "enum E { A, }",
			arms:  `Self::A {} => f.write_fmt(::core::format_args!("")),`,
		},
		{
			name:  "group without literal",
			body:  `A(u8) = (_0, "x"),`,
			codes: []diag.Code{diag.ExpExpectStringLiteral},
			decl:  "enum E { A(u8), }",
			arms:  `Self::A(_0,) => f.write_fmt(::core::format_args!("")),`,
		},
		{
			name:  "equals at end",
			body:  `A =`,
			codes: []diag.Code{diag.ExpExpectStringLiteral},
			decl:  "enum E { A }",
			arms:  `Self::A {} => f.write_fmt(::core::format_args!("")),`,
		},
		{
			name:  "missing discriminant on tuple",
			body:  `A(u8), B { x: u8 }`,
			codes: []diag.Code{diag.ExpMissingDiscriminant, diag.ExpMissingDiscriminant},
			decl:  "enum E { A(u8), B { x: u8 } }",
			arms:  `Self::A(_0,) => f.write_fmt(::core::format_args!("")), Self::B { x, } => f.write_fmt(::core::format_args!("")),`,
		},
		{
			name:  "missing comma drops the rest",
			body:  `A(u8) B = "b"`,
			codes: []diag.Code{diag.ExpMissingDiscriminant},
			decl:  "enum E { A(u8) }",
			arms:  `Self::A(_0,) => f.write_fmt(::core::format_args!("")),`,
		},
		{
			name:  "literal without equals keeps comma",
			body:  `W(u8) "oops", V = "v"`,
			codes: []diag.Code{diag.ExpMissingDiscriminant},
			decl:  "enum E { W(u8), V }",
			arms:  `Self::W(_0,) => f.write_fmt(::core::format_args!("")), Self::V {} => f.write_fmt(::core::format_args!("v")),`,
		},
		{
			name:  "ident after fields is not a variant",
			body:  `W { a: u8 } x = "w", V = "v"`,
			codes: []diag.Code{diag.ExpMissingDiscriminant},
			decl:  "enum E { W { a: u8 }, V }",
			arms:  `Self::W { a, } => f.write_fmt(::core::format_args!("")), Self::V {} => f.write_fmt(::core::format_args!("v")),`,
		},
		{
			name:  "junk after template",
			body:  `A = "a" + x, B = "b"`,
			codes: []diag.Code{diag.ExpUnexpectedVariantTok},
			decl:  "enum E { A, B }",
			arms:  `Self::A {} => f.write_fmt(::core::format_args!("a")), Self::B {} => f.write_fmt(::core::format_args!("b")),`,
		},
		{
			name:  "unexpected token after ident",
			body:  `A: u8 = "a", B = "b"`,
			codes: []diag.Code{diag.ExpUnexpectedVariantTok},
			decl:  "enum E { A, B }",
			arms:  `Self::A {} => f.write_fmt(::core::format_args!("")), Self::B {} => f.write_fmt(::core::format_args!("b")),`,
		},
		{
			name:  "missing identifier",
			body:  `#[x] 5, B = "b"`,
			codes: []diag.Code{diag.ExpExpectVariantIdent},
			decl:  "enum E { B }",
			arms:  `Self::B {} => f.write_fmt(::core::format_args!("b")),`,
		},
		{
			name:  "several errors",
			body:  `A, B = 1, C(u8) = ("c", _0)`,
			codes: []diag.Code{diag.ExpMissingDiscriminant, diag.ExpExpectStringLiteral},
			decl:  "enum E { A, B, C(u8) }",
			arms: `Self::A {} => f.write_fmt(::core::format_args!("")), Self::B {} => f.write_fmt(::core::format_args!("")), ` +
				`Self::C(_0,) => f.write_fmt(::core::format_args!("c", _0)),`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "", "enum E { "+tt.body+" }")
			if res.Fatal {
				t.Fatalf("unexpected fatal result")
			}
			if diff := cmp.Diff(tt.codes, codes(res.Diagnostics)); diff != "" {
				t.Errorf("codes mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.decl, compact(res.Declaration)); diff != "" {
				t.Errorf("declaration mismatch (-want +got):\n%s", diff)
			}
			wantImpl := "impl ::core::fmt::Display for E { fn fmt(&self, f: &mut ::core::fmt::Formatter) -> ::core::fmt::Result { match self { " +
				tt.arms + " } } }"
			if diff := cmp.Diff(wantImpl, compact(res.Impl)); diff != "" {
				t.Errorf("impl mismatch (-want +got):\n%s", diff)
			}
			if got, want := strings.Count(compact(res.Errors), "compile_error!"), len(tt.codes); got != want {
				t.Errorf("compile_error! count = %d, want %d", got, want)
			}
		})
	}
}

func TestDiagnosticSpans(t *testing.T) {
	src := `enum E { A = 5, B(u8), }`
	res := run(t, "", src)
	if len(res.Diagnostics) != 2 {
		t.Fatalf("expected two diagnostics, got %d", len(res.Diagnostics))
	}
	at := func(d diag.Diagnostic) string {
		return src[d.Primary.Start:d.Primary.End]
	}
	if got := at(res.Diagnostics[0]); got != "5" {
		t.Errorf("first diagnostic at %q, want %q", got, "5")
	}
	if got := at(res.Diagnostics[1]); got != "B" {
		t.Errorf("second diagnostic at %q, want %q", got, "B")
	}
	fix := res.Diagnostics[1].Fixes[0].Edits[0].Span
	if fix.Start != fix.End || src[:fix.Start] != "enum E { A = 5, B(u8)" {
		t.Errorf("fix should insert right after the fields, got %v", fix)
	}
}

func TestFatal(t *testing.T) {
	tests := []struct {
		name, args, item string
		code             diag.Code
		msg              string
	}{
		{"struct", "", "struct S;", diag.ExpExpectEnum, "expected an `enum` item"},
		{"empty", "", "", diag.ExpExpectEnum, "expected an `enum` item"},
		{"modifier errors dropped", "bad", "pub struct S { a: u8 }", diag.ExpExpectEnum, "expected an `enum` item"},
		{"no name", "", "enum { A }", diag.ExpExpectEnumNameOrBody, "expected enum name"},
		{"no body", "", "enum E;", diag.ExpExpectEnumNameOrBody, "expected enum body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			callSite := source.Span{File: 7, Start: 1, End: 9}
			res := expand.Expand(lex(t, tt.args), lex(t, tt.item), expand.Options{CallSite: callSite})
			if !res.Fatal {
				t.Fatalf("expected fatal result")
			}
			if diff := cmp.Diff([]diag.Code{tt.code}, codes(res.Diagnostics)); diff != "" {
				t.Errorf("codes mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(errorCall(tt.msg), compact(res.Tokens)); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
			if len(res.Declaration) != 0 || len(res.Impl) != 0 {
				t.Errorf("fatal result must not carry declaration or impl")
			}
			if tt.code == diag.ExpExpectEnum && res.Diagnostics[0].Primary != callSite {
				t.Errorf("missing enum should point at the call site, got %v", res.Diagnostics[0].Primary)
			}
		})
	}
}

func TestGenericsAndWhere(t *testing.T) {
	src := `pub enum E<'a, T: Display + 'a = String, const N: usize = 3> where T: Clone { A(&'a T) = "{_0}" }`
	res := run(t, "", src)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	wantDecl := `pub enum E<'a, T: Display + 'a = String, const N: usize = 3> where T: Clone { A(&'a T) }`
	if diff := cmp.Diff(wantDecl, compact(res.Declaration)); diff != "" {
		t.Errorf("declaration mismatch (-want +got):\n%s", diff)
	}
	wantHead := `impl<'a, T: Display + 'a, const N: usize> ::core::fmt::Display for E<'a, T, N> where T: Clone {`
	if got := compact(res.Impl); !strings.HasPrefix(got, wantHead) {
		t.Errorf("impl head mismatch:\n got: %s\nwant: %s", got, wantHead)
	}

	// pretty layout keeps generics and where clauses on the header line
	if diff := cmp.Diff(wantDecl, pretty(res.Declaration)); diff != "" {
		t.Errorf("pretty declaration mismatch (-want +got):\n%s", diff)
	}
	if got, _, _ := strings.Cut(pretty(res.Impl), "\n"); got != wantHead {
		t.Errorf("pretty impl head mismatch:\n got: %s\nwant: %s", got, wantHead)
	}
}

func TestGenericsNestedAngles(t *testing.T) {
	res := run(t, "", `enum E<T: Into<Vec<u8>>, F: Fn() -> T> { A(T, F) = "x" }`)
	if res.Header.Name.Text != "E" {
		t.Fatalf("name = %q", res.Header.Name.Text)
	}
	head := append([]token.Token{res.Header.Name}, res.Header.Generics...)
	if got := compact(head); got != "E<T: Into<Vec<u8>>, F: Fn() -> T>" {
		t.Errorf("generics = %q", got)
	}
	wantHead := `impl<T: Into<Vec<u8>>, F: Fn() -> T> ::core::fmt::Display for E<T, F> {`
	if got := compact(res.Impl); !strings.HasPrefix(got, wantHead) {
		t.Errorf("impl head mismatch:\n got: %s\nwant: %s", got, wantHead)
	}
}

func TestHeaderPassthrough(t *testing.T) {
	src := `#[derive(Debug, Clone)] #[repr(u8)] pub(crate) enum Kind { A = "a" }`
	res := run(t, "", src)
	want := `#[derive(Debug, Clone)] #[repr(u8)] pub(crate) enum Kind { A }`
	if diff := cmp.Diff(want, compact(res.Declaration)); diff != "" {
		t.Errorf("declaration mismatch (-want +got):\n%s", diff)
	}
}

func TestTrailingSeparatorInsignificant(t *testing.T) {
	a := run(t, "", `enum E { A = "a", B(u8) = "b" }`)
	b := run(t, "", `enum E { A = "a", B(u8) = "b", }`)
	if diff := cmp.Diff(compact(a.Impl), compact(b.Impl)); diff != "" {
		t.Errorf("impls differ (-a +b):\n%s", diff)
	}
}

func TestStrippingIdempotent(t *testing.T) {
	first := run(t, "", dataStoreError)
	cleaned := compact(first.Declaration)
	second := run(t, "", cleaned)
	if diff := cmp.Diff(cleaned, compact(second.Declaration)); diff != "" {
		t.Errorf("second pass changed the declaration (-first +second):\n%s", diff)
	}
	if len(second.Variants) != len(first.Variants) {
		t.Errorf("variant count changed: %d -> %d", len(first.Variants), len(second.Variants))
	}
}

func TestInputUntouched(t *testing.T) {
	item := lex(t, `enum E { A(u8) = ("{}", _0), }`)
	before := token.Stream(item).Clone()
	expand.Expand(nil, item, expand.Options{Doc: true})
	if diff := cmp.Diff(before, token.Stream(item)); diff != "" {
		t.Errorf("input tokens were modified (-before +after):\n%s", diff)
	}
}
