package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"displaystr/internal/diag"
	"displaystr/internal/driver"
	"displaystr/internal/format"
	"displaystr/internal/lexer"
	"displaystr/internal/observ"
	"displaystr/internal/source"
	"displaystr/internal/token"
	"displaystr/internal/version"
)

const implE = `impl ::core::fmt::Display for E { fn fmt(&self, f: &mut ::core::fmt::Formatter) -> ::core::fmt::Result { match self { `

func compactOpts() driver.Options {
	return driver.Options{Layout: format.LayoutCompact}
}

func expandString(t *testing.T, src string, opts driver.Options) (*source.FileSet, *driver.FileResult) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(src))
	return fs, driver.ExpandSource(context.Background(), fs, id, opts)
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestFindSites(t *testing.T) {
	src := "#[derive(Debug)] #[display] enum A { X = \"x\" }\n" +
		"#[display(doc)] enum B { Y = \"y\" }\n" +
		"#[displaystr::display] enum C;\n" +
		"#[display = 1] enum D {}\n" +
		"#[other::display] enum F {}\n" +
		"#[display]"

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("sites.rs", []byte(src)))
	tree := lexer.Tokenize(file, lexer.Options{})
	bag := diag.NewBag(0)

	sites := driver.FindSites(tree.Tokens, "display", diag.BagReporter{Bag: bag})
	require.Len(t, sites, 3)

	assert.Equal(t, "#[display]", file.Slice(sites[0].Attr))
	assert.Nil(t, sites[0].Args)
	assert.Equal(t, "#[display] enum A { X = \"x\" }", string(file.Content[sites[0].Start:sites[0].End]))

	require.Len(t, sites[1].Args, 1)
	assert.True(t, sites[1].Args[0].IsIdent("doc"))

	// элемент заканчивается на `;`
	assert.Equal(t, "#[displaystr::display] enum C;", string(file.Content[sites[2].Start:sites[2].End]))
	assert.True(t, sites[2].Item[len(sites[2].Item)-1].IsPunct(';'))

	require.Equal(t, []diag.Code{diag.ExpAttributeWithoutItem}, codes(bag))
	assert.Equal(t, "#[display]", file.Slice(bag.Items()[0].Primary))
}

func TestNestedAttributeWarns(t *testing.T) {
	src := "mod m {\n    #[display]\n    enum E { A = \"a\" }\n}\n#[display] enum F { B = \"b\" }\n"
	fs, res := expandString(t, src, compactOpts())

	assert.Equal(t, 1, res.Sites)
	require.Equal(t, []diag.Code{diag.ExpNestedAttribute}, codes(res.Bag))
	d := res.Bag.Items()[0]
	assert.Equal(t, diag.SevWarning, d.Severity)
	assert.Equal(t, "#[display]", fs.Get(res.FileID).Slice(d.Primary))
	assert.False(t, res.Bag.HasErrors())
	assert.True(t, strings.HasPrefix(string(res.Output), "mod m {\n    #[display]\n    enum E { A = \"a\" }\n}\n"))
}

func TestFindSitesCustomName(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.rs", []byte("#[display] enum A {} #[show] enum B {}")))
	tree := lexer.Tokenize(file, lexer.Options{})

	sites := driver.FindSites(tree.Tokens, "show", nil)
	require.Len(t, sites, 1)
	assert.Equal(t, "#[show]", file.Slice(sites[0].Attr))
}

func TestExpandSourceSplices(t *testing.T) {
	src := "use x;\n\n#[display]\nenum E { A = \"a\" }\n\nfn main() {}\n"
	fs, res := expandString(t, src, compactOpts())

	want := "use x;\n\n" +
		"enum E { A } " + implE + `Self::A {} => f.write_fmt(::core::format_args!("a")), } } }` +
		"\n\nfn main() {}\n"
	assert.Equal(t, want, string(res.Output))
	assert.Equal(t, 1, res.Sites)
	assert.Zero(t, res.Bag.Len())
	assert.True(t, res.Changed(fs))
}

func TestExpandSourceKeepsLineEndings(t *testing.T) {
	const bom = "\xEF\xBB\xBF"
	src := bom + "fn a() {}\r\n#[display]\r\nenum E { X = \"x\" }\r\nfn b() {}\r\n"
	fs, res := expandString(t, src, compactOpts())

	want := bom + "fn a() {}\r\n" +
		"enum E { X } " + implE + `Self::X {} => f.write_fmt(::core::format_args!("x")), } } }` +
		"\r\nfn b() {}\r\n"
	assert.Equal(t, want, string(res.Output))
	assert.True(t, res.Changed(fs))

	_, pretty := expandString(t, src, driver.Options{})
	out := string(pretty.Output)
	assert.True(t, strings.HasPrefix(out, bom+"fn a() {}\r\n"), out)
	assert.True(t, strings.HasSuffix(out, "}\r\nfn b() {}\r\n"), out)
	assert.Equal(t, strings.Count(out, "\n"), strings.Count(out, "\r\n"), "every line ends with CRLF")

	mixed := bom + "fn a() {}\r\nfn b() {}\n"
	mixedFS, same := expandString(t, mixed, compactOpts())
	assert.Equal(t, mixed, string(same.Output))
	assert.False(t, same.Changed(mixedFS))
}

func TestExpandSourceWithoutSites(t *testing.T) {
	src := "// nothing here\n#[derive(Debug)]\nenum E { A }\n"
	fs, res := expandString(t, src, compactOpts())
	assert.Equal(t, src, string(res.Output))
	assert.Zero(t, res.Sites)
	assert.False(t, res.Changed(fs))
}

func TestExpandSourceDiagnostics(t *testing.T) {
	src := "#[display]\nenum E {\n    A,\n    B = \"b\",\n}\n"
	fs, res := expandString(t, src, compactOpts())

	require.Equal(t, []diag.Code{diag.ExpMissingDiscriminant}, codes(res.Bag))
	start, _ := fs.Resolve(res.Bag.Items()[0].Primary)
	assert.Equal(t, source.LineCol{Line: 3, Col: 5}, start)

	out := string(res.Output)
	assert.Contains(t, out, "enum E { A, B, }")
	assert.Contains(t, out, "compile_error!")
	assert.Contains(t, out, `Self::B {} => f.write_fmt(::core::format_args!("b")),`)
}

func TestExpandSourceLexAndExpandErrors(t *testing.T) {
	src := "#[display]\nenum E { A = \"a\" }\nfn f() { \"open\n"
	_, res := expandString(t, src, compactOpts())
	got := codes(res.Bag)
	assert.Contains(t, got, diag.LexUnterminatedString)
	assert.Equal(t, 1, res.Sites)
}

func TestExpandSourceMaxDiagnostics(t *testing.T) {
	opts := compactOpts()
	opts.MaxDiagnostics = 1
	_, res := expandString(t, "#[display] enum E { A, B, C }", opts)
	assert.Equal(t, 1, res.Bag.Len())
	assert.Equal(t, 2, res.Bag.Dropped())
}

func TestExpandSourceForcedDoc(t *testing.T) {
	opts := compactOpts()
	opts.Doc = true
	_, res := expandString(t, "#[display] enum E { A = \"a\" }", opts)
	assert.True(t, strings.HasPrefix(string(res.Output), `enum E { #[doc = "a"] A }`))
}

func TestExpandSourceTimings(t *testing.T) {
	opts := compactOpts()
	opts.Timer = observ.NewTimer()
	var mu sync.Mutex
	var phases []string
	opts.PhaseObserver = func(ev driver.PhaseEvent) {
		mu.Lock()
		defer mu.Unlock()
		if ev.Status == driver.PhaseEnd {
			phases = append(phases, ev.Name)
		}
	}
	expandString(t, "#[display] enum E { A = \"a\" }", opts)

	assert.Equal(t, []string{"lex", "expand"}, phases)
	rep := opts.Timer.Report()
	require.Len(t, rep.Phases, 2)
	assert.Equal(t, "lex", rep.Phases[0].Name)
}

func TestExpandFileStdin(t *testing.T) {
	old := driver.Stdin
	t.Cleanup(func() { driver.Stdin = old })
	driver.Stdin = strings.NewReader("#[display] enum E { A = \"a\" }")

	fs, res, err := driver.ExpandFile(context.Background(), "-", compactOpts())
	require.NoError(t, err)
	assert.Equal(t, driver.StdinName, res.Path)
	assert.Equal(t, 1, res.Sites)
	assert.NotNil(t, fs.Get(res.FileID))
}

func TestExpandFileMissing(t *testing.T) {
	_, _, err := driver.ExpandFile(context.Background(), filepath.Join(t.TempDir(), "nope.rs"), compactOpts())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestExpandDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.rs"), "#[display] enum E { A = \"a\" }")
	writeFile(t, filepath.Join(dir, "a.rs"), "#[display] enum E { A }")
	writeFile(t, filepath.Join(dir, "sub", "c.rs"), "fn main() {}")
	writeFile(t, filepath.Join(dir, "b.rs.expanded.rs"), "#[display] enum Old {}")
	writeFile(t, filepath.Join(dir, "notes.txt"), "#[display] enum E {}")
	writeFile(t, filepath.Join(dir, ".git", "x.rs"), "#[display] enum E {}")

	opts := compactOpts()
	opts.Jobs = 2
	opts.OutputSuffix = ".expanded.rs"
	var mu sync.Mutex
	final := map[string]driver.FileStatus{}
	opts.FileObserver = func(ev driver.FileEvent) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 3, ev.Total)
		final[filepath.Base(ev.Path)] = ev.Status
	}

	fs, results, err := driver.ExpandDir(context.Background(), dir, opts)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, filepath.Join(dir, "a.rs"), results[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.rs"), results[1].Path)
	assert.Equal(t, filepath.Join(dir, "sub", "c.rs"), results[2].Path)

	assert.Equal(t, []diag.Code{diag.ExpMissingDiscriminant}, codes(results[0].Bag))
	assert.Zero(t, results[1].Bag.Len())
	assert.False(t, results[2].Changed(fs))

	assert.Equal(t, map[string]driver.FileStatus{
		"a.rs": driver.FileFailed,
		"b.rs": driver.FileDone,
		"c.rs": driver.FileDone,
	}, final)
}

func TestExpandDirEmpty(t *testing.T) {
	fs, results, err := driver.ExpandDir(context.Background(), t.TempDir(), compactOpts())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, fs.Len())
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)

	opts := compactOpts()
	opts.Cache = cache
	src := "#[display]\nenum E { A, B = \"b\" }\n"

	_, first := expandString(t, src, opts)
	assert.False(t, first.Cached)

	fs, second := expandString(t, src, opts)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Output, second.Output)
	assert.Equal(t, first.Sites, second.Sites)
	require.Equal(t, codes(first.Bag), codes(second.Bag))

	d := second.Bag.Items()[0]
	assert.Equal(t, second.FileID, d.Primary.File)
	assert.Equal(t, "A", fs.Get(second.FileID).Slice(d.Primary))
	require.Len(t, d.Fixes, 1)
	assert.Equal(t, ` = ""`, d.Fixes[0].Edits[0].NewText)

	// другой layout даёт другой ключ
	opts.Layout = format.LayoutPretty
	_, third := expandString(t, src, opts)
	assert.False(t, third.Cached)

	require.NoError(t, cache.DropAll())
	opts.Layout = format.LayoutCompact
	_, fourth := expandString(t, src, opts)
	assert.False(t, fourth.Cached)
}

func TestDiskCacheKey(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)
	opts := compactOpts()
	opts.Cache = cache
	src := "#[display]\nenum E { A = \"a\" }\n"

	_, first := expandString(t, src, opts)
	require.False(t, first.Cached)

	// CRLF-копия нормализуется в тот же текст, но вывод у неё свой
	_, crlf := expandString(t, strings.ReplaceAll(src, "\n", "\r\n"), opts)
	assert.False(t, crlf.Cached)
	assert.Contains(t, string(crlf.Output), "\r\n")

	old := version.Version
	t.Cleanup(func() { version.Version = old })
	version.Version = old + "+next"
	_, upgraded := expandString(t, src, opts)
	assert.False(t, upgraded.Cached)
	assert.Equal(t, first.Output, upgraded.Output)
}

func TestNilDiskCache(t *testing.T) {
	var cache *driver.DiskCache
	var payload driver.DiskPayload
	hit, err := cache.Get([32]byte{}, &payload)
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, cache.Put([32]byte{}, &payload))
	require.NoError(t, cache.DropAll())
}

func TestWriteAndCheckOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.rs")
	writeFile(t, path, "#[display] enum E { A = \"a\" }")

	_, res, err := driver.ExpandFile(context.Background(), path, compactOpts())
	require.NoError(t, err)

	ok, err := driver.CheckOutput(res, ".out")
	require.NoError(t, err)
	assert.False(t, ok)

	target, err := driver.WriteOutput(context.Background(), res, ".out", compactOpts())
	require.NoError(t, err)
	assert.Equal(t, path+".out", target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, res.Output, data)

	ok, err = driver.CheckOutput(res, ".out")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTokenize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.rs")
	writeFile(t, path, "enum E { A(u8) }")

	flat, err := driver.Tokenize(path, 0, false)
	require.NoError(t, err)
	// enum E { A ( u8 ) } EOF
	require.Len(t, flat.Tokens, 9)
	assert.Equal(t, token.EOF, flat.Tokens[8].Kind)

	tree, err := driver.Tokenize(path, 0, true)
	require.NoError(t, err)
	require.Len(t, tree.Tokens, 4)
	assert.True(t, tree.Tokens[2].IsGroup(token.Brace))
	assert.Equal(t, token.EOF, tree.Tokens[3].Kind)
	assert.Zero(t, tree.Bag.Len())
}
