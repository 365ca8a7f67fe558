package driver

import (
	"bytes"
	"context"
	"fmt"

	"displaystr/internal/diag"
	"displaystr/internal/expand"
	"displaystr/internal/format"
	"displaystr/internal/lexer"
	"displaystr/internal/project"
	"displaystr/internal/source"
	"displaystr/internal/trace"
	"displaystr/internal/version"
)

// FileResult is the expansion of one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	// Output is the file text with every annotated item replaced.
	Output []byte
	Sites  int
	Bag    *diag.Bag
	Cached bool
	// LoadErr is set when a directory run could not read the file; Output
	// is nil then.
	LoadErr error
}

// Changed reports whether expansion rewrote anything.
func (r *FileResult) Changed(fs *source.FileSet) bool {
	f := fs.Get(r.FileID)
	return f == nil || !bytes.Equal(f.Original(), r.Output)
}

// cacheKey binds the file content to every option that changes the output,
// the expander version and the line ending style of the file.
func cacheKey(file *source.File, opts Options) project.Digest {
	doc := []byte{0}
	if opts.Doc {
		doc[0] = 1
	}
	return project.Combine(file.Hash,
		[]byte(version.Version),
		[]byte(opts.attribute()),
		doc,
		[]byte(opts.Layout.String()),
		[]byte{byte(file.Flags &^ source.FileVirtual)},
	)
}

// ExpandSource expands every annotated item of a loaded file. Problems in
// the input end up in the result's bag; the function itself does not fail.
func ExpandSource(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *FileResult {
	file := fs.Get(id)
	span, ctx := trace.Start(ctx, trace.ScopeFile, "file:"+file.Path)

	res := &FileResult{Path: file.Path, FileID: id}
	var all []diag.Diagnostic

	key := cacheKey(file, opts)
	var payload DiskPayload
	if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
		res.Output = payload.Output
		res.Sites = payload.Sites
		res.Cached = true
		all = fromCached(payload.Diagnostics, id)
		trace.Point(ctx, trace.ScopeFile, "cache", "hit")
	} else {
		all = expandFile(ctx, file, opts, res)
		if opts.Cache != nil {
			// кэш необязателен: ошибка записи не ломает прогон
			if err := opts.Cache.Put(key, &DiskPayload{
				Output:      res.Output,
				Sites:       res.Sites,
				Diagnostics: toCached(all),
			}); err != nil {
				trace.Point(ctx, trace.ScopeFile, "cache", "put failed: "+err.Error())
			}
		}
	}

	res.Bag = diag.NewBag(opts.MaxDiagnostics)
	for _, d := range all {
		res.Bag.Add(d)
	}
	span.WithExtra("sites", fmt.Sprint(res.Sites)).
		WithExtra("diagnostics", fmt.Sprint(len(all))).
		End("")
	return res
}

// expandFile does the uncached work and returns every diagnostic, sorted.
func expandFile(ctx context.Context, file *source.File, opts Options, res *FileResult) []diag.Diagnostic {
	bag := diag.NewBag(0)
	// лексер и поиск атрибутов могут сообщить одно и то же место дважды
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	done := opts.phase(ctx, "lex")
	tree := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
	done("")

	done = opts.phase(ctx, "expand")
	sites := FindSites(tree.Tokens, opts.attribute(), reporter)
	var out bytes.Buffer
	var pos uint32
	for _, site := range sites {
		r := expand.Expand(site.Args, site.Item, expand.Options{CallSite: site.Attr, Doc: opts.Doc})
		for _, d := range r.Diagnostics {
			bag.Add(d)
		}
		trace.Point(ctx, trace.ScopeItem, "enum", r.Header.Name.Text)

		out.Write(file.RawSlice(pos, site.Start))
		out.Write(file.RestoreLineEnds(format.Print(r.Tokens, format.Options{Layout: opts.Layout})))
		pos = site.End
	}
	out.Write(file.RawSlice(pos, uint32(len(file.Content))))
	done(fmt.Sprintf("%d items", len(sites)))

	res.Output = out.Bytes()
	res.Sites = len(sites)

	bag.Sort()
	bag.Dedup()
	return bag.Items()
}

// ExpandFile loads path ("-" for stdin) and expands it.
func ExpandFile(ctx context.Context, path string, opts Options) (*source.FileSet, *FileResult, error) {
	fs := source.NewFileSet()
	done := opts.phase(ctx, "load")
	id, err := LoadInput(fs, path)
	done("")
	if err != nil {
		return nil, nil, err
	}
	return fs, ExpandSource(ctx, fs, id, opts), nil
}
