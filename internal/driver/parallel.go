package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"displaystr/internal/diag"
	"displaystr/internal/source"
	"displaystr/internal/trace"
)

// listSourceFiles возвращает отсортированный список файлов с нужными
// расширениями, пропуская уже сгенерированные.
func listSourceFiles(dir string, exts []string, skipSuffix string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if skipSuffix != "" && strings.HasSuffix(path, skipSuffix) {
			return nil
		}
		if slices.Contains(exts, filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return files, nil
}

// ExpandDir expands every matching file under dir in parallel. A file that
// cannot be read becomes an empty virtual file carrying an IO diagnostic,
// so results stay index-aligned with the sorted file list.
func ExpandDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*FileResult, error) {
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "expand-dir")
	defer span.End(dir)

	files, err := listSourceFiles(dir, opts.extensions(), opts.OutputSuffix)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен: загружаем всё заранее
	done := opts.phase(ctx, "load")
	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			id = fileSet.AddVirtual(path, nil)
			loadErrs[i] = err
		}
		ids[i] = id
	}
	done("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	notify := func(i int, status FileStatus, errs int) {
		if opts.FileObserver != nil {
			opts.FileObserver(FileEvent{Path: files[i], Index: i, Total: len(files), Status: status, Errors: errs})
		}
	}
	for i := range files {
		notify(i, FileQueued, 0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			notify(i, FileWorking, 0)

			if loadErrs[i] != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError,
					source.Span{File: ids[i]}, "failed to load file: "+loadErrs[i].Error()).Emit()
				results[i] = &FileResult{Path: files[i], FileID: ids[i], Bag: bag, LoadErr: loadErrs[i]}
				notify(i, FileFailed, 1)
				return nil
			}

			res := ExpandSource(gctx, fileSet, ids[i], opts)
			results[i] = res
			status := FileDone
			switch {
			case res.Bag.HasErrors():
				status = FileFailed
			case res.Cached:
				status = FileCached
			}
			notify(i, status, res.Bag.Len())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
