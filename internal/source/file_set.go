package source

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fortio.org/safecast"
)

// FileSet owns every file loaded during one invocation.
type FileSet struct {
	files   []File
	index   map[string]FileID
	baseDir string
}

// NewFileSet creates an empty FileSet rooted at the working directory.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase creates an empty FileSet whose relative paths are
// rendered against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{
		index:   make(map[string]FileID),
		baseDir: baseDir,
	}
}

// BaseDir returns the directory used for relative path rendering.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fs.baseDir
}

// SetBaseDir overrides the directory used for relative path rendering.
func (fs *FileSet) SetBaseDir(dir string) {
	fs.baseDir = dir
}

// Add stores already normalised content and returns a fresh FileID, even if
// the same path was added before; the path index always points at the newest.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file count overflow: %w", err))
	}
	id := FileID(n)
	p := normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    p,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.index[p] = id
	return id
}

// AddVirtual adds in-memory content, normalising BOM and CRLF the same way
// Load does.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.addRaw(name, content, FileVirtual)
}

// Load reads path from disk and adds it.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path comes from the command line
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fs.addRaw(path, raw, 0), nil
}

// addRaw normalises raw and keeps what is needed to map back to it.
func (fs *FileSet) addRaw(path string, raw []byte, flags FileFlags) FileID {
	content, hadBOM := removeBOM(raw)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, crlf := normalizeCRLF(content)
	if crlf != nil {
		flags |= FileNormalizedCRLF
	}
	id := fs.Add(path, content, flags)
	f := &fs.files[id]
	f.crlf = crlf
	if flags&(FileHadBOM|FileNormalizedCRLF) != 0 {
		f.Raw = raw
	}
	return id
}

// Get returns the file with the given id.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// GetLatest returns the newest id registered for path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.index[normalizePath(path)]
	return id, ok
}

// Len reports how many files were added.
func (fs *FileSet) Len() int {
	return len(fs.files)
}

// Resolve converts a span into start and end positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// GetLine returns line lineNum (1-based) without its terminating newline.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 || int(lineNum) > len(f.LineIdx)+1 {
		return ""
	}
	start := 0
	if lineNum > 1 {
		start = int(f.LineIdx[lineNum-2]) + 1
	}
	end := len(f.Content)
	if int(lineNum) <= len(f.LineIdx) {
		end = int(f.LineIdx[lineNum-1])
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// Slice returns the source text covered by span.
func (f *File) Slice(span Span) string {
	if span.File != f.ID || int(span.End) > len(f.Content) || span.Start > span.End {
		return ""
	}
	return string(f.Content[span.Start:span.End])
}

// FormatPath renders the path according to mode: "absolute", "relative",
// "basename" or "auto".
func (f *File) FormatPath(mode, baseDir string) string {
	if f.Flags&FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case "relative":
		if rel, err := RelativePath(f.Path, baseDir); err == nil && !strings.HasPrefix(rel, "../") {
			return rel
		}
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return filepath.Base(f.Path)
	}
	return f.Path
}

// RawOffset maps an offset in Content to the same place in the bytes as
// read. An offset right before a normalised \n lands before its \r.
func (f *File) RawOffset(off uint32) uint32 {
	n := sort.Search(len(f.crlf), func(i int) bool { return f.crlf[i] >= off })
	raw := off + uint32(n)
	if f.Flags&FileHadBOM != 0 {
		raw += uint32(len(utf8BOM))
	}
	return raw
}

// RawSlice returns the original bytes between two Content offsets.
func (f *File) RawSlice(start, end uint32) []byte {
	if f.Raw == nil {
		return f.Content[start:end]
	}
	rs, re := f.RawOffset(start), f.RawOffset(end)
	if start == 0 {
		// BOM принадлежит началу файла
		rs = 0
	}
	return f.Raw[rs:re]
}

// Original returns the file as read, BOM and CRLF included.
func (f *File) Original() []byte {
	if f.Raw == nil {
		return f.Content
	}
	return f.Raw
}

// RestoreLineEnds converts text built from Content to the file's line
// ending style.
func (f *File) RestoreLineEnds(b []byte) []byte {
	if f.Flags&FileNormalizedCRLF == 0 {
		return b
	}
	return bytes.ReplaceAll(b, []byte("\n"), []byte("\r\n"))
}
