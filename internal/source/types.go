package source

type (
	// FileID identifies a file inside a FileSet.
	FileID uint32
	// FileFlags records how a file entered the FileSet.
	FileFlags uint8
)

const (
	// FileVirtual marks content that did not come from disk (stdin, tests).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one loaded source text together with its line index.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
	// Raw is the content as read when BOM or CRLF normalisation changed it.
	Raw []byte

	crlf []uint32 // Content offsets of '\n' that were "\r\n"
}

// LineCol is a 1-based human position.
type LineCol struct {
	Line uint32
	Col  uint32
}
