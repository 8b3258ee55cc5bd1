package source

// FileID indexes a File inside its FileSet.
type FileID uint32

// FileFlags describe how a file entered the set.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // added from memory
	FileHadBOM                               // a UTF-8 BOM was stripped
	FileNormalizedCRLF                       // \r\n was rewritten to \n
	// FileNoContent marks a path-only file: the AST document carried no
	// source text, so spans cannot be turned into lines.
	FileNoContent
)

// File is one registered document and the text its spans point into.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// HasContent reports whether spans in this file can be resolved to lines.
func (f *File) HasContent() bool {
	return f != nil && f.Flags&FileNoContent == 0
}

// LineCol is a 1-based position.
type LineCol struct {
	Line uint32
	Col  uint32
}
