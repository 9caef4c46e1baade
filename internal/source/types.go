package source

type (
	// UnitID uniquely identifies a source unit within a UnitSet.
	UnitID uint32
	// UnitFlags encodes metadata about a source unit.
	UnitFlags uint8
	// UnitKind tells whether a unit is raw text or a pre-tokenized stream.
	UnitKind uint8
)

const (
	// UnitText units are addressed by byte offsets.
	UnitText UnitKind = iota
	// UnitStream units are addressed by token index.
	UnitStream
)

func (k UnitKind) String() string {
	switch k {
	case UnitText:
		return "text"
	case UnitStream:
		return "stream"
	}
	return "unknown"
}

const (
	// UnitVirtual indicates the unit was added from memory (test, stdin, macro expansion).
	UnitVirtual UnitFlags = 1 << iota
	UnitHadBOM
	UnitNormalizedCRLF
)

// Unit captures metadata and content for a single source unit.
type Unit struct {
	ID      UnitID
	Kind    UnitKind
	Name    string
	Content []byte   // text units only
	LineIdx []uint32 // offsets of '\n' bytes
	Tokens  uint32   // stream units only: number of tokens
	Hash    [32]byte
	Flags   UnitFlags
}

// LineCol represents a human-readable position in a text unit.
// Col counts grapheme clusters, so one visual character is one column.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// IsZero reports whether the position carries no information.
func (lc LineCol) IsZero() bool {
	return lc.Line == 0 && lc.Col == 0
}
