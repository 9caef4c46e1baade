package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/rivo/uniseg"
)

// UnitSet manages a collection of source units, text and stream alike.
type UnitSet struct {
	units   []Unit
	index   map[string]UnitID // name -> latest id
	baseDir string            // базовая директория для относительных путей
}

// NewUnitSet creates a new empty UnitSet.
func NewUnitSet() *UnitSet {
	return &UnitSet{
		units: make([]Unit, 0),
		index: make(map[string]UnitID),
	}
}

// SetBaseDir sets the directory relative paths are rendered against.
func (us *UnitSet) SetBaseDir(dir string) {
	us.baseDir = dir
}

// BaseDir returns the base directory, defaulting to the working directory.
func (us *UnitSet) BaseDir() string {
	if us.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return us.baseDir
}

func (us *UnitSet) nextID() UnitID {
	n, err := safecast.Conv[uint32](len(us.units))
	if err != nil {
		panic(fmt.Errorf("len units overflow: %w", err))
	}
	return UnitID(n)
}

// Add stores a text unit from normalized bytes and returns a new UnitID.
// It always creates a new UnitID even if a unit with the same name exists.
func (us *UnitSet) Add(name string, content []byte, flags UnitFlags) UnitID {
	normalized := normalizePath(name)
	id := us.nextID()
	us.units = append(us.units, Unit{
		ID:      id,
		Kind:    UnitText,
		Name:    normalized,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	us.index[normalized] = id
	return id
}

// AddText adds an in-memory text unit (stdin, tests, generated code).
func (us *UnitSet) AddText(name, content string) UnitID {
	return us.Add(name, []byte(content), UnitVirtual)
}

// AddStream registers a pre-tokenized unit holding n tokens.
func (us *UnitSet) AddStream(name string, n int) UnitID {
	count, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("token count overflow: %w", err))
	}
	id := us.nextID()
	us.units = append(us.units, Unit{
		ID:     id,
		Kind:   UnitStream,
		Name:   name,
		Tokens: count,
		Flags:  UnitVirtual,
	})
	us.index[name] = id
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (us *UnitSet) Load(path string) (UnitID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := UnitFlags(0)
	if hadBOM {
		flags |= UnitHadBOM
	}
	if hadCRLF {
		flags |= UnitNormalizedCRLF
	}
	return us.Add(path, content, flags), nil
}

// Get returns the unit for id, or nil when id is unknown.
func (us *UnitSet) Get(id UnitID) *Unit {
	if int(id) >= len(us.units) {
		return nil
	}
	return &us.units[id]
}

// Len returns the number of registered units.
func (us *UnitSet) Len() int {
	return len(us.units)
}

// GetLatest returns the latest unit id registered under name.
func (us *UnitSet) GetLatest(name string) (UnitID, bool) {
	id, ok := us.index[normalizePath(name)]
	if !ok {
		id, ok = us.index[name]
	}
	return id, ok
}

// Resolve converts a span into line and column positions.
// Stream spans resolve to zero positions.
func (us *UnitSet) Resolve(span Span) (start, end LineCol) {
	u := us.Get(span.Unit)
	if u == nil || u.Kind != UnitText || span.Kind != UnitText {
		return LineCol{}, LineCol{}
	}
	return u.LineCol(span.Start), u.LineCol(span.End)
}

// Render formats a span as "name:line:col-line:col" for text units and
// "name:[start..end)" for stream units.
func (us *UnitSet) Render(span Span) string {
	u := us.Get(span.Unit)
	if u == nil {
		return span.String()
	}
	if span.Kind == UnitStream {
		return fmt.Sprintf("%s:[%d..%d)", u.Name, span.Start, span.End)
	}
	from, to := us.Resolve(span)
	return fmt.Sprintf("%s:%d:%d-%d:%d", u.Name, from.Line, from.Col, to.Line, to.Col)
}

// LineCol converts a byte offset into a 1-based line and grapheme column.
func (u *Unit) LineCol(off uint32) LineCol {
	lenContent, err := safecast.Conv[uint32](len(u.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	if off > lenContent {
		off = lenContent
	}
	line, start := lineOf(u.LineIdx, off)
	col := uniseg.GraphemeClusterCount(string(u.Content[start:off]))
	ucol, err := safecast.Conv[uint32](col)
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return LineCol{Line: line, Col: ucol + 1}
}

// LineCount returns the number of lines in a text unit.
func (u *Unit) LineCount() uint32 {
	n, err := safecast.Conv[uint32](len(u.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	return n + 1
}

// GetLine возвращает строку с заданным номером (1-based) из текстового юнита.
// Если строка не существует, возвращает пустую строку.
func (u *Unit) GetLine(lineNum uint32) string {
	if lineNum == 0 || u.Kind != UnitText {
		return ""
	}

	var start, end, lenLineIdx, lenContent uint32
	var err error
	lenLineIdx, err = safecast.Conv[uint32](len(u.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent, err = safecast.Conv[uint32](len(u.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenLineIdx:
		start = u.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if (lineNum - 1) < lenLineIdx {
		end = u.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}

	if start > lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}

	return string(u.Content[start:end])
}

// FormatPath форматирует имя юнита в зависимости от режима.
// mode: "absolute", "relative", "basename", "auto"
func (u *Unit) FormatPath(mode, baseDir string) string {
	if u.Flags&UnitVirtual != 0 {
		return u.Name
	}
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(u.Name); err == nil {
			return abs
		}
		return u.Name

	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(u.Name, baseDir); err == nil {
			return rel
		}
		return u.Name

	case "basename":
		return BaseName(u.Name)

	case "auto":
		if len(u.Name) < 40 || !filepath.IsAbs(u.Name) {
			return u.Name
		}
		return BaseName(u.Name)

	default:
		return u.Name
	}
}
