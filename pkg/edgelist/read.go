package edgelist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/cliquer/pkg/graph"
)

// ErrMalformedHeader is returned when a FormatHeader input does not start
// with a valid "n m" line.
var ErrMalformedHeader = errors.New("malformed header")

// ErrUnknownFormat is returned by ParseFormat for unrecognized names.
var ErrUnknownFormat = errors.New("unknown edge-list format")

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// Format selects the edge-list layout.
type Format int

const (
	FormatPairs Format = iota
	FormatHeader
)

// FormatNames lists the names accepted by ParseFormat.
var FormatNames = []string{"pairs", "header"}

func (f Format) String() string {
	switch f {
	case FormatPairs:
		return "pairs"
	case FormatHeader:
		return "header"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps a format name to its Format. Matching ignores case.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pairs", "":
		return FormatPairs, nil
	case "header":
		return FormatHeader, nil
	}
	return FormatPairs, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Options configures Read.
type Options struct {
	Format     Format
	OneIndexed bool

	// OnSkip, if set, is called for every skipped line as it is read.
	OnSkip func(Diagnostic)
}

// Diagnostic describes a skipped input line.
type Diagnostic struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %q", d.Line, d.Reason, d.Text)
}

// List is a parsed edge list, ready for graph.Build.
type List struct {
	VertexCount int
	Edges       []graph.Edge
	Skipped     []Diagnostic

	// DeclaredEdges is the edge count from a FormatHeader header, or -1.
	DeclaredEdges int
}

// maxPrealloc caps the edge slice sized from a header's declared count.
const maxPrealloc = 1 << 16

// Read parses an edge list from r. It does not close r.
func Read(r io.Reader, opts Options) (*List, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	l := &List{DeclaredEdges: -1}
	shift := 0
	if opts.OneIndexed {
		shift = 1
	}
	skip := func(line int, text, reason string) {
		d := Diagnostic{Line: line, Text: text, Reason: reason}
		l.Skipped = append(l.Skipped, d)
		if opts.OnSkip != nil {
			opts.OnSkip(d)
		}
	}

	needHeader := opts.Format == FormatHeader
	maxID := -1
	for lineNo := 1; sc.Scan(); lineNo++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' || text[0] == '%' {
			continue
		}
		a, b, err := parsePair(text)

		if needHeader {
			if err != nil || a <= 0 || b < 0 {
				return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedHeader, lineNo, text)
			}
			l.VertexCount, l.DeclaredEdges = a, b
			l.Edges = make([]graph.Edge, 0, min(b, maxPrealloc))
			needHeader = false
			continue
		}
		if err != nil {
			skip(lineNo, text, err.Error())
			continue
		}

		e := graph.Edge{U: a - shift, V: b - shift}
		l.Edges = append(l.Edges, e)
		maxID = max(maxID, e.U, e.V)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if needHeader {
		return nil, fmt.Errorf("%w: no header line", ErrMalformedHeader)
	}
	if opts.Format == FormatPairs {
		l.VertexCount = maxID + 1
	}
	return l, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string, opts Options) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, opts)
}

// parsePair reads the first two whitespace-separated integers of text.
func parsePair(text string) (int, int, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return 0, 0, errors.New("expected two vertex ids")
	}
	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad vertex id %q", fields[0])
	}
	b, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad vertex id %q", fields[1])
	}
	return a, b, nil
}
