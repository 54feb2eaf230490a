package edgelist

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/cliquer/pkg/graph"
)

func TestReadPairs(t *testing.T) {
	input := `# a triangle
0 1
1 2

% konect style comment
2 0 1.5 1700000000
bogus line
3
4 x
`
	var streamed []Diagnostic
	l, err := Read(strings.NewReader(input), Options{OnSkip: func(d Diagnostic) { streamed = append(streamed, d) }})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	wantEdges := []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 0}}
	if !reflect.DeepEqual(l.Edges, wantEdges) {
		t.Errorf("Edges = %v, want %v", l.Edges, wantEdges)
	}
	if l.VertexCount != 3 {
		t.Errorf("VertexCount = %d, want 3", l.VertexCount)
	}
	if l.DeclaredEdges != -1 {
		t.Errorf("DeclaredEdges = %d, want -1", l.DeclaredEdges)
	}

	wantLines := []int{7, 8, 9}
	if len(l.Skipped) != len(wantLines) {
		t.Fatalf("Skipped = %v, want lines %v", l.Skipped, wantLines)
	}
	for i, d := range l.Skipped {
		if d.Line != wantLines[i] {
			t.Errorf("Skipped[%d].Line = %d, want %d", i, d.Line, wantLines[i])
		}
	}
	if !reflect.DeepEqual(streamed, l.Skipped) {
		t.Errorf("OnSkip saw %v, want %v", streamed, l.Skipped)
	}
}

func TestReadOneIndexed(t *testing.T) {
	l, err := Read(strings.NewReader("1 2\n2 3\n"), Options{OneIndexed: true})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}}
	if !reflect.DeepEqual(l.Edges, want) {
		t.Errorf("Edges = %v, want %v", l.Edges, want)
	}
	if l.VertexCount != 3 {
		t.Errorf("VertexCount = %d, want 3", l.VertexCount)
	}
}

func TestReadHeader(t *testing.T) {
	l, err := Read(strings.NewReader("# header format\n5 2\n1 2\n4 5\n"), Options{Format: FormatHeader, OneIndexed: true})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if l.VertexCount != 5 || l.DeclaredEdges != 2 {
		t.Errorf("VertexCount, DeclaredEdges = %d, %d, want 5, 2", l.VertexCount, l.DeclaredEdges)
	}
	want := []graph.Edge{{U: 0, V: 1}, {U: 3, V: 4}}
	if !reflect.DeepEqual(l.Edges, want) {
		t.Errorf("Edges = %v, want %v", l.Edges, want)
	}
}

func TestReadHeaderMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"comments only", "# nothing\n"},
		{"one field", "5\n0 1\n"},
		{"zero vertices", "0 3\n"},
		{"not numbers", "n m\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), Options{Format: FormatHeader})
			if !errors.Is(err, ErrMalformedHeader) {
				t.Errorf("Read() error = %v, want ErrMalformedHeader", err)
			}
		})
	}
}

func TestReadHeaderHugeDeclaredEdges(t *testing.T) {
	l, err := Read(strings.NewReader("3 1000000000000000\n0 1\n1 2\n"), Options{Format: FormatHeader})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if l.DeclaredEdges != 1000000000000000 {
		t.Errorf("DeclaredEdges = %d", l.DeclaredEdges)
	}
	if len(l.Edges) != 2 || cap(l.Edges) > maxPrealloc {
		t.Errorf("len, cap = %d, %d; want 2 edges within a %d prealloc", len(l.Edges), cap(l.Edges), maxPrealloc)
	}
}

func TestReadEmptyPairs(t *testing.T) {
	l, err := Read(strings.NewReader("# nothing here\n"), Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if l.VertexCount != 0 || len(l.Edges) != 0 {
		t.Errorf("got %d vertices, %d edges, want 0, 0", l.VertexCount, len(l.Edges))
	}
	if _, err := graph.Build(l.VertexCount, l.Edges); !errors.Is(err, graph.ErrDegenerateInput) {
		t.Errorf("Build() error = %v, want ErrDegenerateInput", err)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.txt")
	if err := os.WriteFile(path, []byte("0 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := ReadFile(path, Options{})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(l.Edges) != 1 {
		t.Errorf("len(Edges) = %d, want 1", len(l.Edges))
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"), Options{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	l := &List{VertexCount: 4, Edges: []graph.Edge{{U: 0, V: 1}, {U: 2, V: 3}}}
	for _, f := range []Format{FormatPairs, FormatHeader} {
		var buf bytes.Buffer
		if err := Write(&buf, l, f); err != nil {
			t.Fatalf("Write: %v", err)
		}
		got, err := Read(&buf, Options{Format: f})
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if !reflect.DeepEqual(got.Edges, l.Edges) || got.VertexCount != 4 {
			t.Errorf("%v: round trip = %+v, want %+v", f, got, l)
		}
	}
}

func TestHash(t *testing.T) {
	a, err := Read(strings.NewReader("# comment\n0 1\n1 2\n"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Read(strings.NewReader("1 2\n2 3\nnot an edge\n"), Options{OneIndexed: true})
	if err != nil {
		t.Fatal(err)
	}
	if a.Hash() != b.Hash() {
		t.Errorf("Hash() differs for equivalent inputs")
	}
	c, err := Read(strings.NewReader("0 1\n1 3\n"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if a.Hash() == c.Hash() {
		t.Errorf("Hash() equal for different graphs")
	}
	if len(a.Hash()) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(a.Hash()))
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range FormatNames {
		f, err := ParseFormat(name)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", name, err)
		}
		if f.String() != name {
			t.Errorf("String() = %q, want %q", f.String(), name)
		}
	}
	if _, err := ParseFormat("csv"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(csv) error = %v, want ErrUnknownFormat", err)
	}
}
